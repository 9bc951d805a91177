package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	var (
		opportunityID string
		fromDate      string
		toDate        string
	)
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch aggregate activity counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{}
			addIfSet(params, "opportunityId", opportunityID)
			addIfSet(params, "fromDate", fromDate)
			addIfSet(params, "toDate", toDate)
			data, err := doGet("/api/timeline/stats", params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	statsCmd.Flags().StringVar(&opportunityID, "opportunity", "", "Opportunity ID")
	statsCmd.Flags().StringVar(&fromDate, "from", "", "From date (RFC 3339)")
	statsCmd.Flags().StringVar(&toDate, "to", "", "To date (RFC 3339)")
	rootCmd.AddCommand(statsCmd)

	var (
		dlOpportunityID string
		daysAhead       int
		dlLimit         int
	)
	deadlinesCmd := &cobra.Command{
		Use:   "deadlines",
		Short: "Fetch upcoming task and appointment deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{}
			addIfSet(params, "opportunityId", dlOpportunityID)
			if daysAhead > 0 {
				params["daysAhead"] = strconv.Itoa(daysAhead)
			}
			if dlLimit > 0 {
				params["limit"] = strconv.Itoa(dlLimit)
			}
			data, err := doGet("/api/timeline/deadlines", params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	deadlinesCmd.Flags().StringVar(&dlOpportunityID, "opportunity", "", "Opportunity ID")
	deadlinesCmd.Flags().IntVar(&daysAhead, "days", 0, "Days ahead (max 90)")
	deadlinesCmd.Flags().IntVar(&dlLimit, "limit", 0, "Max results (max 50)")
	rootCmd.AddCommand(deadlinesCmd)

	var (
		paOpportunityID string
		paLimit         int
	)
	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "Fetch agent actions awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{}
			addIfSet(params, "opportunityId", paOpportunityID)
			if paLimit > 0 {
				params["limit"] = strconv.Itoa(paLimit)
			}
			data, err := doGet("/api/timeline/agent-actions/pending", params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	pendingCmd.Flags().StringVar(&paOpportunityID, "opportunity", "", "Opportunity ID")
	pendingCmd.Flags().IntVar(&paLimit, "limit", 0, "Max results")
	rootCmd.AddCommand(pendingCmd)
}
