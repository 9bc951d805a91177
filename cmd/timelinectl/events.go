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
		dealID        string
		caseID        string
		accountID     string
		contactID     string
		types         string
		excludeTypes  string
		priorities    string
		fromDate      string
		toDate        string
		sortOrder     string
		search        string
		page          int
		limit         int
	)

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch the merged timeline for an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{}
			addIfSet(params, "opportunityId", opportunityID)
			addIfSet(params, "dealId", dealID)
			addIfSet(params, "caseId", caseID)
			addIfSet(params, "accountId", accountID)
			addIfSet(params, "contactId", contactID)
			addIfSet(params, "types", types)
			addIfSet(params, "excludeTypes", excludeTypes)
			addIfSet(params, "priorities", priorities)
			addIfSet(params, "fromDate", fromDate)
			addIfSet(params, "toDate", toDate)
			addIfSet(params, "sortOrder", sortOrder)
			addIfSet(params, "search", search)
			if page > 0 {
				params["page"] = strconv.Itoa(page)
			}
			if limit > 0 {
				params["limit"] = strconv.Itoa(limit)
			}

			data, err := doGet("/api/timeline/events", params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}

	eventsCmd.Flags().StringVar(&opportunityID, "opportunity", "", "Opportunity ID")
	eventsCmd.Flags().StringVar(&dealID, "deal", "", "Deal ID")
	eventsCmd.Flags().StringVar(&caseID, "case", "", "Case ID")
	eventsCmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	eventsCmd.Flags().StringVar(&contactID, "contact", "", "Contact ID")
	eventsCmd.Flags().StringVar(&types, "types", "", "Comma-separated event types to include")
	eventsCmd.Flags().StringVar(&excludeTypes, "exclude-types", "", "Comma-separated event types to exclude")
	eventsCmd.Flags().StringVar(&priorities, "priorities", "", "Comma-separated priorities")
	eventsCmd.Flags().StringVar(&fromDate, "from", "", "From date (RFC 3339)")
	eventsCmd.Flags().StringVar(&toDate, "to", "", "To date (RFC 3339)")
	eventsCmd.Flags().StringVar(&sortOrder, "sort", "", "Sort order (asc|desc)")
	eventsCmd.Flags().StringVar(&search, "search", "", "Free-text search")
	eventsCmd.Flags().IntVar(&page, "page", 0, "Page number")
	eventsCmd.Flags().IntVar(&limit, "limit", 0, "Page size")

	rootCmd.AddCommand(eventsCmd)
}
