package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient() (*resty.Client, error) {
	if tenantFlag == "" {
		return nil, fmt.Errorf("--tenant is required")
	}
	c := resty.New().
		SetBaseURL(apiFlag).
		SetHeader("X-Tenant-ID", tenantFlag).
		SetTimeout(30 * time.Second)
	if userFlag != "" {
		c.SetHeader("X-User-ID", userFlag)
	}
	return c, nil
}

func doGet(path string, params map[string]string) ([]byte, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	resp, err := c.R().SetQueryParams(params).Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

// addIfSet collects only the flags the caller actually provided so server
// defaults stay in effect.
func addIfSet(params map[string]string, key, val string) {
	if val != "" {
		params[key] = val
	}
}
