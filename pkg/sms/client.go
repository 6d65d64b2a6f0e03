// Package sms provides a minimal client for sending SMS messages through the
// Twilio REST API.
//
// It is intentionally small: one account, one sending number, plain HTTP
// form posts. Designed to be used as a channel transport in the
// reminder-notifier system.
package sms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com/2010-04-01"

// Client represents a Twilio client used to send SMS notifications.
type Client struct {
	accountSID string       // Twilio account identifier
	authToken  string       // API auth token
	from       string       // sending phone number in E.164 format
	baseURL    string       // API base, overridable for tests
	client     *http.Client // HTTP client used to make requests
}

// NewClient creates a new SMS Client. The timeout bounds every API call.
func NewClient(accountSID, authToken, from string, timeout time.Duration) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// Send posts a message to the Twilio Messages endpoint.
//
// It returns an error if the request fails or the API responds with a
// non-2xx status.
func (c *Client) Send(ctx context.Context, to, msg string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", msg)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("twilio API error: %s", resp.Status)
	}

	return nil
}
