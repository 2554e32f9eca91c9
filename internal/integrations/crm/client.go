package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging interface this client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client reads customer contact records from the external CRM. The records
// are owned by the CRM; this service never writes them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a CRM client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetContacts returns the full contact list.
func (c *Client) GetContacts(ctx context.Context) ([]Contact, error) {
	url := c.baseURL + "/internal/contacts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var parsed contactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return parsed.Contacts, nil
}

// GetContactsWithGracefulDegradation returns the contact list, mapping any
// CRM outage to ErrServiceDegraded so broadcasts can proceed against an
// operator-supplied recipient list instead.
func (c *Client) GetContactsWithGracefulDegradation(ctx context.Context) ([]Contact, error) {
	contacts, err := c.GetContacts(ctx)
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) {
			c.log.Error("crm: invalid response, applying graceful degradation: %v", err)
		} else {
			c.log.Error("crm: unreachable, applying graceful degradation: %v", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("crm: fetched %d contacts", len(contacts))
	return contacts, nil
}
