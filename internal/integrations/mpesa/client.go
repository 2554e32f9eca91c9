package mpesa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Logger is the logging interface this client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client implements the push-payment gateway adapter: it initiates a push
// payment on the customer's phone and answers status queries for the
// gateway-issued checkout reference. Status is pull-only; there is no
// webhook listener here.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	shortCode      string
	httpClient     *http.Client
	log            Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a payment gateway client.
func NewClient(baseURL, consumerKey, consumerSecret, shortCode string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		shortCode:      shortCode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Initiate sends a push-payment prompt to the customer's phone and returns
// the gateway-issued checkout reference. On failure no reference exists and
// the error classifies as AUTH_ERROR, REJECTED or SYSTEM_ERROR via KindOf.
func (c *Client) Initiate(ctx context.Context, phone string, amount float64) (*CheckoutResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(pushRequest{
		BusinessShortCode: c.shortCode,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            strconv.FormatFloat(amount, 'f', -1, 64),
		PartyA:            phone,
		PartyB:            c.shortCode,
		PhoneNumber:       phone,
		AccountReference:  "TWENDEBUS",
		TransactionDesc:   "Bus ticket payment",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal push request: %v", ErrSystem, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrSystem, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSystem, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Continue below.
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.invalidateToken()
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrSystem, resp.StatusCode)
	default:
		var apiErr apiError
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s", ErrRejected, apiErr.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var parsed pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode push response: %v", ErrInvalidResponse, err)
	}
	if parsed.ResponseCode != "0" {
		return nil, fmt.Errorf("%w: %s", ErrRejected, parsed.ResponseDescription)
	}
	if parsed.CheckoutRequestID == "" {
		return nil, fmt.Errorf("%w: missing checkout reference", ErrInvalidResponse)
	}

	c.log.Info("mpesa: push initiated, reference=%s", parsed.CheckoutRequestID)
	return &CheckoutResult{
		Reference: parsed.CheckoutRequestID,
		Message:   parsed.CustomerMessage,
	}, nil
}

// Status queries the gateway for the state of a checkout reference.
func (c *Client) Status(ctx context.Context, reference string) (*StatusResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(queryRequest{
		BusinessShortCode: c.shortCode,
		CheckoutRequestID: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query request: %v", ErrSystem, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mpesa/stkpushquery/v1/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrSystem, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSystem, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrSystem, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil {
			// The gateway reports "still processing" as an error code
			// until the customer acts on the push prompt.
			if apiErr.ErrorCode == errorCodeProcessing {
				return &StatusResult{State: StatePending, Message: apiErr.ErrorMessage}, nil
			}
			if apiErr.ErrorCode != "" {
				return nil, fmt.Errorf("%w: %s", ErrUnknownReference, apiErr.ErrorMessage)
			}
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateToken()
			return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", ErrSystem, resp.StatusCode)
	}

	var parsed queryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode query response: %v", ErrInvalidResponse, err)
	}

	if parsed.ResultCode == resultCodeSuccess {
		return &StatusResult{State: StateCompleted, Message: parsed.ResultDesc}, nil
	}
	return &StatusResult{State: StateFailed, Message: parsed.ResultDesc}, nil
}

// accessToken returns a cached bearer token, refreshing it when expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("%w: create token request: %v", ErrSystem, err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrSystem, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Continue below.
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	default:
		return "", fmt.Errorf("%w: token endpoint status %d", ErrSystem, resp.StatusCode)
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrInvalidResponse, err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrInvalidResponse)
	}

	ttl := 3600 * time.Second
	if secs, err := strconv.Atoi(parsed.ExpiresIn); err == nil && secs > 60 {
		ttl = time.Duration(secs-60) * time.Second
	}
	c.token = parsed.AccessToken
	c.tokenExpiry = time.Now().Add(ttl)

	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}
