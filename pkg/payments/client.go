package payments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client represents a payment processor API client. The processor owns
// settlement, retries and idempotency; this client only verifies that a
// transaction reference handed back by the redirect flow is real and
// matches the expected amount.
type Client struct {
	BaseURL string
	APIKey  string
	MockAPI bool
	client  *http.Client
}

// Transaction represents a settled payment as reported by the processor
type Transaction struct {
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	PaidAt    time.Time `json:"paidAt"`
}

// NewClient creates a new payment processor client
func NewClient(baseURL, apiKey string, mockAPI bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyTransaction looks up a transaction reference with the processor and
// returns its settled details.
func (c *Client) VerifyTransaction(reference string) (*Transaction, error) {
	if c.MockAPI {
		return c.mockVerifyTransaction(reference)
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", c.BaseURL, reference), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment processor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("transaction %s not found", reference)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var tx Transaction
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		return nil, fmt.Errorf("failed to decode transaction response: %w", err)
	}
	return &tx, nil
}

// NewReference generates a transaction reference for flows that start on our
// side (e.g. handing a reference to the redirect URL).
func NewReference() string {
	return "TIP-" + strings.ToUpper(uuid.NewString())
}

// mockVerifyTransaction accepts any TIP-prefixed reference as settled. Used
// in development and tests.
func (c *Client) mockVerifyTransaction(reference string) (*Transaction, error) {
	if !strings.HasPrefix(reference, "TIP-") {
		return nil, fmt.Errorf("transaction %s not found", reference)
	}
	return &Transaction{
		Reference: reference,
		Currency:  "USD",
		Status:    "SUCCESS",
		PaidAt:    time.Now(),
	}, nil
}
