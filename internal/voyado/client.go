// Package voyado is a thin client for the Voyado loyalty-CRM REST API.
//
// Read operations (lookups) never return transport errors: any failure
// is logged and reported as not-found, because a missing contact or
// account is a normal terminal outcome for the pipelines. Write
// operations (transactions, interactions) return errors, since a failed
// write must abort the enclosing pipeline step.
package voyado

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/dixa-voyado-bridge/internal/config"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
)

const userAgent = "DixaVoyadoBridge/1.0"

// IdentifierKind selects which contact field a lookup matches on.
type IdentifierKind string

const (
	ByEmail IdentifierKind = "email"
	ByPhone IdentifierKind = "phone"
)

func (k IdentifierKind) queryParam() string {
	if k == ByPhone {
		return "mobilePhone"
	}
	return "email"
}

// Client is a Voyado API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Voyado API client.
func NewClient(cfg config.VoyadoConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// doGet makes a GET request to the Voyado API.
func (c *Client) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// doPost makes a POST request with a JSON body to the Voyado API.
func (c *Client) doPost(ctx context.Context, path string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	// Voyado authenticates with a lowercase "apikey" header, not a
	// bearer token.
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// FindContactID looks up a contact by email or phone. Returns the
// contact id and true on a match; false for no match or any transport
// failure (logged, not propagated).
func (c *Client) FindContactID(ctx context.Context, identifier string, kind IdentifierKind) (string, bool) {
	params := url.Values{}
	params.Set(kind.queryParam(), identifier)

	body, err := c.doGet(ctx, "/contacts/id", params)
	if err != nil {
		logger.Warn("voyado contact lookup failed", "kind", string(kind), "identifier", identifier, "error", err.Error())
		return "", false
	}

	var resp contactIDResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.ID == "" {
		logger.Info("voyado contact not found", "kind", string(kind), "identifier", identifier)
		return "", false
	}
	return resp.ID, true
}

// FindPointAccount returns the id of the contact's first point account,
// or false if the contact has none. Lookup failures are logged and
// reported as not-found.
func (c *Client) FindPointAccount(ctx context.Context, contactID string) (string, bool) {
	params := url.Values{}
	params.Set("contactId", contactID)

	body, err := c.doGet(ctx, "/point-accounts", params)
	if err != nil {
		logger.Warn("voyado point account lookup failed", "contact_id", contactID, "error", err.Error())
		return "", false
	}

	var list pointAccountList
	if err := json.Unmarshal(body, &list); err != nil || len(list.Accounts) == 0 {
		logger.Info("voyado point account not found", "contact_id", contactID)
		return "", false
	}
	return list.Accounts[0].ID, true
}

// PostPointTransaction appends an Addition transaction to the account.
// A fresh transaction id is generated per attempt. Non-2xx responses
// are returned as *APIError.
func (c *Client) PostPointTransaction(ctx context.Context, accountID string, amount int, description string) (map[string]any, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	tx := PointTransaction{
		AccountID:       accountID,
		TransactionID:   uuid.New().String(),
		TransactionType: "Addition",
		Amount:          amount,
		Description:     description,
		Source:          "Automation",
		TransactionDate: now,
		ValidFrom:       now,
		ValidTo:         nil,
	}

	body, err := c.doPost(ctx, "/point-transactions", tx)
	if err != nil {
		return nil, fmt.Errorf("posting point transaction: %w", err)
	}

	result := map[string]any{}
	if len(body) > 0 {
		// Some deployments answer with an empty body; tolerate that.
		_ = json.Unmarshal(body, &result)
	}
	logger.Info("voyado point transaction posted",
		"account_id", accountID, "amount", amount, "transaction_id", tx.TransactionID)
	return result, nil
}

// PostInteraction appends a schema-tagged interaction to the contact.
func (c *Client) PostInteraction(ctx context.Context, contactID, schemaID string, payload map[string]any) (map[string]any, error) {
	in := Interaction{
		ContactID:   contactID,
		SchemaID:    schemaID,
		CreatedDate: time.Now().UTC().Format(time.RFC3339),
		Payload:     payload,
	}

	body, err := c.doPost(ctx, "/interactions", in)
	if err != nil {
		return nil, fmt.Errorf("posting interaction: %w", err)
	}

	result := map[string]any{}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &result)
	}
	logger.Info("voyado interaction posted", "contact_id", contactID, "schema_id", schemaID)
	return result, nil
}

// FindInteractionsBySchema lists a contact's interactions for one
// schema. The remote orders the result, assumed most-recent-first.
// Failures are logged and reported as an empty list.
func (c *Client) FindInteractionsBySchema(ctx context.Context, contactID, schemaID string) []InteractionSummary {
	params := url.Values{}
	params.Set("contactId", contactID)
	params.Set("schemaId", schemaID)

	body, err := c.doGet(ctx, "/interactions", params)
	if err != nil {
		logger.Warn("voyado interaction listing failed", "contact_id", contactID, "schema_id", schemaID, "error", err.Error())
		return nil
	}

	var list interactionList
	if err := json.Unmarshal(body, &list); err != nil {
		logger.Warn("voyado interaction listing unparseable", "contact_id", contactID, "error", err.Error())
		return nil
	}
	return list.Items
}

// FetchInteractionDetail returns one interaction in full, or false when
// it does not exist or the call fails.
func (c *Client) FetchInteractionDetail(ctx context.Context, interactionID string) (*InteractionDetail, bool) {
	body, err := c.doGet(ctx, "/interactions/"+url.PathEscape(interactionID), nil)
	if err != nil {
		logger.Warn("voyado interaction fetch failed", "interaction_id", interactionID, "error", err.Error())
		return nil, false
	}

	var detail InteractionDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		logger.Warn("voyado interaction detail unparseable", "interaction_id", interactionID, "error", err.Error())
		return nil, false
	}
	return &detail, true
}
