// Package dixa is a thin client for the Dixa support-inbox REST API.
package dixa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ignite/dixa-voyado-bridge/internal/config"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
)

// Client is a Dixa API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new Dixa API client.
func NewClient(cfg config.DixaConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// WithToken returns a copy of the client authenticating with the given
// token. Used for per-request token overrides in the review pipeline;
// the underlying http.Client is shared.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// HasToken reports whether the client has any credential at all.
func (c *Client) HasToken() bool { return c.token != "" }

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

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

// FindEndUser looks up an end user by whichever identifying fields the
// contact carries, returning the first match. Lookup failures are
// logged and reported as not-found.
func (c *Client) FindEndUser(ctx context.Context, contact Contact) (*EndUser, bool) {
	params := url.Values{}
	if contact.Email != "" {
		params.Set("email", contact.Email)
	}
	if contact.Phone != "" {
		params.Set("phone", contact.Phone)
	}
	if contact.ExternalID != "" {
		params.Set("externalId", contact.ExternalID)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/endusers", params, nil)
	if err != nil {
		logger.Warn("dixa end user lookup failed", "email", contact.Email, "phone", contact.Phone, "error", err.Error())
		return nil, false
	}

	var envelope dataEnvelope[[]EndUser]
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		logger.Info("dixa end user not found", "email", contact.Email, "phone", contact.Phone)
		return nil, false
	}
	return &envelope.Data[0], true
}

// CreateEndUser creates an end user from the contact's present fields.
// The display name defaults to email, then phone, then a generic label.
func (c *Client) CreateEndUser(ctx context.Context, contact Contact) (*EndUser, error) {
	displayName := contact.DisplayName
	if displayName == "" {
		switch {
		case contact.Email != "":
			displayName = contact.Email
		case contact.Phone != "":
			displayName = contact.Phone
		default:
			displayName = "Voyado Customer"
		}
	}

	req := createEndUserRequest{
		DisplayName: displayName,
		Email:       contact.Email,
		PhoneNumber: contact.Phone,
		ExternalID:  contact.ExternalID,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/endusers", nil, req)
	if err != nil {
		return nil, fmt.Errorf("creating end user: %w", err)
	}

	var envelope dataEnvelope[EndUser]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing end user response: %w", err)
	}
	logger.Info("dixa end user created", "end_user_id", envelope.Data.ID, "email", contact.Email)
	return &envelope.Data, nil
}

// GetOrCreateEndUser resolves an end user, creating one on a lookup
// miss. Not transactional: two concurrent calls for the same contact
// can create duplicate end users.
func (c *Client) GetOrCreateEndUser(ctx context.Context, contact Contact) (*EndUser, error) {
	if user, found := c.FindEndUser(ctx, contact); found {
		return user, nil
	}
	return c.CreateEndUser(ctx, contact)
}

// CreateConversation opens an inbound email conversation for the end
// user. The message body is a fixed template naming the rating; the
// full enrichment map is returned to the webhook caller instead of
// being serialized into the email body.
func (c *Client) CreateConversation(ctx context.Context, endUserID, emailIntegrationID string, enrichment map[string]any) (*Conversation, error) {
	subject := "New product review received"
	bodyText := "A customer submitted a product review"
	if rating, ok := enrichment["rating"]; ok {
		bodyText = fmt.Sprintf("A customer submitted a product review with rating %v", rating)
	}
	bodyText += ". See the attached review data in your CRM."

	req := createConversationRequest{
		RequesterID:        endUserID,
		EmailIntegrationID: emailIntegrationID,
		Subject:            subject,
		Message: conversationMessage{
			Content:   messageContent{Value: bodyText, Type: "Text"},
			Direction: "Inbound",
		},
		Language: "en",
		Type:     "Email",
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/conversations", nil, req)
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	var envelope dataEnvelope[Conversation]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing conversation response: %w", err)
	}
	logger.Info("dixa conversation created", "conversation_id", envelope.Data.ID, "end_user_id", endUserID)
	return &envelope.Data, nil
}
