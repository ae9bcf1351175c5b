package dixa

import "fmt"

// APIError is returned when a Dixa call fails. It carries the upstream
// HTTP status so the review pipeline can map it onto the local response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dixa API error (status %d): %s", e.StatusCode, e.Body)
}

// UpstreamStatus returns the HTTP status of the failed upstream call.
func (e *APIError) UpstreamStatus() int { return e.StatusCode }

// Contact carries whichever identifying fields the caller has. Any
// field may be empty, but lookups need at least one of Email, Phone or
// ExternalID set.
type Contact struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ExternalID  string `json:"externalId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// HasIdentifier reports whether the contact can be looked up at all.
func (c Contact) HasIdentifier() bool {
	return c.Email != "" || c.Phone != "" || c.ExternalID != ""
}

// EndUser is Dixa's representation of a customer, distinct from the
// CRM's contact.
type EndUser struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phoneNumber,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	ExternalID  string `json:"externalId,omitempty"`
}

// Conversation is the created support conversation.
type Conversation struct {
	ID string `json:"id"`
}

// createEndUserRequest is the POST /endusers payload. Absent fields are
// omitted entirely rather than sent as empty strings.
type createEndUserRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	ExternalID  string `json:"externalId,omitempty"`
}

// createConversationRequest mirrors Dixa's inbound-email conversation
// shape. The field names and nesting are the vendor's contract.
type createConversationRequest struct {
	RequesterID        string              `json:"requesterId"`
	EmailIntegrationID string              `json:"emailIntegrationId"`
	Subject            string              `json:"subject"`
	Message            conversationMessage `json:"message"`
	Language           string              `json:"language"`
	Type               string              `json:"_type"`
}

type conversationMessage struct {
	Content   messageContent `json:"content"`
	Direction string         `json:"direction"`
}

type messageContent struct {
	Value string `json:"value"`
	Type  string `json:"_type"`
}

// dataEnvelope is Dixa's standard {"data": ...} response wrapper.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}
