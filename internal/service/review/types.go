package review

import (
	"errors"

	"github.com/ignite/dixa-voyado-bridge/internal/dixa"
)

// Sentinel errors for the review pipeline. Handlers map both to a 400.
var (
	ErrMissingIdentifier = errors.New("at least one of contactId, email or phone is required")
	ErrMissingToken      = errors.New("no Dixa API token configured for this request")
)

// Event is the inbound review webhook body. At least one of ContactID,
// Email or Phone must be present; that is the only cross-field
// invariant in the system. Credentials may be overridden per request.
type Event struct {
	ContactID     string  `json:"contactId,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Rating        float64 `json:"rating"`
	SchemaID      string  `json:"schemaId,omitempty"`
	InteractionID string  `json:"interactionId,omitempty"`

	DixaAPIToken           string `json:"dixaApiToken,omitempty"`
	DixaEmailIntegrationID string `json:"dixaEmailIntegrationId,omitempty"`
}

// HasIdentifier reports whether the event can be tied to a customer.
func (e Event) HasIdentifier() bool {
	return e.ContactID != "" || e.Email != "" || e.Phone != ""
}

// Result is the synchronous webhook response body.
type Result struct {
	Message         string         `json:"message"`
	ConversationID  string         `json:"conversationId"`
	EndUserID       string         `json:"endUserId"`
	ContactData     dixa.Contact   `json:"contactData"`
	InteractionData map[string]any `json:"interactionData"`
}
