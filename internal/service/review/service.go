package review

import (
	"context"
	"fmt"

	"github.com/ignite/dixa-voyado-bridge/internal/dixa"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
	"github.com/ignite/dixa-voyado-bridge/internal/voyado"
)

// CRM is the slice of the loyalty-CRM client this pipeline needs for
// enrichment. Satisfied by *voyado.Client.
type CRM interface {
	FindInteractionsBySchema(ctx context.Context, contactID, schemaID string) []voyado.InteractionSummary
	FetchInteractionDetail(ctx context.Context, interactionID string) (*voyado.InteractionDetail, bool)
}

// Inbox is the slice of the support-inbox client this pipeline needs.
type Inbox interface {
	GetOrCreateEndUser(ctx context.Context, contact dixa.Contact) (*dixa.EndUser, error)
	CreateConversation(ctx context.Context, endUserID, emailIntegrationID string, enrichment map[string]any) (*dixa.Conversation, error)
}

// InboxFactory builds an Inbox for one request. tokenOverride is empty
// when the request carries no credential of its own.
type InboxFactory func(tokenOverride string) Inbox

// Service orchestrates the review pipeline.
type Service struct {
	crm      CRM
	newInbox InboxFactory

	defaultToken         string
	defaultIntegrationID string
	schemaID             string
}

// NewService creates the review service. schemaID is the interaction
// schema queried for enrichment when the event does not name one.
func NewService(crm CRM, newInbox InboxFactory, defaultToken, defaultIntegrationID, schemaID string) *Service {
	return &Service{
		crm:                  crm,
		newInbox:             newInbox,
		defaultToken:         defaultToken,
		defaultIntegrationID: defaultIntegrationID,
		schemaID:             schemaID,
	}
}

// Process handles one review webhook delivery synchronously. Upstream
// write failures propagate with their status attached so the handler
// can map them onto the local response.
func (s *Service) Process(ctx context.Context, event Event) (Result, error) {
	if !event.HasIdentifier() {
		return Result{}, ErrMissingIdentifier
	}

	token := event.DixaAPIToken
	if token == "" {
		token = s.defaultToken
	}
	if token == "" {
		return Result{}, ErrMissingToken
	}
	integrationID := event.DixaEmailIntegrationID
	if integrationID == "" {
		integrationID = s.defaultIntegrationID
	}

	enrichment := s.enrich(ctx, event)

	contact := dixa.Contact{
		Email:      event.Email,
		Phone:      event.Phone,
		ExternalID: event.ContactID,
	}

	inbox := s.newInbox(event.DixaAPIToken)
	user, err := inbox.GetOrCreateEndUser(ctx, contact)
	if err != nil {
		return Result{}, fmt.Errorf("resolving end user: %w", err)
	}

	conv, err := inbox.CreateConversation(ctx, user.ID, integrationID, enrichment)
	if err != nil {
		return Result{}, fmt.Errorf("creating conversation: %w", err)
	}

	logger.Info("review conversation created",
		"conversation_id", conv.ID,
		"end_user_id", user.ID,
		"contact_id", event.ContactID)

	return Result{
		Message:         "Review webhook processed successfully",
		ConversationID:  conv.ID,
		EndUserID:       user.ID,
		ContactData:     contact,
		InteractionData: enrichment,
	}, nil
}

// enrich gathers interaction data for the conversation. Starts from the
// rating alone; a contact id lets us pull the most recent matching
// interaction and merge its payload. Every miss here is non-fatal.
func (s *Service) enrich(ctx context.Context, event Event) map[string]any {
	enrichment := map[string]any{"rating": event.Rating}
	if event.ContactID == "" {
		return enrichment
	}

	interactionID := event.InteractionID
	if interactionID == "" {
		schemaID := event.SchemaID
		if schemaID == "" {
			schemaID = s.schemaID
		}
		summaries := s.crm.FindInteractionsBySchema(ctx, event.ContactID, schemaID)
		if len(summaries) == 0 {
			return enrichment
		}
		// Remote ordering is most-recent-first.
		interactionID = summaries[0].ID
	}

	detail, found := s.crm.FetchInteractionDetail(ctx, interactionID)
	if !found {
		return enrichment
	}
	for k, v := range detail.Payload {
		enrichment[k] = v
	}
	enrichment["interactionId"] = detail.ID
	return enrichment
}
