package csat

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ignite/dixa-voyado-bridge/internal/eventlog"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/background"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
	"github.com/ignite/dixa-voyado-bridge/internal/points"
	"github.com/ignite/dixa-voyado-bridge/internal/voyado"
)

// CRM is the slice of the loyalty-CRM client this pipeline needs.
// Satisfied by *voyado.Client.
type CRM interface {
	FindContactID(ctx context.Context, identifier string, kind voyado.IdentifierKind) (string, bool)
	FindPointAccount(ctx context.Context, contactID string) (string, bool)
	PostPointTransaction(ctx context.Context, accountID string, amount int, description string) (map[string]any, error)
	PostInteraction(ctx context.Context, contactID, schemaID string, payload map[string]any) (map[string]any, error)
}

// Service orchestrates the CSAT pipeline.
type Service struct {
	crm      CRM
	sink     eventlog.Sink
	runner   *background.Runner
	schemaID string
}

// NewService creates the CSAT service. schemaID tags the interaction
// records logged for each award.
func NewService(crm CRM, sink eventlog.Sink, runner *background.Runner, schemaID string) *Service {
	return &Service{crm: crm, sink: sink, runner: runner, schemaID: schemaID}
}

// Process handles one rating webhook delivery. It validates the event,
// publishes it to the observation sink, computes the award, hands the
// outbound call chain to the background runner, and returns the
// synchronous response. Everything after the return is best-effort.
func (s *Service) Process(ctx context.Context, raw json.RawMessage) (Result, error) {
	var event RatingEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidEventType, err)
	}
	if event.EventFQN != EventFQNRated {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidEventType, event.EventFQN)
	}

	if err := s.sink.Publish(ctx, raw); err != nil {
		// Diagnostic-only, never blocks the pipeline.
		logger.Warn("publishing rating event failed", "error", err.Error())
	}

	score := event.Data.Score
	award := points.Calculate(score)

	logger.Info("csat rating received",
		"score", score,
		"points", award,
		"requester_email", event.Data.Conversation.Requester.Email,
		"event_id", event.EventID)

	s.runner.Go("csat-award", func(ctx context.Context) error {
		return s.award(ctx, event, award)
	})

	return Result{
		Message:       "CSAT webhook processed successfully",
		Score:         score,
		PointsAwarded: award,
		ContactEmail:  event.Data.Conversation.Requester.Email,
	}, nil
}

// award runs the post-response continuation: contact lookup, account
// lookup, transaction post, interaction post. A not-found at either
// lookup is a normal terminal outcome, not an error.
func (s *Service) award(ctx context.Context, event RatingEvent, award int) error {
	email := event.Data.Conversation.Requester.Email

	contactID, found := s.crm.FindContactID(ctx, email, voyado.ByEmail)
	if !found {
		logger.Warn("no CRM contact for rating requester", "requester_email", email, "event_id", event.EventID)
		return nil
	}

	accountID, found := s.crm.FindPointAccount(ctx, contactID)
	if !found {
		// No implicit account creation: an award without an existing
		// point account is skipped, not posted against the contact id.
		logger.Warn("no point account, award skipped", "contact_id", contactID, "event_id", event.EventID)
		return nil
	}

	description := fmt.Sprintf("CSAT feedback - Score: %d/5 - %s", event.Data.Score, event.Data.Comment)
	if _, err := s.crm.PostPointTransaction(ctx, accountID, award, description); err != nil {
		return fmt.Errorf("awarding %d points to account %s: %w", award, accountID, err)
	}

	payload := map[string]any{
		"csatScore":      event.Data.Score,
		"conversationId": conversationRef(event),
		"supportChannel": supportChannel(event),
	}
	if _, err := s.crm.PostInteraction(ctx, contactID, s.schemaID, payload); err != nil {
		return fmt.Errorf("logging CSAT interaction for contact %s: %w", contactID, err)
	}
	return nil
}

// conversationRef picks the interaction's conversation identifier: the
// remote conversation id when it parses as an integer, else the event
// id, else a timestamp.
func conversationRef(event RatingEvent) any {
	if n, err := strconv.Atoi(string(event.Data.Conversation.CSID)); err == nil {
		return n
	}
	if event.EventID != "" {
		return event.EventID
	}
	return time.Now().Unix()
}

func supportChannel(event RatingEvent) string {
	if event.Data.Conversation.Channel == "" {
		return "Other"
	}
	return event.Data.Conversation.Channel
}
