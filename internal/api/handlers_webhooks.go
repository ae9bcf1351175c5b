package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ignite/dixa-voyado-bridge/internal/pkg/httputil"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
	"github.com/ignite/dixa-voyado-bridge/internal/service/csat"
	"github.com/ignite/dixa-voyado-bridge/internal/service/review"
)

// HandleCSATWebhook receives CONVERSATION_RATED events from Dixa.
// The response carries the computed award; the actual CRM writes run
// after the response as a background continuation.
func (h *Handlers) HandleCSATWebhook(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.BadRequest(w, "failed to read body")
		return
	}

	result, err := h.csatService.Process(r.Context(), json.RawMessage(raw))
	if err != nil {
		if errors.Is(err, csat.ErrInvalidEventType) {
			httputil.BadRequest(w, "Invalid event type")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, result)
}

// HandleReviewWebhook receives product-review events from Voyado and
// opens a Dixa conversation for them. Fully synchronous.
func (h *Handlers) HandleReviewWebhook(w http.ResponseWriter, r *http.Request) {
	var event review.Event
	if !httputil.Decode(w, r, &event) {
		return
	}
	h.processReview(w, r, event)
}

func (h *Handlers) processReview(w http.ResponseWriter, r *http.Request, event review.Event) {
	result, err := h.reviewService.Process(r.Context(), event)
	if err != nil {
		if errors.Is(err, review.ErrMissingIdentifier) || errors.Is(err, review.ErrMissingToken) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.UpstreamError(w, err)
		return
	}

	httputil.OK(w, result)
}

// pointsBalanceEvent is Voyado's point.balance.updated notification.
type pointsBalanceEvent struct {
	EventID   string `json:"eventId"`
	EventType string `json:"eventType"`
	Payload   struct {
		AccountID      json.Number `json:"accountId"`
		ContactID      string      `json:"contactId"`
		Balance        float64     `json:"balance"`
		BalanceExpires string      `json:"balanceExpires"`
		DefinitionID   json.Number `json:"definitionId"`
	} `json:"payload"`
}

// HandlePointsBalanceWebhook acknowledges Voyado balance notifications.
// Nothing downstream consumes them yet; the handler exists so the
// Voyado subscription can be registered and observed.
func (h *Handlers) HandlePointsBalanceWebhook(w http.ResponseWriter, r *http.Request) {
	var event pointsBalanceEvent
	if !httputil.Decode(w, r, &event) {
		return
	}
	if event.EventType != "point.balance.updated" {
		httputil.BadRequest(w, "Invalid event type")
		return
	}

	logger.Info("voyado points balance updated",
		"account_id", event.Payload.AccountID.String(),
		"contact_id", event.Payload.ContactID,
		"balance", event.Payload.Balance,
		"event_id", event.EventID)

	httputil.OK(w, map[string]any{
		"message":   "Voyado points webhook processed successfully",
		"accountId": event.Payload.AccountID,
		"balance":   event.Payload.Balance,
	})
}

// GetLatestCSAT returns the most recently received rating event.
func (h *Handlers) GetLatestCSAT(w http.ResponseWriter, r *http.Request) {
	event, ok, err := h.sink.Latest(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if !ok {
		httputil.NotFound(w, "No CSAT events received yet")
		return
	}

	httputil.OK(w, map[string]any{
		"message": "Latest CSAT event",
		"event":   event,
	})
}
