package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/dixa-voyado-bridge/internal/dixa"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/httputil"
	"github.com/ignite/dixa-voyado-bridge/internal/service/csat"
	"github.com/ignite/dixa-voyado-bridge/internal/service/review"
	"github.com/ignite/dixa-voyado-bridge/internal/voyado"
)

// TestLookup exercises the Voyado contact lookup in isolation.
func (h *Handlers) TestLookup(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "type")
	identifier := chi.URLParam(r, "identifier")

	if kind != "email" && kind != "phone" {
		httputil.BadRequest(w, "Type must be 'email' or 'phone'")
		return
	}

	idKind := voyado.ByEmail
	if kind == "phone" {
		idKind = voyado.ByPhone
	}

	contactID, found := h.crm.FindContactID(r.Context(), identifier, idKind)
	if !found {
		httputil.JSON(w, http.StatusNotFound, map[string]any{
			"message":    "Contact not found",
			"type":       kind,
			"identifier": identifier,
		})
		return
	}

	httputil.OK(w, map[string]any{
		"message":    "Contact found",
		"type":       kind,
		"identifier": identifier,
		"contactId":  contactID,
	})
}

type testAddPointsRequest struct {
	ContactID   string `json:"contactId"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// TestAddPoints exercises the account-resolution-and-award chain for a
// known contact id, bypassing the webhook validation.
func (h *Handlers) TestAddPoints(w http.ResponseWriter, r *http.Request) {
	var req testAddPointsRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ContactID == "" || req.Points == 0 {
		httputil.BadRequest(w, "Missing required fields: contactId and points")
		return
	}

	accountID, found := h.crm.FindPointAccount(r.Context(), req.ContactID)
	if !found {
		httputil.BadRequest(w, fmt.Sprintf(
			"No point account found for contact: %s. Points cannot be added without an existing point account.",
			req.ContactID))
		return
	}

	description := req.Description
	if description == "" {
		description = "Test points"
	}

	result, err := h.crm.PostPointTransaction(r.Context(), accountID, req.Points, description)
	if err != nil {
		httputil.UpstreamError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Successfully added %d points using point account %s", req.Points, accountID),
		"result":  result,
	})
}

type testAddInteractionRequest struct {
	ContactID      string `json:"contactId"`
	SchemaID       string `json:"schemaId"`
	CSATScore      int    `json:"csatScore"`
	ConversationID string `json:"conversationId"`
	SupportChannel string `json:"supportChannel"`
}

// TestAddInteraction posts a CSAT interaction record directly. Unlike
// the pipeline, the channel is validated here so integration mistakes
// show up during setup instead of as rejected CRM writes.
func (h *Handlers) TestAddInteraction(w http.ResponseWriter, r *http.Request) {
	var req testAddInteractionRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ContactID == "" {
		httputil.BadRequest(w, "Missing required field: contactId")
		return
	}

	channel := req.SupportChannel
	if channel == "" {
		channel = "Other"
	}
	if !csat.ValidSupportChannel(channel) {
		httputil.BadRequest(w, fmt.Sprintf(
			"Invalid supportChannel %q: must be one of %v", req.SupportChannel, csat.SupportChannels))
		return
	}

	schemaID := req.SchemaID
	if schemaID == "" {
		schemaID = h.csatSchemaID
	}

	payload := map[string]any{
		"csatScore":      req.CSATScore,
		"conversationId": req.ConversationID,
		"supportChannel": channel,
	}

	result, err := h.crm.PostInteraction(r.Context(), req.ContactID, schemaID, payload)
	if err != nil {
		httputil.UpstreamError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Interaction posted for contact %s", req.ContactID),
		"result":  result,
	})
}

// TestReview runs the review pipeline outside the webhook path. Same
// semantics, same response shape.
func (h *Handlers) TestReview(w http.ResponseWriter, r *http.Request) {
	var event review.Event
	if !httputil.Decode(w, r, &event) {
		return
	}
	h.processReview(w, r, event)
}

// TestEndUserLookup exercises the Dixa end-user lookup via query params.
func (h *Handlers) TestEndUserLookup(w http.ResponseWriter, r *http.Request) {
	contact := dixa.Contact{
		Email:      r.URL.Query().Get("email"),
		Phone:      r.URL.Query().Get("phone"),
		ExternalID: r.URL.Query().Get("contactId"),
	}
	if !contact.HasIdentifier() {
		httputil.BadRequest(w, "Provide at least one of email, phone or contactId")
		return
	}

	user, found := h.inbox.FindEndUser(r.Context(), contact)
	if !found {
		httputil.JSON(w, http.StatusNotFound, map[string]any{
			"message": "End user not found",
			"contact": contact,
		})
		return
	}

	httputil.OK(w, map[string]any{
		"message": "End user found",
		"endUser": user,
	})
}

// TestEndUserCreate exercises Dixa end-user creation.
func (h *Handlers) TestEndUserCreate(w http.ResponseWriter, r *http.Request) {
	var contact dixa.Contact
	if !httputil.Decode(w, r, &contact) {
		return
	}
	if !contact.HasIdentifier() {
		httputil.BadRequest(w, "Provide at least one of email, phone or externalId")
		return
	}

	user, err := h.inbox.CreateEndUser(r.Context(), contact)
	if err != nil {
		httputil.UpstreamError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"message": "End user created",
		"endUser": user,
	})
}
