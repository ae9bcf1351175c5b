package csat

import (
	"encoding/json"
	"errors"
)

// EventFQNRated is the only event type this pipeline accepts.
const EventFQNRated = "CONVERSATION_RATED"

// ErrInvalidEventType is returned for webhooks that are not a
// CONVERSATION_RATED event. Handlers map it to a 400.
var ErrInvalidEventType = errors.New("invalid event type")

// RatingEvent is the inbound CSAT webhook body. Field names and nesting
// are the support inbox's contract.
type RatingEvent struct {
	EventID        string          `json:"event_id"`
	EventFQN       string          `json:"event_fqn"`
	EventVersion   string          `json:"event_version,omitempty"`
	EventTimestamp string          `json:"event_timestamp,omitempty"`
	Data           RatingEventData `json:"data"`
}

// RatingEventData carries the score and the rated conversation.
type RatingEventData struct {
	Score        int                `json:"score"`
	Comment      string             `json:"comment"`
	Type         string             `json:"type,omitempty"`
	Conversation RatingConversation `json:"conversation"`
}

// RatingConversation identifies the rated conversation and its requester.
type RatingConversation struct {
	CSID      ConversationID  `json:"csid,omitempty"`
	Channel   string          `json:"channel,omitempty"`
	Subject   string          `json:"subject,omitempty"`
	Requester RatingRequester `json:"requester"`
}

// RatingRequester is the customer who submitted the rating.
type RatingRequester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ConversationID tolerates both numeric and string JSON encodings of
// the remote conversation id.
type ConversationID string

func (c *ConversationID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ConversationID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*c = ConversationID(n.String())
		return nil
	}
	*c = ""
	return nil
}

// Result is the synchronous webhook response body.
type Result struct {
	Message       string `json:"message"`
	Score         int    `json:"score"`
	PointsAwarded int    `json:"pointsAwarded"`
	ContactEmail  string `json:"contactEmail"`
}

// SupportChannels is the fixed channel enum accepted by the diagnostic
// interaction route. The pipeline itself defaults missing channels to
// "Other" without validating.
var SupportChannels = []string{"Chat", "Email", "Phone", "Social", "Other"}

// ValidSupportChannel reports whether s is one of the known channels.
func ValidSupportChannel(s string) bool {
	for _, c := range SupportChannels {
		if s == c {
			return true
		}
	}
	return false
}
