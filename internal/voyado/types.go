package voyado

import (
	"encoding/json"
	"fmt"
)

// APIError is returned when a Voyado write call fails. It carries the
// upstream HTTP status so handlers can map it onto the local response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("voyado API error (status %d): %s", e.StatusCode, e.Body)
}

// UpstreamStatus returns the HTTP status of the failed upstream call.
func (e *APIError) UpstreamStatus() int { return e.StatusCode }

// contactIDResponse decodes the two shapes the contact lookup endpoint
// is known to return: a bare JSON string, or an object with an "id"
// field. Anything else decodes to the empty ID, which callers treat as
// not-found.
type contactIDResponse struct {
	ID string
}

func (c *contactIDResponse) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.ID = s
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		c.ID = obj.ID
		return nil
	}
	c.ID = ""
	return nil
}

// PointAccount is a loyalty ledger account attached to a contact.
type PointAccount struct {
	ID string `json:"id"`
}

// pointAccountList decodes the account collection, which API versions
// return either as a bare array or wrapped in an "items" field.
type pointAccountList struct {
	Accounts []PointAccount
}

func (l *pointAccountList) UnmarshalJSON(data []byte) error {
	var bare []PointAccount
	if err := json.Unmarshal(data, &bare); err == nil {
		l.Accounts = bare
		return nil
	}
	var wrapped struct {
		Items []PointAccount `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	l.Accounts = wrapped.Items
	return nil
}

// PointTransaction is the write-once payload for a point award.
// TransactionID is a fresh uuid per attempt; ValidTo is always null
// (awards do not expire from our side).
type PointTransaction struct {
	AccountID       string  `json:"accountId"`
	TransactionID   string  `json:"transactionId"`
	TransactionType string  `json:"transactionType"`
	Amount          int     `json:"amount"`
	Description     string  `json:"description"`
	Source          string  `json:"source"`
	TransactionDate string  `json:"transactionDate"`
	ValidFrom       string  `json:"validFrom"`
	ValidTo         *string `json:"validTo"`
}

// Interaction is the write payload for a schema-tagged contact log entry.
type Interaction struct {
	ContactID   string         `json:"contactId"`
	SchemaID    string         `json:"schemaId"`
	CreatedDate string         `json:"createdDate"`
	Payload     map[string]any `json:"payload"`
}

// InteractionSummary is one entry of an interaction listing.
type InteractionSummary struct {
	ID          string `json:"id"`
	SchemaID    string `json:"schemaId"`
	CreatedDate string `json:"createdDate"`
}

// interactionList mirrors pointAccountList: bare array or "items".
type interactionList struct {
	Items []InteractionSummary
}

func (l *interactionList) UnmarshalJSON(data []byte) error {
	var bare []InteractionSummary
	if err := json.Unmarshal(data, &bare); err == nil {
		l.Items = bare
		return nil
	}
	var wrapped struct {
		Items []InteractionSummary `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	l.Items = wrapped.Items
	return nil
}

// InteractionDetail is the full record of a single interaction.
type InteractionDetail struct {
	ID          string         `json:"id"`
	ContactID   string         `json:"contactId"`
	SchemaID    string         `json:"schemaId"`
	CreatedDate string         `json:"createdDate"`
	Payload     map[string]any `json:"payload"`
}
