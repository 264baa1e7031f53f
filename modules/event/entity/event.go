package entity

import (
	"go-events-api/core/records"
)

// InviteStatus is the reminder pipeline state of an event. It only moves
// forward: New -> Scheduled -> Created. Created is terminal for the cycle.
type InviteStatus string

const (
	InviteStatusNew       InviteStatus = "New"
	InviteStatusScheduled InviteStatus = "Scheduled"
	InviteStatusCreated   InviteStatus = "Created"
)

// Event is a ticketed event as persisted in the records store. RecordID is
// the storage id; EventID is the stable public identifier referenced by
// subscribers and filter formulas.
type Event struct {
	RecordID string `json:"id"`

	EventID     string `json:"eventId"`
	Name        string `json:"name"`
	Description string `json:"description"`

	EventDate          string  `json:"eventDate"` // UTC RFC-3339
	IsRecurring        bool    `json:"isRecurring"`
	RecurrenceInterval string  `json:"recurrenceInterval"` // canonical rule string, empty if non-recurring
	EventTimeZone      string  `json:"eventTimeZone"`
	TicketPrice        float64 `json:"ticketPrice"`

	InviteStatus  InviteStatus `json:"inviteStatus"`
	ReminderTime  string       `json:"reminderTime,omitempty"` // UTC RFC-3339
	NextEvent     string       `json:"nextEvent,omitempty"`    // UTC RFC-3339, recurring only
	InviteMessage string       `json:"inviteMessage,omitempty"`

	PaymentLinkID  string `json:"paymentLinkId,omitempty"`
	PaymentLinkURL string `json:"paymentLinkUrl,omitempty"`
	PriceID        string `json:"priceId,omitempty"`
	ProductID      string `json:"productId,omitempty"`

	OwnerID    []string `json:"ownerId,omitempty"` // linked user record
	OwnerEmail string   `json:"ownerEmail,omitempty"`
}

// FromRecord maps a raw store record onto an Event.
func FromRecord(rec records.Record) *Event {
	f := rec.Fields
	return &Event{
		RecordID:           rec.ID,
		EventID:            f.Str("eventId"),
		Name:               f.Str("name"),
		Description:        f.Str("description"),
		EventDate:          f.Str("eventDate"),
		IsRecurring:        f.Bool("isRecurring"),
		RecurrenceInterval: f.Str("recurrenceInterval"),
		EventTimeZone:      f.Str("eventTimeZone"),
		TicketPrice:        f.Float("ticketPrice"),
		InviteStatus:       InviteStatus(f.Str("inviteStatus")),
		ReminderTime:       f.Str("reminderTime"),
		NextEvent:          f.Str("nextEvent"),
		InviteMessage:      f.Str("inviteMessage"),
		PaymentLinkID:      f.Str("paymentLinkId"),
		PaymentLinkURL:     f.Str("paymentLinkUrl"),
		PriceID:            f.Str("priceId"),
		ProductID:          f.Str("productId"),
		OwnerID:            f.StrSlice("ownerEmail"),
		OwnerEmail:         f.FirstStr("emailLookup"),
	}
}

// Fields renders the full persisted payload for a create.
func (e *Event) Fields() records.Fields {
	f := records.Fields{
		"eventId":            e.EventID,
		"name":               e.Name,
		"description":        e.Description,
		"eventDate":          e.EventDate,
		"isRecurring":        e.IsRecurring,
		"recurrenceInterval": e.RecurrenceInterval,
		"eventTimeZone":      e.EventTimeZone,
		"ticketPrice":        e.TicketPrice,
		"inviteStatus":       string(e.InviteStatus),
	}
	if e.InviteMessage != "" {
		f["inviteMessage"] = e.InviteMessage
	}
	if e.ReminderTime != "" {
		f["reminderTime"] = e.ReminderTime
	}
	if len(e.OwnerID) > 0 {
		f["ownerEmail"] = e.OwnerID
	}
	return f
}
