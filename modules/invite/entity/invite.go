package entity

import (
	"go-events-api/core/records"
)

// StatusNew is the only status written at creation; downstream delivery
// tooling advances it.
const StatusNew = "New"

// Invite is a pending reminder notification for one subscriber of one event
// occurrence. SentTime carries the event's reminder instant, not the time the
// row was written.
type Invite struct {
	RecordID string `json:"id"`

	Email          string   `json:"email"`
	EventLink      []string `json:"eventLink,omitempty"`
	SubscriberLink []string `json:"subscriberLink,omitempty"`
	Status         string   `json:"status"`
	SentTime       string   `json:"sentTime"` // UTC RFC-3339
	Message        string   `json:"message,omitempty"`
}

func FromRecord(rec records.Record) *Invite {
	f := rec.Fields
	return &Invite{
		RecordID:       rec.ID,
		Email:          f.Str("email"),
		EventLink:      f.StrSlice("eventLink"),
		SubscriberLink: f.StrSlice("subscriberLink"),
		Status:         f.Str("status"),
		SentTime:       f.Str("sentTime"),
		Message:        f.Str("message"),
	}
}

func (i *Invite) Fields() records.Fields {
	f := records.Fields{
		"email":    i.Email,
		"status":   i.Status,
		"sentTime": i.SentTime,
	}
	if len(i.EventLink) > 0 {
		f["eventLink"] = i.EventLink
	}
	if len(i.SubscriberLink) > 0 {
		f["subscriberLink"] = i.SubscriberLink
	}
	if i.Message != "" {
		f["message"] = i.Message
	}
	return f
}
