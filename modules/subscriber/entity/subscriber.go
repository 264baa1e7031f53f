package entity

import (
	"go-events-api/core/records"
)

// Status values for subscribers. Provider statuses other than "active" are
// passed through verbatim; cancellations surface as a status change, never a
// deletion.
const (
	StatusActive = "Active"
	StatusOneOff = "one_off"
)

// Subscriber is a local mirror of a payments-provider subscription or
// one-off checkout. SubscriptionID is the natural key: the provider's
// subscription id, or the checkout-session id for one-off purchases.
type Subscriber struct {
	RecordID string `json:"id"`

	SubscriptionID string `json:"subscriptionId"`
	PlanName       string `json:"planName"`
	ProductName    string `json:"productName"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Status         string `json:"status"`

	CreatedDate          string `json:"createdDate"`                    // UTC RFC-3339
	CurrentPeriodEndDate string `json:"currentPeriodEndDate,omitempty"` // empty for one-off

	EventLink []string `json:"eventLink,omitempty"` // linked event record
	OwnerID   []string `json:"ownerId,omitempty"`   // linked user record
}

func FromRecord(rec records.Record) *Subscriber {
	f := rec.Fields
	return &Subscriber{
		RecordID:             rec.ID,
		SubscriptionID:       f.Str("subscriptionId"),
		PlanName:             f.Str("planName"),
		ProductName:          f.Str("productName"),
		Name:                 f.Str("name"),
		Email:                f.Str("email"),
		Phone:                f.Str("phone"),
		Status:               f.Str("status"),
		CreatedDate:          f.Str("createdDate"),
		CurrentPeriodEndDate: f.Str("currentPeriodEndDate"),
		EventLink:            f.StrSlice("eventLink"),
		OwnerID:              f.StrSlice("ownerId"),
	}
}

// Fields renders the persisted payload. All fields are written on every
// upsert so repeated runs converge on the provider's current values.
func (s *Subscriber) Fields() records.Fields {
	f := records.Fields{
		"subscriptionId":       s.SubscriptionID,
		"planName":             s.PlanName,
		"productName":          s.ProductName,
		"name":                 s.Name,
		"email":                s.Email,
		"phone":                s.Phone,
		"status":               s.Status,
		"createdDate":          s.CreatedDate,
		"currentPeriodEndDate": s.CurrentPeriodEndDate,
	}
	if len(s.EventLink) > 0 {
		f["eventLink"] = s.EventLink
	}
	if len(s.OwnerID) > 0 {
		f["ownerId"] = s.OwnerID
	}
	return f
}
