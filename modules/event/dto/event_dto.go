package dto

// RecurrenceInput is the structured recurrence choice from the event form.
type RecurrenceInput struct {
	Frequency string   `json:"frequency"` // daily | weekly | monthly
	Interval  int      `json:"interval"`
	Weekdays  []string `json:"weekdays,omitempty"` // weekly: ["monday", ...]

	MonthlyMode    string `json:"monthlyMode,omitempty"` // date | weekday
	MonthDay       int    `json:"monthDay,omitempty"`
	Ordinal        int    `json:"ordinal,omitempty"` // 1..4, -1 for last
	OrdinalWeekday string `json:"ordinalWeekday,omitempty"`

	TimeOfDay string `json:"timeOfDay,omitempty"` // "HH:mm"

	EndMode string `json:"endMode,omitempty"` // never | count | until
	Count   int    `json:"count,omitempty"`
	Until   string `json:"until,omitempty"` // "YYYY-MM-DD"
}

type CreateEventRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	EventDate     string  `json:"eventDate,omitempty"` // local wall clock, one-time events
	EventTimeZone string  `json:"eventTimeZone"`
	TicketPrice   float64 `json:"ticketPrice"`
	InviteMessage string  `json:"inviteMessage,omitempty"`
	ReminderTime  string  `json:"reminderTime,omitempty"` // local wall clock

	IsRecurring bool             `json:"isRecurring"`
	Recurrence  *RecurrenceInput `json:"recurrence,omitempty"`
}

type UpdateEventRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	EventDate     *string  `json:"eventDate,omitempty"`
	EventTimeZone *string  `json:"eventTimeZone,omitempty"`
	TicketPrice   *float64 `json:"ticketPrice,omitempty"`
	InviteMessage *string  `json:"inviteMessage,omitempty"`
	ReminderTime  *string  `json:"reminderTime,omitempty"`

	Recurrence *RecurrenceInput `json:"recurrence,omitempty"`
}

type EventResponse struct {
	ID                 string   `json:"id"`
	EventID            string   `json:"eventId"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	EventDate          string   `json:"eventDate"`
	EventDateDisplay   string   `json:"eventDateDisplay,omitempty"`
	IsRecurring        bool     `json:"isRecurring"`
	RecurrenceInterval string   `json:"recurrenceInterval,omitempty"`
	EventTimeZone      string   `json:"eventTimeZone"`
	TicketPrice        float64  `json:"ticketPrice"`
	InviteStatus       string   `json:"inviteStatus"`
	ReminderTime       string   `json:"reminderTime,omitempty"`
	NextEvent          string   `json:"nextEvent,omitempty"`
	NextOccurrences    []string `json:"nextOccurrences,omitempty"`
	PaymentLinkURL     string   `json:"paymentLinkUrl,omitempty"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}
