package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go-events-api/core/errors"
	"go-events-api/core/payments"
	"go-events-api/core/records"
	"go-events-api/core/recurrence"
	"go-events-api/modules/event/dto"
	"go-events-api/modules/event/repository"
	userEntity "go-events-api/modules/user/entity"
)

type fakeStore struct {
	records []records.Record
	nextID  int
}

func (s *fakeStore) Select(_ context.Context, _ string, opts records.SelectOptions) ([]records.Record, error) {
	if opts.Filter == nil {
		return s.records, nil
	}
	formula := opts.Filter.Formula()
	var out []records.Record
	for _, rec := range s.records {
		if id := rec.Fields.Str("eventId"); id != "" && strings.Contains(formula, `"`+id+`"`) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, _ string, fields []records.Fields) ([]records.Record, error) {
	var out []records.Record
	for _, f := range fields {
		s.nextID++
		rec := records.Record{ID: fmt.Sprintf("rec%d", s.nextID), Fields: f}
		s.records = append(s.records, rec)
		out = append(out, rec)
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, _ string, updates []records.Update) ([]records.Record, error) {
	var out []records.Record
	for _, u := range updates {
		for i := range s.records {
			if s.records[i].ID != u.ID {
				continue
			}
			for k, v := range u.Fields {
				s.records[i].Fields[k] = v
			}
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

type fakeUsers struct {
	user *userEntity.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*userEntity.User, error) {
	if f.user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found: "+email, nil)
	}
	return f.user, nil
}

func (f *fakeUsers) Create(_ context.Context, _ records.Fields) (*userEntity.User, error) {
	return f.user, nil
}

func (f *fakeUsers) UpdateFields(_ context.Context, _ string, _ records.Fields) error {
	return nil
}

type fakeProvisioner struct {
	priceParams []payments.CreatePriceParams
	linkParams  []payments.CreatePaymentLinkParams
}

func (f *fakeProvisioner) CreatePrice(_ context.Context, _ string, params payments.CreatePriceParams) (*payments.Price, error) {
	f.priceParams = append(f.priceParams, params)
	return &payments.Price{ID: "price_1", Product: payments.ProductRef{ID: "prod_1"}}, nil
}

func (f *fakeProvisioner) CreatePaymentLink(_ context.Context, _ string, params payments.CreatePaymentLinkParams) (*payments.PaymentLink, error) {
	f.linkParams = append(f.linkParams, params)
	return &payments.PaymentLink{ID: "plink_1", URL: "https://pay.example.com/plink_1"}, nil
}

func newTestService(store *fakeStore, pay *fakeProvisioner, key string) *EventService {
	users := &fakeUsers{user: &userEntity.User{
		RecordID:          "rec_owner",
		Email:             "owner@example.com",
		PaymentsSecretKey: key,
	}}
	return NewEventService(repository.NewEventRepository(store), users, pay)
}

func TestCreateOneTimeEvent(t *testing.T) {
	store := &fakeStore{}
	pay := &fakeProvisioner{}
	svc := newTestService(store, pay, "sk_test")

	resp, err := svc.Create(context.Background(), "owner@example.com", &dto.CreateEventRequest{
		Name:          "Summer Gala",
		EventTimeZone: "America/New_York",
		EventDate:     "2025-06-10T19:00",
		ReminderTime:  "2025-06-09T19:00",
		TicketPrice:   49.99,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.EventID == "" {
		t.Error("expected a generated event id")
	}
	if resp.EventDate != "2025-06-10T23:00:00Z" {
		t.Errorf("eventDate = %q, want the UTC conversion of 19:00 New York", resp.EventDate)
	}
	if resp.ReminderTime != "2025-06-09T23:00:00Z" {
		t.Errorf("reminderTime = %q, want 2025-06-09T23:00:00Z", resp.ReminderTime)
	}
	if resp.InviteStatus != "New" {
		t.Errorf("inviteStatus = %q, want New", resp.InviteStatus)
	}

	if len(pay.priceParams) != 1 {
		t.Fatalf("created %d prices, want 1", len(pay.priceParams))
	}
	if pay.priceParams[0].UnitAmount != 4999 {
		t.Errorf("unit amount = %d cents, want 4999", pay.priceParams[0].UnitAmount)
	}
	if pay.priceParams[0].Recurring {
		t.Error("one-time event must not create a recurring price")
	}
	if len(pay.linkParams) != 1 || pay.linkParams[0].PriceID != "price_1" {
		t.Fatalf("link params = %+v", pay.linkParams)
	}
	if !strings.Contains(pay.linkParams[0].RedirectURL, "summer-gala") {
		t.Errorf("redirect URL %q does not carry the event slug", pay.linkParams[0].RedirectURL)
	}

	// Provider ids are written back to the record.
	if got := store.records[0].Fields.Str("productId"); got != "prod_1" {
		t.Errorf("stored productId = %q, want prod_1", got)
	}
}

func TestCreateRecurringEventDerivesRule(t *testing.T) {
	store := &fakeStore{}
	pay := &fakeProvisioner{}
	svc := newTestService(store, pay, "sk_test")

	resp, err := svc.Create(context.Background(), "owner@example.com", &dto.CreateEventRequest{
		Name:          "Weekly Yoga",
		EventTimeZone: "Europe/Berlin",
		IsRecurring:   true,
		TicketPrice:   15,
		Recurrence: &dto.RecurrenceInput{
			Frequency: "weekly",
			Interval:  1,
			Weekdays:  []string{"monday", "thursday"},
			TimeOfDay: "18:30",
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.RecurrenceInterval == "" {
		t.Fatal("expected a stored recurrence rule")
	}

	rule, err := recurrence.Parse(resp.RecurrenceInterval)
	if err != nil {
		t.Fatalf("stored rule does not parse: %v", err)
	}
	if got := rule.DTStart().UTC().Format("2006-01-02T15:04:05Z"); got != resp.EventDate {
		t.Errorf("eventDate %q != rule anchor %q", resp.EventDate, got)
	}
	if len(pay.priceParams) != 1 || !pay.priceParams[0].Recurring {
		t.Errorf("recurring event must create a recurring price, got %+v", pay.priceParams)
	}
}

func TestCreateRecurringWithoutSpecFails(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeProvisioner{}, "sk_test")
	_, err := svc.Create(context.Background(), "owner@example.com", &dto.CreateEventRequest{
		Name:          "Broken",
		EventTimeZone: "UTC",
		IsRecurring:   true,
	})
	if !errors.IsCode(err, errors.ErrInvalidRecurrence) {
		t.Errorf("error = %v, want ErrInvalidRecurrence", err)
	}
}

func TestCreateSkipsProvisioningWithoutKey(t *testing.T) {
	pay := &fakeProvisioner{}
	svc := newTestService(&fakeStore{}, pay, "")

	_, err := svc.Create(context.Background(), "owner@example.com", &dto.CreateEventRequest{
		Name:          "Free Meetup",
		EventTimeZone: "UTC",
		EventDate:     "2025-06-10T19:00",
		TicketPrice:   10,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(pay.priceParams) != 0 {
		t.Error("provisioning must be skipped without a payments key")
	}
}

func TestCreateSkipsProvisioningForFreeEvents(t *testing.T) {
	pay := &fakeProvisioner{}
	svc := newTestService(&fakeStore{}, pay, "sk_test")

	_, err := svc.Create(context.Background(), "owner@example.com", &dto.CreateEventRequest{
		Name:          "Free Meetup",
		EventTimeZone: "UTC",
		EventDate:     "2025-06-10T19:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(pay.priceParams) != 0 {
		t.Error("provisioning must be skipped for free events")
	}
}

func TestUpdateRebuildsRecurrenceRule(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeProvisioner{}, "")

	created, err := svc.Create(context.Background(), "owner@example.com", &dto.CreateEventRequest{
		Name:          "Book Club",
		EventTimeZone: "UTC",
		IsRecurring:   true,
		Recurrence:    &dto.RecurrenceInput{Frequency: "weekly", Interval: 1, Weekdays: []string{"tuesday"}, TimeOfDay: "19:00"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), "owner@example.com", created.EventID, &dto.UpdateEventRequest{
		Recurrence: &dto.RecurrenceInput{
			Frequency:      "monthly",
			Interval:       1,
			MonthlyMode:    "weekday",
			Ordinal:        2,
			OrdinalWeekday: "tuesday",
			TimeOfDay:      "19:00",
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.RecurrenceInterval == created.RecurrenceInterval {
		t.Error("expected the rule to be rebuilt")
	}
	if !strings.Contains(updated.RecurrenceInterval, "MONTHLY") {
		t.Errorf("rule = %q, want a monthly rule", updated.RecurrenceInterval)
	}
	if _, err := recurrence.Parse(updated.RecurrenceInterval); err != nil {
		t.Errorf("rebuilt rule does not parse: %v", err)
	}
}

func TestGetRejectsForeignEvent(t *testing.T) {
	store := &fakeStore{}
	store.records = append(store.records, records.Record{
		ID: "rec1",
		Fields: records.Fields{
			"eventId":     "evt_foreign",
			"name":        "Not Yours",
			"emailLookup": []any{"someone-else@example.com"},
		},
	})
	svc := newTestService(store, &fakeProvisioner{}, "")

	_, err := svc.Get(context.Background(), "owner@example.com", "evt_foreign")
	if !errors.IsCode(err, errors.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}
