package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-events-api/core/errors"
	"go-events-api/core/lock"
	eventEntity "go-events-api/modules/event/entity"
	inviteEntity "go-events-api/modules/invite/entity"
	subEntity "go-events-api/modules/subscriber/entity"
)

type fakeEvents struct {
	events []*eventEntity.Event
}

func (f *fakeEvents) ListPendingReminders(_ context.Context, _ string) ([]*eventEntity.Event, error) {
	var out []*eventEntity.Event
	for _, ev := range f.events {
		if ev.InviteStatus == eventEntity.InviteStatusNew || ev.InviteStatus == eventEntity.InviteStatusScheduled {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEvents) SetInviteStatus(_ context.Context, recordID string, status eventEntity.InviteStatus) error {
	for _, ev := range f.events {
		if ev.RecordID == recordID {
			ev.InviteStatus = status
			return nil
		}
	}
	return fmt.Errorf("no such event record %s", recordID)
}

type fakeSubscribers struct {
	byEvent map[string][]*subEntity.Subscriber
	err     map[string]error
}

func (f *fakeSubscribers) ListByEventID(_ context.Context, eventID string) ([]*subEntity.Subscriber, error) {
	if err := f.err[eventID]; err != nil {
		return nil, err
	}
	return f.byEvent[eventID], nil
}

type fakeInvites struct {
	created []*inviteEntity.Invite
	failOn  map[string]bool // keyed by invite email
}

func (f *fakeInvites) CreateBatch(_ context.Context, invites []*inviteEntity.Invite) ([]*inviteEntity.Invite, error) {
	for _, inv := range invites {
		if f.failOn[inv.Email] {
			return nil, fmt.Errorf("store rejected invite for %s", inv.Email)
		}
	}
	f.created = append(f.created, invites...)
	return invites, nil
}

type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, time.Duration) (func(), bool, error) {
	return nil, false, nil
}

func newTestService(events *fakeEvents, subs *fakeSubscribers, invites *fakeInvites, now time.Time) *ReminderService {
	svc := NewReminderService(events, subs, invites, lock.NewNoopLocker())
	svc.now = func() time.Time { return now }
	return svc
}

func pendingEvent(id string, status eventEntity.InviteStatus, reminderTime string) *eventEntity.Event {
	return &eventEntity.Event{
		RecordID:      "rec_" + id,
		EventID:       id,
		InviteStatus:  status,
		ReminderTime:  reminderTime,
		InviteMessage: "See you there!",
	}
}

func subscribers(n int) []*subEntity.Subscriber {
	out := make([]*subEntity.Subscriber, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &subEntity.Subscriber{
			RecordID: fmt.Sprintf("sub_rec_%d", i),
			Email:    fmt.Sprintf("guest%d@example.com", i),
		})
	}
	return out
}

func TestFarOutEventIsScheduledWithoutInvites(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ev := pendingEvent("evt_far", eventEntity.InviteStatusNew, now.Add(30*time.Hour).Format(time.RFC3339))
	events := &fakeEvents{events: []*eventEntity.Event{ev}}
	invites := &fakeInvites{}
	svc := newTestService(events, &fakeSubscribers{byEvent: map[string][]*subEntity.Subscriber{
		"evt_far": subscribers(3),
	}}, invites, now)

	result, err := svc.RunReminderJob(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("RunReminderJob failed: %v", err)
	}
	if result.Scheduled != 1 || result.Created != 0 || result.Invites != 0 {
		t.Errorf("result = %+v, want 1 scheduled, nothing created", result)
	}
	if ev.InviteStatus != eventEntity.InviteStatusScheduled {
		t.Errorf("event status = %s, want Scheduled", ev.InviteStatus)
	}
	if len(invites.created) != 0 {
		t.Errorf("created %d invites, want 0", len(invites.created))
	}
}

func TestFarOutScheduledEventIsLeftAlone(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ev := pendingEvent("evt_wait", eventEntity.InviteStatusScheduled, now.Add(48*time.Hour).Format(time.RFC3339))
	events := &fakeEvents{events: []*eventEntity.Event{ev}}
	svc := newTestService(events, &fakeSubscribers{}, &fakeInvites{}, now)

	result, err := svc.RunReminderJob(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("RunReminderJob failed: %v", err)
	}
	if result.Scheduled != 0 || result.Created != 0 {
		t.Errorf("result = %+v, want a no-op", result)
	}
	if ev.InviteStatus != eventEntity.InviteStatusScheduled {
		t.Errorf("event status = %s, want Scheduled unchanged", ev.InviteStatus)
	}
}

func TestDueEventFansOutInvites(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reminderTime := now.Add(10 * time.Hour).Format(time.RFC3339)
	ev := pendingEvent("evt_due", eventEntity.InviteStatusScheduled, reminderTime)
	events := &fakeEvents{events: []*eventEntity.Event{ev}}
	invites := &fakeInvites{}
	svc := newTestService(events, &fakeSubscribers{byEvent: map[string][]*subEntity.Subscriber{
		"evt_due": subscribers(3),
	}}, invites, now)

	result, err := svc.RunReminderJob(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("RunReminderJob failed: %v", err)
	}
	if result.Created != 1 || result.Invites != 3 {
		t.Errorf("result = %+v, want 1 created with 3 invites", result)
	}
	if ev.InviteStatus != eventEntity.InviteStatusCreated {
		t.Errorf("event status = %s, want Created", ev.InviteStatus)
	}
	for i, inv := range invites.created {
		if inv.Status != inviteEntity.StatusNew {
			t.Errorf("invite[%d] status = %q, want New", i, inv.Status)
		}
		if inv.SentTime != reminderTime {
			t.Errorf("invite[%d] sentTime = %q, want the event's reminder time", i, inv.SentTime)
		}
		if inv.Message != "See you there!" {
			t.Errorf("invite[%d] message = %q", i, inv.Message)
		}
		if len(inv.EventLink) != 1 || inv.EventLink[0] != ev.RecordID {
			t.Errorf("invite[%d] event link = %v", i, inv.EventLink)
		}
	}
}

func TestDueNewEventSkipsScheduledPhase(t *testing.T) {
	// An event created inside the window goes straight to Created.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ev := pendingEvent("evt_late", eventEntity.InviteStatusNew, now.Add(2*time.Hour).Format(time.RFC3339))
	events := &fakeEvents{events: []*eventEntity.Event{ev}}
	invites := &fakeInvites{}
	svc := newTestService(events, &fakeSubscribers{byEvent: map[string][]*subEntity.Subscriber{
		"evt_late": subscribers(1),
	}}, invites, now)

	if _, err := svc.RunReminderJob(context.Background(), "owner@example.com"); err != nil {
		t.Fatalf("RunReminderJob failed: %v", err)
	}
	if ev.InviteStatus != eventEntity.InviteStatusCreated {
		t.Errorf("event status = %s, want Created", ev.InviteStatus)
	}
}

func TestSecondRunIsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ev := pendingEvent("evt_once", eventEntity.InviteStatusNew, now.Add(5*time.Hour).Format(time.RFC3339))
	events := &fakeEvents{events: []*eventEntity.Event{ev}}
	invites := &fakeInvites{}
	svc := newTestService(events, &fakeSubscribers{byEvent: map[string][]*subEntity.Subscriber{
		"evt_once": subscribers(2),
	}}, invites, now)

	for i := 0; i < 2; i++ {
		if _, err := svc.RunReminderJob(context.Background(), "owner@example.com"); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}
	if len(invites.created) != 2 {
		t.Errorf("created %d invites across two runs, want 2", len(invites.created))
	}
}

func TestInvalidReminderTimeIsSkipped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	bad := pendingEvent("evt_bad", eventEntity.InviteStatusNew, "not-a-time")
	empty := pendingEvent("evt_empty", eventEntity.InviteStatusNew, "")
	events := &fakeEvents{events: []*eventEntity.Event{bad, empty}}
	svc := newTestService(events, &fakeSubscribers{}, &fakeInvites{}, now)

	result, err := svc.RunReminderJob(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("RunReminderJob failed: %v", err)
	}
	if result.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", result.Skipped)
	}
	if bad.InviteStatus != eventEntity.InviteStatusNew || empty.InviteStatus != eventEntity.InviteStatusNew {
		t.Error("events with unparseable reminder times must keep their status")
	}
}

func TestEventFailureDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	broken := pendingEvent("evt_broken", eventEntity.InviteStatusScheduled, now.Add(3*time.Hour).Format(time.RFC3339))
	healthy := pendingEvent("evt_ok", eventEntity.InviteStatusScheduled, now.Add(4*time.Hour).Format(time.RFC3339))
	events := &fakeEvents{events: []*eventEntity.Event{broken, healthy}}
	invites := &fakeInvites{failOn: map[string]bool{"doomed@example.com": true}}
	svc := newTestService(events, &fakeSubscribers{byEvent: map[string][]*subEntity.Subscriber{
		"evt_broken": {{RecordID: "sub_x", Email: "doomed@example.com"}},
		"evt_ok":     subscribers(2),
	}}, invites, now)

	result, err := svc.RunReminderJob(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("RunReminderJob failed: %v", err)
	}
	if result.Created != 1 || result.Invites != 2 {
		t.Errorf("result = %+v, want the healthy event fully processed", result)
	}
	if broken.InviteStatus != eventEntity.InviteStatusScheduled {
		t.Errorf("broken event status = %s, want Scheduled so the next pass retries", broken.InviteStatus)
	}
	if healthy.InviteStatus != eventEntity.InviteStatusCreated {
		t.Errorf("healthy event status = %s, want Created", healthy.InviteStatus)
	}
}

func TestHeldLockRejectsRun(t *testing.T) {
	svc := NewReminderService(&fakeEvents{}, &fakeSubscribers{}, &fakeInvites{}, heldLocker{})
	_, err := svc.RunReminderJob(context.Background(), "owner@example.com")
	if !errors.IsCode(err, errors.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}
