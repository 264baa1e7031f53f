package service

import (
	"context"
	"time"

	"go-events-api/core/constants"
	"go-events-api/core/errors"
	"go-events-api/core/lock"
	"go-events-api/core/logger"
	"go-events-api/core/timeutil"
	eventEntity "go-events-api/modules/event/entity"
	inviteEntity "go-events-api/modules/invite/entity"
	subEntity "go-events-api/modules/subscriber/entity"
)

// EventSource is the slice of the event repository the reminder job needs.
type EventSource interface {
	ListPendingReminders(ctx context.Context, ownerEmail string) ([]*eventEntity.Event, error)
	SetInviteStatus(ctx context.Context, recordID string, status eventEntity.InviteStatus) error
}

// SubscriberSource resolves the audience for an event's invites.
type SubscriberSource interface {
	ListByEventID(ctx context.Context, eventID string) ([]*subEntity.Subscriber, error)
}

// InviteSink persists the fanned-out invites.
type InviteSink interface {
	CreateBatch(ctx context.Context, invites []*inviteEntity.Invite) ([]*inviteEntity.Invite, error)
}

type ReminderService struct {
	events      EventSource
	subscribers SubscriberSource
	invites     InviteSink
	locker      lock.Locker
	now         func() time.Time
}

func NewReminderService(events EventSource, subscribers SubscriberSource, invites InviteSink, locker lock.Locker) *ReminderService {
	return &ReminderService{
		events:      events,
		subscribers: subscribers,
		invites:     invites,
		locker:      locker,
		now:         time.Now,
	}
}

// RunResult summarizes one pass of the reminder job.
type RunResult struct {
	Examined  int `json:"examined"`
	Scheduled int `json:"scheduled"`
	Created   int `json:"created"`
	Invites   int `json:"invites"`
	Skipped   int `json:"skipped"`
}

// RunReminderJob advances the reminder pipeline for one user's events.
//
// Events with status New or Scheduled are examined against their reminder
// instant. More than the reminder window out, a New event is marked
// Scheduled. Inside the window, one invite is created per subscriber of the
// event and the event is marked Created, which removes it from all future
// passes. A per-user lock keeps a manual trigger racing the cron trigger
// from fanning out invites twice.
func (s *ReminderService) RunReminderJob(ctx context.Context, userEmail string) (*RunResult, error) {
	release, ok, err := s.locker.Acquire(ctx, "reminder:"+userEmail, constants.ReminderLockTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "acquiring reminder lock", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrConflict, "reminder job already running for user", nil)
	}
	defer release()

	events, err := s.events.ListPendingReminders(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Examined: len(events)}
	now := s.now().UTC()

	for _, ev := range events {
		if err := s.processEvent(ctx, ev, now, result); err != nil {
			logger.Error("ReminderService:RunReminderJob:Event:Error:", err, "event_id", ev.EventID)
			result.Skipped++
			continue
		}
	}

	logger.Info("ReminderService:RunReminderJob:Complete",
		"owner", userEmail,
		"examined", result.Examined,
		"scheduled", result.Scheduled,
		"created", result.Created,
		"invites", result.Invites,
	)
	return result, nil
}

func (s *ReminderService) processEvent(ctx context.Context, ev *eventEntity.Event, now time.Time, result *RunResult) error {
	if ev.ReminderTime == "" {
		logger.Warn("ReminderService:ProcessEvent:NoReminderTime", "event_id", ev.EventID)
		result.Skipped++
		return nil
	}
	reminderAt, err := timeutil.ParseInstant(ev.ReminderTime)
	if err != nil {
		logger.Warn("ReminderService:ProcessEvent:BadReminderTime",
			"event_id", ev.EventID, "reminder_time", ev.ReminderTime)
		result.Skipped++
		return nil
	}

	if reminderAt.Sub(now) > constants.ReminderWindow {
		if ev.InviteStatus == eventEntity.InviteStatusNew {
			if err := s.events.SetInviteStatus(ctx, ev.RecordID, eventEntity.InviteStatusScheduled); err != nil {
				return err
			}
			result.Scheduled++
		}
		return nil
	}

	// Inside the window: fan out first, flip status last. A failure between
	// the two leaves the event pending and the next pass retries.
	subs, err := s.subscribers.ListByEventID(ctx, ev.EventID)
	if err != nil {
		return err
	}

	invites := make([]*inviteEntity.Invite, 0, len(subs))
	for _, sub := range subs {
		invites = append(invites, &inviteEntity.Invite{
			Email:          sub.Email,
			EventLink:      []string{ev.RecordID},
			SubscriberLink: []string{sub.RecordID},
			Status:         inviteEntity.StatusNew,
			SentTime:       ev.ReminderTime,
			Message:        ev.InviteMessage,
		})
	}
	if _, err := s.invites.CreateBatch(ctx, invites); err != nil {
		return err
	}

	if err := s.events.SetInviteStatus(ctx, ev.RecordID, eventEntity.InviteStatusCreated); err != nil {
		return err
	}
	result.Created++
	result.Invites += len(invites)
	return nil
}
