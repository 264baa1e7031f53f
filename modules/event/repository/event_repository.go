package repository

import (
	"context"

	"go-events-api/core/constants"
	"go-events-api/core/errors"
	"go-events-api/core/logger"
	"go-events-api/core/records"
	"go-events-api/modules/event/entity"
)

type EventRepository struct {
	store records.Store
}

func NewEventRepository(store records.Store) *EventRepository {
	return &EventRepository{store: store}
}

// ListByOwner returns every event owned by the given user.
func (r *EventRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Event, error) {
	recs, err := r.store.Select(ctx, constants.TableEvents, records.SelectOptions{
		Filter: records.Eq("emailLookup", ownerEmail),
	})
	if err != nil {
		logger.Error("EventRepository:ListByOwner:Error:", err)
		return nil, err
	}
	events := make([]*entity.Event, 0, len(recs))
	for _, rec := range recs {
		events = append(events, entity.FromRecord(rec))
	}
	return events, nil
}

// ListPendingReminders returns the owner's events still in the reminder
// pipeline (status New or Scheduled). Created events are out of scope by
// construction, which is the scheduler's idempotence guard.
func (r *EventRepository) ListPendingReminders(ctx context.Context, ownerEmail string) ([]*entity.Event, error) {
	filter := records.And(
		records.Eq("emailLookup", ownerEmail),
		records.Or(
			records.Eq("inviteStatus", string(entity.InviteStatusNew)),
			records.Eq("inviteStatus", string(entity.InviteStatusScheduled)),
		),
	)
	recs, err := r.store.Select(ctx, constants.TableEvents, records.SelectOptions{Filter: filter})
	if err != nil {
		logger.Error("EventRepository:ListPendingReminders:Error:", err)
		return nil, err
	}
	events := make([]*entity.Event, 0, len(recs))
	for _, rec := range recs {
		events = append(events, entity.FromRecord(rec))
	}
	return events, nil
}

// GetByEventID fetches an event by its public id.
func (r *EventRepository) GetByEventID(ctx context.Context, eventID string) (*entity.Event, error) {
	recs, err := r.store.Select(ctx, constants.TableEvents, records.SelectOptions{
		Filter:     records.Eq("eventId", eventID),
		MaxRecords: 1,
	})
	if err != nil {
		logger.Error("EventRepository:GetByEventID:Error:", err)
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found: "+eventID, nil)
	}
	return entity.FromRecord(recs[0]), nil
}

// Create persists a new event and returns it with its storage id.
func (r *EventRepository) Create(ctx context.Context, ev *entity.Event) (*entity.Event, error) {
	created, err := r.store.Create(ctx, constants.TableEvents, []records.Fields{ev.Fields()})
	if err != nil {
		logger.Error("EventRepository:Create:Error:", err)
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.NewAppError(errors.ErrRecordsStore, "create returned no record", nil)
	}
	return entity.FromRecord(created[0]), nil
}

// UpdateFields patches individual fields on an event record.
func (r *EventRepository) UpdateFields(ctx context.Context, recordID string, fields records.Fields) error {
	_, err := r.store.Update(ctx, constants.TableEvents, []records.Update{
		{ID: recordID, Fields: fields},
	})
	if err != nil {
		logger.Error("EventRepository:UpdateFields:Error:", err, "record_id", recordID)
	}
	return err
}

// SetInviteStatus advances the reminder pipeline state with a single-field
// update.
func (r *EventRepository) SetInviteStatus(ctx context.Context, recordID string, status entity.InviteStatus) error {
	return r.UpdateFields(ctx, recordID, records.Fields{"inviteStatus": string(status)})
}

// SetNextEvent persists the projected next occurrence.
func (r *EventRepository) SetNextEvent(ctx context.Context, recordID string, nextEvent string) error {
	return r.UpdateFields(ctx, recordID, records.Fields{"nextEvent": nextEvent})
}
