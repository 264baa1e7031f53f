package repository

import (
	"context"

	"go-events-api/core/constants"
	"go-events-api/core/logger"
	"go-events-api/core/records"
	"go-events-api/modules/subscriber/entity"
)

type SubscriberRepository struct {
	store records.Store
}

func NewSubscriberRepository(store records.Store) *SubscriberRepository {
	return &SubscriberRepository{store: store}
}

// ListByEventID returns subscribers linked to an event's public id. The link
// surfaces as a multi-valued lookup field, hence the contains match.
func (r *SubscriberRepository) ListByEventID(ctx context.Context, eventID string) ([]*entity.Subscriber, error) {
	recs, err := r.store.Select(ctx, constants.TableSubscribers, records.SelectOptions{
		Filter: records.Contains("eventId", eventID),
	})
	if err != nil {
		logger.Error("SubscriberRepository:ListByEventID:Error:", err, "event_id", eventID)
		return nil, err
	}
	subs := make([]*entity.Subscriber, 0, len(recs))
	for _, rec := range recs {
		subs = append(subs, entity.FromRecord(rec))
	}
	return subs, nil
}

// ListByOwner returns every subscriber belonging to the user's events.
func (r *SubscriberRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Subscriber, error) {
	recs, err := r.store.Select(ctx, constants.TableSubscribers, records.SelectOptions{
		Filter: records.Contains("ownerEmailLookup", ownerEmail),
	})
	if err != nil {
		logger.Error("SubscriberRepository:ListByOwner:Error:", err)
		return nil, err
	}
	subs := make([]*entity.Subscriber, 0, len(recs))
	for _, rec := range recs {
		subs = append(subs, entity.FromRecord(rec))
	}
	return subs, nil
}

// UpsertResult reports how a batch was applied.
type UpsertResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// UpsertBatch creates or updates subscribers keyed by subscriptionId.
// Candidates are processed in chunks: one batched key lookup per chunk, then
// one batched update and one batched create. Re-running with the same input
// converges: no duplicates, fields overwritten with the latest values.
func (r *SubscriberRepository) UpsertBatch(ctx context.Context, subs []*entity.Subscriber) (*UpsertResult, error) {
	result := &UpsertResult{}

	for start := 0; start < len(subs); start += constants.SubscriberUpsertChunkSize {
		end := min(start+constants.SubscriberUpsertChunkSize, len(subs))
		chunk := subs[start:end]

		clauses := make([]records.Filter, 0, len(chunk))
		for _, sub := range chunk {
			clauses = append(clauses, records.Eq("subscriptionId", sub.SubscriptionID))
		}
		existing, err := r.store.Select(ctx, constants.TableSubscribers, records.SelectOptions{
			Filter:     records.Or(clauses...),
			Fields:     []string{"subscriptionId"},
			MaxRecords: len(chunk),
		})
		if err != nil {
			logger.Error("SubscriberRepository:UpsertBatch:Lookup:Error:", err)
			return result, err
		}

		keyToRecordID := make(map[string]string, len(existing))
		for _, rec := range existing {
			if key := rec.Fields.Str("subscriptionId"); key != "" {
				keyToRecordID[key] = rec.ID
			}
		}

		var toUpdate []records.Update
		var toCreate []records.Fields
		for _, sub := range chunk {
			if recordID, ok := keyToRecordID[sub.SubscriptionID]; ok {
				toUpdate = append(toUpdate, records.Update{ID: recordID, Fields: sub.Fields()})
			} else {
				toCreate = append(toCreate, sub.Fields())
			}
		}

		if len(toUpdate) > 0 {
			updated, err := r.store.Update(ctx, constants.TableSubscribers, toUpdate)
			if err != nil {
				logger.Error("SubscriberRepository:UpsertBatch:Update:Error:", err)
				return result, err
			}
			result.Updated += len(updated)
		}
		if len(toCreate) > 0 {
			created, err := r.store.Create(ctx, constants.TableSubscribers, toCreate)
			if err != nil {
				logger.Error("SubscriberRepository:UpsertBatch:Create:Error:", err)
				return result, err
			}
			result.Created += len(created)
		}

		logger.Info("SubscriberRepository:UpsertBatch:Chunk",
			"chunk", start/constants.SubscriberUpsertChunkSize+1,
			"updated", result.Updated,
			"created", result.Created,
		)
	}

	return result, nil
}

// Upsert applies a single subscriber through the batch path.
func (r *SubscriberRepository) Upsert(ctx context.Context, sub *entity.Subscriber) (*UpsertResult, error) {
	return r.UpsertBatch(ctx, []*entity.Subscriber{sub})
}
