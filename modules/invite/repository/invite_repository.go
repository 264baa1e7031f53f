package repository

import (
	"context"

	"go-events-api/core/constants"
	"go-events-api/core/logger"
	"go-events-api/core/records"
	"go-events-api/modules/invite/entity"
)

type InviteRepository struct {
	store records.Store
}

func NewInviteRepository(store records.Store) *InviteRepository {
	return &InviteRepository{store: store}
}

// CreateBatch writes one invite per subscriber in a single batched call.
func (r *InviteRepository) CreateBatch(ctx context.Context, invites []*entity.Invite) ([]*entity.Invite, error) {
	if len(invites) == 0 {
		return nil, nil
	}
	payload := make([]records.Fields, 0, len(invites))
	for _, inv := range invites {
		payload = append(payload, inv.Fields())
	}
	recs, err := r.store.Create(ctx, constants.TableInvites, payload)
	if err != nil {
		logger.Error("InviteRepository:CreateBatch:Error:", err, "count", len(invites))
		return nil, err
	}
	out := make([]*entity.Invite, 0, len(recs))
	for _, rec := range recs {
		out = append(out, entity.FromRecord(rec))
	}
	return out, nil
}

// ListForOwner returns invites raised against the user's events. Ownership
// surfaces through a lookup across the event link, hence the contains match.
func (r *InviteRepository) ListForOwner(ctx context.Context, ownerEmail string) ([]*entity.Invite, error) {
	recs, err := r.store.Select(ctx, constants.TableInvites, records.SelectOptions{
		Filter: records.Contains("ownerEmailLookup", ownerEmail),
	})
	if err != nil {
		logger.Error("InviteRepository:ListForOwner:Error:", err)
		return nil, err
	}
	invites := make([]*entity.Invite, 0, len(recs))
	for _, rec := range recs {
		invites = append(invites, entity.FromRecord(rec))
	}
	return invites, nil
}
