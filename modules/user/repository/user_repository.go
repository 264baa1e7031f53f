package repository

import (
	"context"

	"go-events-api/core/constants"
	"go-events-api/core/errors"
	"go-events-api/core/logger"
	"go-events-api/core/records"
	"go-events-api/modules/user/entity"
)

// UserRepositoryInterface is what other modules depend on to resolve the
// owning user of a request.
type UserRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, fields records.Fields) (*entity.User, error)
	UpdateFields(ctx context.Context, recordID string, fields records.Fields) error
}

type UserRepository struct {
	store records.Store
}

func NewUserRepository(store records.Store) *UserRepository {
	return &UserRepository{store: store}
}

// ListAll returns every user account. The background worker fans its
// per-user jobs out from this.
func (r *UserRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	recs, err := r.store.Select(ctx, constants.TableUsers, records.SelectOptions{})
	if err != nil {
		logger.Error("UserRepository:ListAll:Error:", err)
		return nil, err
	}
	users := make([]*entity.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, entity.FromRecord(rec))
	}
	return users, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	recs, err := r.store.Select(ctx, constants.TableUsers, records.SelectOptions{
		Filter:     records.Eq("email", email),
		MaxRecords: 1,
	})
	if err != nil {
		logger.Error("UserRepository:GetByEmail:Error:", err)
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found: "+email, nil)
	}
	return entity.FromRecord(recs[0]), nil
}

func (r *UserRepository) Create(ctx context.Context, fields records.Fields) (*entity.User, error) {
	created, err := r.store.Create(ctx, constants.TableUsers, []records.Fields{fields})
	if err != nil {
		logger.Error("UserRepository:Create:Error:", err)
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.NewAppError(errors.ErrRecordsStore, "create returned no record", nil)
	}
	return entity.FromRecord(created[0]), nil
}

func (r *UserRepository) UpdateFields(ctx context.Context, recordID string, fields records.Fields) error {
	_, err := r.store.Update(ctx, constants.TableUsers, []records.Update{
		{ID: recordID, Fields: fields},
	})
	if err != nil {
		logger.Error("UserRepository:UpdateFields:Error:", err, "record_id", recordID)
	}
	return err
}
