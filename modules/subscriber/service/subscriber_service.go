package service

import (
	"context"

	"go-events-api/core/errors"
	"go-events-api/core/logger"
	"go-events-api/modules/subscriber/dto"
	"go-events-api/modules/subscriber/entity"
	"go-events-api/modules/subscriber/repository"
	userRepo "go-events-api/modules/user/repository"
)

type SubscriberService struct {
	repo     *repository.SubscriberRepository
	userRepo userRepo.UserRepositoryInterface
}

func NewSubscriberService(repo *repository.SubscriberRepository, users userRepo.UserRepositoryInterface) *SubscriberService {
	return &SubscriberService{repo: repo, userRepo: users}
}

// BulkUpsert applies a UI-driven subscriber sync for the calling user,
// linking every row back to their user record.
func (s *SubscriberService) BulkUpsert(ctx context.Context, ownerEmail string, req *dto.BulkUpsertRequest) (*dto.BulkUpsertResponse, error) {
	if req == nil || req.Subscribers == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "expected { subscribers: [...] }", nil)
	}

	owner, err := s.userRepo.GetByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	subs := make([]*entity.Subscriber, 0, len(req.Subscribers))
	for _, in := range req.Subscribers {
		if in.SubscriptionID == "" {
			logger.Warn("SubscriberService:BulkUpsert:SkipMissingKey", "email", in.Email)
			continue
		}
		subs = append(subs, &entity.Subscriber{
			SubscriptionID:       in.SubscriptionID,
			PlanName:             in.PlanName,
			ProductName:          in.ProductName,
			Name:                 in.Name,
			Email:                in.Email,
			Phone:                in.Phone,
			Status:               in.Status,
			CreatedDate:          in.CreatedDate,
			CurrentPeriodEndDate: in.CurrentPeriodEndDate,
			OwnerID:              []string{owner.RecordID},
		})
	}

	result, err := s.repo.UpsertBatch(ctx, subs)
	if err != nil {
		return nil, err
	}
	logger.Info("SubscriberService:BulkUpsert:Complete",
		"owner", ownerEmail, "created", result.Created, "updated", result.Updated)
	return &dto.BulkUpsertResponse{Created: result.Created, Updated: result.Updated}, nil
}

// ListMine returns all subscribers across the caller's events.
func (s *SubscriberService) ListMine(ctx context.Context, ownerEmail string) (*dto.SubscriberListResponse, error) {
	subs, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	return toListResponse(subs), nil
}

// ListByEvent returns subscribers linked to one event.
func (s *SubscriberService) ListByEvent(ctx context.Context, eventID string) (*dto.SubscriberListResponse, error) {
	subs, err := s.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toListResponse(subs), nil
}

func toListResponse(subs []*entity.Subscriber) *dto.SubscriberListResponse {
	out := make([]dto.SubscriberResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, dto.SubscriberResponse{
			ID:                   sub.RecordID,
			SubscriptionID:       sub.SubscriptionID,
			PlanName:             sub.PlanName,
			ProductName:          sub.ProductName,
			Name:                 sub.Name,
			Email:                sub.Email,
			Phone:                sub.Phone,
			Status:               sub.Status,
			CreatedDate:          sub.CreatedDate,
			CurrentPeriodEndDate: sub.CurrentPeriodEndDate,
		})
	}
	return &dto.SubscriberListResponse{Subscribers: out, Total: len(out)}
}
