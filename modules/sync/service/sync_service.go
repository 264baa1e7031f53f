package service

import (
	"context"
	"time"

	"go-events-api/core/constants"
	"go-events-api/core/errors"
	"go-events-api/core/lock"
	"go-events-api/core/logger"
	"go-events-api/core/payments"
	"go-events-api/core/recurrence"
	eventEntity "go-events-api/modules/event/entity"
	subEntity "go-events-api/modules/subscriber/entity"
	"go-events-api/modules/subscriber/repository"
	userEntity "go-events-api/modules/user/entity"
	userRepo "go-events-api/modules/user/repository"
)

// EventSource is the slice of the event repository the sync job needs.
type EventSource interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]*eventEntity.Event, error)
	SetNextEvent(ctx context.Context, recordID string, nextEvent string) error
}

// SubscriberSink applies reconciled subscribers to the local store.
type SubscriberSink interface {
	UpsertBatch(ctx context.Context, subs []*subEntity.Subscriber) (*repository.UpsertResult, error)
}

// PaymentsProvider is the slice of the payments client the sync job needs.
type PaymentsProvider interface {
	ListSubscriptions(ctx context.Context, key string, cursor string) (*payments.SubscriptionPage, error)
	ListCheckoutSessions(ctx context.Context, key string, paymentLinkID, cursor string) (*payments.SessionPage, error)
	GetCustomer(ctx context.Context, key string, customerID string) (*payments.Customer, error)
}

type SyncService struct {
	events      EventSource
	subscribers SubscriberSink
	users       userRepo.UserRepositoryInterface
	provider    PaymentsProvider
	locker      lock.Locker
	now         func() time.Time
}

func NewSyncService(events EventSource, subscribers SubscriberSink, users userRepo.UserRepositoryInterface, provider PaymentsProvider, locker lock.Locker) *SyncService {
	return &SyncService{
		events:      events,
		subscribers: subscribers,
		users:       users,
		provider:    provider,
		locker:      locker,
		now:         time.Now,
	}
}

// SyncResult summarizes one reconciliation pass.
type SyncResult struct {
	Events  int `json:"events"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// RunSuperSync reconciles the payments provider's view of every event owned
// by the user into the local subscriber store. For each event it refreshes
// the projected next occurrence, then pulls the full purchase history from
// the provider and upserts it keyed by the provider's id. Re-running is
// safe: the same provider rows converge onto the same local records.
func (s *SyncService) RunSuperSync(ctx context.Context, userEmail string) (*SyncResult, error) {
	release, ok, err := s.locker.Acquire(ctx, "sync:"+userEmail, constants.ReminderLockTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "acquiring sync lock", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrConflict, "sync already running for user", nil)
	}
	defer release()

	owner, err := s.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if owner.PaymentsSecretKey == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no payments key on account", nil)
	}

	events, err := s.events.ListByOwner(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Events: len(events)}
	now := s.now().UTC()

	for _, ev := range events {
		s.refreshNextOccurrence(ctx, ev, now)

		if err := s.syncEvent(ctx, owner, ev, result); err != nil {
			logger.Error("SyncService:RunSuperSync:Event:Error:", err, "event_id", ev.EventID)
			result.Skipped++
			continue
		}
	}

	logger.Info("SyncService:RunSuperSync:Complete",
		"owner", userEmail,
		"events", result.Events,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

// refreshNextOccurrence recomputes the projected next occurrence of a
// recurring event. Failures are logged and swallowed: a stale projection
// must not block subscriber reconciliation.
func (s *SyncService) refreshNextOccurrence(ctx context.Context, ev *eventEntity.Event, now time.Time) {
	if !ev.IsRecurring || ev.RecurrenceInterval == "" {
		return
	}
	next, ok, err := recurrence.NextOccurrenceAfter(ev.RecurrenceInterval, now)
	if err != nil {
		logger.Warn("SyncService:refreshNextOccurrence:BadRule", "event_id", ev.EventID, "error", err)
		return
	}
	if !ok {
		return
	}
	if err := s.events.SetNextEvent(ctx, ev.RecordID, next.UTC().Format(time.RFC3339)); err != nil {
		logger.Warn("SyncService:refreshNextOccurrence:WriteFailed", "event_id", ev.EventID, "error", err)
	}
}

func (s *SyncService) syncEvent(ctx context.Context, owner *userEntity.User, ev *eventEntity.Event, result *SyncResult) error {
	if ev.ProductID == "" && ev.PaymentLinkID == "" {
		logger.Info("SyncService:syncEvent:NotProvisioned", "event_id", ev.EventID)
		result.Skipped++
		return nil
	}

	// One-off purchases hang off the payment link; anything with a
	// recurrence rule settles through product-matched subscriptions.
	var subs []*subEntity.Subscriber
	var err error
	if ev.RecurrenceInterval == "" && ev.PaymentLinkID != "" {
		subs, err = s.collectOneOffPurchases(ctx, owner, ev)
	} else {
		subs, err = s.collectSubscriptions(ctx, owner, ev)
	}
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	applied, err := s.subscribers.UpsertBatch(ctx, subs)
	if err != nil {
		return err
	}
	result.Created += applied.Created
	result.Updated += applied.Updated
	return nil
}

// collectSubscriptions pages through the provider's subscription list and
// keeps the ones whose product backs this event. A failed customer lookup
// drops the row for this pass (the next run picks it up again); a customer
// with no email is skipped outright, there is nobody to invite.
func (s *SyncService) collectSubscriptions(ctx context.Context, owner *userEntity.User, ev *eventEntity.Event) ([]*subEntity.Subscriber, error) {
	var subs []*subEntity.Subscriber
	cursor := ""
	for {
		page, err := s.provider.ListSubscriptions(ctx, owner.PaymentsSecretKey, cursor)
		if err != nil {
			return nil, err
		}
		for _, sub := range page.Data {
			if sub.ProductID() != ev.ProductID {
				continue
			}
			customer, err := s.provider.GetCustomer(ctx, owner.PaymentsSecretKey, sub.Customer)
			if err != nil {
				logger.Warn("SyncService:collectSubscriptions:CustomerLookupFailed",
					"subscription_id", sub.ID, "error", err)
				continue
			}
			if customer.Email == "" {
				logger.Warn("SyncService:collectSubscriptions:CustomerNoEmail",
					"subscription_id", sub.ID, "customer_id", customer.ID)
				continue
			}
			status := sub.Status
			if status == "active" {
				status = subEntity.StatusActive
			}
			var planName string
			if len(sub.Items.Data) > 0 {
				planName = sub.Items.Data[0].Price.Nickname
			}
			subs = append(subs, &subEntity.Subscriber{
				SubscriptionID:       sub.ID,
				PlanName:             planName,
				ProductName:          ev.Name,
				Name:                 customer.Name,
				Email:                customer.Email,
				Phone:                customer.Phone,
				Status:               status,
				CreatedDate:          time.Unix(sub.Created, 0).UTC().Format(time.RFC3339),
				CurrentPeriodEndDate: time.Unix(sub.CurrentPeriodEnd, 0).UTC().Format(time.RFC3339),
				EventLink:            []string{ev.RecordID},
				OwnerID:              []string{owner.RecordID},
			})
		}
		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		cursor = page.Data[len(page.Data)-1].ID
	}
	return subs, nil
}

// collectOneOffPurchases pages through the event's payment-link checkout
// sessions and keeps the paid ones with a reachable buyer email.
func (s *SyncService) collectOneOffPurchases(ctx context.Context, owner *userEntity.User, ev *eventEntity.Event) ([]*subEntity.Subscriber, error) {
	if ev.PaymentLinkID == "" {
		return nil, nil
	}
	var subs []*subEntity.Subscriber
	cursor := ""
	for {
		page, err := s.provider.ListCheckoutSessions(ctx, owner.PaymentsSecretKey, ev.PaymentLinkID, cursor)
		if err != nil {
			return nil, err
		}
		for _, session := range page.Data {
			if session.PaymentStatus != "paid" || session.CustomerDetails == nil || session.CustomerDetails.Email == "" {
				continue
			}
			subs = append(subs, &subEntity.Subscriber{
				SubscriptionID: session.ID,
				ProductName:    ev.Name,
				Name:           session.CustomerDetails.Name,
				Email:          session.CustomerDetails.Email,
				Phone:          session.CustomerDetails.Phone,
				Status:         subEntity.StatusOneOff,
				CreatedDate:    time.Unix(session.Created, 0).UTC().Format(time.RFC3339),
				EventLink:      []string{ev.RecordID},
				OwnerID:        []string{owner.RecordID},
			})
		}
		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		cursor = page.Data[len(page.Data)-1].ID
	}
	return subs, nil
}
