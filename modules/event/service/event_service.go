package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"go-events-api/core/config"
	"go-events-api/core/errors"
	"go-events-api/core/logger"
	"go-events-api/core/payments"
	"go-events-api/core/records"
	"go-events-api/core/recurrence"
	"go-events-api/core/timeutil"
	"go-events-api/core/utils"
	"go-events-api/modules/event/dto"
	"go-events-api/modules/event/entity"
	"go-events-api/modules/event/repository"
	userRepo "go-events-api/modules/user/repository"
)

// PaymentsProvisioner is the slice of the payments client the event module
// needs for ticket provisioning.
type PaymentsProvisioner interface {
	CreatePrice(ctx context.Context, key string, params payments.CreatePriceParams) (*payments.Price, error)
	CreatePaymentLink(ctx context.Context, key string, params payments.CreatePaymentLinkParams) (*payments.PaymentLink, error)
}

type EventService struct {
	repo     *repository.EventRepository
	userRepo userRepo.UserRepositoryInterface
	payments PaymentsProvisioner
}

func NewEventService(repo *repository.EventRepository, users userRepo.UserRepositoryInterface, pay PaymentsProvisioner) *EventService {
	return &EventService{repo: repo, userRepo: users, payments: pay}
}

// Create validates the request, derives the recurrence rule and anchor date,
// persists the event and provisions a price and payment link for it.
func (s *EventService) Create(ctx context.Context, ownerEmail string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if req.Name == "" || req.EventTimeZone == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name and eventTimeZone are required", nil)
	}

	owner, err := s.userRepo.GetByEmail(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	ev := &entity.Event{
		EventID:       utils.GenerateEventID(),
		Name:          req.Name,
		Description:   req.Description,
		EventTimeZone: req.EventTimeZone,
		TicketPrice:   req.TicketPrice,
		InviteMessage: req.InviteMessage,
		InviteStatus:  entity.InviteStatusNew,
		IsRecurring:   req.IsRecurring,
		OwnerID:       []string{owner.RecordID},
	}

	if req.IsRecurring {
		if req.Recurrence == nil {
			return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "recurring event requires a recurrence specification", nil)
		}
		rule, err := buildRule(req.Recurrence, req.EventTimeZone, time.Now())
		if err != nil {
			return nil, err
		}
		ev.RecurrenceInterval = rule.String()
		ev.EventDate = rule.DTStart().UTC().Format(time.RFC3339)
	} else {
		if req.EventDate == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "eventDate is required for one-time events", nil)
		}
		utcISO, err := timeutil.ToUTCISO(req.EventDate, req.EventTimeZone)
		if err != nil {
			return nil, err
		}
		ev.EventDate = utcISO
	}

	if req.ReminderTime != "" {
		utcISO, err := timeutil.ToUTCISO(req.ReminderTime, req.EventTimeZone)
		if err != nil {
			return nil, err
		}
		ev.ReminderTime = utcISO
	}

	created, err := s.repo.Create(ctx, ev)
	if err != nil {
		return nil, err
	}
	logger.Info("EventService:Create:Created", "event_id", created.EventID, "owner", ownerEmail)

	// Ticket provisioning happens after the record exists; a provider
	// failure leaves a usable event that can be re-provisioned on edit.
	if err := s.provisionTickets(ctx, owner.PaymentsSecretKey, created); err != nil {
		logger.Error("EventService:Create:ProvisionTickets:Error:", err, "event_id", created.EventID)
	}

	return s.toResponse(created), nil
}

// provisionTickets creates a price and payment link for the event and writes
// the provider ids back onto the record.
func (s *EventService) provisionTickets(ctx context.Context, key string, ev *entity.Event) error {
	if key == "" || ev.TicketPrice <= 0 {
		return nil
	}

	price, err := s.payments.CreatePrice(ctx, key, payments.CreatePriceParams{
		UnitAmount:  int64(math.Round(ev.TicketPrice * 100)),
		Currency:    "usd",
		ProductName: ev.Name,
		Recurring:   ev.IsRecurring,
	})
	if err != nil {
		return err
	}

	cfg, _ := config.GetSafe()
	successBase := "https://example.com/events"
	if cfg != nil && cfg.Payments.SuccessURLBase != "" {
		successBase = strings.TrimSuffix(cfg.Payments.SuccessURLBase, "/")
	}
	link, err := s.payments.CreatePaymentLink(ctx, key, payments.CreatePaymentLinkParams{
		PriceID:     price.ID,
		Quantity:    1,
		RedirectURL: fmt.Sprintf("%s/%s/%s/thank-you", successBase, ev.EventID, slug.Make(ev.Name)),
	})
	if err != nil {
		return err
	}

	fields := records.Fields{
		"paymentLinkId":  link.ID,
		"paymentLinkUrl": link.URL,
		"priceId":        price.ID,
		"productId":      price.Product.ID,
	}
	if err := s.repo.UpdateFields(ctx, ev.RecordID, fields); err != nil {
		return err
	}
	ev.PaymentLinkID = link.ID
	ev.PaymentLinkURL = link.URL
	ev.PriceID = price.ID
	ev.ProductID = price.Product.ID
	return nil
}

// List returns the caller's events.
func (s *EventService) List(ctx context.Context, ownerEmail string) (*dto.EventListResponse, error) {
	events, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, *s.toResponse(ev))
	}
	return &dto.EventListResponse{Events: out, Total: len(out)}, nil
}

// Get returns one owned event, with its next few occurrences when recurring.
func (s *EventService) Get(ctx context.Context, ownerEmail, eventID string) (*dto.EventResponse, error) {
	ev, err := s.ownedEvent(ctx, ownerEmail, eventID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ev)
	if ev.RecurrenceInterval != "" {
		occs, err := recurrence.OccurrencesFrom(ev.RecurrenceInterval, time.Now(), 5)
		if err != nil {
			logger.Warn("EventService:Get:Occurrences:Error", "event_id", eventID, "error", err)
		} else {
			for _, t := range occs {
				resp.NextOccurrences = append(resp.NextOccurrences, t.UTC().Format(time.RFC3339))
			}
		}
	}
	return resp, nil
}

// Update patches an owned event. A new recurrence specification rebuilds the
// rule from scratch rather than trusting field-by-field reconstruction of
// the stored one.
func (s *EventService) Update(ctx context.Context, ownerEmail, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	ev, err := s.ownedEvent(ctx, ownerEmail, eventID)
	if err != nil {
		return nil, err
	}

	fields := records.Fields{}
	if req.Name != nil {
		fields["name"] = *req.Name
		ev.Name = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		ev.Description = *req.Description
	}
	if req.EventTimeZone != nil {
		if _, err := time.LoadLocation(*req.EventTimeZone); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown time zone: "+*req.EventTimeZone, err)
		}
		fields["eventTimeZone"] = *req.EventTimeZone
		ev.EventTimeZone = *req.EventTimeZone
	}
	if req.TicketPrice != nil {
		fields["ticketPrice"] = *req.TicketPrice
		ev.TicketPrice = *req.TicketPrice
	}
	if req.InviteMessage != nil {
		fields["inviteMessage"] = *req.InviteMessage
		ev.InviteMessage = *req.InviteMessage
	}
	if req.ReminderTime != nil {
		utcISO, err := timeutil.ToUTCISO(*req.ReminderTime, ev.EventTimeZone)
		if err != nil {
			return nil, err
		}
		fields["reminderTime"] = utcISO
		ev.ReminderTime = utcISO
	}
	if req.EventDate != nil && !ev.IsRecurring {
		utcISO, err := timeutil.ToUTCISO(*req.EventDate, ev.EventTimeZone)
		if err != nil {
			return nil, err
		}
		fields["eventDate"] = utcISO
		ev.EventDate = utcISO
	}
	if req.Recurrence != nil {
		rule, err := buildRule(req.Recurrence, ev.EventTimeZone, time.Now())
		if err != nil {
			return nil, err
		}
		fields["recurrenceInterval"] = rule.String()
		fields["isRecurring"] = true
		fields["eventDate"] = rule.DTStart().UTC().Format(time.RFC3339)
		ev.RecurrenceInterval = rule.String()
		ev.IsRecurring = true
		ev.EventDate = rule.DTStart().UTC().Format(time.RFC3339)
	}

	if len(fields) == 0 {
		return s.toResponse(ev), nil
	}
	if err := s.repo.UpdateFields(ctx, ev.RecordID, fields); err != nil {
		return nil, err
	}
	logger.Info("EventService:Update:Success", "event_id", eventID)
	return s.toResponse(ev), nil
}

func (s *EventService) ownedEvent(ctx context.Context, ownerEmail, eventID string) (*entity.Event, error) {
	ev, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.OwnerEmail != "" && ev.OwnerEmail != ownerEmail {
		return nil, errors.NewAppError(errors.ErrForbidden, "event belongs to another user", nil)
	}
	return ev, nil
}

func (s *EventService) toResponse(ev *entity.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:                 ev.RecordID,
		EventID:            ev.EventID,
		Name:               ev.Name,
		Description:        ev.Description,
		EventDate:          ev.EventDate,
		IsRecurring:        ev.IsRecurring,
		RecurrenceInterval: ev.RecurrenceInterval,
		EventTimeZone:      ev.EventTimeZone,
		TicketPrice:        ev.TicketPrice,
		InviteStatus:       string(ev.InviteStatus),
		ReminderTime:       ev.ReminderTime,
		NextEvent:          ev.NextEvent,
		PaymentLinkURL:     ev.PaymentLinkURL,
	}
	if ev.EventDate != "" {
		if display, err := timeutil.FormatInTZ(ev.EventDate, ev.EventTimeZone); err == nil {
			resp.EventDateDisplay = display
		}
	}
	return resp
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func buildRule(in *dto.RecurrenceInput, zone string, now time.Time) (*recurrence.Rule, error) {
	spec := recurrence.Spec{
		Freq:      recurrence.Frequency(strings.ToLower(in.Frequency)),
		Interval:  in.Interval,
		TimeOfDay: in.TimeOfDay,
		EndMode:   recurrence.EndMode(in.EndMode),
		Count:     in.Count,
		Until:     in.Until,
		Zone:      zone,
	}
	if spec.EndMode == "" {
		spec.EndMode = recurrence.EndNever
	}

	for _, name := range in.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "unknown weekday: "+name, nil)
		}
		spec.Weekdays = append(spec.Weekdays, wd)
	}

	if spec.Freq == recurrence.Monthly {
		spec.MonthlyMode = recurrence.MonthlyMode(in.MonthlyMode)
		spec.MonthDay = in.MonthDay
		spec.Ordinal = in.Ordinal
		if in.OrdinalWeekday != "" {
			wd, ok := weekdayNames[strings.ToLower(in.OrdinalWeekday)]
			if !ok {
				return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "unknown weekday: "+in.OrdinalWeekday, nil)
			}
			spec.OrdinalWeekday = wd
		}
	}

	return recurrence.Build(spec, now)
}
