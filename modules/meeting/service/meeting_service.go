package service

import (
	"context"

	"go-events-api/core/conferencing"
	"go-events-api/core/errors"
	"go-events-api/modules/meeting/dto"
)

// CredentialSource resolves a fresh conferencing credential for a user.
type CredentialSource interface {
	ConferencingCredential(ctx context.Context, email string) (conferencing.Credential, error)
}

// Conferencer is the slice of the conferencing client the service needs.
type Conferencer interface {
	CreateMeeting(ctx context.Context, cred conferencing.Credential, params conferencing.CreateMeetingParams) (*conferencing.Meeting, error)
	ListMeetings(ctx context.Context, cred conferencing.Credential) ([]conferencing.Meeting, error)
}

type MeetingService struct {
	creds  CredentialSource
	client Conferencer
}

func NewMeetingService(creds CredentialSource, client Conferencer) *MeetingService {
	return &MeetingService{creds: creds, client: client}
}

// The provider's fixed-time meeting type.
const meetingTypeScheduled = 2

func (s *MeetingService) Create(ctx context.Context, email string, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	if req.Topic == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "topic is required", nil)
	}
	cred, err := s.creds.ConferencingCredential(ctx, email)
	if err != nil {
		return nil, err
	}
	meeting, err := s.client.CreateMeeting(ctx, cred, conferencing.CreateMeetingParams{
		Topic:     req.Topic,
		Type:      meetingTypeScheduled,
		StartTime: req.StartTime,
		Duration:  req.Duration,
		Timezone:  req.Timezone,
		Agenda:    req.Agenda,
	})
	if err != nil {
		return nil, err
	}
	return toResponse(meeting), nil
}

func (s *MeetingService) List(ctx context.Context, email string) (*dto.MeetingListResponse, error) {
	cred, err := s.creds.ConferencingCredential(ctx, email)
	if err != nil {
		return nil, err
	}
	meetings, err := s.client.ListMeetings(ctx, cred)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		out = append(out, *toResponse(&meetings[i]))
	}
	return &dto.MeetingListResponse{Meetings: out, Total: len(out)}, nil
}

func toResponse(m *conferencing.Meeting) *dto.MeetingResponse {
	return &dto.MeetingResponse{
		ID:        m.ID,
		Topic:     m.Topic,
		StartTime: m.StartTime,
		Duration:  m.Duration,
		Timezone:  m.Timezone,
		JoinURL:   m.JoinURL,
	}
}
