package service

import (
	"context"
	"time"

	"go-events-api/core/conferencing"
	"go-events-api/core/errors"
	"go-events-api/core/logger"
	"go-events-api/core/records"
	"go-events-api/core/timeutil"
	"go-events-api/core/utils"
	"go-events-api/modules/user/dto"
	"go-events-api/modules/user/entity"
	"go-events-api/modules/user/repository"
)

type UserService struct {
	repo       repository.UserRepositoryInterface
	confClient *conferencing.Client
}

func NewUserService(repo repository.UserRepositoryInterface, confClient *conferencing.Client) *UserService {
	return &UserService{repo: repo, confClient: confClient}
}

// Signup upserts a user by email and returns a session token. An existing
// user keeps their record; a changed name is written through.
func (s *UserService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name and email are required", nil)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if user.Name != req.Name {
			if err := s.repo.UpdateFields(ctx, user.RecordID, records.Fields{"name": req.Name}); err != nil {
				return nil, err
			}
			user.Name = req.Name
		}
	case errors.IsCode(err, errors.ErrNotFound):
		user, err = s.repo.Create(ctx, records.Fields{"name": req.Name, "email": req.Email})
		if err != nil {
			return nil, err
		}
		logger.Info("UserService:Signup:Created", "email", req.Email)
	default:
		return nil, err
	}

	return s.issueSession(user)
}

// Login resolves the user, stamps lastLogin and returns a session token.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.UpdateFields(ctx, user.RecordID, records.Fields{"lastLogin": now}); err != nil {
		return nil, err
	}
	user.LastLogin = now
	logger.Info("UserService:Login:Success", "email", req.Email)

	return s.issueSession(user)
}

func (s *UserService) issueSession(user *entity.User) (*dto.AuthResponse, error) {
	token, err := utils.GenerateToken(user.Email, user.Name)
	if err != nil {
		logger.Error("UserService:issueSession:Token:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue session token", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.RecordID,
			Name:      user.Name,
			Email:     user.Email,
			TimeZone:  user.TimeZone,
			LastLogin: user.LastLogin,
		},
	}, nil
}

func (s *UserService) GetTimeZone(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.TimeZone, nil
}

func (s *UserService) SetTimeZone(ctx context.Context, email, zone string) error {
	if _, err := time.LoadLocation(zone); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "unknown time zone: "+zone, err)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, user.RecordID, records.Fields{"timeZone": zone})
}

// PaymentsKey returns the user's payments-provider secret key.
func (s *UserService) PaymentsKey(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user.PaymentsSecretKey == "" {
		return "", errors.NewAppError(errors.ErrUnauthorized, "payments provider not connected", nil)
	}
	return user.PaymentsSecretKey, nil
}

// ConferencingCredential returns a fresh conferencing credential for the
// user, persisting a rotated token back onto the user record.
func (s *UserService) ConferencingCredential(ctx context.Context, email string) (conferencing.Credential, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return conferencing.Credential{}, err
	}

	cred := conferencing.Credential{
		AccessToken:  user.ConfAccessToken,
		RefreshToken: user.ConfRefreshToken,
	}
	if user.ConfTokenExpires != "" {
		if exp, err := timeutil.ParseInstant(user.ConfTokenExpires); err == nil {
			cred.ExpiresAt = exp
		}
	}

	fresh, rotated, err := s.confClient.EnsureFreshToken(ctx, cred)
	if err != nil {
		return conferencing.Credential{}, err
	}
	if rotated {
		fields := records.Fields{
			"zoomAccessToken":  fresh.AccessToken,
			"zoomRefreshToken": fresh.RefreshToken,
			"zoomTokenExpires": fresh.ExpiresAt.UTC().Format(time.RFC3339),
		}
		if err := s.repo.UpdateFields(ctx, user.RecordID, fields); err != nil {
			// The refreshed token still works for this call; losing the
			// rotation only costs an extra refresh next time.
			logger.Warn("UserService:ConferencingCredential:PersistError", "email", email, "error", err)
		}
	}
	return fresh, nil
}
