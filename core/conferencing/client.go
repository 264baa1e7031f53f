package conferencing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"go-events-api/core/constants"
	apperrors "go-events-api/core/errors"
	"go-events-api/core/logger"
)

// Credential is a user's conferencing-provider OAuth state. EnsureFreshToken
// may return a rotated credential; persisting it is the caller's job, so
// refresh stays free of hidden timers and global state.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Connected reports whether the credential is usable at all.
func (c Credential) Connected() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

type Meeting struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	JoinURL   string `json:"join_url"`
}

type MeetingPage struct {
	Meetings []Meeting `json:"meetings"`
}

type CreateMeetingParams struct {
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Agenda    string `json:"agenda,omitempty"`
}

type Client struct {
	baseURL    string
	oauthCfg   *oauth2.Config
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
		},
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// EnsureFreshToken returns a credential valid for at least the refresh skew,
// refreshing through the provider's token endpoint when needed. The second
// return reports whether the credential was rotated.
func (c *Client) EnsureFreshToken(ctx context.Context, cred Credential) (Credential, bool, error) {
	if !cred.Connected() {
		return cred, false, apperrors.NewAppError(apperrors.ErrUnauthorized, "conferencing provider not connected", nil)
	}
	if time.Now().Before(cred.ExpiresAt.Add(-constants.TokenRefreshSkew)) {
		return cred, false, nil
	}

	logger.Info("ConferencingClient:EnsureFreshToken:Refreshing")
	src := c.oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := src.Token()
	if err != nil {
		logger.Error("ConferencingClient:EnsureFreshToken:Error", err)
		return cred, false, apperrors.NewAppError(apperrors.ErrProvider, "conferencing token refresh failed", err)
	}

	fresh := Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = cred.RefreshToken
	}
	return fresh, true, nil
}

// CreateMeeting schedules a meeting on the authenticated user's account.
func (c *Client) CreateMeeting(ctx context.Context, cred Credential, params CreateMeetingParams) (*Meeting, error) {
	var meeting Meeting
	if err := c.do(ctx, cred, http.MethodPost, "/users/me/meetings", params, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListMeetings returns the user's scheduled meetings.
func (c *Client) ListMeetings(ctx context.Context, cred Credential) ([]Meeting, error) {
	var page MeetingPage
	if err := c.do(ctx, cred, http.MethodGet, "/users/me/meetings", nil, &page); err != nil {
		return nil, err
	}
	return page.Meetings, nil
}

func (c *Client) do(ctx context.Context, cred Credential, method, path string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrProvider, "encode conferencing request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrProvider, "build conferencing request", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("ConferencingClient:do:RequestError", err, "method", method, "path", path)
		return apperrors.NewAppError(apperrors.ErrProvider, "conferencing provider request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		logger.Error("ConferencingClient:do:APIError", "status", resp.StatusCode, "body", string(raw))
		return apperrors.NewAppError(apperrors.ErrProvider,
			fmt.Sprintf("conferencing provider returned status %d", resp.StatusCode), nil)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return apperrors.NewAppError(apperrors.ErrProvider, "decode conferencing response", err)
		}
	}
	return nil
}
