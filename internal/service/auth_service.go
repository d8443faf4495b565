package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

// allowedEmailDomain restricts sign-in to university accounts.
const allowedEmailDomain = "@vitstudent.ac.in"

type authBackend interface {
	Login(ctx context.Context, uid, googleAccessToken string) (string, error)
}

type authStateStore interface {
	SyncState(ctx context.Context) (*models.SyncState, error)
	SaveSession(ctx context.Context, state *models.SyncState) error
	ClearSession(ctx context.Context) error
}

// AuthService establishes and tears down the backend session. The OAuth
// handshake runs in the browser; this service only exchanges its result.
type AuthService struct {
	backend   authBackend
	store     authStateStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(backend authBackend, store authStateStore, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{backend: backend, store: store, validator: validate, logger: logger}
}

// SignIn exchanges the Google access token with the backend and persists
// the resulting session.
func (s *AuthService) SignIn(ctx context.Context, req dto.LoginRequest) (*models.SessionStatus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if !strings.HasSuffix(strings.ToLower(req.Email), allowedEmailDomain) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only "+allowedEmailDomain+" accounts are allowed")
	}

	token, err := s.backend.Login(ctx, req.UID, req.GoogleAccessToken)
	if err != nil {
		return nil, err
	}

	state := &models.SyncState{
		UID:       req.UID,
		Email:     req.Email,
		RegNo:     req.RegNo,
		AuthToken: token,
	}
	if err := s.store.SaveSession(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", zap.String("uid", req.UID), zap.String("reg_no", req.RegNo))
	return s.status(state), nil
}

// SignOut clears the whole session including cached snapshots.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info("user signed out")
	return nil
}

// Status reports the stored session for the popup.
func (s *AuthService) Status(ctx context.Context) (*models.SessionStatus, error) {
	state, err := s.store.SyncState(ctx)
	if err != nil {
		return nil, err
	}
	return s.status(state), nil
}

func (s *AuthService) status(state *models.SyncState) *models.SessionStatus {
	status := &models.SessionStatus{
		SignedIn:     state.UID != "" && state.AuthToken != "",
		UID:          state.UID,
		Email:        state.Email,
		RegNo:        state.RegNo,
		SemesterID:   state.SemesterID,
		SemesterName: state.SemesterName,
	}
	if state.AuthToken != "" {
		if expiry := tokenExpiry(state.AuthToken); expiry != nil {
			status.TokenExpiry = expiry
		}
	}
	return status
}

// tokenExpiry decodes the bearer token's exp claim without verifying the
// signature; the backend owns the signing secret.
func tokenExpiry(token string) *time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}
