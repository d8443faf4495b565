package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type authBackendStub struct {
	token string
	err   error
	calls int
}

func (b *authBackendStub) Login(ctx context.Context, uid, googleAccessToken string) (string, error) {
	b.calls++
	if b.err != nil {
		return "", b.err
	}
	return b.token, nil
}

type authStoreStub struct {
	state   *models.SyncState
	saved   *models.SyncState
	cleared bool
}

func (s *authStoreStub) SyncState(ctx context.Context) (*models.SyncState, error) {
	if s.state == nil {
		return &models.SyncState{}, nil
	}
	return s.state, nil
}

func (s *authStoreStub) SaveSession(ctx context.Context, state *models.SyncState) error {
	s.saved = state
	return nil
}

func (s *authStoreStub) ClearSession(ctx context.Context) error {
	s.cleared = true
	return nil
}

func validLogin() dto.LoginRequest {
	return dto.LoginRequest{
		UID:               "uid-1",
		Email:             "student@vitstudent.ac.in",
		RegNo:             "21BCE0001",
		GoogleAccessToken: "ya29.token",
	}
}

func TestSignInSavesSession(t *testing.T) {
	backend := &authBackendStub{token: "jwt-token"}
	store := &authStoreStub{}
	svc := NewAuthService(backend, store, nil, nil)

	status, err := svc.SignIn(context.Background(), validLogin())
	require.NoError(t, err)
	assert.True(t, status.SignedIn)
	assert.Equal(t, "21BCE0001", status.RegNo)

	require.NotNil(t, store.saved)
	assert.Equal(t, "jwt-token", store.saved.AuthToken)
	assert.Equal(t, "uid-1", store.saved.UID)
}

func TestSignInRejectsForeignDomain(t *testing.T) {
	backend := &authBackendStub{token: "jwt-token"}
	store := &authStoreStub{}
	svc := NewAuthService(backend, store, nil, nil)

	req := validLogin()
	req.Email = "student@gmail.com"

	_, err := svc.SignIn(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation.Code))
	assert.Zero(t, backend.calls)
	assert.Nil(t, store.saved)
}

func TestSignInRejectsIncompletePayload(t *testing.T) {
	backend := &authBackendStub{token: "jwt-token"}
	svc := NewAuthService(backend, &authStoreStub{}, nil, nil)

	req := validLogin()
	req.GoogleAccessToken = ""

	_, err := svc.SignIn(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation.Code))
	assert.Zero(t, backend.calls)
}

func TestSignInPropagatesBackendError(t *testing.T) {
	backend := &authBackendStub{err: appErrors.Clone(appErrors.ErrUpstream, "login failed")}
	store := &authStoreStub{}
	svc := NewAuthService(backend, store, nil, nil)

	_, err := svc.SignIn(context.Background(), validLogin())
	require.Error(t, err)
	assert.Nil(t, store.saved)
}

func TestSignOutClearsEverything(t *testing.T) {
	store := &authStoreStub{state: signedInState()}
	svc := NewAuthService(&authBackendStub{}, store, nil, nil)

	require.NoError(t, svc.SignOut(context.Background()))
	assert.True(t, store.cleared)
}

func TestStatusWithoutSession(t *testing.T) {
	svc := NewAuthService(&authBackendStub{}, &authStoreStub{}, nil, nil)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.SignedIn)
	assert.Nil(t, status.TokenExpiry)
}

func TestStatusReportsSemesterSelection(t *testing.T) {
	store := &authStoreStub{state: signedInState()}
	svc := NewAuthService(&authBackendStub{}, store, nil, nil)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.SignedIn)
	assert.Equal(t, "VL2026271", status.SemesterID)
	assert.Equal(t, "Fall 2026-27", status.SemesterName)
}
