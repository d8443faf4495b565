package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

type authServiceMock struct {
	status    *models.SessionStatus
	signInErr error
	outCalls  int
}

func (m *authServiceMock) SignIn(ctx context.Context, req dto.LoginRequest) (*models.SessionStatus, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.status, nil
}

func (m *authServiceMock) SignOut(ctx context.Context) error {
	m.outCalls++
	return nil
}

func (m *authServiceMock) Status(ctx context.Context) (*models.SessionStatus, error) {
	return m.status, nil
}

func TestAuthHandlerSignIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &authServiceMock{status: &models.SessionStatus{SignedIn: true, RegNo: "21BCE0001"}}
	handler := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.LoginRequest{
		UID: "uid-1", Email: "student@vitstudent.ac.in", RegNo: "21BCE0001", GoogleAccessToken: "ya29",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.SignIn(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"signed_in":true`)
}

func TestAuthHandlerSignInInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&authServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/session", bytes.NewReader([]byte(`not-json`)))
	c.Request = req

	handler.SignIn(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerSignInServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &authServiceMock{signInErr: appErrors.Clone(appErrors.ErrValidation, "only university accounts")}
	handler := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.LoginRequest{UID: "uid-1"})
	req, _ := http.NewRequest(http.MethodPost, "/auth/session", bytes.NewReader(body))
	c.Request = req

	handler.SignIn(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandlerSignOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &authServiceMock{}
	handler := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/auth/session", nil)
	c.Request = req

	handler.SignOut(c)
	// Status-only responses are flushed by the engine, not the handler.
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, mock.outCalls)
}
