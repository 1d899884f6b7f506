package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/Stewz00/rpmwiki-auth/internal/credential"
	"github.com/Stewz00/rpmwiki-auth/internal/service"
	"github.com/Stewz00/rpmwiki-auth/internal/test"
	"github.com/Stewz00/rpmwiki-auth/internal/token"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, repo *test.MockUserRepository) *AuthHandler {
	t.Helper()

	issuer, err := token.NewIssuer("test-secret")
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()

	transformer := credential.NewTransformer(credential.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32})
	authService := service.NewRegistrationService(repo, transformer, issuer, log, time.Second)
	return NewAuthHandler(authService, log)
}

func TestAuthHandler_Register(t *testing.T) {
	handler := newTestHandler(t, test.NewMockUserRepository())

	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "valid registration",
			body:           `{"userName":"alice","email":"alice@x.com","password":"secret1"}`,
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing user name",
			body:           `{"email":"alice@x.com","password":"secret1"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgBadRequest,
		},
		{
			name:           "missing password",
			body:           `{"userName":"alice","email":"alice@x.com"}`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"userName":`,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    MsgBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.Register(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, response["message"])
				return
			}

			assert.NotEmpty(t, response["token"])
			user, ok := response["user"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "alice", user["userName"])
			assert.Equal(t, "alice@x.com", user["email"])
			assert.NotEmpty(t, user["id"])
			assert.Len(t, user, 3)
		})
	}
}

func TestAuthHandler_Register_StorageFailure(t *testing.T) {
	repo := test.NewMockUserRepository()
	repo.CreateErr = fmt.Errorf("insert failed: pq: connection refused: %w", apperrors.ErrStorage)
	handler := newTestHandler(t, repo)

	body := `{"userName":"alice","email":"alice@x.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, w.Body.String())
}

func TestAuthHandler_Register_BodyTooLarge(t *testing.T) {
	repo := test.NewMockUserRepository()
	handler := newTestHandler(t, repo)

	padding := strings.Repeat("a", MaxBodyBytes)
	body := fmt.Sprintf(`{"userName":"alice","email":"alice@x.com","password":%q}`, padding)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"message":"Request Entity Too Large"}`, w.Body.String())
	assert.Equal(t, 0, repo.CreateCalls())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"invalid input", fmt.Errorf("register: %w", apperrors.ErrInvalidInput), http.StatusBadRequest, MsgBadRequest},
		{"validation", fmt.Errorf("create user: %w", apperrors.ErrValidation), http.StatusBadRequest, MsgBadRequest},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests, MsgTooManyRequests},
		{"storage", fmt.Errorf("create user: %w", apperrors.ErrStorage), http.StatusInternalServerError, MsgInternalError},
		{"body too large", &http.MaxBytesError{Limit: MaxBodyBytes}, http.StatusRequestEntityTooLarge, MsgTooLarge},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := StatusFor(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, message)

			w := httptest.NewRecorder()
			assert.Equal(t, tt.wantCode, WriteError(w, tt.err))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}
