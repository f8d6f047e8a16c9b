package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekazakovv/clients-hub/internal/models"
)

type AuthenticatorMock struct{ mock.Mock }

func (m *AuthenticatorMock) Authenticate(ctx context.Context, tokenStr string) (*models.Session, error) {
	args := m.Called(ctx, tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSessionMiddleware(t *testing.T) {
	session := &models.Session{
		UID:         "uid-1",
		Phone:       "+79990001122",
		AccessToken: "backend-token",
	}

	tests := []struct {
		name        string
		authHeader  string
		setupMocks  func(a *AuthenticatorMock)
		wantStatus  int
		wantSession bool
	}{
		{
			name:       "valid token puts session into context",
			authHeader: "Bearer good-jwt",
			setupMocks: func(a *AuthenticatorMock) {
				a.On("Authenticate", mock.Anything, "good-jwt").Return(session, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantSession: true,
		},
		{
			name:       "missing header is rejected",
			authHeader: "",
			setupMocks: func(_ *AuthenticatorMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer header is rejected",
			authHeader: "Basic dXNlcg==",
			setupMocks: func(_ *AuthenticatorMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired session is rejected",
			authHeader: "Bearer stale-jwt",
			setupMocks: func(a *AuthenticatorMock) {
				a.On("Authenticate", mock.Anything, "stale-jwt").
					Return(nil, errors.New("session expired")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(AuthenticatorMock)
			tt.setupMocks(auth)

			var gotSession *models.Session
			var reached bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotSession, _ = SessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			SessionMiddleware(auth, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantSession {
				require.True(t, reached)
				assert.Equal(t, session, gotSession)
			} else {
				assert.False(t, reached)
			}
			auth.AssertExpectations(t)
		})
	}
}

func TestSessionFromContext_Missing(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)
}
