package merge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) Merge(ctx context.Context, token, main string, merged []string) error {
	return m.Called(ctx, token, main, merged).Error(0)
}

type DispatcherMock struct{ mock.Mock }

func (m *DispatcherMock) Publish(event models.Event) {
	m.Called(event)
}

func TestMergeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	session := &models.Session{UID: "uid-1", Phone: "+79990001122", AccessToken: "backend-token"}

	tests := []struct {
		name           string
		body           string
		withSession    bool
		setupMocks     func(s *MockService, d *DispatcherMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное объединение профилей",
			body:        `{"main":"p1","merged":["p2","p3"]}`,
			withSession: true,
			setupMocks: func(s *MockService, d *DispatcherMock) {
				s.On("Merge", mock.Anything, "backend-token", "p1", []string{"p2", "p3"}).Return(nil).Once()
				d.On("Publish", mock.MatchedBy(func(e models.Event) bool {
					return e.Name == models.EventPersonMerged && e.Phone == "+79990001122"
				})).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "пустой список поглощаемых отклоняется",
			body:           `{"main":"p1","merged":[]}`,
			withSession:    true,
			setupMocks:     func(_ *MockService, _ *DispatcherMock) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "отсутствует главный профиль",
			body:           `{"merged":["p2"]}`,
			withSession:    true,
			setupMocks:     func(_ *MockService, _ *DispatcherMock) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Main is a required field`,
		},
		{
			name:           "запрос без сессии",
			body:           `{"main":"p1","merged":["p2"]}`,
			withSession:    false,
			setupMocks:     func(_ *MockService, _ *DispatcherMock) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:        "ошибка бэкенда без события",
			body:        `{"main":"p1","merged":["p2"]}`,
			withSession: true,
			setupMocks: func(s *MockService, _ *DispatcherMock) {
				s.On("Merge", mock.Anything, "backend-token", "p1", []string{"p2"}).
					Return(errors.New("backend down")).Once()
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"could not merge persons"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			dispatcher := new(DispatcherMock)
			tt.setupMocks(service, dispatcher)

			handler := New(logger, service, dispatcher)

			req := httptest.NewRequest(http.MethodPost, "/persons/merge", strings.NewReader(tt.body))
			if tt.withSession {
				ctx := context.WithValue(req.Context(), middlewarectx.SessionKey, session)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
			dispatcher.AssertExpectations(t)
		})
	}
}
