package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Resolve(ctx context.Context, tokenStr string) (*models.User, error) {
	args := m.Called(ctx, tokenStr)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthMiddleware(t *testing.T) {
	diner := &models.User{ID: 2, Name: "diner", Roles: []models.RoleGrant{{Role: models.RoleDiner}}}

	tests := []struct {
		name       string
		authHeader string
		setupMock  func(m *ServiceMock)
		wantStatus int
		wantUser   *models.User
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			setupMock: func(m *ServiceMock) {
				m.On("Resolve", mock.Anything, "good-token").Return(diner, nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   diner,
		},
		{
			name:       "missing header",
			authHeader: "",
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic abc",
			setupMock:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "revoked token",
			authHeader: "Bearer revoked-token",
			setupMock: func(m *ServiceMock) {
				m.On("Resolve", mock.Anything, "revoked-token").
					Return(nil, models.ErrUnauthenticated)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			var gotUser *models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(svc, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantUser != nil {
				assert.Equal(t, tt.wantUser, gotUser)
			}
			svc.AssertExpectations(t)
		})
	}
}
