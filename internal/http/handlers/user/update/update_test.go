package update

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateUser(ctx context.Context, id int, name, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, id, name, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	admin := &models.User{ID: 1, Roles: []models.RoleGrant{{Role: models.RoleAdmin}}}
	diner := &models.User{ID: 2, Roles: []models.RoleGrant{{Role: models.RoleDiner}}}

	updated := &models.User{ID: 2, Name: "new name", Email: "new@test.com",
		Roles: []models.RoleGrant{{Role: models.RoleDiner}}}

	tests := []struct {
		name           string
		urlID          string
		requestBody    interface{}
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "пользователь обновляет свой профиль",
			urlID:       "2",
			requestBody: Request{Name: "new name", Email: "new@test.com"},
			user:        diner,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, 2, "new name", "new@test.com", "").
					Return(updated, "reissued-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"reissued-token"`,
		},
		{
			name:        "админ обновляет чужой профиль",
			urlID:       "2",
			requestBody: Request{Password: "newpass"},
			user:        admin,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, 2, "", "", "newpass").
					Return(updated, "reissued-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user"`,
		},
		{
			name:           "пользователь не может обновить чужой профиль",
			urlID:          "1",
			requestBody:    Request{Name: "hacked"},
			user:           diner,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"message":"unauthorized"}`,
		},
		{
			name:           "запрос без аутентификации",
			urlID:          "2",
			requestBody:    Request{Name: "new name"},
			user:           nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
		{
			name:           "некорректный id в url",
			urlID:          "abc",
			requestBody:    Request{Name: "new name"},
			user:           diner,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid user id"}`,
		},
		{
			name:        "пользователь не найден",
			urlID:       "2",
			requestBody: Request{Name: "new name"},
			user:        admin,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, 2, "new name", "", "").
					Return(nil, "", models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"user not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/user/"+tt.urlID, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, tt.user))
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
