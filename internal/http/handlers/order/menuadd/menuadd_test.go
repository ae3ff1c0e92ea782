package menuadd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pizza-orders/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// MockService реализует интерфейс menuadd.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddMenuItem(ctx context.Context, item models.MenuItem) ([]models.MenuItem, error) {
	args := m.Called(ctx, item)
	menu, _ := args.Get(0).([]models.MenuItem)
	return menu, args.Error(1)
}

func TestMenuAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	admin := &models.User{ID: 1, Roles: []models.RoleGrant{{Role: models.RoleAdmin}}}
	franchisee := &models.User{ID: 3, Roles: []models.RoleGrant{
		{Role: models.RoleDiner},
		{Role: models.RoleFranchisee, ObjectID: 10},
	}}

	newItem := Request{Title: "Student", Description: "No topping, no sauce", Image: "pizza9.png", Price: 0.0001}
	fullMenu := []models.MenuItem{
		{ID: 1, Title: "Veggie", Description: "A garden of delight", Image: "pizza1.png", Price: 0.05},
		{ID: 2, Title: "Student", Description: "No topping, no sauce", Image: "pizza9.png", Price: 0.0001},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "админ добавляет позицию",
			requestBody: newItem,
			user:        admin,
			setupMock: func(m *MockService) {
				m.On("AddMenuItem", mock.Anything, models.MenuItem{
					Title: "Student", Description: "No topping, no sauce",
					Image: "pizza9.png", Price: 0.0001,
				}).Return(fullMenu, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Student"`,
		},
		{
			name:           "франчайзи не может менять меню",
			requestBody:    newItem,
			user:           franchisee,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"message":"unable to add menu item"}`,
		},
		{
			name:           "запрос без аутентификации",
			requestBody:    newItem,
			user:           nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
		{
			name:           "отсутствует цена",
			requestBody:    Request{Title: "Student", Description: "d", Image: "i"},
			user:           admin,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Price is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPut, "/api/order/menu", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserKey, tt.user))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
