package create

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
	"github.com/magabrotheeeer/pizza-orders/internal/services/order"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, diner *models.User, o models.Order) (*order.Result, error) {
	args := m.Called(ctx, diner, o)
	result, _ := args.Get(0).(*order.Result)
	return result, args.Error(1)
}

func TestCreateOrderHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	diner := &models.User{ID: 5, Name: "pizza diner", Email: "d@test.com",
		Roles: []models.RoleGrant{{Role: models.RoleDiner}}}

	validBody := Request{
		FranchiseID: 1,
		StoreID:     1,
		Items:       []Item{{MenuID: 1, Description: "Veggie", Price: 0.05}},
	}
	fulfilled := &models.Order{ID: 42, DinerID: 5, FranchiseID: 1, StoreID: 1,
		Items:  []models.OrderItem{{MenuID: 1, Description: "Veggie", Price: 0.05}},
		Status: models.OrderStatusFulfilled}

	tests := []struct {
		name           string
		requestBody    interface{}
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное оформление заказа",
			requestBody: validBody,
			user:        diner,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, diner, mock.AnythingOfType("models.Order")).
					Return(&order.Result{Order: fulfilled, JWT: "factory-jwt", ReportURL: "http://factory/report/42"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"jwt":"factory-jwt"`,
		},
		{
			name:        "отказ фабрики сохраняет ссылку на отчет",
			requestBody: validBody,
			user:        diner,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, diner, mock.AnythingOfType("models.Order")).
					Return(nil, &models.FulfillmentError{ReportURL: "http://factory/report/failed"})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"reportUrl":"http://factory/report/failed"`,
		},
		{
			name:        "неизвестная позиция меню",
			requestBody: validBody,
			user:        diner,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, diner, mock.AnythingOfType("models.Order")).
					Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid order item"}`,
		},
		{
			name:        "цена не совпадает с меню",
			requestBody: validBody,
			user:        diner,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, diner, mock.AnythingOfType("models.Order")).
					Return(nil, models.ErrPriceMismatch)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid order item"}`,
		},
		{
			name:           "заказ без позиций",
			requestBody:    Request{FranchiseID: 1, StoreID: 1},
			user:           diner,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Items is a required field`,
		},
		{
			name:           "запрос без аутентификации",
			requestBody:    validBody,
			user:           nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader(body))
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
