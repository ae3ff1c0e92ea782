package storecreate

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

// MockService реализует интерфейс storecreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateStore(ctx context.Context, franchiseID int, name string) (*models.Store, error) {
	args := m.Called(ctx, franchiseID, name)
	store, _ := args.Get(0).(*models.Store)
	return store, args.Error(1)
}

func TestStoreCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	admin := &models.User{ID: 1, Roles: []models.RoleGrant{{Role: models.RoleAdmin}}}
	franchisee := &models.User{ID: 3, Roles: []models.RoleGrant{
		{Role: models.RoleDiner},
		{Role: models.RoleFranchisee, ObjectID: 10},
	}}

	created := &models.Store{ID: 4, Name: "SLC"}

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
			name:        "франчайзи создает точку в своей франшизе",
			urlID:       "10",
			requestBody: Request{Name: "SLC"},
			user:        franchisee,
			setupMock: func(m *MockService) {
				m.On("CreateStore", mock.Anything, 10, "SLC").Return(created, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"SLC"`,
		},
		{
			name:        "админ создает точку в любой франшизе",
			urlID:       "11",
			requestBody: Request{Name: "SLC"},
			user:        admin,
			setupMock: func(m *MockService) {
				m.On("CreateStore", mock.Anything, 11, "SLC").Return(created, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"SLC"`,
		},
		{
			name:           "франчайзи не может создать точку в чужой франшизе",
			urlID:          "11",
			requestBody:    Request{Name: "SLC"},
			user:           franchisee,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"message":"unable to create a store"}`,
		},
		{
			name:        "франшиза не найдена",
			urlID:       "99",
			requestBody: Request{Name: "SLC"},
			user:        admin,
			setupMock: func(m *MockService) {
				m.On("CreateStore", mock.Anything, 99, "SLC").Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"franchise not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/franchise/"+tt.urlID+"/store", bytes.NewReader(body))
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
