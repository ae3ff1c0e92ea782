package factory

import "github.com/magabrotheeeer/pizza-orders/internal/models"

// Diner — данные посетителя, передаваемые фабрике вместе с заказом.
type Diner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderPayload — содержимое заказа в запросе к фабрике.
type OrderPayload struct {
	FranchiseID int                `json:"franchiseId"`
	StoreID     int                `json:"storeId"`
	Items       []models.OrderItem `json:"items"`
}

// ConfirmOrderRequest — тело запроса на подтверждение заказа.
type ConfirmOrderRequest struct {
	Diner Diner        `json:"diner"`
	Order OrderPayload `json:"order"`
}

// ConfirmOrderResponse — ответ фабрики. При успехе JWT содержит токен выдачи,
// ReportURL — ссылку на отчет о приготовлении.
type ConfirmOrderResponse struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}
