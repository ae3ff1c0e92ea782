package models

// OrderStatus — состояние заказа относительно внешней фабрики.
type OrderStatus string

const (
	// OrderStatusPending — заказ сохранен, подтверждение фабрики еще не получено.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusFulfilled — фабрика подтвердила заказ и выдала токен выдачи.
	OrderStatusFulfilled OrderStatus = "fulfilled"
	// OrderStatusFailed — фабрика отклонила заказ или вызов завершился ошибкой.
	OrderStatusFailed OrderStatus = "failed"
)

// Order представляет заказ посетителя в конкретной точке продаж франшизы.
type Order struct {
	ID          int         `json:"id"`
	DinerID     int         `json:"dinerId,omitempty"`
	FranchiseID int         `json:"franchiseId"`
	StoreID     int         `json:"storeId"`
	Items       []OrderItem `json:"items"`
	Status      OrderStatus `json:"-"`
	ReportURL   string      `json:"-"`
}

// OrderItem — позиция заказа со снимком цены на момент оформления.
type OrderItem struct {
	MenuID      int     `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
