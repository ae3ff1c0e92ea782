package models

// Franchise представляет франшизу с её администраторами и точками продаж.
type Franchise struct {
	ID     int              `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins"`
	Stores []Store          `json:"stores"`
}

// FranchiseAdmin — администратор франшизы, ссылка на зарегистрированного пользователя.
type FranchiseAdmin struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store — точка продаж, принадлежащая ровно одной франшизе.
// TotalRevenue агрегируется из заказов при выдаче списков.
type Store struct {
	ID           int     `json:"id"`
	FranchiseID  int     `json:"-"`
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"totalRevenue,omitempty"`
}
