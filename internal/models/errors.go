package models

import (
	"errors"
	"fmt"
)

// Ошибки доменного уровня. Обработчики HTTP сопоставляют их со статусами
// ответов через errors.Is / errors.As.
var (
	// ErrNotFound — запрошенная сущность (пользователь, франшиза, позиция меню) не найдена.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated — токен отсутствует, отозван или не был выдан.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — пользователь аутентифицирован, но действие ему не разрешено.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials — неверная пара email/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPriceMismatch — цена позиции заказа не совпадает с текущей ценой меню.
	ErrPriceMismatch = errors.New("item price does not match menu price")
)

// FulfillmentError возвращается координатором заказов, когда вызов фабрики
// завершился неудачно. ReportURL сохраняется, если фабрика его вернула,
// чтобы операторы могли отследить попытку.
type FulfillmentError struct {
	ReportURL string
	Err       error
}

func (e *FulfillmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fulfill order at factory: %v", e.Err)
	}
	return "failed to fulfill order at factory"
}

func (e *FulfillmentError) Unwrap() error { return e.Err }
