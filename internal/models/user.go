// Package models содержит доменные структуры сервиса заказа пиццы:
// пользователей с ролями, франшизы с точками продаж, меню и заказы.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// Role — закрытое перечисление ролей пользователя.
type Role string

const (
	// RoleDiner — обычный посетитель, может оформлять заказы.
	RoleDiner Role = "diner"
	// RoleAdmin — глобальный администратор, разрешены любые действия.
	RoleAdmin Role = "admin"
	// RoleFranchisee — администратор конкретной франшизы (ObjectID = id франшизы).
	RoleFranchisee Role = "franchisee"
)

// RoleGrant привязывает роль к пользователю. Для роли franchisee
// поле ObjectID содержит id франшизы, для остальных ролей оно равно нулю.
type RoleGrant struct {
	Role     Role `json:"role"`
	ObjectID int  `json:"objectId,omitempty"`
}

// User представляет зарегистрированного пользователя системы.
// Хэш пароля никогда не сериализуется в ответы API.
type User struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Roles        []RoleGrant `json:"roles"`
}

// HasRole сообщает, есть ли у пользователя указанная роль (без учета объекта).
func (u *User) HasRole(role Role) bool {
	for _, grant := range u.Roles {
		if grant.Role == role {
			return true
		}
	}
	return false
}

// IsFranchiseeOf сообщает, является ли пользователь администратором франшизы.
func (u *User) IsFranchiseeOf(franchiseID int) bool {
	for _, grant := range u.Roles {
		if grant.Role == RoleFranchisee && grant.ObjectID == franchiseID {
			return true
		}
	}
	return false
}
