// Package authz реализует движок авторизации: чистую функцию решения
// allow/deny по ролям пользователя и цели действия. Отказ в доступе
// (ErrForbidden) отличается от отсутствия аутентификации (ErrUnauthenticated):
// вызывающая сторона всегда может различить "кто вы" и "вам нельзя".
package authz

import (
	"github.com/magabrotheeeer/pizza-orders/internal/models"
)

// Action — закрытое перечисление авторизуемых действий.
// Действия только для чтения (список франшиз, меню) сюда не входят:
// они доступны без авторизации.
type Action int

const (
	// ActionCreateFranchise — создание франшизы.
	ActionCreateFranchise Action = iota
	// ActionDeleteFranchise — удаление франшизы.
	ActionDeleteFranchise
	// ActionCreateStore — создание точки продаж внутри франшизы.
	ActionCreateStore
	// ActionDeleteStore — удаление точки продаж внутри франшизы.
	ActionDeleteStore
	// ActionAddMenuItem — добавление позиции в общее меню.
	ActionAddMenuItem
	// ActionUpdateUser — изменение профиля пользователя.
	ActionUpdateUser
	// ActionViewUserFranchises — просмотр франшиз пользователя.
	ActionViewUserFranchises
)

// Target — объект действия: пользователь и/или франшиза.
type Target struct {
	UserID      int
	FranchiseID int
}

// Authorize принимает решение о допуске пользователя к действию.
// Правила проверяются по приоритету, первое совпадение выигрывает:
//  1. Глобальный admin — всегда allow.
//  2. Действие над собственным профилем — allow независимо от роли.
//  3. Franchisee — allow для точек продаж своей франшизы.
//  4. Остальные мутации — deny.
func Authorize(user *models.User, action Action, target Target) error {
	if user == nil {
		return models.ErrUnauthenticated
	}
	if user.HasRole(models.RoleAdmin) {
		return nil
	}

	switch action {
	case ActionUpdateUser, ActionViewUserFranchises:
		if user.ID == target.UserID {
			return nil
		}
		return models.ErrForbidden
	case ActionCreateStore, ActionDeleteStore:
		if user.IsFranchiseeOf(target.FranchiseID) {
			return nil
		}
		return models.ErrForbidden
	case ActionCreateFranchise, ActionDeleteFranchise, ActionAddMenuItem:
		return models.ErrForbidden
	}
	return models.ErrForbidden
}
