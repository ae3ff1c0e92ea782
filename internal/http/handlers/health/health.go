// Package health предоставляет обработчик проверки живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// New возвращает обработчик, отвечающий 200 при живом сервисе.
//
// @Summary Проверка живости
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
