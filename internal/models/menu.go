package models

// MenuItem — позиция общего меню. Меню только пополняется,
// удаление позиций не предусмотрено.
type MenuItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}
