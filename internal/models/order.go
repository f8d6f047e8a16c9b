package models

// Order представляет заказ профиля. Список заказов приходит внутри
// профиля из операции info при orders=1.
type Order struct {
	ID         string `json:"Id"`
	Number     string `json:"Number,omitempty"`
	Date       string `json:"Date,omitempty"`
	Status     string `json:"Status,omitempty"`
	CentersURL string `json:"CentersUrl,omitempty"` // Адрес центра для счёта на оплату
}
