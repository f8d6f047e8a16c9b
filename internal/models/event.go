package models

// Event описывает событие смены состояния, публикуемое диспетчером
// после успешной операции ядра. Payload сериализуется в JSON как есть.
type Event struct {
	Name    string `json:"name"`    // Имя события, оно же routing key
	Phone   string `json:"phone"`   // Телефон аккаунта, к которому относится событие
	Payload any    `json:"payload"` // Произвольные данные события
}

// Имена событий, публикуемых в обменник client-events.
const (
	EventLogin          = "client.login"
	EventCurrentChanged = "client.current_changed"
	EventPersonMerged   = "client.person_merged"
	EventPersonArchived = "client.person_archived"
	EventAccountDeleted = "client.account_deleted"
)
