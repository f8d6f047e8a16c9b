package models

import "time"

// Session представляет серверную сессию после входа по OTP.
// Токен доступа к бэкенду хранится в сессии и подставляется
// в каждый запрос ядра; refresh-токен хранится только хэшем.
type Session struct {
	UID         string     // Уникальный идентификатор сессии
	Phone       string     // Телефон аккаунта
	AccessToken string     // Токен доступа к бэкенду
	RefreshHash string     // bcrypt-хэш refresh-токена
	ExpiresAt   time.Time  // Момент истечения сессии
	CreatedAt   *time.Time // Момент создания (заполняется базой)
}
