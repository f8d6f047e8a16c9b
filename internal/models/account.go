// Package models содержит доменные структуры личного кабинета:
// аккаунт, профили (persons), заказы, локации и сессии.
// Структуры используются в бизнес-логике и при обмене с бэкендом.
package models

// Account представляет учётную запись, привязанную к номеру телефона.
// Поля приходят из операции info бэкенда в camelCase.
type Account struct {
	Phone        string `json:"phone"`        // Номер телефона, основной идентификатор входа
	Registered   bool   `json:"registered"`   // Завершена ли регистрация аккаунта
	LastName     string `json:"lastName"`     // Фамилия
	FirstName    string `json:"firstName"`    // Имя
	MiddleName   string `json:"middleName"`   // Отчество
	Email        string `json:"email"`        // Электронная почта
	Gender       string `json:"gender"`       // Пол
	BirthDate    string `json:"birthDate"`    // Дата рождения в формате бэкенда
	LoyaltyAgree bool   `json:"loyaltyAgree"` // Согласие на программу лояльности
}

// UserInfo агрегированный ответ операции info: аккаунт под ключом
// account, профили в порядке, возвращённом бэкендом, и необязательный
// default_person.
type UserInfo struct {
	Account       Account  `json:"account"`
	Persons       []Person `json:"persons"`
	DefaultPerson *Person  `json:"default_person,omitempty"`
}
