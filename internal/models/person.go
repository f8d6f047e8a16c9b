package models

// Person представляет профиль (члена семьи), принадлежащий аккаунту.
// Ключи JSON в PascalCase — так профили приходят из бэкенда.
// ProfileId присваивается сервером и пуст до первого сохранения.
type Person struct {
	ProfileID       string   `json:"ProfileId"`
	PersonID        string   `json:"PersonId,omitempty"`
	LastName        string   `json:"LastName"`
	FirstName       string   `json:"FirstName"`
	MiddleName      string   `json:"MiddleName"`
	BirthDate       string   `json:"BirthDate"` // Формат DD-MM-YYYY с ведущими нулями
	Gender          string   `json:"Gender"`
	Email           string   `json:"Email"`
	Phone           string   `json:"Phone,omitempty"`
	DefaultLocation string   `json:"DefaultLocation,omitempty"` // ID локации по умолчанию
	Orders          []Order  `json:"Orders,omitempty"`
	OrdersCount     int      `json:"OrdersCount,omitempty"`
	Archived        bool     `json:"Archived,omitempty"`
	MergedPersons   []string `json:"MergedPersons,omitempty"` // ProfileId поглощённых профилей
}

// DummyPerson используется для приёма данных профиля из JSON-запроса,
// прежде чем передавать их в шлюз. Даты приходят строками,
// чтобы их можно было валидировать и форматировать вручную.
type DummyPerson struct {
	LastName   string `json:"last_name" validate:"required"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	BirthDate  string `json:"birth_date" validate:"required,datetime=02-01-2006"` // Дата рождения в формате DD-MM-YYYY
	Gender     string `json:"gender" validate:"required,oneof=M F"`
	Email      string `json:"email" validate:"omitempty,email"`
	LocationID string `json:"location_id"`
}
