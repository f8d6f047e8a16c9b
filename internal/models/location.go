package models

// Location представляет точку обслуживания. Сами локации принадлежат
// внешнему справочнику и читаются из хранилища по ID; профиль ссылается
// на локацию через DefaultLocation.
type Location struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Address string `json:"address,omitempty"`
}
