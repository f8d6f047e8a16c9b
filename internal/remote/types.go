package remote

import "github.com/ekazakovv/clients-hub/internal/models"

// Операции endpoint'а clients. Каждый запрос уходит конвертом
// {operation, params} и возвращает {res, error?, ...}.
const (
	opGetOtp            = "getOtp"
	opGetToken          = "getToken"
	opInfo              = "info"
	opRegister          = "register"
	opUpdateProfile     = "updateProfile"
	opMergeProfiles     = "mergeProfiles"
	opArchive           = "archive"
	opSetDefaultProfile = "setDefaultProfile"
	opDeleteProfile     = "deleteProfile"
)

// Операции endpoint'а результатов. Конверт у него плоский:
// {token, operation, order, options?}.
const (
	opResult       = "result"
	opEmailResult  = "email_res"
	opEmailInvoice = "email_invoice"
)

// Метка операции endpoint'а аккаунта, используется в ошибках.
const opUpdateAccount = "updateAccount"

// envelope общий конверт запроса к endpoint'у clients.
type envelope struct {
	Operation string `json:"operation"`
	Params    any    `json:"params"`
}

// status часть любого ответа бэкенда, по которой различаются успех и ошибка.
type status struct {
	Res   string `json:"res"`
	Error string `json:"error,omitempty"`
}

type otpParams struct {
	Phone string `json:"phone"`
}

type tokenParams struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type infoParams struct {
	Phone    string `json:"phone"`
	Token    string `json:"token"`
	Orders   int    `json:"orders"`
	Services int    `json:"services"`
}

type infoResponse struct {
	models.UserInfo
}

// RegisterFields данные завершения регистрации аккаунта.
type RegisterFields struct {
	LastName   string
	FirstName  string
	MiddleName string
	Email      string
	Gender     string
	BirthDate  string // Формат DD-MM-YYYY
}

// Ключи параметров операции register исторически однобуквенные.
type registerParams struct {
	Token        string `json:"token"`
	LastName     string `json:"l"`
	MiddleName   string `json:"m"`
	FirstName    string `json:"f"`
	Email        string `json:"e"`
	Gender       string `json:"g"`
	BirthDate    string `json:"bd"`
	LoyaltyAgree string `json:"la"`
}

// AccountFields редактируемые данные аккаунта для updateAccount.
type AccountFields struct {
	LastName   string
	FirstName  string
	MiddleName string
	Email      string
	Gender     string
	BirthDate  string // Формат DD-MM-YYYY
}

// accountRequest тело запроса к endpoint'у аккаунта. Конверта с params
// у него нет: токен и поля лежат на верхнем уровне.
type accountRequest struct {
	Token      string `json:"token"`
	LastName   string `json:"lastName"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	Email      string `json:"email"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birthDate"`
}

type accountResponse struct {
	Account models.Account `json:"account"`
}

// ProfileFields данные профиля для операций создания и обновления.
type ProfileFields struct {
	LastName        string
	FirstName       string
	MiddleName      string
	BirthDate       string // Формат DD-MM-YYYY
	Gender          string
	Email           string
	DefaultLocation string
}

type profileParams struct {
	Token   string         `json:"token"`
	Profile profilePayload `json:"profile"`
}

// profilePayload форма профиля в updateProfile. Пустые id и ProfileId
// означают создание нового профиля, непустые — обновление существующего.
type profilePayload struct {
	ID              string `json:"id"`
	ProfileID       string `json:"ProfileId"`
	LastName        string `json:"LastName"`
	FirstName       string `json:"FirstName"`
	MiddleName      string `json:"MiddleName"`
	BirthDate       string `json:"BirthDate"`
	Gender          string `json:"Gender"`
	Email           string `json:"Email"`
	DefaultLocation string `json:"DefaultLocation"`
}

type profileResponse struct {
	Profile models.Person `json:"profile"`
}

type mergeParams struct {
	Token  string   `json:"token"`
	Main   string   `json:"main"`
	Merged []string `json:"merged"`
}

type archiveParams struct {
	Token  string `json:"token"`
	Person string `json:"person"`
	Mode   string `json:"mode"`
}

type switchParams struct {
	Token  string `json:"token"`
	Person string `json:"person"`
}

type switchResponse struct {
	Client struct {
		DefaultPerson *models.Person `json:"defaultPerson"`
	} `json:"client"`
}

type deleteParams struct {
	Token string `json:"token"`
}
