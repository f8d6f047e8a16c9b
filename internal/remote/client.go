// Package remote реализует клиент бэкенда личного кабинета.
//
// Бэкенд предоставляет три endpoint'а: clients — операции с аккаунтом
// и профилями, results — выдача результатов заказов, account —
// обновление данных аккаунта. Все принимают POST с JSON и отвечают
// полем res ("ok" или "error").
//
// Клиент не делает повторных попыток: транспортные ошибки и ошибки
// бэкенда возвращаются вызывающему без изменений.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ekazakovv/clients-hub/internal/config"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// Client клиент операций бэкенда личного кабинета.
type Client struct {
	clientsURL string
	resultsURL string
	accountURL string
	httpClient *http.Client
}

// NewClient создаёт новый клиент бэкенда по настройкам из конфига.
func NewClient(cfg config.Backend) *Client {
	return &Client{
		clientsURL: cfg.ClientsURL,
		resultsURL: cfg.ResultsURL,
		accountURL: cfg.AccountURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// post отправляет тело на url и возвращает сырой ответ после проверки
// res == "error". Ошибка бэкенда приходит как *GatewayError.
func (c *Client) post(ctx context.Context, op, url string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("remote.%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("remote.%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote.%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote.%s: unexpected status: %s", op, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote.%s: %w", op, err)
	}

	var st status
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("remote.%s: %w", op, err)
	}
	if st.Res == "error" {
		return nil, &GatewayError{Op: op, Message: st.Error}
	}
	return raw, nil
}

// callClients выполняет операцию endpoint'а clients и декодирует ответ в out.
func (c *Client) callClients(ctx context.Context, op string, params, out any) error {
	raw, err := c.post(ctx, op, c.clientsURL, envelope{Operation: op, Params: params})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote.%s: %w", op, err)
	}
	return nil
}

// GetOtp запрашивает отправку одноразового кода на телефон.
func (c *Client) GetOtp(ctx context.Context, phone string) error {
	return c.callClients(ctx, opGetOtp, otpParams{Phone: phone}, nil)
}

// GetToken обменивает телефон и одноразовый код на токен доступа.
func (c *Client) GetToken(ctx context.Context, phone, otp string) (string, error) {
	var resp tokenResponse
	if err := c.callClients(ctx, opGetToken, tokenParams{Phone: phone, Otp: otp}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// GetUserInfo возвращает снимок аккаунта: учётную запись, профили
// в серверном порядке и профиль по умолчанию, если он назначен.
// Флаги orders и services управляют детализацией ответа.
func (c *Client) GetUserInfo(ctx context.Context, token, phone string, orders, services int) (*models.UserInfo, error) {
	var resp infoResponse
	params := infoParams{Phone: phone, Token: token, Orders: orders, Services: services}
	if err := c.callClients(ctx, opInfo, params, &resp); err != nil {
		return nil, err
	}
	return &resp.UserInfo, nil
}

// RegisterAccount завершает регистрацию аккаунта. Пустые имя и отчество
// отправляются одиночным пробелом — бэкенд не принимает пустые строки.
func (c *Client) RegisterAccount(ctx context.Context, token string, fields RegisterFields) error {
	params := registerParams{
		Token:        token,
		LastName:     fields.LastName,
		MiddleName:   orSpace(fields.MiddleName),
		FirstName:    orSpace(fields.FirstName),
		Email:        fields.Email,
		Gender:       fields.Gender,
		BirthDate:    fields.BirthDate,
		LoyaltyAgree: "Y",
	}
	return c.callClients(ctx, opRegister, params, nil)
}

// UpdateAccount обновляет редактируемые поля аккаунта на выделенном
// endpoint'е и возвращает аккаунт в обновлённом виде.
func (c *Client) UpdateAccount(ctx context.Context, token string, fields AccountFields) (*models.Account, error) {
	body := accountRequest{
		Token:      token,
		LastName:   fields.LastName,
		FirstName:  orSpace(fields.FirstName),
		MiddleName: orSpace(fields.MiddleName),
		Email:      fields.Email,
		Gender:     fields.Gender,
		BirthDate:  fields.BirthDate,
	}
	raw, err := c.post(ctx, opUpdateAccount, c.accountURL, body)
	if err != nil {
		return nil, err
	}
	var resp accountResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("remote.%s: %w", opUpdateAccount, err)
	}
	return &resp.Account, nil
}

// CreatePerson создаёт новый профиль: id и ProfileId отправляются пустыми,
// бэкенд присваивает оба. Возвращает созданный профиль.
func (c *Client) CreatePerson(ctx context.Context, token string, fields ProfileFields) (*models.Person, error) {
	var resp profileResponse
	params := profileParams{Token: token, Profile: profilePayload{
		LastName:        fields.LastName,
		FirstName:       orSpace(fields.FirstName),
		MiddleName:      orSpace(fields.MiddleName),
		BirthDate:       fields.BirthDate,
		Gender:          fields.Gender,
		Email:           fields.Email,
		DefaultLocation: fields.DefaultLocation,
	}}
	if err := c.callClients(ctx, opUpdateProfile, params, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// UpdatePerson обновляет существующий профиль по его ProfileId.
// Устаревший или архивный id бэкенд отклоняет — клиент это не предпроверяет.
func (c *Client) UpdatePerson(ctx context.Context, token, profileID string, fields ProfileFields) (*models.Person, error) {
	var resp profileResponse
	params := profileParams{Token: token, Profile: profilePayload{
		ID:              profileID,
		ProfileID:       profileID,
		LastName:        fields.LastName,
		FirstName:       orSpace(fields.FirstName),
		MiddleName:      orSpace(fields.MiddleName),
		BirthDate:       fields.BirthDate,
		Gender:          fields.Gender,
		Email:           fields.Email,
		DefaultLocation: fields.DefaultLocation,
	}}
	if err := c.callClients(ctx, opUpdateProfile, params, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// MergeProfiles поглощает перечисленные профили в main. После слияния
// вызывающий обязан перечитать список профилей — клиент ничего не чинит сам.
func (c *Client) MergeProfiles(ctx context.Context, token, main string, merged []string) error {
	return c.callClients(ctx, opMergeProfiles, mergeParams{Token: token, Main: main, Merged: merged}, nil)
}

// ArchivePerson архивирует или восстанавливает профиль в зависимости от mode.
func (c *Client) ArchivePerson(ctx context.Context, token, personID, mode string) error {
	return c.callClients(ctx, opArchive, archiveParams{Token: token, Person: personID, Mode: mode}, nil)
}

// SetDefaultProfile назначает профиль по умолчанию и возвращает его
// из поля client.defaultPerson ответа.
func (c *Client) SetDefaultProfile(ctx context.Context, token, personID string) (*models.Person, error) {
	var resp switchResponse
	if err := c.callClients(ctx, opSetDefaultProfile, switchParams{Token: token, Person: personID}, &resp); err != nil {
		return nil, err
	}
	return resp.Client.DefaultPerson, nil
}

// DeleteProfile удаляет учётную запись целиком. Операция терминальная:
// токен после неё недействителен.
func (c *Client) DeleteProfile(ctx context.Context, token string) error {
	return c.callClients(ctx, opDeleteProfile, deleteParams{Token: token}, nil)
}

// orSpace подменяет пустую строку одиночным пробелом.
// Бэкенд отклоняет пустые необязательные поля имени.
func orSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}
