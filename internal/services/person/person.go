// Package services содержит логику бизнес-уровня для работы с профилями:
// выбор текущего профиля, создание, обновление, слияние и архивация.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ekazakovv/clients-hub/internal/lib/birthdate"
	"github.com/ekazakovv/clients-hub/internal/models"
	"github.com/ekazakovv/clients-hub/internal/remote"
)

// BootstrapLocationID локация по умолчанию для профиля, создаваемого
// автоматически при первом входе зарегистрированного аккаунта.
const BootstrapLocationID = "611b76e43254b616974142d0"

// Режимы операции archive бэкенда.
const (
	ArchiveModeArchive = "archive"
	ArchiveModeRestore = "restore"
)

// Gateway описывает контракт клиента бэкенда, используемый сервисом профилей.
type Gateway interface {
	// GetUserInfo возвращает снимок аккаунта с профилями в серверном порядке.
	GetUserInfo(ctx context.Context, token, phone string, orders, services int) (*models.UserInfo, error)
	// CreatePerson создаёт профиль с пустым id, бэкенд присваивает ProfileId.
	CreatePerson(ctx context.Context, token string, fields remote.ProfileFields) (*models.Person, error)
	// UpdatePerson обновляет профиль по существующему ProfileId.
	UpdatePerson(ctx context.Context, token, profileID string, fields remote.ProfileFields) (*models.Person, error)
	// MergeProfiles поглощает перечисленные профили в main.
	MergeProfiles(ctx context.Context, token, main string, merged []string) error
	// ArchivePerson архивирует или восстанавливает профиль.
	ArchivePerson(ctx context.Context, token, personID, mode string) error
	// SetDefaultProfile назначает профиль по умолчанию и возвращает его.
	SetDefaultProfile(ctx context.Context, token, personID string) (*models.Person, error)
}

// ResolutionError возникает только в составной операции создать-и-назначить:
// сбой любого из двух шагов прерывает резолюцию целиком,
// частично созданное состояние успехом не считается.
type ResolutionError struct {
	Step string // Шаг, на котором произошёл сбой: "create" или "switch"
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("person resolution failed at %s: %v", e.Step, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// PersonService реализует выбор текущего профиля и операции над профилями.
type PersonService struct {
	gateway Gateway
	log     *slog.Logger
}

// NewPersonService создает новый экземпляр PersonService.
func NewPersonService(gateway Gateway, log *slog.Logger) *PersonService {
	return &PersonService{
		gateway: gateway,
		log:     log,
	}
}

// Candidates возвращает профили, пригодные для выбора текущим:
// без архивных и без поглощённых слиянием. Серверный порядок сохраняется,
// никакой дополнительной сортировки не вводится.
func Candidates(persons []models.Person) []models.Person {
	absorbed := make(map[string]struct{})
	for _, p := range persons {
		for _, id := range p.MergedPersons {
			absorbed[id] = struct{}{}
		}
	}

	// Пустой набор сериализуется в [], а не в null
	out := []models.Person{}
	for _, p := range persons {
		if p.Archived {
			continue
		}
		if _, ok := absorbed[p.ProfileID]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Find ищет профиль по точному совпадению ProfileId.
func Find(persons []models.Person, profileID string) (*models.Person, bool) {
	for i := range persons {
		if persons[i].ProfileID == profileID {
			return &persons[i], true
		}
	}
	return nil, false
}

// ResolveCurrent определяет текущий профиль для снимка аккаунта.
//
// Незарегистрированный аккаунт — валидное терминальное состояние,
// возвращается (nil, nil) без единого вызова бэкенда. Назначенный
// профиль по умолчанию возвращается как есть. Иначе берётся первый
// пригодный профиль в серверном порядке, а при полном отсутствии
// профилей создаётся новый из полей самого аккаунта и сразу
// назначается по умолчанию.
func (s *PersonService) ResolveCurrent(ctx context.Context, token string, info *models.UserInfo) (*models.Person, error) {
	if !info.Account.Registered {
		return nil, nil
	}

	if info.DefaultPerson != nil && info.DefaultPerson.ProfileID != "" {
		return info.DefaultPerson, nil
	}

	if candidates := Candidates(info.Persons); len(candidates) > 0 {
		return &candidates[0], nil
	}

	return s.createAndSwitch(ctx, token, info.Account)
}

// createAndSwitch составной переход создать-и-назначить. Профиль заполняется
// полями аккаунта дословно, дата рождения приводится к DD-MM-YYYY.
// Компенсации при сбое второго шага нет: созданный профиль останется
// видимым при следующем чтении списка и не будет потерян.
func (s *PersonService) createAndSwitch(ctx context.Context, token string, account models.Account) (*models.Person, error) {
	bd, err := birthdate.Format(account.BirthDate)
	if err != nil {
		return nil, &ResolutionError{Step: "create", Err: err}
	}

	created, err := s.gateway.CreatePerson(ctx, token, remote.ProfileFields{
		LastName:        account.LastName,
		FirstName:       account.FirstName,
		MiddleName:      account.MiddleName,
		BirthDate:       bd,
		Gender:          account.Gender,
		Email:           account.Email,
		DefaultLocation: BootstrapLocationID,
	})
	if err != nil {
		return nil, &ResolutionError{Step: "create", Err: err}
	}
	s.log.Info("created bootstrap person", slog.String("profile_id", created.ProfileID))

	current, err := s.gateway.SetDefaultProfile(ctx, token, created.ProfileID)
	if err != nil {
		return nil, &ResolutionError{Step: "switch", Err: err}
	}
	return current, nil
}

// Create создаёт профиль из данных запроса.
func (s *PersonService) Create(ctx context.Context, token string, req models.DummyPerson) (*models.Person, error) {
	return s.gateway.CreatePerson(ctx, token, fieldsFromDummy(req))
}

// Update обновляет профиль по ProfileId. Устаревший или архивный id
// отклонит бэкенд — предварительной проверки нет.
func (s *PersonService) Update(ctx context.Context, token, profileID string, req models.DummyPerson) (*models.Person, error) {
	return s.gateway.UpdatePerson(ctx, token, profileID, fieldsFromDummy(req))
}

// Merge поглощает профили merged в main. Слитые ProfileId после этого
// мертвы: сервис не правит локальное состояние, вызывающий обязан
// заново получить снимок аккаунта и повторить резолюцию.
func (s *PersonService) Merge(ctx context.Context, token, main string, merged []string) error {
	return s.gateway.MergeProfiles(ctx, token, main, merged)
}

// Archive переводит профиль в архив или восстанавливает его.
// Архивный профиль исключается из кандидатов до восстановления.
func (s *PersonService) Archive(ctx context.Context, token, personID, mode string) error {
	return s.gateway.ArchivePerson(ctx, token, personID, mode)
}

// SwitchCurrent явное назначение текущего профиля пользователем.
// Автоматический выбор при этом не участвует: назначенный профиль
// станет defaultPerson в следующем снимке аккаунта.
func (s *PersonService) SwitchCurrent(ctx context.Context, token, personID string) (*models.Person, error) {
	return s.gateway.SetDefaultProfile(ctx, token, personID)
}

// Orders возвращает заказы профиля из свежего снимка аккаунта.
// Отсутствие профиля или заказов — пустой список, не ошибка.
func (s *PersonService) Orders(ctx context.Context, token, phone, profileID string) ([]models.Order, error) {
	info, err := s.gateway.GetUserInfo(ctx, token, phone, 1, 0)
	if err != nil {
		return nil, err
	}
	person, ok := Find(info.Persons, profileID)
	if !ok || person.Orders == nil {
		return []models.Order{}, nil
	}
	return person.Orders, nil
}

func fieldsFromDummy(req models.DummyPerson) remote.ProfileFields {
	return remote.ProfileFields{
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		BirthDate:       req.BirthDate,
		Gender:          req.Gender,
		Email:           req.Email,
		DefaultLocation: req.LocationID,
	}
}
