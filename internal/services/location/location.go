// Package services содержит логику согласования локации текущего профиля
// с локацией, выбранной пользователем.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ekazakovv/clients-hub/internal/models"
	"github.com/ekazakovv/clients-hub/internal/remote"
)

// Gateway описывает путь записи локации в профиль на бэкенде.
type Gateway interface {
	UpdatePerson(ctx context.Context, token, profileID string, fields remote.ProfileFields) (*models.Person, error)
}

// Store описывает чтение справочника локаций. Справочником владеет
// внешний сервис, здесь доступно только чтение по ключу.
type Store interface {
	Get(key string, result any) (bool, error)
}

// LocationService согласует сохранённую в профиле локацию с выбранной.
type LocationService struct {
	gateway Gateway
	store   Store
	log     *slog.Logger
}

// NewLocationService создает новый экземпляр LocationService.
func NewLocationService(gateway Gateway, store Store, log *slog.Logger) *LocationService {
	return &LocationService{
		gateway: gateway,
		store:   store,
		log:     log,
	}
}

// StoreKey ключ локации в справочнике.
func StoreKey(locationID string) string {
	return fmt.Sprintf("location:%s", locationID)
}

// Sync согласует локацию профиля с выбранной пользователем.
//
// Если выбранной локации нет, принимается сохранённая в профиле —
// только чтение, без записи на бэкенд. Если выбранная отличается от
// сохранённой, новая связь уходит на бэкенд через обновление профиля,
// затем правится локальный профиль: последняя запись побеждает,
// слияния конфликтующих правок нет.
func (s *LocationService) Sync(ctx context.Context, token string, person *models.Person, selectedID string) (*models.Location, error) {
	if person == nil {
		return nil, nil
	}

	if selectedID == "" {
		if person.DefaultLocation == "" {
			return nil, nil
		}
		return s.lookup(person.DefaultLocation)
	}

	if selectedID != person.DefaultLocation {
		if _, err := s.gateway.UpdatePerson(ctx, token, person.ProfileID, fieldsFromPerson(person, selectedID)); err != nil {
			return nil, err
		}
		person.DefaultLocation = selectedID
	}
	return s.lookup(selectedID)
}

// lookup читает локацию из справочника. Отсутствие записи не ошибка:
// возвращается локация с одним лишь идентификатором.
func (s *LocationService) lookup(locationID string) (*models.Location, error) {
	var loc models.Location
	found, err := s.store.Get(StoreKey(locationID), &loc)
	if err != nil {
		return nil, err
	}
	if !found {
		s.log.Warn("location is not in the store", slog.String("location_id", locationID))
		return &models.Location{ID: locationID}, nil
	}
	return &loc, nil
}

func fieldsFromPerson(p *models.Person, locationID string) remote.ProfileFields {
	return remote.ProfileFields{
		LastName:        p.LastName,
		FirstName:       p.FirstName,
		MiddleName:      p.MiddleName,
		BirthDate:       p.BirthDate,
		Gender:          p.Gender,
		Email:           p.Email,
		DefaultLocation: locationID,
	}
}
