package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekazakovv/clients-hub/internal/models"
	"github.com/ekazakovv/clients-hub/internal/remote"
)

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) UpdatePerson(ctx context.Context, token, profileID string, fields remote.ProfileFields) (*models.Person, error) {
	args := m.Called(ctx, token, profileID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Person), args.Error(1)
}

type StoreMock struct{ mock.Mock }

func (m *StoreMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if loc, ok := args.Get(2).(*models.Location); ok && loc != nil {
		raw, _ := json.Marshal(loc)
		_ = json.Unmarshal(raw, result)
	}
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLocationService_Sync(t *testing.T) {
	t.Run("nil person is a no-op", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		svc := NewLocationService(gw, store, newNoopLogger())

		loc, err := svc.Sync(context.Background(), "token", nil, "loc-1")

		assert.NoError(t, err)
		assert.Nil(t, loc)
		gw.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("no selection adopts stored location without backend write", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		stored := &models.Location{ID: "loc-1", Title: "Center One"}
		store.On("Get", StoreKey("loc-1"), mock.Anything).Return(true, nil, stored).Once()

		svc := NewLocationService(gw, store, newNoopLogger())
		person := &models.Person{ProfileID: "p1", DefaultLocation: "loc-1"}

		loc, err := svc.Sync(context.Background(), "token", person, "")

		require.NoError(t, err)
		assert.Equal(t, stored, loc)
		gw.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("no selection and no stored location yields nil", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		svc := NewLocationService(gw, store, newNoopLogger())

		loc, err := svc.Sync(context.Background(), "token", &models.Person{ProfileID: "p1"}, "")

		assert.NoError(t, err)
		assert.Nil(t, loc)
		gw.AssertExpectations(t)
	})

	t.Run("differing selection is pushed to backend", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		person := &models.Person{
			ProfileID:       "p1",
			LastName:        "Petrov",
			FirstName:       "Ivan",
			BirthDate:       "05-03-2021",
			Gender:          "M",
			Email:           "ivan@example.com",
			DefaultLocation: "loc-old",
		}

		gw.On("UpdatePerson", mock.Anything, "token", "p1", remote.ProfileFields{
			LastName:        "Petrov",
			FirstName:       "Ivan",
			BirthDate:       "05-03-2021",
			Gender:          "M",
			Email:           "ivan@example.com",
			DefaultLocation: "loc-new",
		}).Return(&models.Person{ProfileID: "p1", DefaultLocation: "loc-new"}, nil).Once()
		store.On("Get", StoreKey("loc-new"), mock.Anything).
			Return(true, nil, &models.Location{ID: "loc-new", Title: "Center Two"}).Once()

		svc := NewLocationService(gw, store, newNoopLogger())
		loc, err := svc.Sync(context.Background(), "token", person, "loc-new")

		require.NoError(t, err)
		assert.Equal(t, "loc-new", loc.ID)
		// Последняя запись побеждает и в локальном снимке
		assert.Equal(t, "loc-new", person.DefaultLocation)
		gw.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("matching selection skips backend write", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		store.On("Get", StoreKey("loc-1"), mock.Anything).
			Return(true, nil, &models.Location{ID: "loc-1"}).Once()

		svc := NewLocationService(gw, store, newNoopLogger())
		person := &models.Person{ProfileID: "p1", DefaultLocation: "loc-1"}

		loc, err := svc.Sync(context.Background(), "token", person, "loc-1")

		require.NoError(t, err)
		assert.Equal(t, "loc-1", loc.ID)
		gw.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("backend write failure keeps local location untouched", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		gw.On("UpdatePerson", mock.Anything, "token", "p1", mock.Anything).
			Return(nil, errors.New("backend down")).Once()

		svc := NewLocationService(gw, store, newNoopLogger())
		person := &models.Person{ProfileID: "p1", DefaultLocation: "loc-old"}

		loc, err := svc.Sync(context.Background(), "token", person, "loc-new")

		assert.Error(t, err)
		assert.Nil(t, loc)
		assert.Equal(t, "loc-old", person.DefaultLocation)
		gw.AssertExpectations(t)
	})

	t.Run("unknown location falls back to bare id", func(t *testing.T) {
		gw := new(GatewayMock)
		store := new(StoreMock)
		store.On("Get", StoreKey("ghost"), mock.Anything).Return(false, nil, nil).Once()

		svc := NewLocationService(gw, store, newNoopLogger())
		person := &models.Person{ProfileID: "p1", DefaultLocation: "ghost"}

		loc, err := svc.Sync(context.Background(), "token", person, "")

		require.NoError(t, err)
		assert.Equal(t, &models.Location{ID: "ghost"}, loc)
		store.AssertExpectations(t)
	})
}
