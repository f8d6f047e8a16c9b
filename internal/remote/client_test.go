package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakovv/clients-hub/internal/config"
)

// newTestClient поднимает тестовый сервер clients и возвращает клиент,
// смотрящий на него. Хендлер получает уже разобранный конверт.
func newTestClient(t *testing.T, handler func(t *testing.T, op string, params json.RawMessage) any) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var env struct {
			Operation string          `json:"operation"`
			Params    json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))

		resp := handler(t, env.Operation, env.Params)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.Backend{
		ClientsURL:     srv.URL,
		ResultsURL:     srv.URL,
		AccountURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
	})
	return client, srv
}

func TestClient_GetToken(t *testing.T) {
	t.Run("success returns backend token", func(t *testing.T) {
		client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
			assert.Equal(t, "getToken", op)
			var p struct {
				Phone string `json:"phone"`
				Otp   string `json:"otp"`
			}
			require.NoError(t, json.Unmarshal(params, &p))
			assert.Equal(t, "+79990001122", p.Phone)
			assert.Equal(t, "1234", p.Otp)
			return map[string]any{"res": "ok", "token": "backend-token"}
		})

		token, err := client.GetToken(context.Background(), "+79990001122", "1234")

		require.NoError(t, err)
		assert.Equal(t, "backend-token", token)
	})

	t.Run("backend error becomes gateway error", func(t *testing.T) {
		client, _ := newTestClient(t, func(_ *testing.T, _ string, _ json.RawMessage) any {
			return map[string]any{"res": "error", "error": "wrong code"}
		})

		_, err := client.GetToken(context.Background(), "+79990001122", "0000")

		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "getToken", gwErr.Op)
		assert.Equal(t, "wrong code", gwErr.Message)
	})
}

func TestClient_GetUserInfo(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
		assert.Equal(t, "info", op)
		var p struct {
			Phone    string `json:"phone"`
			Token    string `json:"token"`
			Orders   int    `json:"orders"`
			Services int    `json:"services"`
		}
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, "backend-token", p.Token)
		assert.Equal(t, 1, p.Orders)
		assert.Equal(t, 1, p.Services)

		return map[string]any{
			"res": "ok",
			"account": map[string]any{
				"phone":      p.Phone,
				"registered": true,
				"lastName":   "Petrov",
			},
			"Persons": []map[string]any{
				{"ProfileId": "p1", "LastName": "Petrov"},
				{"ProfileId": "p2", "LastName": "Petrova", "Archived": true},
			},
			"default_person": map[string]any{"ProfileId": "p1", "LastName": "Petrov"},
		}
	})

	info, err := client.GetUserInfo(context.Background(), "backend-token", "+79990001122", 1, 1)

	require.NoError(t, err)
	assert.True(t, info.Account.Registered)
	assert.Equal(t, "+79990001122", info.Account.Phone)
	assert.Equal(t, "Petrov", info.Account.LastName)
	require.Len(t, info.Persons, 2)
	assert.True(t, info.Persons[1].Archived)
	require.NotNil(t, info.DefaultPerson)
	assert.Equal(t, "p1", info.DefaultPerson.ProfileID)
}

func TestClient_RegisterAccount(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
		assert.Equal(t, "register", op)
		var p map[string]string
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, "Petrov", p["l"])
		// Пустые имя и отчество уходят одиночным пробелом
		assert.Equal(t, " ", p["f"])
		assert.Equal(t, " ", p["m"])
		assert.Equal(t, "ivan@example.com", p["e"])
		assert.Equal(t, "M", p["g"])
		assert.Equal(t, "05-03-2021", p["bd"])
		assert.Equal(t, "Y", p["la"])
		return map[string]any{"res": "ok"}
	})

	err := client.RegisterAccount(context.Background(), "backend-token", RegisterFields{
		LastName:  "Petrov",
		Email:     "ivan@example.com",
		Gender:    "M",
		BirthDate: "05-03-2021",
	})
	assert.NoError(t, err)
}

func TestClient_UpdateAccount(t *testing.T) {
	// Endpoint аккаунта принимает плоское тело без конверта params
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "backend-token", body["token"])
		assert.Equal(t, "Sidorov", body["lastName"])
		// Пустое отчество уходит одиночным пробелом
		assert.Equal(t, " ", body["middleName"])
		assert.Equal(t, "05-03-2021", body["birthDate"])

		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"res": "ok",
			"account": map[string]any{
				"phone":      "+79990001122",
				"registered": true,
				"lastName":   "Sidorov",
			},
		}))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.Backend{
		AccountURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
	})

	account, err := client.UpdateAccount(context.Background(), "backend-token", AccountFields{
		LastName:  "Sidorov",
		FirstName: "Ivan",
		Email:     "ivan@example.com",
		Gender:    "M",
		BirthDate: "05-03-2021",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sidorov", account.LastName)
	assert.True(t, account.Registered)
}

func TestClient_CreatePerson(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
		assert.Equal(t, "updateProfile", op)
		var p struct {
			Token   string            `json:"token"`
			Profile map[string]string `json:"profile"`
		}
		require.NoError(t, json.Unmarshal(params, &p))
		// Создание: оба идентификатора пустые, их присваивает бэкенд
		assert.Equal(t, "", p.Profile["id"])
		assert.Equal(t, "", p.Profile["ProfileId"])
		assert.Equal(t, "Petrov", p.Profile["LastName"])
		assert.Equal(t, "loc-1", p.Profile["DefaultLocation"])

		return map[string]any{
			"res":     "ok",
			"profile": map[string]any{"ProfileId": "new-id", "LastName": "Petrov"},
		}
	})

	person, err := client.CreatePerson(context.Background(), "backend-token", ProfileFields{
		LastName:        "Petrov",
		FirstName:       "Ivan",
		BirthDate:       "05-03-2021",
		Gender:          "M",
		DefaultLocation: "loc-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-id", person.ProfileID)
}

func TestClient_UpdatePerson(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
		assert.Equal(t, "updateProfile", op)
		var p struct {
			Profile map[string]string `json:"profile"`
		}
		require.NoError(t, json.Unmarshal(params, &p))
		// Обновление: оба идентификатора заполнены существующим ProfileId
		assert.Equal(t, "p1", p.Profile["id"])
		assert.Equal(t, "p1", p.Profile["ProfileId"])

		return map[string]any{
			"res":     "ok",
			"profile": map[string]any{"ProfileId": "p1", "LastName": "Sidorova"},
		}
	})

	person, err := client.UpdatePerson(context.Background(), "backend-token", "p1", ProfileFields{
		LastName:  "Sidorova",
		FirstName: "Anna",
		BirthDate: "01-02-1990",
		Gender:    "F",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sidorova", person.LastName)
}

func TestClient_SetDefaultProfile(t *testing.T) {
	client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
		assert.Equal(t, "setDefaultProfile", op)
		var p struct {
			Person string `json:"person"`
		}
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, "p2", p.Person)

		return map[string]any{
			"res": "ok",
			"client": map[string]any{
				"defaultPerson": map[string]any{"ProfileId": "p2"},
			},
		}
	})

	person, err := client.SetDefaultProfile(context.Background(), "backend-token", "p2")

	require.NoError(t, err)
	require.NotNil(t, person)
	assert.Equal(t, "p2", person.ProfileID)
}

func TestClient_MergeAndArchive(t *testing.T) {
	var gotOps []string
	client, _ := newTestClient(t, func(t *testing.T, op string, params json.RawMessage) any {
		gotOps = append(gotOps, op)
		switch op {
		case "mergeProfiles":
			var p struct {
				Main   string   `json:"main"`
				Merged []string `json:"merged"`
			}
			require.NoError(t, json.Unmarshal(params, &p))
			assert.Equal(t, "main-id", p.Main)
			assert.Equal(t, []string{"d1", "d2"}, p.Merged)
		case "archive":
			var p struct {
				Person string `json:"person"`
				Mode   string `json:"mode"`
			}
			require.NoError(t, json.Unmarshal(params, &p))
			assert.Equal(t, "p1", p.Person)
			assert.Equal(t, "archive", p.Mode)
		}
		return map[string]any{"res": "ok"}
	})

	require.NoError(t, client.MergeProfiles(context.Background(), "backend-token", "main-id", []string{"d1", "d2"}))
	require.NoError(t, client.ArchivePerson(context.Background(), "backend-token", "p1", "archive"))
	assert.Equal(t, []string{"mergeProfiles", "archive"}, gotOps)
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("non-200 status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(config.Backend{ClientsURL: srv.URL, RequestTimeout: time.Second})
		err := client.GetOtp(context.Background(), "+79990001122")
		assert.Error(t, err)
	})

	t.Run("cancelled context stops request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(time.Second)
			_, _ = w.Write([]byte(`{"res":"ok"}`))
		}))
		defer srv.Close()

		client := NewClient(config.Backend{ClientsURL: srv.URL, RequestTimeout: 5 * time.Second})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := client.GetOtp(ctx, "+79990001122")
		assert.Error(t, err)
	})
}
