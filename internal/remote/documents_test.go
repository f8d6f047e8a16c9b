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

// flatRequest конверт endpoint'а результатов: без вложенных params.
type flatRequest struct {
	Token     string `json:"token"`
	Operation string `json:"operation"`
	Order     struct {
		ID         string `json:"id"`
		CentersURL string `json:"centersUrl"`
	} `json:"order"`
	Options *struct {
		Email string `json:"email"`
	} `json:"options"`
}

func newDocsClient(t *testing.T, handler func(t *testing.T, req flatRequest) any) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req flatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NoError(t, json.NewEncoder(w).Encode(handler(t, req)))
	}))
	t.Cleanup(srv.Close)

	return NewClient(config.Backend{
		ClientsURL:     srv.URL,
		ResultsURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
	})
}

func TestClient_OrderResult(t *testing.T) {
	t.Run("returns raw document body", func(t *testing.T) {
		client := newDocsClient(t, func(t *testing.T, req flatRequest) any {
			assert.Equal(t, "result", req.Operation)
			assert.Equal(t, "backend-token", req.Token)
			assert.Equal(t, "order-1", req.Order.ID)
			assert.Nil(t, req.Options)
			return map[string]any{"res": "ok", "pdf": "base64-content"}
		})

		raw, err := client.OrderResult(context.Background(), "backend-token", "order-1")

		require.NoError(t, err)
		var doc map[string]string
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, "base64-content", doc["pdf"])
	})

	t.Run("backend error is surfaced", func(t *testing.T) {
		client := newDocsClient(t, func(_ *testing.T, _ flatRequest) any {
			return map[string]any{"res": "error", "error": "order not ready"}
		})

		_, err := client.OrderResult(context.Background(), "backend-token", "order-1")

		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "order not ready", gwErr.Message)
	})
}

func TestClient_EmailResult(t *testing.T) {
	client := newDocsClient(t, func(t *testing.T, req flatRequest) any {
		assert.Equal(t, "email_res", req.Operation)
		assert.Equal(t, "order-1", req.Order.ID)
		require.NotNil(t, req.Options)
		assert.Equal(t, "ivan@example.com", req.Options.Email)
		return map[string]any{"res": "ok"}
	})

	err := client.EmailResult(context.Background(), "backend-token", "order-1", "ivan@example.com")
	assert.NoError(t, err)
}

func TestClient_EmailInvoice(t *testing.T) {
	client := newDocsClient(t, func(t *testing.T, req flatRequest) any {
		assert.Equal(t, "email_invoice", req.Operation)
		assert.Equal(t, "order-1", req.Order.ID)
		assert.Equal(t, "https://center.example.com", req.Order.CentersURL)
		assert.Nil(t, req.Options)
		return map[string]any{"res": "ok"}
	})

	err := client.EmailInvoice(context.Background(), "backend-token", "order-1", "https://center.example.com")
	assert.NoError(t, err)
}
