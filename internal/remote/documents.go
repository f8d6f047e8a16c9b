package remote

import (
	"context"
	"encoding/json"
)

// docRequest запрос к endpoint'у результатов. В отличие от clients
// конверт плоский: операция и параметры лежат на верхнем уровне.
type docRequest struct {
	Token     string      `json:"token"`
	Operation string      `json:"operation"`
	Order     docOrder    `json:"order"`
	Options   *docOptions `json:"options,omitempty"`
}

type docOrder struct {
	ID         string `json:"id"`
	CentersURL string `json:"centersUrl,omitempty"`
}

type docOptions struct {
	Email string `json:"email"`
}

// OrderResult запрашивает PDF с результатами заказа. Тело ответа
// возвращается без разбора — его форму целиком определяет бэкенд.
func (c *Client) OrderResult(ctx context.Context, token, orderID string) (json.RawMessage, error) {
	body := docRequest{Token: token, Operation: opResult, Order: docOrder{ID: orderID}}
	return c.post(ctx, opResult, c.resultsURL, body)
}

// EmailResult отправляет результаты заказа на указанную почту.
func (c *Client) EmailResult(ctx context.Context, token, orderID, email string) error {
	body := docRequest{
		Token:     token,
		Operation: opEmailResult,
		Order:     docOrder{ID: orderID},
		Options:   &docOptions{Email: email},
	}
	_, err := c.post(ctx, opEmailResult, c.resultsURL, body)
	return err
}

// EmailInvoice отправляет счёт на оплату заказа; centersURL указывает
// адрес центра, от имени которого выставляется счёт.
func (c *Client) EmailInvoice(ctx context.Context, token, orderID, centersURL string) error {
	body := docRequest{
		Token:     token,
		Operation: opEmailInvoice,
		Order:     docOrder{ID: orderID, CentersURL: centersURL},
	}
	_, err := c.post(ctx, opEmailInvoice, c.resultsURL, body)
	return err
}
