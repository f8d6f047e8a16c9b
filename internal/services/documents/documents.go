// Package services содержит логику выдачи документов заказа:
// PDF с результатами и письма с результатами или счётом.
package services

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Gateway описывает операции endpoint'а результатов.
type Gateway interface {
	OrderResult(ctx context.Context, token, orderID string) (json.RawMessage, error)
	EmailResult(ctx context.Context, token, orderID, email string) error
	EmailInvoice(ctx context.Context, token, orderID, centersURL string) error
}

// DocumentsService тонкая прослойка над endpoint'ом результатов.
// Форму документа целиком определяет бэкенд, ответ передаётся как есть.
type DocumentsService struct {
	gateway Gateway
	log     *slog.Logger
}

// NewDocumentsService создает новый экземпляр DocumentsService.
func NewDocumentsService(gateway Gateway, log *slog.Logger) *DocumentsService {
	return &DocumentsService{
		gateway: gateway,
		log:     log,
	}
}

// Result возвращает PDF с результатами заказа в сыром виде.
func (s *DocumentsService) Result(ctx context.Context, token, orderID string) (json.RawMessage, error) {
	return s.gateway.OrderResult(ctx, token, orderID)
}

// EmailResult отправляет результаты заказа на почту.
func (s *DocumentsService) EmailResult(ctx context.Context, token, orderID, email string) error {
	return s.gateway.EmailResult(ctx, token, orderID, email)
}

// EmailInvoice отправляет счёт на оплату заказа от имени центра centersURL.
func (s *DocumentsService) EmailInvoice(ctx context.Context, token, orderID, centersURL string) error {
	return s.gateway.EmailInvoice(ctx, token, orderID, centersURL)
}
