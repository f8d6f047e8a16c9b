package remote

import "fmt"

// GatewayError означает, что бэкенд ответил res == "error".
// Транспортные ошибки сюда не попадают — они возвращаются как есть.
type GatewayError struct {
	Op      string // Операция, на которой бэкенд вернул ошибку
	Message string // Текст ошибки из поля error ответа
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("remote.%s: backend error: %s", e.Op, e.Message)
}
