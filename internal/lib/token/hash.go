// Package token реализует функции для безопасного хранения refresh-токенов.
//
// GetHash создает bcrypt-хеш токена для хранения в базе.
// CompareHash проверяет предъявленный токен против сохранённого хэша.
package token

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает refresh-токен и возвращает его bcrypt‑хэш.
//
// В базе хранится только хэш, сам токен отдаётся клиенту один раз.
func GetHash(token string) (string, error) {
	const op = "token.GetHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает bcrypt‑хэш с предъявленным refresh-токеном.
//
// Возвращает nil, если токен соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalToken string) error {
	const op = "token.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalToken)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
