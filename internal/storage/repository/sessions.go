package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ekazakovv/clients-hub/internal/models"
)

// ErrSessionNotFound возвращается, когда сессия отсутствует в базе.
var ErrSessionNotFound = errors.New("session not found")

// CreateSession сохраняет новую сессию в базу данных.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) error {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (uid, phone, access_token, refresh_hash, expires_at)
			  VALUES ($1, $2, $3, $4, $5);`
	if _, err := s.DB.ExecContext(ctx, query,
		session.UID, session.Phone, session.AccessToken, session.RefreshHash,
		session.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSession возвращает сессию по её UID.
func (s *Storage) GetSession(ctx context.Context, uid string) (*models.Session, error) {
	const op = "storage.GetSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var session models.Session
	query := `SELECT uid, phone, access_token, refresh_hash, expires_at, created_at
			  FROM sessions
			  WHERE uid = $1;`
	err := s.DB.QueryRowContext(ctx, query, uid).Scan(
		&session.UID, &session.Phone, &session.AccessToken,
		&session.RefreshHash, &session.ExpiresAt, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// DeleteSession удаляет сессию по её UID.
func (s *Storage) DeleteSession(ctx context.Context, uid string) error {
	const op = "storage.DeleteSession"
	query := `DELETE FROM sessions WHERE uid = $1;`
	if _, err := s.DB.ExecContext(ctx, query, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteSessionsByPhone удаляет все сессии аккаунта, например
// при удалении учётной записи.
func (s *Storage) DeleteSessionsByPhone(ctx context.Context, phone string) error {
	const op = "storage.DeleteSessionsByPhone"
	query := `DELETE FROM sessions WHERE phone = $1;`
	if _, err := s.DB.ExecContext(ctx, query, phone); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteExpiredSessions удаляет истёкшие сессии, возвращает число удалённых.
func (s *Storage) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	const op = "storage.DeleteExpiredSessions"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < now();`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
