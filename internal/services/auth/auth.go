// Package services содержит логику бизнес-уровня для входа по OTP
// и управления серверными сессиями.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekazakovv/clients-hub/internal/lib/jwt"
	"github.com/ekazakovv/clients-hub/internal/lib/token"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// ErrOtpThrottled возвращается, когда код на этот телефон уже отправлен
// и интервал повторной отправки ещё не истёк.
var ErrOtpThrottled = errors.New("otp code already sent")

// ErrSessionExpired возвращается при обращении с истёкшей сессией.
var ErrSessionExpired = errors.New("session expired")

// Gateway описывает операции бэкенда, используемые при входе и удалении аккаунта.
type Gateway interface {
	// GetOtp запрашивает отправку одноразового кода на телефон.
	GetOtp(ctx context.Context, phone string) error
	// GetToken обменивает телефон и код на токен доступа к бэкенду.
	GetToken(ctx context.Context, phone, otp string) (string, error)
	// DeleteProfile удаляет учётную запись целиком.
	DeleteProfile(ctx context.Context, accessToken string) error
}

// SessionRepository описывает контракт для работы с сессиями в базе данных.
type SessionRepository interface {
	// CreateSession сохраняет новую сессию.
	CreateSession(ctx context.Context, session models.Session) error
	// GetSession возвращает сессию по UID или ошибку, если не найдена.
	GetSession(ctx context.Context, uid string) (*models.Session, error)
	// DeleteSession удаляет сессию по UID.
	DeleteSession(ctx context.Context, uid string) error
	// DeleteSessionsByPhone удаляет все сессии аккаунта.
	DeleteSessionsByPhone(ctx context.Context, phone string) error
}

// Cache описывает методы кеша, используемые для троттлинга OTP.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// AuthService отвечает за вход по OTP, выпуск JWT сессии и её жизненный цикл.
type AuthService struct {
	gateway     Gateway
	sessions    SessionRepository
	cache       Cache
	jwtMaker    jwt.Maker
	sessionTTL  time.Duration // Время жизни обычной сессии
	rememberTTL time.Duration // Время жизни сессии с "запомнить меня"
	resendDelay time.Duration // Минимальный интервал между запросами OTP
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(gateway Gateway, sessions SessionRepository, cache Cache, jwtMaker jwt.Maker,
	sessionTTL, rememberTTL, resendDelay time.Duration) *AuthService {
	return &AuthService{
		gateway:     gateway,
		sessions:    sessions,
		cache:       cache,
		jwtMaker:    jwtMaker,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		resendDelay: resendDelay,
	}
}

// RequestOtp запрашивает одноразовый код для телефона. Повторный запрос
// раньше resendDelay отклоняется без обращения к бэкенду.
func (s *AuthService) RequestOtp(ctx context.Context, phone string) error {
	const op = "auth.RequestOtp"
	key := otpKey(phone)

	var sentAt string
	found, err := s.cache.Get(key, &sentAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found {
		return ErrOtpThrottled
	}

	if err := s.gateway.GetOtp(ctx, phone); err != nil {
		return err
	}

	if err := s.cache.Set(key, time.Now().UTC().Format(time.RFC3339), s.resendDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Login обменивает телефон и код на токен бэкенда, создаёт серверную
// сессию и возвращает JWT сессии вместе с refresh-токеном.
func (s *AuthService) Login(ctx context.Context, phone, otp string, rememberMe bool) (accessJWT, refreshToken string, err error) {
	const op = "auth.Login"

	backendToken, err := s.gateway.GetToken(ctx, phone, otp)
	if err != nil {
		return "", "", err
	}

	refreshToken = uuid.New().String()
	refreshHash, err := token.GetHash(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	ttl := s.sessionTTL
	if rememberMe {
		ttl = s.rememberTTL
	}
	session := models.Session{
		UID:         uuid.New().String(),
		Phone:       phone,
		AccessToken: backendToken,
		RefreshHash: refreshHash,
		ExpiresAt:   time.Now().UTC().Add(ttl),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	accessJWT, err = s.jwtMaker.GenerateToken(phone, session.UID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return accessJWT, refreshToken, nil
}

// Authenticate проверяет JWT сессии и возвращает живую сессию
// с токеном доступа к бэкенду.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*models.Session, error) {
	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.GetSession(ctx, claims.SessionUID)
	if err != nil {
		return nil, err
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Refresh проверяет refresh-токен против сохранённого хэша
// и выпускает новый JWT для той же сессии.
func (s *AuthService) Refresh(ctx context.Context, sessionUID, refreshToken string) (string, error) {
	const op = "auth.Refresh"
	session, err := s.sessions.GetSession(ctx, sessionUID)
	if err != nil {
		return "", err
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return "", ErrSessionExpired
	}
	if err := token.CompareHash(session.RefreshHash, refreshToken); err != nil {
		return "", errors.New("invalid refresh token")
	}
	accessJWT, err := s.jwtMaker.GenerateToken(session.Phone, session.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return accessJWT, nil
}

// Logout удаляет серверную сессию.
func (s *AuthService) Logout(ctx context.Context, sessionUID string) error {
	return s.sessions.DeleteSession(ctx, sessionUID)
}

// DeleteAccount удаляет учётную запись на бэкенде и гасит все сессии
// аккаунта. Операция терминальная: после неё токен мёртв и к движку
// резолюции с ним обращаться нельзя.
func (s *AuthService) DeleteAccount(ctx context.Context, session *models.Session) error {
	if err := s.gateway.DeleteProfile(ctx, session.AccessToken); err != nil {
		return err
	}
	return s.sessions.DeleteSessionsByPhone(ctx, session.Phone)
}

func otpKey(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}
