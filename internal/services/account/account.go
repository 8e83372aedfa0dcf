// Package services содержит логику бизнес-уровня для работы с аккаунтами:
// регистрацию с уникальным e-mail, аутентификацию, счётчики статистики
// и каскадное удаление аккаунта вместе с его объявлениями.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/opportunity-board/internal/lib/jwt"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/password"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

// Ошибки уровня аккаунтов, на которые обработчики отвечают отдельными статусами.
var (
	// ErrDuplicateEmail — регистрация на уже занятый e-mail.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials — неизвестный e-mail или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound — запрошенный аккаунт не существует.
	ErrNotFound = errors.New("account not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по e-mail или sql.ErrNoRows.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID или sql.ErrNoRows.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// IncrementStat увеличивает счётчик и возвращает обновлённого пользователя.
	IncrementStat(ctx context.Context, email, kind string) (*models.User, error)
	// RemoveUser удаляет пользователя и возвращает количество удалённых записей.
	RemoveUser(ctx context.Context, uid string) (int, error)
	// RemoveOpportunitiesByOwner удаляет все объявления пользователя.
	RemoveOpportunitiesByOwner(ctx context.Context, email string) (int, error)
}

// Cache описывает методы для кэширования профилей.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// AccountService отвечает за регистрацию, авторизацию, статистику и удаление аккаунтов.
type AccountService struct {
	repo     UserRepository
	cache    Cache
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAccountService создает новый экземпляр AccountService.
func NewAccountService(repo UserRepository, cache Cache, jwtMaker jwt.Maker, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:     repo,
		cache:    cache,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с bcrypt-хэшированием пароля и нулевыми
// счётчиками. Возвращает ErrDuplicateEmail, если e-mail уже занят.
func (s *AccountService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	_, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return "", ErrDuplicateEmail
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Skills:       req.Skills,
	}
	uid, err := s.repo.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}

	s.log.Info("registered new account", slog.String("uid", uid))
	return uid, nil
}

// Login проверяет пароль пользователя и возвращает JWT вместе с аккаунтом.
// Неизвестный e-mail и неверный пароль неразличимы для вызывающего.
func (s *AccountService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Name)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetByEmail возвращает аккаунт, используя кеш или репозиторий.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var result *models.User
	cacheKey := userCacheKey(email)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read profile from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// IncrementStat увеличивает счётчик profile_views или apps_sent на 1
// и возвращает обновлённый аккаунт. Кеш профиля инвалидируется.
func (s *AccountService) IncrementStat(ctx context.Context, email, kind string) (*models.User, error) {
	user, err := s.repo.IncrementStat(ctx, email, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.Invalidate(userCacheKey(email)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("email", email), sl.Err(err))
	}
	return user, nil
}

// Delete удаляет аккаунт и каскадно — все его объявления. Каскад выполняется
// по принципу best effort: сбой удаления объявлений логируется, удаление
// аккаунта всё равно выполняется; отката нет.
func (s *AccountService) Delete(ctx context.Context, uid string) error {
	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	removed, err := s.repo.RemoveOpportunitiesByOwner(ctx, user.Email)
	if err != nil {
		s.log.Error("failed to cascade-delete opportunities", slog.String("email", user.Email), sl.Err(err))
	} else if removed > 0 {
		s.log.Info("cascade-deleted opportunities", slog.String("email", user.Email), slog.Int("count", removed))
	}

	count, err := s.repo.RemoveUser(ctx, uid)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	if err := s.cache.Invalidate(userCacheKey(user.Email)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("email", user.Email), sl.Err(err))
	}
	s.log.Info("deleted account", slog.String("uid", uid))
	return nil
}

// ListAll возвращает все аккаунты без фильтрации (административная выдача).
func (s *AccountService) ListAll(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// ValidateToken проверяет JWT и возвращает его claims. Используется middleware.
func (s *AccountService) ValidateToken(token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

func userCacheKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}
