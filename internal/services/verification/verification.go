// Package services реализует выдачу и проверку одноразовых кодов подтверждения
// e-mail. Коды хранятся во внешнем хранилище с TTL и сгорают при первом
// успешном использовании.
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
)

// Ошибки уровня верификации.
var (
	// ErrInvalidCode — код не выдавался, истёк или не совпал.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrDeliveryFailed — код сохранён, но письмо отправить не удалось.
	ErrDeliveryFailed = errors.New("failed to deliver verification code")
)

// CodeStore описывает хранилище кодов с временем жизни.
type CodeStore interface {
	// Get пытается получить значение по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение по ключу.
	Invalidate(key string) error
}

// Sender отправляет код подтверждения на почту пользователя.
type Sender interface {
	SendVerificationCode(email, code string) error
}

// VerificationService выдаёт шестизначные коды и проверяет их.
type VerificationService struct {
	store   CodeStore
	sender  Sender
	codeTTL time.Duration
	log     *slog.Logger
}

// NewVerificationService создает новый экземпляр VerificationService.
func NewVerificationService(store CodeStore, sender Sender, codeTTL time.Duration, log *slog.Logger) *VerificationService {
	return &VerificationService{
		store:   store,
		sender:  sender,
		codeTTL: codeTTL,
		log:     log,
	}
}

// IssueCode генерирует случайный шестизначный код, сохраняет его с TTL
// и отправляет на почту. Повторная выдача перезаписывает предыдущий код.
// При сбое доставки код остаётся в хранилище и возвращается ErrDeliveryFailed.
func (s *VerificationService) IssueCode(email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.store.Set(codeKey(email), code, s.codeTTL); err != nil {
		return err
	}

	if err := s.sender.SendVerificationCode(email, code); err != nil {
		s.log.Error("failed to send verification code", slog.String("email", email), sl.Err(err))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.log.Info("issued verification code", slog.String("email", email))
	return nil
}

// VerifyCode сравнивает присланный код с сохранённым. Совпавший код
// удаляется и повторно использован быть не может; несовпавший код
// остаётся в хранилище без изменений.
func (s *VerificationService) VerifyCode(email, code string) error {
	var stored string
	found, err := s.store.Get(codeKey(email), &stored)
	if err != nil {
		return err
	}
	if !found || stored != code {
		return ErrInvalidCode
	}

	if err := s.store.Invalidate(codeKey(email)); err != nil {
		return err
	}
	s.log.Info("verified e-mail", slog.String("email", email))
	return nil
}

// generateCode возвращает криптографически случайный код из шести цифр,
// при необходимости дополненный ведущими нулями.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func codeKey(email string) string {
	return fmt.Sprintf("verification:%s", email)
}
