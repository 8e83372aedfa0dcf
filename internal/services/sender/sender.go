// Package services отправляет письма пользователям: напоминания о
// приближающемся дедлайне объявления и коды подтверждения e-mail.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/smtp"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

// SenderService собирает и отправляет письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendDeadlineReminder разбирает сообщение из очереди напоминаний
// и отправляет автору письмо о дедлайне, истекающем завтра.
func (s *SenderService) SendDeadlineReminder(body []byte) error {
	var info models.ReminderInfo
	if err := json.Unmarshal(body, &info); err != nil {
		s.log.Error("failed to unmarshal reminder message", sl.Err(err))
		return fmt.Errorf("failed to unmarshal reminder message: %w", err)
	}

	subject := "Your opportunity deadline is tomorrow"
	bodyText := fmt.Sprintf(
		"Hello, %s!\r\n\r\n"+
			"The deadline of your opportunity %q expires on %s.\r\n"+
			"After that it will be removed from the board automatically.\r\n",
		info.Name, info.Title, info.Deadline.Format("02-01-2006"))

	if err := s.sendEmail([]string{info.Email}, subject, bodyText); err != nil {
		return err
	}
	s.log.Info("sent deadline reminder",
		slog.String("email", info.Email), slog.String("title", info.Title))
	return nil
}

// SendVerificationCode отправляет пользователю одноразовый код подтверждения.
func (s *SenderService) SendVerificationCode(email, code string) error {
	subject := "Your verification code"
	bodyText := fmt.Sprintf(
		"Hello!\r\n\r\n"+
			"Your verification code is: %s\r\n"+
			"Enter it on the site to confirm your e-mail address.\r\n",
		code)

	if err := s.sendEmail([]string{email}, subject, bodyText); err != nil {
		return err
	}
	s.log.Info("sent verification code", slog.String("email", email))
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		if err := client.Quit(); err != nil {
			s.log.Error("failed to quit SMTP session", sl.Err(err))
		}
	}()

	from := s.transport.GetSMTPUser()
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, addr := range to {
		if err = client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, to[0], subject, bodyText)
	if _, err = writer.Write([]byte(message)); err != nil {
		if closeErr := writer.Close(); closeErr != nil {
			s.log.Error("failed to close data writer", sl.Err(closeErr))
		}
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
