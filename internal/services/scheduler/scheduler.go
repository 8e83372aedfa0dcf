// Package services периодически находит объявления с дедлайном, истекающим
// на следующий день, и публикует напоминания в очередь уведомлений.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
	"github.com/magabrotheeeer/opportunity-board/internal/rabbitmq"
)

// Publisher публикует сообщение в обменник с маршрутным ключом.
type Publisher interface {
	Publish(exchange, routingkey string, message any) error
}

// OpportunityRepository определяет выборку дедлайнов для напоминаний.
type OpportunityRepository interface {
	FindDeadlinesDueTomorrow(ctx context.Context) ([]*models.ReminderInfo, error)
}

// SchedulerService запускает периодический обход дедлайнов.
type SchedulerService struct {
	repo OpportunityRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo OpportunityRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// Run выполняет первый обход сразу, затем каждые 12 часов,
// пока контекст не будет отменён.
func (s *SchedulerService) Run(ctx context.Context, publisher Publisher) {
	s.publishReminders(ctx, publisher)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.publishReminders(ctx, publisher)
		}
	}
}

func (s *SchedulerService) publishReminders(ctx context.Context, publisher Publisher) {
	reminders, err := s.repo.FindDeadlinesDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find deadlines due tomorrow", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Debug("no deadlines due tomorrow")
		return
	}

	sent := 0
	for _, reminder := range reminders {
		if err := publisher.Publish(rabbitmq.NotificationsExchange, "deadline", reminder); err != nil {
			s.log.Error("failed to publish reminder",
				slog.String("email", reminder.Email), sl.Err(err))
			continue
		}
		sent++
	}
	s.log.Info("published deadline reminders", slog.Int("count", sent))
}
