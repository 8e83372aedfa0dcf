// Package services содержит бизнес-логику работы с объявлениями:
// очистку просроченных записей перед каждым чтением, фильтрацию по навыку
// и подсчёт совпадения навыков кандидата.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/opportunity-board/internal/lib/match"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

// DeadlineLayout — формат дедлайна во входящих JSON-запросах.
const DeadlineLayout = "02-01-2006"

// ErrInvalidDeadline возвращается, когда дедлайн в запросе не соответствует
// формату DeadlineLayout. Ошибка клиентская, а не серверная.
var ErrInvalidDeadline = errors.New("invalid deadline")

// OpportunityRepository определяет методы для работы с объявлениями в хранилище.
type OpportunityRepository interface {
	// CreateOpportunity добавляет новое объявление и возвращает его ID.
	CreateOpportunity(ctx context.Context, opp models.Opportunity) (int, error)
	// ListOpportunities возвращает объявления, опционально отфильтрованные по подстроке навыка.
	ListOpportunities(ctx context.Context, skillFilter string) ([]*models.Opportunity, error)
	// ListOpportunitiesByOwner возвращает объявления по точному совпадению автора.
	ListOpportunitiesByOwner(ctx context.Context, email string) ([]*models.Opportunity, error)
	// RemoveOpportunity удаляет объявление по ID и возвращает количество удалённых записей.
	RemoveOpportunity(ctx context.Context, id int) (int, error)
	// PurgeExpired удаляет просроченные объявления и возвращает количество удалённых записей.
	PurgeExpired(ctx context.Context) (int, error)
}

// OpportunityService реализует бизнес-логику работы с объявлениями.
type OpportunityService struct {
	repo OpportunityRepository
	log  *slog.Logger
}

// NewOpportunityService создает новый экземпляр OpportunityService.
func NewOpportunityService(repo OpportunityRepository, log *slog.Logger) *OpportunityService {
	return &OpportunityService{
		repo: repo,
		log:  log,
	}
}

// List сначала удаляет просроченные объявления, затем возвращает оставшиеся.
// Непустой skillFilter оставляет объявления, где хотя бы один требуемый навык
// содержит фильтр без учёта регистра. Непустой rawSkills (навыки кандидата
// через запятую) добавляет каждому объявлению процент совпадения.
func (s *OpportunityService) List(ctx context.Context, skillFilter, rawSkills string) ([]*models.ScoredOpportunity, error) {
	if err := s.purge(ctx); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListOpportunities(ctx, skillFilter)
	if err != nil {
		return nil, err
	}

	var candidate []string
	if rawSkills != "" {
		candidate = match.SplitSkills(rawSkills)
	}

	result := make([]*models.ScoredOpportunity, 0, len(entries))
	for _, entry := range entries {
		scored := &models.ScoredOpportunity{Opportunity: *entry}
		if candidate != nil {
			score := match.Score(candidate, entry.SkillsRequired)
			scored.MatchScore = &score
		}
		result = append(result, scored)
	}
	return result, nil
}

// ListByOwner удаляет просроченные объявления, затем возвращает объявления
// с точным совпадением e-mail автора.
func (s *OpportunityService) ListByOwner(ctx context.Context, email string) ([]*models.Opportunity, error) {
	if err := s.purge(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListOpportunitiesByOwner(ctx, email)
}

// Create создает новое объявление от имени postedBy и возвращает сохранённую
// запись вместе с назначенным ID. Дедлайн опционален; прочие отсутствующие
// поля сохраняются пустыми.
func (s *OpportunityService) Create(ctx context.Context, postedBy string, req models.DummyOpportunity) (*models.Opportunity, error) {
	var deadline *time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse(DeadlineLayout, req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeadline, err)
		}
		deadline = &parsed
	}

	skills := req.SkillsRequired
	if skills == nil {
		skills = []string{}
	}

	entry := models.Opportunity{
		Title:          req.Title,
		Type:           req.Type,
		SkillsRequired: skills,
		Description:    req.Description,
		PostedBy:       postedBy,
		Deadline:       deadline,
		CreatedAt:      time.Now().UTC(),
	}

	id, err := s.repo.CreateOpportunity(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	s.log.Info("created new opportunity", slog.Int("id", id), slog.String("posted_by", postedBy))
	return &entry, nil
}

// Remove удаляет объявление по ID и возвращает количество удалённых записей.
// Ноль удалённых записей — валидный результат: удаление идемпотентно.
func (s *OpportunityService) Remove(ctx context.Context, id int) (int, error) {
	count, err := s.repo.RemoveOpportunity(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// purge выполняется перед каждым чтением: читатель не должен увидеть
// объявление с прошедшим дедлайном.
func (s *OpportunityService) purge(ctx context.Context) error {
	purged, err := s.repo.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		s.log.Info("purged expired opportunities", slog.Int("count", purged))
	}
	return nil
}
