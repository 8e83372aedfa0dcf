package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

// CreateOpportunity вставляет новое объявление и возвращает его ID.
func (s *Storage) CreateOpportunity(ctx context.Context, opp models.Opportunity) (int, error) {
	const op = "storage.CreateOpportunity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	skills, err := json.Marshal(opp.SkillsRequired)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO opportunities (title, opp_type, skills_required, description,
			      posted_by, deadline, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		opp.Title, opp.Type, skills, opp.Description,
		opp.PostedBy, opp.Deadline, opp.CreatedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveOpportunity удаляет объявление по ID и возвращает количество удалённых строк.
// Удаление отсутствующей записи не является ошибкой.
func (s *Storage) RemoveOpportunity(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveOpportunity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM opportunities WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// PurgeExpired удаляет все объявления с истекшим дедлайном и возвращает
// количество удалённых строк. Вызывается перед каждым чтением списка.
func (s *Storage) PurgeExpired(ctx context.Context) (int, error) {
	const op = "storage.PurgeExpired"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM opportunities
			  WHERE deadline IS NOT NULL AND deadline < now()`
	result, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListOpportunities возвращает все объявления, опционально отфильтрованные
// по подстроке навыка (без учёта регистра, совпадение по любому элементу).
func (s *Storage) ListOpportunities(ctx context.Context, skillFilter string) ([]*models.Opportunity, error) {
	const op = "storage.ListOpportunities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, opp_type, skills_required, description, posted_by, deadline, created_at
			  FROM opportunities
			  WHERE $1 = ''
			     OR EXISTS (
			        SELECT 1 FROM jsonb_array_elements_text(skills_required) AS skill
			        WHERE skill ILIKE '%' || $1 || '%')
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, skillFilter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanOpportunities(op, rows)
}

// ListOpportunitiesByOwner возвращает объявления с точным совпадением posted_by.
func (s *Storage) ListOpportunitiesByOwner(ctx context.Context, email string) ([]*models.Opportunity, error) {
	const op = "storage.ListOpportunitiesByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, opp_type, skills_required, description, posted_by, deadline, created_at
			  FROM opportunities
			  WHERE posted_by = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanOpportunities(op, rows)
}

// RemoveOpportunitiesByOwner удаляет все объявления пользователя и возвращает
// количество удалённых строк. Используется каскадным удалением аккаунта.
func (s *Storage) RemoveOpportunitiesByOwner(ctx context.Context, email string) (int, error) {
	const op = "storage.RemoveOpportunitiesByOwner"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM opportunities WHERE posted_by = $1`
	result, err := s.DB.ExecContext(ctx, query, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindDeadlinesDueTomorrow находит объявления, дедлайн которых наступает завтра,
// вместе с контактами автора для отправки напоминания.
func (s *Storage) FindDeadlinesDueTomorrow(ctx context.Context) ([]*models.ReminderInfo, error) {
	const op = "storage.FindDeadlinesDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.name, o.title, o.deadline
			  FROM opportunities o
			  JOIN users u ON o.posted_by = u.email
			  WHERE o.deadline::DATE = CURRENT_DATE + INTERVAL '1 day'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var ri models.ReminderInfo
		if err = rows.Scan(&ri.Email, &ri.Name, &ri.Title, &ri.Deadline); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanOpportunities(op string, rows *sql.Rows) ([]*models.Opportunity, error) {
	var result []*models.Opportunity
	for rows.Next() {
		var item models.Opportunity
		var skills []byte
		var deadline sql.NullTime
		if err := rows.Scan(&item.ID, &item.Title, &item.Type, &skills,
			&item.Description, &item.PostedBy, &deadline, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(skills, &item.SkillsRequired); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if deadline.Valid {
			d := deadline.Time
			item.Deadline = &d
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
