package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

func TestStorage_CreateAndListOpportunities(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	deadline := time.Now().Add(48 * time.Hour).UTC()

	entry := models.Opportunity{
		Title:          "Backend Developer",
		Type:           "Job",
		SkillsRequired: []string{"Go", "SQL"},
		Description:    "Backend role",
		PostedBy:       "alice@example.com",
		Deadline:       &deadline,
		CreatedAt:      time.Now().UTC(),
	}

	id, err := storage.CreateOpportunity(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := storage.ListOpportunities(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Backend Developer", got[0].Title)
	assert.Equal(t, []string{"Go", "SQL"}, got[0].SkillsRequired)
	require.NotNil(t, got[0].Deadline)
}

func TestStorage_ListOpportunities_SkillFilter(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateOpportunity(t, "Backend Developer", "Job", []string{"Golang", "SQL"}, "alice@example.com", nil)
	factory.CreateOpportunity(t, "Frontend Developer", "Job", []string{"JavaScript"}, "bob@example.com", nil)

	tests := []struct {
		name      string
		filter    string
		wantCount int
	}{
		{name: "без фильтра", filter: "", wantCount: 2},
		{name: "подстрока без учёта регистра", filter: "go", wantCount: 1},
		{name: "совпадение по части слова", filter: "script", wantCount: 1},
		{name: "нет совпадений", filter: "rust", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ListOpportunities(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_PurgeExpired(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	past := time.Now().Add(-24 * time.Hour).UTC()
	future := time.Now().Add(24 * time.Hour).UTC()
	factory.CreateOpportunity(t, "Expired Job", "Job", nil, "alice@example.com", &past)
	factory.CreateOpportunity(t, "Active Job", "Job", nil, "alice@example.com", &future)
	factory.CreateOpportunity(t, "Evergreen Workshop", "Workshop", nil, "alice@example.com", nil)

	purged, err := storage.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	got, err := storage.ListOpportunities(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, o := range got {
		assert.NotEqual(t, "Expired Job", o.Title)
	}

	// Повторная очистка ничего не удаляет
	purged, err = storage.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)
}

func TestStorage_ListOpportunitiesByOwner(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateOpportunity(t, "Job A", "Job", nil, "alice@example.com", nil)
	factory.CreateOpportunity(t, "Job B", "Job", nil, "alice@example.com", nil)
	factory.CreateOpportunity(t, "Job C", "Job", nil, "bob@example.com", nil)

	got, err := storage.ListOpportunitiesByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Точное совпадение, без поиска по подстроке
	got, err = storage.ListOpportunitiesByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestStorage_RemoveOpportunity(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	id := factory.CreateOpportunity(t, "Job", "Job", nil, "alice@example.com", nil)

	count, err := storage.RemoveOpportunity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.RemoveOpportunity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_RegisterAndGetUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user := models.User{
		UID:          uuid.NewString(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashedpassword",
		Skills:       "Go, SQL",
	}

	uid, err := storage.RegisterUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.UID, uid)

	got, err := storage.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, 0, got.ProfileViews)
	assert.Equal(t, 0, got.AppsSent)

	// Повторная регистрация того же e-mail нарушает уникальность
	_, err = storage.RegisterUser(ctx, user)
	assert.Error(t, err)

	_, err = storage.GetUserByEmail(ctx, "ghost@example.com")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestStorage_IncrementStat(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, uuid.NewString(), "Alice", "alice@example.com", "hashedpassword", "")

	got, err := storage.IncrementStat(ctx, "alice@example.com", models.StatView)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ProfileViews)
	assert.Equal(t, 0, got.AppsSent)

	got, err = storage.IncrementStat(ctx, "alice@example.com", models.StatApplication)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ProfileViews)
	assert.Equal(t, 1, got.AppsSent)

	_, err = storage.IncrementStat(ctx, "ghost@example.com", models.StatView)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	_, err = storage.IncrementStat(ctx, "alice@example.com", "unknown")
	assert.Error(t, err)
}

func TestStorage_RemoveUserAndOpportunities(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	uid := uuid.NewString()
	factory.CreateUser(t, uid, "Alice", "alice@example.com", "hashedpassword", "")
	factory.CreateOpportunity(t, "Job A", "Job", nil, "alice@example.com", nil)
	factory.CreateOpportunity(t, "Job B", "Job", nil, "alice@example.com", nil)

	removed, err := storage.RemoveOpportunitiesByOwner(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	count, err := storage.RemoveUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.RemoveUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_FindDeadlinesDueTomorrow(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, uuid.NewString(), "Alice", "alice@example.com", "hashedpassword", "")

	// Дедлайны задаются относительно CURRENT_DATE базы, чтобы тест
	// не зависел от часового пояса контейнера.
	_, err := storage.DB.Exec(`INSERT INTO opportunities (title, opp_type, skills_required, posted_by, deadline)
		VALUES ('Due Tomorrow', 'Job', '[]', 'alice@example.com', CURRENT_DATE + INTERVAL '1 day'),
		       ('Due Next Week', 'Job', '[]', 'alice@example.com', CURRENT_DATE + INTERVAL '7 day')`)
	require.NoError(t, err)

	got, err := storage.FindDeadlinesDueTomorrow(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Due Tomorrow", got[0].Title)
	assert.Equal(t, "alice@example.com", got[0].Email)
	assert.Equal(t, "Alice", got[0].Name)
}
