// Package list реализует HTTP-обработчик выдачи ленты объявлений.
//
// Handler принимает опциональные query-параметры skill (фильтр по подстроке
// навыка) и skills (навыки кандидата через запятую для подсчёта совпадения),
// вызывает бизнес-логику и возвращает объявления в JSON-формате.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/opportunity-board/internal/http/response"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

// Handler управляет HTTP-запросами на чтение ленты объявлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выдачи объявлений.
type Service interface {
	List(ctx context.Context, skillFilter, rawSkills string) ([]*models.ScoredOpportunity, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список объявлений
// @Description Возвращает активные объявления. Параметр skill фильтрует по подстроке навыка без учёта регистра, параметр skills (через запятую) добавляет каждому объявлению процент совпадения навыков.
// @Tags Opportunities
// @Produce  json
// @Param skill query string false "Подстрока требуемого навыка"
// @Param skills query string false "Навыки кандидата через запятую"
// @Success 200 {object} response.Response "Список объявлений"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /opportunities [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.opportunity.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	skillFilter := r.URL.Query().Get("skill")
	rawSkills := r.URL.Query().Get("skills")

	entries, err := h.service.List(r.Context(), skillFilter, rawSkills)
	if err != nil {
		log.Error("failed to list opportunities", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list opportunities"))
		return
	}

	log.Info("success to list opportunities", slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(entries))
}
