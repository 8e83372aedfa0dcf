// Package create реализует HTTP-обработчик для публикации новых объявлений.
//
// Handler принимает JSON-запрос с данными объявления, валидирует их, извлекает
// e-mail автора из контекста, вызывает бизнес-логику создания объявления
// через сервис и возвращает сохранённую запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/opportunity-board/internal/http/middlewarectx"
	"github.com/magabrotheeeer/opportunity-board/internal/http/response"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
	opportunity "github.com/magabrotheeeer/opportunity-board/internal/services/opportunity"
)

// Handler управляет HTTP-запросами на публикацию объявлений.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания объявления,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания объявлений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания объявления.
type Service interface {
	Create(ctx context.Context, postedBy string, req models.DummyOpportunity) (*models.Opportunity, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Опубликовать новое объявление
// @Description Создает новое объявление от имени текущего пользователя. Возвращает сохранённую запись с назначенным ID.
// @Tags Opportunities
// @Accept  json
// @Produce  json
// @Param request body models.DummyOpportunity true "Данные нового объявления"
// @Success 200 {object} response.Response "Созданное объявление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дедлайн"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании объявления"
// @Security BearerAuth
// @Router /opportunities [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.opportunity.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyOpportunity
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	email, ok := r.Context().Value(middlewarectx.UserEmail).(string)
	if !ok || email == "" {
		log.Error("user email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	entry, err := h.service.Create(r.Context(), email, req)
	if errors.Is(err, opportunity.ErrInvalidDeadline) {
		log.Error("invalid deadline in request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid deadline"))
		return
	}
	if err != nil {
		log.Error("failed to create opportunity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create opportunity"))
		return
	}

	log.Info("success to create opportunity", slog.Int("id", entry.ID))
	render.JSON(w, r, response.StatusOKWithData(entry))
}
