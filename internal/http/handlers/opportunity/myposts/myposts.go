// Package myposts реализует HTTP-обработчик выдачи объявлений конкретного автора.
package myposts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/opportunity-board/internal/http/response"
	"github.com/magabrotheeeer/opportunity-board/internal/lib/sl"
	"github.com/magabrotheeeer/opportunity-board/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выдачи объявлений автора.
type Service interface {
	ListByOwner(ctx context.Context, email string) ([]*models.Opportunity, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.opportunity.myposts"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	if email == "" {
		log.Error("empty email in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("email is required"))
		return
	}

	entries, err := h.service.ListByOwner(r.Context(), email)
	if err != nil {
		log.Error("failed to list opportunities by owner", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list opportunities"))
		return
	}

	log.Info("success to list opportunities by owner",
		slog.String("email", email), slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(entries))
}
