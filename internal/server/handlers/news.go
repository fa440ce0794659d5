package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/pkg/api"
)

// NewsHandler обрабатывает CRUD запросы к ленте новостей
type NewsHandler struct {
	logger  *slog.Logger
	storage storage.NewsStorage
}

// NewNewsHandler создает новый handler для новостей
func NewNewsHandler(logger *slog.Logger, storage storage.NewsStorage) *NewsHandler {
	return &NewsHandler{
		logger:  logger,
		storage: storage,
	}
}

// List обрабатывает GET /api/news
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.storage.ListNews(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list news", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, items, http.StatusOK)
}

// Get обрабатывает GET /api/news/{id}
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "invalid news id", http.StatusBadRequest)
		return
	}

	item, err := h.storage.GetNews(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNewsNotFound) {
			sendError(h.logger, w, "news item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get news item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, item, http.StatusOK)
}

// Create обрабатывает POST /api/news
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.NewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	item := &models.NewsItem{Title: req.Title, Body: req.Body}
	if err := h.storage.CreateNews(ctx, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to create news item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "news item created", slog.Int64("news_id", item.ID))

	sendJSON(h.logger, w, item, http.StatusCreated)
}

// Update обрабатывает PUT /api/news/{id}
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "invalid news id", http.StatusBadRequest)
		return
	}

	var req api.NewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	item := &models.NewsItem{ID: id, Title: req.Title, Body: req.Body}
	if err := h.storage.UpdateNews(ctx, item); err != nil {
		if errors.Is(err, storage.ErrNewsNotFound) {
			sendError(h.logger, w, "news item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update news item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, item, http.StatusOK)
}

// Delete обрабатывает DELETE /api/news/{id}
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "invalid news id", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteNews(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNewsNotFound) {
			sendError(h.logger, w, "news item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete news item", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "news item deleted", slog.Int64("news_id", id))

	w.WriteHeader(http.StatusNoContent)
}
