package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/internal/validation"
	"github.com/newsdeskhq/newsdesk/pkg/api"
)

// NewsletterHandler обрабатывает подписку на рассылку
type NewsletterHandler struct {
	logger      *slog.Logger
	subscribers storage.SubscriberStorage
}

// NewNewsletterHandler создает новый handler для рассылки
func NewNewsletterHandler(logger *slog.Logger, subscribers storage.SubscriberStorage) *NewsletterHandler {
	return &NewsletterHandler{
		logger:      logger,
		subscribers: subscribers,
	}
}

// Subscribe обрабатывает POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	sub := &models.Subscriber{Email: email}
	if err := h.subscribers.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, storage.ErrAlreadySubscribed) {
			sendError(h.logger, w, "email already subscribed", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create subscriber", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "newsletter subscription created", slog.Int64("subscriber_id", sub.ID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Subscribed successfully"}, http.StatusCreated)
}
