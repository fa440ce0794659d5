package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
	"github.com/newsdeskhq/newsdesk/pkg/api"
)

// DocumentHandler обрабатывает CRUD запросы к документам
// Чтение публичное, запись — за auth middleware
type DocumentHandler struct {
	logger  *slog.Logger
	storage storage.DocumentStorage
}

// NewDocumentHandler создает новый handler для документов
func NewDocumentHandler(logger *slog.Logger, storage storage.DocumentStorage) *DocumentHandler {
	return &DocumentHandler{
		logger:  logger,
		storage: storage,
	}
}

// parseID извлекает числовой id из path parameter
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// List обрабатывает GET /api/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.storage.ListDocuments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, docs, http.StatusOK)
}

// Get обрабатывает GET /api/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "invalid document id", http.StatusBadRequest)
		return
	}

	doc, err := h.storage.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, doc, http.StatusOK)
}

// Create обрабатывает POST /api/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	doc := &models.Document{Title: req.Title, Body: req.Body}
	if err := h.storage.CreateDocument(ctx, doc); err != nil {
		h.logger.ErrorContext(ctx, "failed to create document", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document created", slog.Int64("document_id", doc.ID))

	sendJSON(h.logger, w, doc, http.StatusCreated)
}

// Update обрабатывает PUT /api/documents/{id}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "invalid document id", http.StatusBadRequest)
		return
	}

	var req api.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	doc := &models.Document{ID: id, Title: req.Title, Body: req.Body}
	if err := h.storage.UpdateDocument(ctx, doc); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update document", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, doc, http.StatusOK)
}

// Delete обрабатывает DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "invalid document id", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteDocument(ctx, id); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete document", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document deleted", slog.Int64("document_id", id))

	w.WriteHeader(http.StatusNoContent)
}
