package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/middleware"
	"MuseShelf/internal/service"
)

// RecordHandler реализует HTTP-контракт Record Store.
// Все маршруты требуют сессию; владение строками сверяется ниже, в репозитории.
type RecordHandler struct {
	RecordService *service.RecordService
	Logger        *zap.SugaredLogger
}

// NewRecordHandler создаёт хендлер каталога.
func NewRecordHandler(recordService *service.RecordService, logger *zap.SugaredLogger) *RecordHandler {
	return &RecordHandler{RecordService: recordService, Logger: logger}
}

// insertRequest — payload вставки. Для movies/books заполняется title,
// для albums — album_name и artist. user_id из payload игнорируется.
type insertRequest struct {
	Title     string `json:"title,omitempty"`
	AlbumName string `json:"album_name,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}

// requireAccess разбирает категорию из URL и пользователя из контекста.
func (h *RecordHandler) requireAccess(w http.ResponseWriter, r *http.Request) (catalog.Category, int64, bool) {
	cat, err := catalog.Parse(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown category")
		return "", 0, false
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", 0, false
	}
	return cat, userID, true
}

// List отдаёт строки пользователя в категории, новые первыми.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	cat, userID, ok := h.requireAccess(w, r)
	if !ok {
		return
	}

	rows, err := h.RecordService.List(r.Context(), cat, userID)
	if err != nil {
		h.Logger.Errorw("List: service error", "category", cat, "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Insert добавляет одну строку каталога.
func (h *RecordHandler) Insert(w http.ResponseWriter, r *http.Request) {
	cat, userID, ok := h.requireAccess(w, r)
	if !ok {
		return
	}

	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	draft := catalog.Draft{Notes: req.Notes, Status: req.Status}
	if cat.Schema().HasArtist {
		draft.Title = req.AlbumName
		draft.Artist = req.Artist
	} else {
		draft.Title = req.Title
	}

	row, err := h.RecordService.Add(r.Context(), cat, userID, draft)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, cat.Schema().TitleColumn+" is required")
			return
		}
		h.Logger.Errorw("Insert: service error", "category", cat, "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

// Delete удаляет строку пользователя по id.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cat, userID, ok := h.requireAccess(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.RecordService.Delete(r.Context(), cat, userID, id); err != nil {
		if errors.Is(err, service.ErrRowNotFound) {
			writeError(w, http.StatusNotFound, "row not found")
			return
		}
		h.Logger.Errorw("Delete: service error", "category", cat, "user_id", userID, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "deleted"})
}
