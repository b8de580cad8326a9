package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"MuseShelf/internal/config"
	"MuseShelf/internal/middleware"
	"MuseShelf/internal/service"
)

// AuthHandler реализует HTTP-контракт Session Store.
type AuthHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации.
func NewAuthHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	User userDTO `json:"user"`
}

// SignUp регистрирует пользователя. Политика пароля проверяется на
// клиенте до запроса; сервер требует только непустые поля.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Email, req.Password, h.Config.AutoConfirm)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.Logger.Errorw("SignUp: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Cookie не выдаём: сессия появляется после подтверждения e-mail и входа.
	writeJSON(w, http.StatusOK, map[string]any{
		"confirmation_sent": !user.Confirmed,
		"email":             user.Email,
	})
}

// Login проверяет учётные данные и выдаёт auth-cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// неизвестный e-mail, неверный пароль и неподтверждённый аккаунт
		// наружу неразличимы
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrNotConfirmed) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Logger.Errorw("Login: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: userDTO{ID: user.ID, Email: user.Email}})
}

// Logout гасит auth-cookie. Идемпотентен.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"result": "signed out"})
}

// Session возвращает текущую сессию по auth-cookie.
// Клиентский getCurrentSession() опирается на этот маршрут.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}

	user, err := h.UserService.Current(r.Context(), userID)
	if err != nil {
		// токен валиден, но пользователь удалён — сессии нет
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: userDTO{ID: user.ID, Email: user.Email}})
}
