package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/booking-portal/internal/application"
)

const sessionCookieName = "session_token"

// AccountService covers the account operations the auth handler needs.
type AccountService interface {
	Register(ctx context.Context, params application.RegisterParams) (int64, error)
}

// SessionService covers login and logout.
type SessionService interface {
	Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error)
	RevokeSession(ctx context.Context, token string) error
}

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	accounts AccountService
	sessions SessionService
	renderer renderer
}

func NewAuthHandler(accounts AccountService, sessions SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, renderer: newRenderer(logger)}
}

// Register handles POST /usuario-register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, "auth", "register")
	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "malformed registration form", "error", err)
		h.renderer.message(ctx, w, http.StatusBadRequest, messageData{Message: "Error: formulario inválido."})
		return
	}
	params := application.RegisterParams{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
	_, err := h.accounts.Register(ctx, params)
	switch {
	case err == nil:
		h.renderer.message(ctx, w, http.StatusOK, messageData{
			Message:  "Usuario registrado exitosamente.",
			LinkHref: "/",
			LinkText: "Iniciar sesión",
		})
	case errors.Is(err, application.ErrDuplicateEmail):
		h.renderer.message(ctx, w, http.StatusConflict, messageData{
			Message:  "Error: este correo ya está registrado.",
			LinkHref: "/",
			LinkText: "Volver",
		})
	case isValidationError(err), errors.Is(err, application.ErrInvalidRole):
		h.renderer.message(ctx, w, http.StatusBadRequest, messageData{
			Message:  "Error: datos de registro inválidos.",
			LinkHref: "/",
			LinkText: "Volver",
		})
	default:
		logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", application.ErrorKind(err))
		h.renderer.message(ctx, w, http.StatusInternalServerError, messageData{Message: "Error en la base de datos."})
	}
}

// Login handles POST /usuario-login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, "auth", "login")
	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "malformed login form", "error", err)
		h.renderer.message(ctx, w, http.StatusBadRequest, messageData{Message: "Error: formulario inválido."})
		return
	}
	params := application.AuthenticateParams{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	result, err := h.sessions.Authenticate(ctx, params)
	switch {
	case err == nil:
		setSessionCookie(w, result.Token, result.ExpiresAt)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	case errors.Is(err, application.ErrUnknownEmail):
		h.renderer.message(ctx, w, http.StatusUnauthorized, messageData{
			Message:  "Usuario no encontrado.",
			LinkHref: "/",
			LinkText: "Volver",
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		h.renderer.message(ctx, w, http.StatusUnauthorized, messageData{
			Message:  "Contraseña incorrecta.",
			LinkHref: "/",
			LinkText: "Volver",
		})
	default:
		logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", application.ErrorKind(err))
		h.renderer.message(ctx, w, http.StatusInternalServerError, messageData{Message: "Error en la base de datos."})
	}
}

// Logout handles GET /logout. Revocation is idempotent: logging out
// without a session still redirects home.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, "auth", "logout")
	token := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}
	if err := h.sessions.RevokeSession(ctx, token); err != nil {
		logger.ErrorContext(ctx, "session revocation failed", "error", err, "error_kind", application.ErrorKind(err))
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func isValidationError(err error) bool {
	var validationErr *application.ValidationError
	return errors.As(err, &validationErr)
}
