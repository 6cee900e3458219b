package authhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payroll/internal/domain/auth"
	"payroll/internal/requestctx"
	"payroll/internal/transport/http/middleware"
	"payroll/internal/transport/http/render"
)

const msgInvalidCredentials = "Invalid Credentials"

type Handler struct {
	Auth    *auth.Service
	Cookies middleware.SessionCookies
	Render  *render.Renderer
}

func NewHandler(svc *auth.Service, cookies middleware.SessionCookies, renderer *render.Renderer) *Handler {
	return &Handler{Auth: svc, Cookies: cookies, Render: renderer}
}

type loginView struct {
	Username string
	Error    string
}

type registerView struct {
	Username string
	Email    string
	Errors   []string
}

// RegisterRoutes mounts the public auth pages. limit wraps the credential
// submitting POST routes.
func (h *Handler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/login", h.handleLoginPage)
	r.With(limit).Post("/login", h.handleLogin)
	r.Get("/register", h.handleRegisterPage)
	r.With(limit).Post("/register", h.handleRegister)
	r.Get("/logout", h.handleLogout)
	r.Post("/logout", h.handleLogout)
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if requestctx.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "login", "Log in", loginView{})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render.HTML(w, r, http.StatusBadRequest, "login", "Log in", loginView{Error: "Invalid form submission."})
		return
	}
	username := r.PostFormValue("username")

	session, err := h.Auth.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.InfoContext(r.Context(), "login rejected", "username", username, "requestId", middleware.GetRequestID(r.Context()))
			h.Render.HTML(w, r, http.StatusUnauthorized, "login", "Log in", loginView{Username: username, Error: msgInvalidCredentials})
			return
		}
		slog.ErrorContext(r.Context(), "login failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Login is unavailable right now.")
		return
	}

	if err := h.Cookies.Start(w, session); err != nil {
		slog.ErrorContext(r.Context(), "issue session failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Login is unavailable right now.")
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.RegistrationEnabled() {
		http.NotFound(w, r)
		return
	}
	if requestctx.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "register", "Register", registerView{})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.RegistrationEnabled() {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Render.HTML(w, r, http.StatusBadRequest, "register", "Register", registerView{Errors: []string{"Invalid form submission."}})
		return
	}

	result, err := h.Auth.Register(r.Context(), auth.RegisterInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "registration failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Registration is unavailable right now.")
		return
	}
	if !result.OK() {
		h.Render.HTML(w, r, http.StatusUnprocessableEntity, "register", "Register", registerView{
			Username: result.Username,
			Email:    result.Email,
			Errors:   result.Errors,
		})
		return
	}

	session := requestctx.Session{UserID: result.User.ID, Username: result.User.Username, IsAdmin: result.User.IsAdmin}
	if err := h.Cookies.Start(w, session); err != nil {
		slog.ErrorContext(r.Context(), "issue session failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Registration is unavailable right now.")
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
