package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/notify"
	"github.com/securebank/backoffice/internal/session"
	xhttp "github.com/securebank/backoffice/pkg/http"
	"github.com/securebank/backoffice/pkg/prom"
)

const sessionKey = "session"

type AuthHandler struct {
	sessions *session.Manager
	notifier *notify.Notifier
}

func NewAuthHandler(sessions *session.Manager, notifier *notify.Notifier) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		notifier: notifier,
	}
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/login", h.Login)
	e.POST("/logout", h.RequireSession(h.Logout))
	e.GET("/session", h.RequireSession(h.CurrentSession))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	start := time.Now()
	s, err := h.sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		prom.ObserveHistogramVec(prom.SystemAuth, prom.MetricLoginDuration, time.Since(start).Seconds(), "failure")
		h.notifier.Publish(notify.Event{
			Kind:  notify.EventLoginFailed,
			Actor: req.Username,
			Label: err.Error(),
		})
		switch {
		case errors.Is(err, session.ErrInvalidCredentials):
			writeError(ctx, xhttp.StatusUnauthorized, "Invalid username or password")
		case errors.Is(err, session.ErrInactiveUser):
			writeError(ctx, xhttp.StatusForbidden, "User account is inactive")
		default:
			writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		}
		return
	}

	prom.ObserveHistogramVec(prom.SystemAuth, prom.MetricLoginDuration, time.Since(start).Seconds(), "success")
	h.notifier.Publish(notify.Event{Kind: notify.EventLoginSucceeded, Actor: s.Username})
	writeJSON(ctx, xhttp.StatusOK, s)
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	s := sessionFrom(ctx)
	if err := h.sessions.Logout(s.Token); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) CurrentSession(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, sessionFrom(ctx))
}

// RequireSession resolves the bearer token and injects the session
// into the request; without a valid session the chain stops at 401.
func (h *AuthHandler) RequireSession(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		s, err := h.sessions.Resolve(bearerToken(ctx))
		if err != nil {
			writeError(ctx, xhttp.StatusUnauthorized, "authentication required")
			return
		}
		ctx.SetUserValue(sessionKey, s)
		next(ctx)
	}
}

// RequireAdmin additionally checks the role claim.
func (h *AuthHandler) RequireAdmin(next xhttp.RequestHandler) xhttp.RequestHandler {
	return h.RequireSession(func(ctx *xhttp.RequestCtx) {
		if sessionFrom(ctx).Role != model.RoleAdmin {
			writeError(ctx, xhttp.StatusForbidden, "admin role required")
			return
		}
		next(ctx)
	})
}

func sessionFrom(ctx *xhttp.RequestCtx) session.Session {
	s, _ := ctx.UserValue(sessionKey).(session.Session)
	return s
}

func bearerToken(ctx *xhttp.RequestCtx) string {
	auth := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
