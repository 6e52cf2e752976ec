package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/services"
	xhttp "github.com/securebank/backoffice/pkg/http"
)

type AdminProvider interface {
	CreateUser(ctx context.Context, p model.UserCreateRequest, actor string) (model.User, error)
	ChangeRole(ctx context.Context, userID int64, role model.Role) (model.User, error)
	ToggleStatus(ctx context.Context, userID int64) (model.User, error)
	SearchUsers(ctx context.Context, q string) []model.User
	ListUsers(ctx context.Context) []model.User
	RecordActivity(ctx context.Context, p model.ActivityCreateRequest) (model.Activity, error)
	ListActivities(ctx context.Context) ([]model.Activity, error)
	Stats(ctx context.Context) (services.SystemStats, error)
}

type AdminHandler struct {
	admin AdminProvider
}

func NewAdminHandler(admin AdminProvider) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func RegisterAdminRoutes(e *router.Group, h *AdminHandler, auth *AuthHandler) {
	e.GET("/users", auth.RequireAdmin(h.ListUsers))
	e.POST("/users", auth.RequireAdmin(h.CreateUser))
	e.PUT("/users/{id}/role", auth.RequireAdmin(h.ChangeRole))
	e.POST("/users/{id}/status", auth.RequireAdmin(h.ToggleStatus))
	e.GET("/activities", auth.RequireAdmin(h.ListActivities))
	e.POST("/activities", auth.RequireAdmin(h.RecordActivity))
	e.GET("/stats", auth.RequireAdmin(h.Stats))
}

func (h *AdminHandler) CreateUser(ctx *xhttp.RequestCtx) {
	var req model.UserCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	u, err := h.admin.CreateUser(ctx, req, sessionFrom(ctx).Name)
	if err != nil {
		writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, u)
}

type changeRoleRequest struct {
	Role model.Role `json:"role"`
}

func (h *AdminHandler) ChangeRole(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	var req changeRoleRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	u, err := h.admin.ChangeRole(ctx, id, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, u)
}

func (h *AdminHandler) ToggleStatus(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.admin.ToggleStatus(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(ctx, xhttp.StatusNotFound, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, u)
}

func (h *AdminHandler) ListUsers(ctx *xhttp.RequestCtx) {
	if q := query(ctx, "q"); q != "" {
		writeJSON(ctx, xhttp.StatusOK, h.admin.SearchUsers(ctx, q))
		return
	}
	writeJSON(ctx, xhttp.StatusOK, h.admin.ListUsers(ctx))
}

func (h *AdminHandler) RecordActivity(ctx *xhttp.RequestCtx) {
	var req model.ActivityCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	a, err := h.admin.RecordActivity(ctx, req)
	if err != nil {
		writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, a)
}

func (h *AdminHandler) ListActivities(ctx *xhttp.RequestCtx) {
	as, err := h.admin.ListActivities(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, as)
}

func (h *AdminHandler) Stats(ctx *xhttp.RequestCtx) {
	st, err := h.admin.Stats(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, st)
}
