package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/securebank/backoffice/internal/services"
	xhttp "github.com/securebank/backoffice/pkg/http"
)

type DashboardProvider interface {
	Overview(ctx context.Context) services.DashboardOverview
}

type DashboardHandler struct {
	dashboard DashboardProvider
}

func NewDashboardHandler(dashboard DashboardProvider) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func RegisterDashboardRoutes(e *router.Group, h *DashboardHandler, auth *AuthHandler) {
	e.GET("/dashboard", auth.RequireSession(h.Overview))
}

func (h *DashboardHandler) Overview(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, h.dashboard.Overview(ctx))
}
