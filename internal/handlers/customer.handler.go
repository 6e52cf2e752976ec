package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/securebank/backoffice/internal/model"
	xhttp "github.com/securebank/backoffice/pkg/http"
)

// CustomerProvider is the slice of the customer service the transport
// layer needs.
type CustomerProvider interface {
	Create(ctx context.Context, p model.CustomerCreateRequest, actor string) (model.Customer, error)
	List(ctx context.Context) []model.Customer
	Search(ctx context.Context, q string) []model.Customer
}

type CustomerHandler struct {
	customers CustomerProvider
}

func NewCustomerHandler(customers CustomerProvider) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler, auth *AuthHandler) {
	e.GET("/customers", auth.RequireSession(h.List))
	e.POST("/customers", auth.RequireSession(h.Create))
}

func (h *CustomerHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.CustomerCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	c, err := h.customers.Create(ctx, req, sessionFrom(ctx).Name)
	if err != nil {
		writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, c)
}

func (h *CustomerHandler) List(ctx *xhttp.RequestCtx) {
	if q := query(ctx, "q"); q != "" {
		writeJSON(ctx, xhttp.StatusOK, h.customers.Search(ctx, q))
		return
	}
	writeJSON(ctx, xhttp.StatusOK, h.customers.List(ctx))
}
