package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/securebank/backoffice/internal/model"
	xhttp "github.com/securebank/backoffice/pkg/http"
)

type TransactionProvider interface {
	Create(ctx context.Context, p model.TransactionCreateRequest, actor string) (model.Transaction, error)
	List(ctx context.Context) []model.Transaction
	Search(ctx context.Context, q string) []model.Transaction
}

type TransactionHandler struct {
	transactions TransactionProvider
}

func NewTransactionHandler(transactions TransactionProvider) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler, auth *AuthHandler) {
	e.GET("/transactions", auth.RequireSession(h.List))
	e.POST("/transactions", auth.RequireSession(h.Create))
}

func (h *TransactionHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.TransactionCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	t, err := h.transactions.Create(ctx, req, sessionFrom(ctx).Name)
	if err != nil {
		writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, t)
}

func (h *TransactionHandler) List(ctx *xhttp.RequestCtx) {
	if q := query(ctx, "q"); q != "" {
		writeJSON(ctx, xhttp.StatusOK, h.transactions.Search(ctx, q))
		return
	}
	writeJSON(ctx, xhttp.StatusOK, h.transactions.List(ctx))
}
