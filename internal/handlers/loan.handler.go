package handlers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/services"
	xhttp "github.com/securebank/backoffice/pkg/http"
)

type LoanProvider interface {
	Create(ctx context.Context, p model.LoanCreateRequest, actor string) (model.Loan, error)
	Decide(ctx context.Context, loanID string, decision model.LoanDecision, decidedBy string) (model.Loan, error)
	List(ctx context.Context) []model.Loan
	Search(ctx context.Context, q string) []model.Loan
}

type LoanHandler struct {
	loans LoanProvider
}

func NewLoanHandler(loans LoanProvider) *LoanHandler {
	return &LoanHandler{loans: loans}
}

func RegisterLoanRoutes(e *router.Group, h *LoanHandler, auth *AuthHandler) {
	e.GET("/loans", auth.RequireSession(h.List))
	e.POST("/loans", auth.RequireSession(h.Create))
	e.POST("/loans/{id}/decision", auth.RequireAdmin(h.Decide))
}

func (h *LoanHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.LoanCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	l, err := h.loans.Create(ctx, req, sessionFrom(ctx).Name)
	if err != nil {
		writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, l)
}

type loanDecisionRequest struct {
	Decision model.LoanDecision `json:"decision"`
}

func (h *LoanHandler) Decide(ctx *xhttp.RequestCtx) {
	var req loanDecisionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	l, err := h.loans.Decide(ctx, pathString(ctx, "id"), req.Decision, sessionFrom(ctx).Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			writeError(ctx, xhttp.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrLoanAlreadyDecided):
			writeError(ctx, xhttp.StatusConflict, err.Error())
		default:
			writeError(ctx, xhttp.StatusUnprocessableEntity, err.Error())
		}
		return
	}
	writeJSON(ctx, xhttp.StatusOK, l)
}

func (h *LoanHandler) List(ctx *xhttp.RequestCtx) {
	if q := query(ctx, "q"); q != "" {
		writeJSON(ctx, xhttp.StatusOK, h.loans.Search(ctx, q))
		return
	}
	writeJSON(ctx, xhttp.StatusOK, h.loans.List(ctx))
}
