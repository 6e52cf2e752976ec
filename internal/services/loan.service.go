package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/notify"
	"github.com/securebank/backoffice/internal/store"
	"github.com/securebank/backoffice/pkg/prom"
)

var (
	ErrLoanNotFound       = errors.New("loan not found")
	ErrLoanAlreadyDecided = errors.New("loan is no longer pending or under review")
)

const defaultInterestRate = 5.0

type LoanService struct {
	loans     *store.LoanStore
	customers *store.CustomerStore
	notifier  *notify.Notifier
}

func NewLoanService(loans *store.LoanStore, customers *store.CustomerStore, notifier *notify.Notifier) *LoanService {
	return &LoanService{
		loans:     loans,
		customers: customers,
		notifier:  notifier,
	}
}

// Create submits a loan application. New applications always start
// Pending with no approval stamps.
func (s *LoanService) Create(ctx context.Context, p model.LoanCreateRequest, actor string) (model.Loan, error) {
	if err := p.Validate(); err != nil {
		return model.Loan{}, err
	}

	customerName := "Unknown"
	if c, ok := s.customers.FindByAccountNumber(p.CustomerID); ok {
		customerName = c.Name
	}

	id, err := generateID("L", 3, s.loans.Has)
	if err != nil {
		return model.Loan{}, err
	}

	l := model.Loan{
		ID:              id,
		CustomerID:      p.CustomerID,
		CustomerName:    customerName,
		LoanType:        p.LoanType,
		Amount:          parseAmount(p.Amount),
		TermMonths:      parseTerm(p.Term),
		InterestRate:    parseRate(p.InterestRate),
		Status:          model.LoanStatusPending,
		ApplicationDate: today(),
	}

	created, err := s.loans.Prepend(l)
	if err != nil {
		return model.Loan{}, err
	}

	s.notifier.Publish(notify.Event{
		Kind:    notify.EventRecordCreated,
		Entity:  "loan",
		Actor:   actor,
		Message: "Loan application submitted successfully",
	})
	return created, nil
}

// Decide records an approval verdict. Only Pending and Under Review
// applications can be decided; Approved and Rejected are terminal, so
// a second decision is refused rather than overwritten. The decision
// is stamped with the acting operator and today's date.
func (s *LoanService) Decide(ctx context.Context, loanID string, decision model.LoanDecision, decidedBy string) (model.Loan, error) {
	if !decision.Valid() {
		return model.Loan{}, errors.New("unknown decision: " + string(decision))
	}

	updated, err := s.loans.Update(loanID, func(l *model.Loan) error {
		if !l.Status.Decidable() {
			return ErrLoanAlreadyDecided
		}
		if decision == model.LoanDecisionApprove {
			l.Status = model.LoanStatusApproved
		} else {
			l.Status = model.LoanStatusRejected
		}
		by := decidedBy
		at := today()
		l.ApprovedBy = &by
		l.ApprovalDate = &at
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Loan{}, ErrLoanNotFound
		}
		return model.Loan{}, err
	}

	s.notifier.Publish(notify.Event{
		Kind:    notify.EventLoanDecided,
		Entity:  "loan",
		Label:   string(decision),
		Actor:   decidedBy,
		Message: "Loan " + string(updated.Status) + ": " + updated.ID,
	})
	return updated, nil
}

func (s *LoanService) Search(ctx context.Context, q string) []model.Loan {
	if q != "" {
		prom.IncCounterVec(prom.SystemRecords, prom.MetricSearches, "loan")
	}
	return s.loans.Search(q)
}

func (s *LoanService) List(ctx context.Context) []model.Loan {
	return s.loans.List()
}

func parseTerm(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseRate falls back to the standard rate when the input is blank or
// unparsable, mirroring the legacy form default.
func parseRate(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return defaultInterestRate
	}
	return v
}

// today is the date-only stamp used for application and approval dates.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
