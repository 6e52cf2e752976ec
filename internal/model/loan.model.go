package model

import (
	"errors"
	"strings"
	"time"
)

type LoanType string

const (
	LoanTypePersonal LoanType = "Personal Loan"
	LoanTypeHome     LoanType = "Home Loan"
	LoanTypeAuto     LoanType = "Auto Loan"
	LoanTypeBusiness LoanType = "Business Loan"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeHome, LoanTypeAuto, LoanTypeBusiness:
		return true
	}
	return false
}

// LoanStatus is the application state machine:
// Pending -> Under Review -> Approved | Rejected.
// Approved and Rejected are terminal.
type LoanStatus string

const (
	LoanStatusPending     LoanStatus = "Pending"
	LoanStatusUnderReview LoanStatus = "Under Review"
	LoanStatusApproved    LoanStatus = "Approved"
	LoanStatusRejected    LoanStatus = "Rejected"
)

// Decidable reports whether an approval decision may still be recorded.
func (s LoanStatus) Decidable() bool {
	return s == LoanStatusPending || s == LoanStatusUnderReview
}

type Loan struct {
	ID              string     `json:"id"`          // L + 3 digits
	CustomerID      string     `json:"customer_id"` // account number
	CustomerName    string     `json:"customer_name"`
	LoanType        LoanType   `json:"loan_type"`
	Amount          float64    `json:"amount"`
	TermMonths      int        `json:"term"`
	InterestRate    float64    `json:"interest_rate"`
	Status          LoanStatus `json:"status"`
	ApplicationDate time.Time  `json:"application_date"`
	ApprovedBy      *string    `json:"approved_by"`
	ApprovalDate    *time.Time `json:"approval_date"`
}

type LoanCreateRequest struct {
	CustomerID   string   `json:"customer_id"`
	LoanType     LoanType `json:"loan_type"`
	Amount       string   `json:"amount"`
	Term         string   `json:"term"`
	InterestRate string   `json:"interest_rate"`
}

func (p LoanCreateRequest) Validate() error {
	if strings.TrimSpace(p.CustomerID) == "" {
		return errors.New("customer_id is required")
	}
	if p.LoanType == "" {
		return errors.New("loan_type is required")
	}
	if !p.LoanType.Valid() {
		return errors.New("unknown loan type: " + string(p.LoanType))
	}
	if strings.TrimSpace(p.Amount) == "" {
		return errors.New("amount is required")
	}
	if strings.TrimSpace(p.Term) == "" {
		return errors.New("term is required")
	}
	return nil
}

// LoanDecision is an approval verdict on a pending application.
type LoanDecision string

const (
	LoanDecisionApprove LoanDecision = "approve"
	LoanDecisionReject  LoanDecision = "reject"
)

func (d LoanDecision) Valid() bool {
	return d == LoanDecisionApprove || d == LoanDecisionReject
}
