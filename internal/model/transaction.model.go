package model

import (
	"errors"
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
	TransactionTypeTransfer   TransactionType = "Transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusFailed    TransactionStatus = "Failed"
)

// Transaction is immutable once created. CustomerName is a snapshot
// taken from the customer record at creation time and is never
// synchronized afterwards.
type Transaction struct {
	ID           string            `json:"id"`          // T + 3 digits
	CustomerID   string            `json:"customer_id"` // account number
	CustomerName string            `json:"customer_name"`
	Type         TransactionType   `json:"type"`
	Amount       float64           `json:"amount"`
	Date         time.Time         `json:"date"`
	Description  string            `json:"description"`
	Status       TransactionStatus `json:"status"`
}

type TransactionCreateRequest struct {
	CustomerID  string          `json:"customer_id"`
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
}

func (p TransactionCreateRequest) Validate() error {
	if strings.TrimSpace(p.CustomerID) == "" {
		return errors.New("customer_id is required")
	}
	if p.Type == "" {
		return errors.New("type is required")
	}
	if !p.Type.Valid() {
		return errors.New("unknown transaction type: " + string(p.Type))
	}
	if strings.TrimSpace(p.Amount) == "" {
		return errors.New("amount is required")
	}
	return nil
}
