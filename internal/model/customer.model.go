package model

import (
	"errors"
	"strings"
)

// AccountType is the closed set of account products.
type AccountType string

const (
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
	AccountTypeBusiness AccountType = "Business"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness:
		return true
	}
	return false
}

type Customer struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	AccountNumber string      `json:"account_number"` // system generated, ACC + 9 digits
	AccountType   AccountType `json:"account_type"`
	Balance       float64     `json:"balance"`
}

// CustomerCreateRequest is the input for opening a customer record.
// InitialDeposit stays a string so an unparsable value can fall back
// to a zero balance instead of rejecting the form.
type CustomerCreateRequest struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	AccountType    AccountType `json:"account_type"`
	InitialDeposit string      `json:"initial_deposit"`
}

func (p CustomerCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return errors.New("phone is required")
	}
	if p.AccountType != "" && !p.AccountType.Valid() {
		return errors.New("unknown account type: " + string(p.AccountType))
	}
	return nil
}
