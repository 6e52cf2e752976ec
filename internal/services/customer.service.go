package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/notify"
	"github.com/securebank/backoffice/internal/store"
	"github.com/securebank/backoffice/pkg/prom"
)

type CustomerService struct {
	customers *store.CustomerStore
	notifier  *notify.Notifier
}

func NewCustomerService(customers *store.CustomerStore, notifier *notify.Notifier) *CustomerService {
	return &CustomerService{
		customers: customers,
		notifier:  notifier,
	}
}

// Create validates, derives the account number and appends. Validation
// is all-or-nothing: nothing is written when a required field is blank.
func (s *CustomerService) Create(ctx context.Context, p model.CustomerCreateRequest, actor string) (model.Customer, error) {
	if err := p.Validate(); err != nil {
		return model.Customer{}, err
	}

	accountType := p.AccountType
	if accountType == "" {
		accountType = model.AccountTypeSavings
	}

	acc, err := generateID("ACC", 9, s.customers.HasAccountNumber)
	if err != nil {
		return model.Customer{}, err
	}

	c := model.Customer{
		Name:          strings.TrimSpace(p.Name),
		Email:         strings.TrimSpace(p.Email),
		Phone:         strings.TrimSpace(p.Phone),
		Address:       strings.TrimSpace(p.Address),
		AccountNumber: acc,
		AccountType:   accountType,
		Balance:       parseAmount(p.InitialDeposit),
	}

	created, err := s.customers.Append(c)
	if err != nil {
		return model.Customer{}, err
	}

	s.notifier.Publish(notify.Event{
		Kind:    notify.EventRecordCreated,
		Entity:  "customer",
		Actor:   actor,
		Message: "Customer added successfully",
	})
	return created, nil
}

// Search filters a view over the collection; an empty query returns
// everything in insertion order.
func (s *CustomerService) Search(ctx context.Context, q string) []model.Customer {
	if q != "" {
		prom.IncCounterVec(prom.SystemRecords, prom.MetricSearches, "customer")
	}
	return s.customers.Search(q)
}

func (s *CustomerService) List(ctx context.Context) []model.Customer {
	return s.customers.List()
}

// parseAmount absorbs unparsable or negative input as zero, the same
// forgiving behavior the legacy form had.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
