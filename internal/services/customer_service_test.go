package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountNumberRe = regexp.MustCompile(`^ACC\d{9}$`)

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with derived account number and parsed deposit", func(t *testing.T) {
		customers := store.NewCustomerStore()
		svc := NewCustomerService(customers, nil)

		c, err := svc.Create(ctx, model.CustomerCreateRequest{
			Name:           "Ann Lee",
			Email:          "ann@example.com",
			Phone:          "+1 555-0199",
			InitialDeposit: "250.50",
		}, "Sarah Employee")
		require.NoError(t, err)

		assert.Equal(t, int64(1), c.ID)
		assert.Regexp(t, accountNumberRe, c.AccountNumber)
		assert.Equal(t, model.AccountTypeSavings, c.AccountType)
		assert.InDelta(t, 250.50, c.Balance, 0.001)
		assert.Empty(t, c.Address)
		assert.Equal(t, 1, customers.Len())
	})

	t.Run("missing required field writes nothing", func(t *testing.T) {
		customers := store.NewCustomerStore()
		svc := NewCustomerService(customers, nil)

		_, err := svc.Create(ctx, model.CustomerCreateRequest{
			Name:  "Ann Lee",
			Email: "ann@example.com",
		}, "Sarah Employee")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phone is required")
		assert.Equal(t, 0, customers.Len())
	})

	t.Run("unknown account type is rejected", func(t *testing.T) {
		svc := NewCustomerService(store.NewCustomerStore(), nil)

		_, err := svc.Create(ctx, model.CustomerCreateRequest{
			Name:        "Ann Lee",
			Email:       "ann@example.com",
			Phone:       "+1 555-0199",
			AccountType: "Premium",
		}, "Sarah Employee")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown account type")
	})

	t.Run("unparsable deposit falls back to zero", func(t *testing.T) {
		svc := NewCustomerService(store.NewCustomerStore(), nil)

		c, err := svc.Create(ctx, model.CustomerCreateRequest{
			Name:           "Ann Lee",
			Email:          "ann@example.com",
			Phone:          "+1 555-0199",
			InitialDeposit: "a lot",
		}, "Sarah Employee")
		require.NoError(t, err)
		assert.Zero(t, c.Balance)
	})

	t.Run("explicit account type is kept", func(t *testing.T) {
		svc := NewCustomerService(store.NewCustomerStore(), nil)

		c, err := svc.Create(ctx, model.CustomerCreateRequest{
			Name:        "Ann Lee",
			Email:       "ann@example.com",
			Phone:       "+1 555-0199",
			AccountType: model.AccountTypeBusiness,
		}, "Sarah Employee")
		require.NoError(t, err)
		assert.Equal(t, model.AccountTypeBusiness, c.AccountType)
	})
}

func TestCustomerService_Search(t *testing.T) {
	ctx := context.Background()
	customers := store.NewCustomerStore()
	svc := NewCustomerService(customers, nil)

	_, err := svc.Create(ctx, model.CustomerCreateRequest{
		Name:  "Ann Lee",
		Email: "ann@example.com",
		Phone: "+1 555-0199",
	}, "Sarah Employee")
	require.NoError(t, err)

	assert.Len(t, svc.Search(ctx, "ann"), 1)
	assert.Empty(t, svc.Search(ctx, "bob"))
	assert.Len(t, svc.List(ctx), 1)
}

func TestParseAmount(t *testing.T) {
	assert.InDelta(t, 99.99, parseAmount("99.99"), 0.001)
	assert.InDelta(t, 10, parseAmount(" 10 "), 0.001)
	assert.Zero(t, parseAmount(""))
	assert.Zero(t, parseAmount("abc"))
	assert.Zero(t, parseAmount("-5"))
}
