package e2e

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/securebank/backoffice/internal/audit"
	"github.com/securebank/backoffice/internal/handlers"
	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/seed"
	"github.com/securebank/backoffice/internal/services"
	"github.com/securebank/backoffice/internal/session"
	"github.com/securebank/backoffice/internal/store"
	xhttp "github.com/securebank/backoffice/pkg/http"
	"github.com/securebank/backoffice/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type TestEnvironment struct {
	Redis              *miniredis.Miniredis
	Auth               *handlers.AuthHandler
	CustomerHandler    *handlers.CustomerHandler
	TransactionHandler *handlers.TransactionHandler
	LoanHandler        *handlers.LoanHandler
	AdminHandler       *handlers.AdminHandler
	DashboardHandler   *handlers.DashboardHandler
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	customers := store.NewCustomerStore()
	transactions := store.NewTransactionStore()
	loans := store.NewLoanStore()
	users := store.NewUserStore()
	seed.Load(customers, transactions, loans, users)

	feed := audit.NewFeed(adapter, "test:activities", 0)
	manager := session.NewManager(session.NewDirectoryVerifier(users), adapter, users, time.Hour, 0)

	return &TestEnvironment{
		Redis:              mr,
		Auth:               handlers.NewAuthHandler(manager, nil),
		CustomerHandler:    handlers.NewCustomerHandler(services.NewCustomerService(customers, nil)),
		TransactionHandler: handlers.NewTransactionHandler(services.NewTransactionService(transactions, customers, nil)),
		LoanHandler:        handlers.NewLoanHandler(services.NewLoanService(loans, customers, nil)),
		AdminHandler:       handlers.NewAdminHandler(services.NewAdminService(users, feed, nil)),
		DashboardHandler:   handlers.NewDashboardHandler(services.NewDashboardService(customers, transactions, loans)),
	}
}

func request(method, path string, payload any) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if payload != nil {
		body, _ := json.Marshal(payload)
		ctx.Request.SetBody(body)
	}
	return ctx
}

func authed(ctx *xhttp.RequestCtx, token string) *xhttp.RequestCtx {
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	return ctx
}

func loginAs(t *testing.T, env *TestEnvironment, username, password string) session.Session {
	t.Helper()
	ctx := request("POST", "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	})
	env.Auth.Login(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var s session.Session
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &s))
	return s
}

func TestBackofficeFlow(t *testing.T) {
	env := setupE2EEnvironment(t)

	admin := loginAs(t, env, "admin", "admin123")
	employee := loginAs(t, env, "employee", "emp123")

	var customer model.Customer
	t.Run("employee opens a customer record", func(t *testing.T) {
		ctx := authed(request("POST", "/api/v1/customers", map[string]string{
			"name":            "Ann Lee",
			"email":           "ann.lee@email.com",
			"phone":           "+1 234 567 8999",
			"initial_deposit": "250.50",
		}), employee.Token)
		wrapped := env.Auth.RequireSession(env.CustomerHandler.Create)
		wrapped(ctx)

		require.Equal(t, 201, ctx.Response.StatusCode(), string(ctx.Response.Body()))
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &customer))
		assert.Regexp(t, `^ACC\d{9}$`, customer.AccountNumber)
		assert.InDelta(t, 250.50, customer.Balance, 0.001)
	})

	t.Run("a deposit against the new account snapshots the name", func(t *testing.T) {
		ctx := authed(request("POST", "/api/v1/transactions", map[string]string{
			"customer_id": customer.AccountNumber,
			"type":        "Deposit",
			"amount":      "99.99",
		}), employee.Token)
		env.Auth.RequireSession(env.TransactionHandler.Create)(ctx)

		require.Equal(t, 201, ctx.Response.StatusCode(), string(ctx.Response.Body()))

		var tx model.Transaction
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tx))
		assert.Equal(t, "Ann Lee", tx.CustomerName)
		assert.Equal(t, "Deposit transaction", tx.Description)
		assert.Equal(t, model.TransactionStatusCompleted, tx.Status)
	})

	var loan model.Loan
	t.Run("a loan application starts pending", func(t *testing.T) {
		ctx := authed(request("POST", "/api/v1/loans", map[string]string{
			"customer_id": customer.AccountNumber,
			"loan_type":   "Personal Loan",
			"amount":      "15000",
			"term":        "36",
		}), employee.Token)
		env.Auth.RequireSession(env.LoanHandler.Create)(ctx)

		require.Equal(t, 201, ctx.Response.StatusCode(), string(ctx.Response.Body()))
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &loan))
		assert.Equal(t, model.LoanStatusPending, loan.Status)
		assert.InDelta(t, 5.0, loan.InterestRate, 0.001)
	})

	t.Run("only an admin can decide it", func(t *testing.T) {
		decide := func(token string) *xhttp.RequestCtx {
			ctx := authed(request("POST", "/api/v1/loans/"+loan.ID+"/decision", map[string]string{
				"decision": "approve",
			}), token)
			ctx.SetUserValue("id", loan.ID)
			env.Auth.RequireAdmin(env.LoanHandler.Decide)(ctx)
			return ctx
		}

		refused := decide(employee.Token)
		assert.Equal(t, 403, refused.Response.StatusCode())

		approved := decide(admin.Token)
		require.Equal(t, 200, approved.Response.StatusCode(), string(approved.Response.Body()))

		var decided model.Loan
		require.NoError(t, json.Unmarshal(approved.Response.Body(), &decided))
		assert.Equal(t, model.LoanStatusApproved, decided.Status)
		require.NotNil(t, decided.ApprovedBy)
		assert.Equal(t, "John Admin", *decided.ApprovedBy)

		// deciding again is refused, the verdict is terminal
		again := decide(admin.Token)
		assert.Equal(t, 409, again.Response.StatusCode())
	})

	t.Run("the admin records the approval in the activity feed", func(t *testing.T) {
		ctx := authed(request("POST", "/api/v1/activities", map[string]string{
			"user":   admin.Name,
			"action": "Approved loan application " + loan.ID,
			"type":   "Approval",
		}), admin.Token)
		env.Auth.RequireAdmin(env.AdminHandler.RecordActivity)(ctx)
		require.Equal(t, 201, ctx.Response.StatusCode(), string(ctx.Response.Body()))

		listCtx := authed(request("GET", "/api/v1/activities", nil), admin.Token)
		env.Auth.RequireAdmin(env.AdminHandler.ListActivities)(listCtx)
		require.Equal(t, 200, listCtx.Response.StatusCode())

		var activities []model.Activity
		require.NoError(t, json.Unmarshal(listCtx.Response.Body(), &activities))
		require.Len(t, activities, 1)
		assert.Contains(t, activities[0].Action, loan.ID)
	})

	t.Run("the dashboard reflects the new records", func(t *testing.T) {
		ctx := authed(request("GET", "/api/v1/dashboard", nil), employee.Token)
		env.Auth.RequireSession(env.DashboardHandler.Overview)(ctx)
		require.Equal(t, 200, ctx.Response.StatusCode())

		var o services.DashboardOverview
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &o))
		assert.Equal(t, 4, o.TotalCustomers)
		assert.Equal(t, 4, o.TotalTransactions)
		assert.Len(t, o.RecentTransactions, 3)
	})

	t.Run("search is case-insensitive and repeatable", func(t *testing.T) {
		search := func() []model.Customer {
			ctx := authed(request("GET", "/api/v1/customers?q=ANN", nil), employee.Token)
			env.Auth.RequireSession(env.CustomerHandler.List)(ctx)
			require.Equal(t, 200, ctx.Response.StatusCode())
			var got []model.Customer
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
			return got
		}

		first := search()
		require.Len(t, first, 1)
		assert.Equal(t, "Ann Lee", first[0].Name)
		second := search()
		assert.Equal(t, first, second)
	})

	t.Run("logout ends the session", func(t *testing.T) {
		ctx := authed(request("POST", "/api/v1/logout", nil), employee.Token)
		env.Auth.RequireSession(env.Auth.Logout)(ctx)
		require.Equal(t, 200, ctx.Response.StatusCode())

		again := authed(request("GET", "/api/v1/dashboard", nil), employee.Token)
		env.Auth.RequireSession(env.DashboardHandler.Overview)(again)
		assert.Equal(t, 401, again.Response.StatusCode())
	})
}

func TestInactiveUserCannotLogin(t *testing.T) {
	env := setupE2EEnvironment(t)

	ctx := request("POST", "/api/v1/login", map[string]string{
		"username": "teller01",
		"password": "teller123",
	})
	env.Auth.Login(ctx)
	assert.Equal(t, 403, ctx.Response.StatusCode())
}
