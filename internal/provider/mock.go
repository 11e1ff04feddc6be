package provider

import (
	"context"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
)

// MockGateway is a mock implementation of Gateway for testing.
type MockGateway struct {
	// Functions that can be set by tests to control behavior
	CreateLinkSessionFn   func(ctx context.Context, userID string, historyDays int) (string, error)
	ExchangePublicTokenFn func(ctx context.Context, publicToken string) (ExchangeResult, error)
	ListAccountsFn        func(ctx context.Context, accessToken string) (AccountsResult, error)
	ListTransactionsFn    func(ctx context.Context, accessToken string, window model.DateWindow, query Query) (TransactionsResult, error)

	// Call tracking
	CreateLinkSessionCalls   int
	ExchangePublicTokenCalls int
	ListAccountsCalls        int
	ListTransactionsCalls    []ListTransactionsCall
}

// ListTransactionsCall records the parameters of a ListTransactions call.
type ListTransactionsCall struct {
	AccessToken string
	Window      model.DateWindow
	Query       Query
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		ListTransactionsCalls: []ListTransactionsCall{},
	}
}

// CreateLinkSession implements Gateway.CreateLinkSession.
func (m *MockGateway) CreateLinkSession(ctx context.Context, userID string, historyDays int) (string, error) {
	m.CreateLinkSessionCalls++

	if m.CreateLinkSessionFn != nil {
		return m.CreateLinkSessionFn(ctx, userID, historyDays)
	}

	return "link-sandbox-mock", nil
}

// ExchangePublicToken implements Gateway.ExchangePublicToken.
func (m *MockGateway) ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error) {
	m.ExchangePublicTokenCalls++

	if m.ExchangePublicTokenFn != nil {
		return m.ExchangePublicTokenFn(ctx, publicToken)
	}

	return ExchangeResult{AccessToken: "access-sandbox-mock", ItemID: "item-mock"}, nil
}

// ListAccounts implements Gateway.ListAccounts.
func (m *MockGateway) ListAccounts(ctx context.Context, accessToken string) (AccountsResult, error) {
	m.ListAccountsCalls++

	if m.ListAccountsFn != nil {
		return m.ListAccountsFn(ctx, accessToken)
	}

	return AccountsResult{Accounts: []model.Account{}}, nil
}

// ListTransactions implements Gateway.ListTransactions.
func (m *MockGateway) ListTransactions(ctx context.Context, accessToken string, window model.DateWindow, query Query) (TransactionsResult, error) {
	m.ListTransactionsCalls = append(m.ListTransactionsCalls, ListTransactionsCall{
		AccessToken: accessToken,
		Window:      window,
		Query:       query,
	})

	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, accessToken, window, query)
	}

	// Default behavior: empty page, nothing available
	return TransactionsResult{Transactions: []model.Transaction{}}, nil
}

// Reset clears all call tracking.
func (m *MockGateway) Reset() {
	m.CreateLinkSessionCalls = 0
	m.ExchangePublicTokenCalls = 0
	m.ListAccountsCalls = 0
	m.ListTransactionsCalls = []ListTransactionsCall{}
}

// Ensure MockGateway implements the Gateway interface.
var _ Gateway = (*MockGateway)(nil)
