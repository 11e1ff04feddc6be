package provider

import (
	"context"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
)

// MaxPageSize is the largest transaction page the provider will serve.
const MaxPageSize = 500

// Query bounds a transaction listing: page size, page offset, and an
// optional single-account filter.
type Query struct {
	Limit     int
	Offset    int
	AccountID string
}

// ExchangeResult is the durable credential pair minted from a public token.
type ExchangeResult struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// AccountsResult holds an item's accounts plus the item metadata itself.
type AccountsResult struct {
	Accounts []model.Account `json:"accounts"`
	Item     model.Item      `json:"item"`
}

// TransactionsResult is one page of records plus the provider's total count
// of records available in the requested window.
type TransactionsResult struct {
	Transactions []model.Transaction `json:"transactions"`
	Total        int                 `json:"total"`
}

// Gateway defines the contract with the upstream account aggregation API.
// This interface allows for easy mocking in tests and swapping providers.
// Implementations perform no retries; retry policy belongs to the caller.
type Gateway interface {
	CreateLinkSession(ctx context.Context, userID string, historyDays int) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error)
	ListAccounts(ctx context.Context, accessToken string) (AccountsResult, error)
	ListTransactions(ctx context.Context, accessToken string, window model.DateWindow, query Query) (TransactionsResult, error)
}
