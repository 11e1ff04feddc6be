// Package provider implements the gateway to the upstream account
// aggregation API (Plaid).
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
)

// DefaultHistoryDays is the transaction history depth requested from the
// provider when the caller does not specify one.
const DefaultHistoryDays = 730

// Config holds provider API configuration, fixed at process start.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("provider client ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("provider secret is required")
	}
	if c.Environment == "" {
		return fmt.Errorf("provider environment is required")
	}

	validEnvs := map[string]bool{
		"sandbox":    true,
		"production": true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid provider environment: must be sandbox or production")
	}

	return nil
}

// Client implements the Gateway interface against the Plaid API.
type Client struct {
	api         *plaid.APIClient
	logger      *slog.Logger
	clientName  string
	environment string
}

// NewClient creates a new provider client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		api:         plaid.NewAPIClient(configuration),
		logger:      slog.Default().With("component", "provider"),
		clientName:  "Ledgerbridge",
		environment: cfg.Environment,
	}, nil
}

// CreateLinkSession creates a short-lived link token for the given user.
// historyDays configures how much transaction history the provider should
// backfill once the user completes linking; the backfill itself happens
// asynchronously after this call returns.
func (c *Client) CreateLinkSession(ctx context.Context, userID string, historyDays int) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user ID is required", ErrInvalidArgument)
	}
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}

	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: userID,
	}

	request := plaid.NewLinkTokenCreateRequest(
		c.clientName,
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
		user,
	)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})
	request.SetTransactions(plaid.LinkTokenTransactions{
		DaysRequested: plaid.PtrInt32(int32(historyDays)),
	})

	// OAuth banks require a redirect URI in production; it must match the
	// one registered in the provider dashboard.
	if c.environment == "production" {
		request.SetRedirectUri("https://localhost:8080/")
	}

	c.logger.Info("Creating link session", "user_id", userID, "history_days", historyDays)

	resp, httpResp, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", c.wrapError("link_token_create", err, httpResp)
	}

	return resp.GetLinkToken(), nil
}

// ExchangePublicToken exchanges a public token from a completed link flow
// for a durable access token and item ID.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error) {
	if publicToken == "" {
		return ExchangeResult{}, fmt.Errorf("%w: public token is required", ErrInvalidArgument)
	}

	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, httpResp, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return ExchangeResult{}, c.wrapError("item_public_token_exchange", err, httpResp)
	}

	return ExchangeResult{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

// ListAccounts fetches the accounts and item metadata for an access token.
func (c *Client) ListAccounts(ctx context.Context, accessToken string) (AccountsResult, error) {
	if accessToken == "" {
		return AccountsResult{}, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}

	request := plaid.NewAccountsGetRequest(accessToken)
	resp, httpResp, err := c.api.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return AccountsResult{}, c.wrapError("accounts_get", err, httpResp)
	}

	accounts := make([]model.Account, 0, len(resp.GetAccounts()))
	for _, a := range resp.GetAccounts() {
		accounts = append(accounts, mapAccount(a))
	}

	item := resp.GetItem()

	c.logger.Info("Fetched accounts", "count", len(accounts), "item_id", item.GetItemId())

	return AccountsResult{
		Accounts: accounts,
		Item: model.Item{
			ID:            item.GetItemId(),
			InstitutionID: item.GetInstitutionId(),
		},
	}, nil
}

// ListTransactions fetches one page of transactions within the window.
// Provider failures surface as a classified *Error; the caller decides what
// each code means. No retries happen here.
func (c *Client) ListTransactions(ctx context.Context, accessToken string, window model.DateWindow, query Query) (TransactionsResult, error) {
	if accessToken == "" {
		return TransactionsResult{}, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}
	if !window.Valid() {
		return TransactionsResult{}, fmt.Errorf("%w: invalid date window %s", ErrInvalidArgument, window)
	}

	limit := query.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	request := plaid.NewTransactionsGetRequest(
		accessToken,
		window.Start.Format(model.DateFormat),
		window.End.Format(model.DateFormat),
	)
	options := plaid.TransactionsGetRequestOptions{
		Count:  plaid.PtrInt32(int32(limit)),
		Offset: plaid.PtrInt32(int32(query.Offset)),
	}
	if query.AccountID != "" {
		options.AccountIds = &[]string{query.AccountID}
	}
	request.SetOptions(options)

	c.logger.Debug("Fetching transactions",
		"window", window.String(),
		"limit", limit,
		"offset", query.Offset)

	resp, httpResp, err := c.api.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
	if err != nil {
		return TransactionsResult{}, c.wrapError("transactions_get", err, httpResp)
	}

	records := make([]model.Transaction, 0, len(resp.GetTransactions()))
	for _, pt := range resp.GetTransactions() {
		records = append(records, c.mapTransaction(pt))
	}

	return TransactionsResult{
		Transactions: records,
		Total:        int(resp.GetTotalTransactions()),
	}, nil
}

// mapTransaction converts a provider transaction to our model. Records pass
// through unmodified beyond date parsing.
func (c *Client) mapTransaction(pt plaid.Transaction) model.Transaction {
	date, err := time.Parse(model.DateFormat, pt.GetDate())
	if err != nil {
		// Leave the date zero; coverage computation skips unparseable dates.
		c.logger.Error("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
	}

	return model.Transaction{
		Date:         date,
		ID:           pt.GetTransactionId(),
		Name:         pt.GetName(),
		MerchantName: pt.GetMerchantName(),
		AccountID:    pt.GetAccountId(),
		Amount:       pt.GetAmount(),
		Category:     pt.GetCategory(),
		Pending:      pt.GetPending(),
	}
}

func mapAccount(a plaid.AccountBase) model.Account {
	balances := a.GetBalances()
	return model.Account{
		ID:               a.GetAccountId(),
		Name:             a.GetName(),
		OfficialName:     a.GetOfficialName(),
		Mask:             a.GetMask(),
		Type:             string(a.GetType()),
		Subtype:          string(a.GetSubtype()),
		CurrentBalance:   balances.GetCurrent(),
		AvailableBalance: balances.GetAvailable(),
		Currency:         balances.GetIsoCurrencyCode(),
	}
}

// wrapError turns an SDK error into a classified *Error, preserving the
// provider's error code and HTTP status verbatim.
func (c *Client) wrapError(op string, err error, resp *http.Response) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if plaidError := extractPlaidError(err); plaidError != nil {
		return &Error{
			Op:         op,
			Code:       plaidError.ErrorCode,
			Message:    plaidError.ErrorMessage,
			StatusCode: status,
		}
	}
	return fmt.Errorf("provider %s failed: %w", op, err)
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}

// Ensure Client implements the Gateway interface.
var _ Gateway = (*Client)(nil)
