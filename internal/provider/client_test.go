package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		config  Config
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid sandbox config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
			},
			wantErr: false,
		},
		{
			name: "valid production config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "production",
			},
			wantErr: false,
		},
		{
			name: "missing client ID",
			config: Config{
				Secret:      "test-secret",
				Environment: "sandbox",
			},
			wantErr: true,
			errMsg:  "provider client ID is required",
		},
		{
			name: "missing secret",
			config: Config{
				ClientID:    "test-client-id",
				Environment: "sandbox",
			},
			wantErr: true,
			errMsg:  "provider secret is required",
		},
		{
			name: "missing environment",
			config: Config{
				ClientID: "test-client-id",
				Secret:   "test-secret",
			},
			wantErr: true,
			errMsg:  "provider environment is required",
		},
		{
			name: "invalid environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "development",
			},
			wantErr: true,
			errMsg:  "invalid provider environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{ClientID: "id", Secret: "secret", Environment: "staging"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid provider environment")
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(Config{
		ClientID:    "test-client-id",
		Secret:      "test-secret",
		Environment: "sandbox",
	})
	require.NoError(t, err)
	return client
}

func TestClient_CreateLinkSession_EmptyUserID(t *testing.T) {
	client := newTestClient(t)

	_, err := client.CreateLinkSession(context.Background(), "", 730)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClient_ExchangePublicToken_EmptyToken(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ExchangePublicToken(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClient_ListAccounts_EmptyToken(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ListAccounts(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClient_ListTransactions_InvalidInput(t *testing.T) {
	client := newTestClient(t)
	window := model.NewDateWindow(date(2024, 1, 1), date(2024, 6, 30))

	_, err := client.ListTransactions(context.Background(), "", window, Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	inverted := model.DateWindow{Start: date(2024, 6, 30), End: date(2024, 1, 1)}
	_, err = client.ListTransactions(context.Background(), "access-token", inverted, Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestError_PreservesProviderDetail(t *testing.T) {
	err := &Error{
		Op:         "transactions_get",
		Code:       CodeProductNotReady,
		Message:    "the requested product is not yet ready",
		StatusCode: 400,
	}

	assert.Contains(t, err.Error(), "transactions_get")
	assert.Contains(t, err.Error(), CodeProductNotReady)

	var wrapped error = err
	got := AsError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeProductNotReady, got.Code)
	assert.Equal(t, 400, got.StatusCode)

	assert.Nil(t, AsError(errors.New("plain error")))
}
