// Package model defines the domain types shared across the application.
package model

import "time"

// Transaction represents a single financial transaction as reported by the
// upstream provider. Records pass through unmodified; the only field this
// system interprets is Date.
type Transaction struct {
	Date         time.Time `json:"date"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`          // Raw transaction description
	MerchantName string    `json:"merchant_name"` // Cleaned merchant name, when the provider has one
	AccountID    string    `json:"account_id"`
	Amount       float64   `json:"amount"`
	Category     []string  `json:"category,omitempty"` // Category hierarchy from the provider
	Pending      bool      `json:"pending"`
}
