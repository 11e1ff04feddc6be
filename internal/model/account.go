package model

// Account represents a single account within a linked item.
type Account struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	OfficialName     string  `json:"official_name,omitempty"`
	Mask             string  `json:"mask,omitempty"`
	Type             string  `json:"type"`
	Subtype          string  `json:"subtype,omitempty"`
	CurrentBalance   float64 `json:"current_balance"`
	AvailableBalance float64 `json:"available_balance"`
	Currency         string  `json:"currency,omitempty"`
}

// Item describes the linked financial item an account set belongs to.
type Item struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institution_id,omitempty"`
}
