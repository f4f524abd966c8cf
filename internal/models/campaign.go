package models

import "time"

type Campaign struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"business_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	Bundles     *[]string `json:"bundles,omitempty"`
	BudgetRange *string   `json:"budget_range,omitempty"`
	Generated   bool      `json:"generated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
