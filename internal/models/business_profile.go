package models

import "time"

type BusinessProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	CompanyName        *string   `json:"company_name"`
	LogoURL            *string   `json:"logo_url"`
	ContactName        *string   `json:"contact_name"`
	Email              *string   `json:"email"`
	Phone              *string   `json:"phone"`
	ZipCode            *string   `json:"zip_code"`
	Industry           *string   `json:"industry"`
	Website            *string   `json:"website"`
	CompanySize        *string   `json:"company_size"`
	BrandValues        *[]string `json:"brand_values"`
	MissionStatement   *string   `json:"mission_statement"`
	Objectives         *[]string `json:"objectives"`
	Timeline           *string   `json:"timeline"`
	TargetAge          *[]string `json:"target_age"`
	TargetRegions      *[]string `json:"target_regions"`
	Channels           *[]string `json:"channels"`
	BudgetRange        *string   `json:"budget_range"`
	CompensationTypes  *[]string `json:"compensation_types"`
	IsVerified         *bool     `json:"is_verified"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
