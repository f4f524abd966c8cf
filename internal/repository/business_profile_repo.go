package repository

import (
	"context"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
)

const businessProfileColumns = `
	id, user_id, company_name, logo_url, contact_name, email, phone, zip_code,
	industry, website, company_size, brand_values, mission_statement,
	objectives, timeline, target_age, target_regions, channels, budget_range,
	compensation_types, is_verified, onboarding_complete, created_at, updated_at`

type BusinessProfileRepository struct {
	db DBTX
}

func NewBusinessProfileRepository(db DBTX) *BusinessProfileRepository {
	return &BusinessProfileRepository{db: db}
}

type BusinessOnboardingInput struct {
	CompanyName       string
	ContactName       string
	Email             string
	Phone             *string
	ZipCode           *string
	Industry          string
	Website           *string
	CompanySize       string
	BrandValues       []string
	MissionStatement  *string
	Objectives        []string
	Timeline          string
	TargetAge         []string
	TargetRegions     []string
	Channels          []string
	BudgetRange       string
	CompensationTypes []string
}

type UpdateBusinessProfileInput struct {
	CompanyName      *string
	LogoURL          *string
	ContactName      *string
	Phone            *string
	ZipCode          *string
	Industry         *string
	Website          *string
	CompanySize      *string
	BrandValues      *[]string
	MissionStatement *string
	Objectives       *[]string
	BudgetRange      *string
}

func (r *BusinessProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO business_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *BusinessProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.BusinessProfile, error) {
	query := `SELECT ` + businessProfileColumns + ` FROM business_profiles WHERE user_id = $1`
	row := r.db.QueryRow(ctx, query, userID)
	return scanBusinessProfile(row)
}

func (r *BusinessProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req BusinessOnboardingInput) (*models.BusinessProfile, error) {
	query := `
		UPDATE business_profiles
		SET company_name = $1,
			contact_name = $2,
			email = $3,
			phone = $4,
			zip_code = $5,
			industry = $6,
			website = $7,
			company_size = $8,
			brand_values = $9,
			mission_statement = $10,
			objectives = $11,
			timeline = $12,
			target_age = $13,
			target_regions = $14,
			channels = $15,
			budget_range = $16,
			compensation_types = $17,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $18
		RETURNING ` + businessProfileColumns

	row := r.db.QueryRow(ctx, query,
		req.CompanyName,
		req.ContactName,
		req.Email,
		req.Phone,
		req.ZipCode,
		req.Industry,
		req.Website,
		req.CompanySize,
		req.BrandValues,
		req.MissionStatement,
		req.Objectives,
		req.Timeline,
		req.TargetAge,
		req.TargetRegions,
		req.Channels,
		req.BudgetRange,
		req.CompensationTypes,
		userID,
	)
	return scanBusinessProfile(row)
}

func (r *BusinessProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateBusinessProfileInput) (*models.BusinessProfile, error) {
	query := `
		UPDATE business_profiles
		SET company_name = COALESCE($1, company_name),
			logo_url = COALESCE($2, logo_url),
			contact_name = COALESCE($3, contact_name),
			phone = COALESCE($4, phone),
			zip_code = COALESCE($5, zip_code),
			industry = COALESCE($6, industry),
			website = COALESCE($7, website),
			company_size = COALESCE($8, company_size),
			brand_values = COALESCE($9, brand_values),
			mission_statement = COALESCE($10, mission_statement),
			objectives = COALESCE($11, objectives),
			budget_range = COALESCE($12, budget_range),
			updated_at = NOW()
		WHERE user_id = $13
		RETURNING ` + businessProfileColumns

	row := r.db.QueryRow(ctx, query,
		req.CompanyName,
		req.LogoURL,
		req.ContactName,
		req.Phone,
		req.ZipCode,
		req.Industry,
		req.Website,
		req.CompanySize,
		req.BrandValues,
		req.MissionStatement,
		req.Objectives,
		req.BudgetRange,
		userID,
	)
	return scanBusinessProfile(row)
}

func (r *BusinessProfileRepository) ListComplete(ctx context.Context) ([]models.BusinessProfile, error) {
	query := `SELECT ` + businessProfileColumns + ` FROM business_profiles WHERE onboarding_complete = TRUE`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.BusinessProfile, 0)
	for rows.Next() {
		profile, err := scanBusinessProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func scanBusinessProfile(row rowScanner) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.LogoURL,
		&profile.ContactName,
		&profile.Email,
		&profile.Phone,
		&profile.ZipCode,
		&profile.Industry,
		&profile.Website,
		&profile.CompanySize,
		&profile.BrandValues,
		&profile.MissionStatement,
		&profile.Objectives,
		&profile.Timeline,
		&profile.TargetAge,
		&profile.TargetRegions,
		&profile.Channels,
		&profile.BudgetRange,
		&profile.CompensationTypes,
		&profile.IsVerified,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
