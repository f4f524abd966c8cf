package repository

import (
	"context"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
)

const athleteProfileColumns = `
	id, user_id, full_name, avatar_url, email, phone, zip_code, school, sport,
	division, graduation_year, primary_platform, social_handle, follower_count,
	agent_name, brand_values, mission_statement, goals, timeline, audience_age,
	audience_regions, engagement_rate, min_deal_value, compensation_types,
	open_to_trade, onboarding_complete, created_at, updated_at`

type AthleteProfileRepository struct {
	db DBTX
}

func NewAthleteProfileRepository(db DBTX) *AthleteProfileRepository {
	return &AthleteProfileRepository{db: db}
}

type AthleteOnboardingInput struct {
	FullName          string
	Email             string
	Phone             *string
	ZipCode           *string
	School            string
	Sport             string
	Division          string
	GraduationYear    string
	PrimaryPlatform   string
	SocialHandle      string
	FollowerCount     *int
	AgentName         *string
	BrandValues       []string
	MissionStatement  *string
	Goals             []string
	Timeline          string
	AudienceAge       []string
	AudienceRegions   []string
	EngagementRate    *float64
	MinDealValue      *float64
	CompensationTypes []string
	OpenToTrade       bool
}

type UpdateAthleteProfileInput struct {
	FullName         *string
	AvatarURL        *string
	Phone            *string
	ZipCode          *string
	School           *string
	Sport            *string
	Division         *string
	GraduationYear   *string
	PrimaryPlatform  *string
	SocialHandle     *string
	FollowerCount    *int
	BrandValues      *[]string
	MissionStatement *string
	Goals            *[]string
	MinDealValue     *float64
}

func (r *AthleteProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO athlete_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *AthleteProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error) {
	query := `SELECT ` + athleteProfileColumns + ` FROM athlete_profiles WHERE user_id = $1`
	row := r.db.QueryRow(ctx, query, userID)
	return scanAthleteProfile(row)
}

func (r *AthleteProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req AthleteOnboardingInput) (*models.AthleteProfile, error) {
	query := `
		UPDATE athlete_profiles
		SET full_name = $1,
			email = $2,
			phone = $3,
			zip_code = $4,
			school = $5,
			sport = $6,
			division = $7,
			graduation_year = $8,
			primary_platform = $9,
			social_handle = $10,
			follower_count = $11,
			agent_name = $12,
			brand_values = $13,
			mission_statement = $14,
			goals = $15,
			timeline = $16,
			audience_age = $17,
			audience_regions = $18,
			engagement_rate = $19,
			min_deal_value = $20,
			compensation_types = $21,
			open_to_trade = $22,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $23
		RETURNING ` + athleteProfileColumns

	row := r.db.QueryRow(ctx, query,
		req.FullName,
		req.Email,
		req.Phone,
		req.ZipCode,
		req.School,
		req.Sport,
		req.Division,
		req.GraduationYear,
		req.PrimaryPlatform,
		req.SocialHandle,
		req.FollowerCount,
		req.AgentName,
		req.BrandValues,
		req.MissionStatement,
		req.Goals,
		req.Timeline,
		req.AudienceAge,
		req.AudienceRegions,
		req.EngagementRate,
		req.MinDealValue,
		req.CompensationTypes,
		req.OpenToTrade,
		userID,
	)
	return scanAthleteProfile(row)
}

func (r *AthleteProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateAthleteProfileInput) (*models.AthleteProfile, error) {
	query := `
		UPDATE athlete_profiles
		SET full_name = COALESCE($1, full_name),
			avatar_url = COALESCE($2, avatar_url),
			phone = COALESCE($3, phone),
			zip_code = COALESCE($4, zip_code),
			school = COALESCE($5, school),
			sport = COALESCE($6, sport),
			division = COALESCE($7, division),
			graduation_year = COALESCE($8, graduation_year),
			primary_platform = COALESCE($9, primary_platform),
			social_handle = COALESCE($10, social_handle),
			follower_count = COALESCE($11, follower_count),
			brand_values = COALESCE($12, brand_values),
			mission_statement = COALESCE($13, mission_statement),
			goals = COALESCE($14, goals),
			min_deal_value = COALESCE($15, min_deal_value),
			updated_at = NOW()
		WHERE user_id = $16
		RETURNING ` + athleteProfileColumns

	row := r.db.QueryRow(ctx, query,
		req.FullName,
		req.AvatarURL,
		req.Phone,
		req.ZipCode,
		req.School,
		req.Sport,
		req.Division,
		req.GraduationYear,
		req.PrimaryPlatform,
		req.SocialHandle,
		req.FollowerCount,
		req.BrandValues,
		req.MissionStatement,
		req.Goals,
		req.MinDealValue,
		userID,
	)
	return scanAthleteProfile(row)
}

type AthleteListFilter struct {
	Sport        string
	Division     string
	MinFollowers int
	MaxDealValue float64
	Offset       int
	Limit        int
}

func (r *AthleteProfileRepository) List(ctx context.Context, filter AthleteListFilter) ([]models.AthleteProfile, int, error) {
	where := `
		WHERE onboarding_complete = TRUE
		  AND ($1 = '' OR sport = $1)
		  AND ($2 = '' OR division = $2)
		  AND ($3 = 0 OR follower_count >= $3)
		  AND ($4 = 0 OR min_deal_value IS NULL OR min_deal_value <= $4)
	`

	var total int
	countQuery := `SELECT COUNT(*) FROM athlete_profiles` + where
	if err := r.db.QueryRow(ctx, countQuery,
		filter.Sport, filter.Division, filter.MinFollowers, filter.MaxDealValue,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + athleteProfileColumns + ` FROM athlete_profiles` + where + `
		ORDER BY follower_count DESC NULLS LAST, id
		LIMIT $5 OFFSET $6
	`
	rows, err := r.db.Query(ctx, query,
		filter.Sport, filter.Division, filter.MinFollowers, filter.MaxDealValue,
		filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := make([]models.AthleteProfile, 0)
	for rows.Next() {
		profile, err := scanAthleteProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *AthleteProfileRepository) ListComplete(ctx context.Context) ([]models.AthleteProfile, error) {
	query := `SELECT ` + athleteProfileColumns + ` FROM athlete_profiles WHERE onboarding_complete = TRUE`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.AthleteProfile, 0)
	for rows.Next() {
		profile, err := scanAthleteProfile(rows)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAthleteProfile(row rowScanner) (*models.AthleteProfile, error) {
	var profile models.AthleteProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Email,
		&profile.Phone,
		&profile.ZipCode,
		&profile.School,
		&profile.Sport,
		&profile.Division,
		&profile.GraduationYear,
		&profile.PrimaryPlatform,
		&profile.SocialHandle,
		&profile.FollowerCount,
		&profile.AgentName,
		&profile.BrandValues,
		&profile.MissionStatement,
		&profile.Goals,
		&profile.Timeline,
		&profile.AudienceAge,
		&profile.AudienceRegions,
		&profile.EngagementRate,
		&profile.MinDealValue,
		&profile.CompensationTypes,
		&profile.OpenToTrade,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
