package models

import "time"

type AthleteProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	FullName           *string   `json:"full_name"`
	AvatarURL          *string   `json:"avatar_url"`
	Email              *string   `json:"email"`
	Phone              *string   `json:"phone"`
	ZipCode            *string   `json:"zip_code"`
	School             *string   `json:"school"`
	Sport              *string   `json:"sport"`
	Division           *string   `json:"division"`
	GraduationYear     *string   `json:"graduation_year"`
	PrimaryPlatform    *string   `json:"primary_platform"`
	SocialHandle       *string   `json:"social_handle"`
	FollowerCount      *int      `json:"follower_count"`
	AgentName          *string   `json:"agent_name,omitempty"`
	BrandValues        *[]string `json:"brand_values"`
	MissionStatement   *string   `json:"mission_statement"`
	Goals              *[]string `json:"goals"`
	Timeline           *string   `json:"timeline"`
	AudienceAge        *[]string `json:"audience_age"`
	AudienceRegions    *[]string `json:"audience_regions"`
	EngagementRate     *float64  `json:"engagement_rate"`
	MinDealValue       *float64  `json:"min_deal_value"`
	CompensationTypes  *[]string `json:"compensation_types"`
	OpenToTrade        *bool     `json:"open_to_trade"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
