package models

type AthleteWithScore struct {
	AthleteProfile
	MatchScore int `json:"match_score"`
}

type BusinessWithScore struct {
	BusinessProfile
	MatchScore int `json:"match_score"`
}

type AthleteListResponse struct {
	UserID          int64    `json:"user_id"`
	FullName        *string  `json:"full_name"`
	AvatarURL       *string  `json:"avatar_url"`
	School          *string  `json:"school"`
	Sport           *string  `json:"sport"`
	Division        *string  `json:"division"`
	FollowerCount   *int     `json:"follower_count"`
	EngagementRate  *float64 `json:"engagement_rate"`
	BrandValues     []string `json:"brand_values"`
	MatchScore      int      `json:"match_score,omitempty"`
	PrimaryPlatform *string  `json:"primary_platform"`
}
