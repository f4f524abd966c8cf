package handlers

import (
	"regexp"
	"strings"
)

var allowedDivisions = map[string]struct{}{
	"d1":    {},
	"d2":    {},
	"d3":    {},
	"naia":  {},
	"juco":  {},
	"other": {},
}

var (
	zipCodePattern = regexp.MustCompile(`^\d{5}$`)
	websitePattern = regexp.MustCompile(`^https?://\S+$`)
)

func validateAthleteProfileUpdateRequest(req updateAthleteProfileRequest) string {
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return "full_name must not be empty"
	}
	if req.ZipCode != nil && !zipCodePattern.MatchString(strings.TrimSpace(*req.ZipCode)) {
		return "zip_code must be a 5-digit code"
	}
	if req.School != nil && strings.TrimSpace(*req.School) == "" {
		return "school must not be empty"
	}
	if req.Sport != nil && strings.TrimSpace(*req.Sport) == "" {
		return "sport must not be empty"
	}
	if req.Division != nil {
		if err := validateDivision(*req.Division); err != "" {
			return err
		}
	}
	if req.FollowerCount != nil && *req.FollowerCount < 0 {
		return "follower_count must be 0 or greater"
	}
	if req.BrandValues != nil {
		for _, value := range *req.BrandValues {
			if strings.TrimSpace(value) == "" {
				return "brand_values must not contain empty values"
			}
		}
	}
	if req.Goals != nil {
		for _, goal := range *req.Goals {
			if strings.TrimSpace(goal) == "" {
				return "goals must not contain empty values"
			}
		}
	}
	if req.MinDealValue != nil && *req.MinDealValue < 0 {
		return "min_deal_value must be 0 or greater"
	}
	return ""
}

func validateBusinessProfileUpdateRequest(req updateBusinessProfileRequest) string {
	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
		return "company_name must not be empty"
	}
	if req.ContactName != nil && strings.TrimSpace(*req.ContactName) == "" {
		return "contact_name must not be empty"
	}
	if req.ZipCode != nil && !zipCodePattern.MatchString(strings.TrimSpace(*req.ZipCode)) {
		return "zip_code must be a 5-digit code"
	}
	if req.Industry != nil && strings.TrimSpace(*req.Industry) == "" {
		return "industry must not be empty"
	}
	if req.Website != nil && !websitePattern.MatchString(strings.TrimSpace(*req.Website)) {
		return "website must be an http or https URL"
	}
	if req.CompanySize != nil && strings.TrimSpace(*req.CompanySize) == "" {
		return "company_size must not be empty"
	}
	if req.BrandValues != nil {
		for _, value := range *req.BrandValues {
			if strings.TrimSpace(value) == "" {
				return "brand_values must not contain empty values"
			}
		}
	}
	if req.Objectives != nil {
		for _, objective := range *req.Objectives {
			if strings.TrimSpace(objective) == "" {
				return "objectives must not contain empty values"
			}
		}
	}
	return ""
}

func validateDivision(division string) string {
	if _, ok := allowedDivisions[strings.ToLower(strings.TrimSpace(division))]; !ok {
		return "division must be one of: d1, d2, d3, naia, juco, other"
	}
	return ""
}
