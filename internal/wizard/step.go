package wizard

type UserType string

const (
	UserTypeAthlete  UserType = "athlete"
	UserTypeBusiness UserType = "business"
)

func ParseUserType(value string) (UserType, bool) {
	switch UserType(value) {
	case UserTypeAthlete:
		return UserTypeAthlete, true
	case UserTypeBusiness:
		return UserTypeBusiness, true
	default:
		return "", false
	}
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

type Step int

const (
	StepWelcome Step = iota
	StepUserTypeSelection
	StepBasicProfile
	StepAthleteDetails
	StepBusinessDetails
	StepBrandValues
	StepGoals
	StepAudienceInfo
	StepCompensation
	StepReviewSubmit
	StepComplete
)

var stepNames = map[Step]string{
	StepWelcome:           "welcome",
	StepUserTypeSelection: "user_type_selection",
	StepBasicProfile:      "basic_profile",
	StepAthleteDetails:    "athlete_details",
	StepBusinessDetails:   "business_details",
	StepBrandValues:       "brand_values",
	StepGoals:             "goals",
	StepAudienceInfo:      "audience_info",
	StepCompensation:      "compensation",
	StepReviewSubmit:      "review_submit",
	StepComplete:          "complete",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// HasControls reports whether the step renders Next/Back controls. Steps
// before the basic profile advance through their own dedicated actions and
// the terminal step cannot be left.
func (s Step) HasControls() bool {
	return s >= StepBasicProfile && s < StepComplete
}

// NextStep computes the adjacent step in the given direction. The athlete
// and business branches are mutually exclusive: a business user is never
// routed into StepAthleteDetails and vice versa, in either direction. The
// backward edges mirror the forward edges exactly.
func NextStep(current Step, userType UserType, direction Direction) Step {
	if direction == Backward {
		return prevStep(current, userType)
	}

	switch current {
	case StepWelcome:
		return StepUserTypeSelection
	case StepUserTypeSelection:
		return StepBasicProfile
	case StepBasicProfile:
		if userType == UserTypeBusiness {
			return StepBusinessDetails
		}
		return StepAthleteDetails
	case StepAthleteDetails, StepBusinessDetails:
		return StepBrandValues
	case StepBrandValues:
		return StepGoals
	case StepGoals:
		return StepAudienceInfo
	case StepAudienceInfo:
		return StepCompensation
	case StepCompensation:
		return StepReviewSubmit
	case StepReviewSubmit:
		return StepComplete
	default:
		return current
	}
}

func prevStep(current Step, userType UserType) Step {
	switch current {
	case StepUserTypeSelection:
		return StepWelcome
	case StepBasicProfile:
		return StepUserTypeSelection
	case StepAthleteDetails, StepBusinessDetails:
		return StepBasicProfile
	case StepBrandValues:
		if userType == UserTypeBusiness {
			return StepBusinessDetails
		}
		return StepAthleteDetails
	case StepGoals:
		return StepBrandValues
	case StepAudienceInfo:
		return StepGoals
	case StepCompensation:
		return StepAudienceInfo
	case StepReviewSubmit:
		return StepCompensation
	default:
		return current
	}
}
