package wizard

type SectionKey string

const (
	SectionBasicProfile    SectionKey = "basicProfile"
	SectionAthleteDetails  SectionKey = "athleteDetails"
	SectionBusinessDetails SectionKey = "businessDetails"
	SectionBrandValues     SectionKey = "brandValues"
	SectionGoals           SectionKey = "goals"
	SectionAudienceInfo    SectionKey = "audienceInfo"
	SectionCompensation    SectionKey = "compensation"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldSelect      FieldType = "select"
	FieldCheckbox    FieldType = "checkbox"
	FieldRadio       FieldType = "radio"
	FieldBoolean     FieldType = "boolean"
	FieldSlider      FieldType = "slider"
	FieldMultiSelect FieldType = "multi_select"
	FieldDate        FieldType = "date"
	FieldTel         FieldType = "tel"
	FieldEmail       FieldType = "email"
	FieldPassword    FieldType = "password"
)

// Condition hides a field until another field in the same section holds the
// given value.
type Condition struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type FieldDefinition struct {
	ID          string     `json:"id"`
	Type        FieldType  `json:"type"`
	Label       string     `json:"label"`
	Required    bool       `json:"required"`
	Pattern     string     `json:"pattern,omitempty"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Options     []string   `json:"options,omitempty"`
	Conditional *Condition `json:"conditional,omitempty"`
}

// stepField binds a field definition to the branch it belongs to. An empty
// branch means the field is shared by both user types.
type stepField struct {
	FieldDefinition
	branch UserType
}

type stepDefinition struct {
	section SectionKey
	fields  []stepField
}

// branchSteps are only visited by the matching user type. FieldsForStep
// returns nothing for the other branch regardless of the table contents.
var branchSteps = map[Step]UserType{
	StepAthleteDetails:  UserTypeAthlete,
	StepBusinessDetails: UserTypeBusiness,
}

// SectionForStep maps a step to the form data section it writes into. Steps
// without form fields (welcome, type selection, review, complete) have no
// section.
func SectionForStep(step Step) (SectionKey, bool) {
	def, ok := stepTable[step]
	if !ok {
		return "", false
	}
	return def.section, true
}

// FieldsForStep returns the ordered fields to render for a step and branch
// combination. Fields belonging to the other branch are omitted, and branch
// steps yield nothing for the opposite user type.
func FieldsForStep(step Step, userType UserType) []FieldDefinition {
	if branch, ok := branchSteps[step]; ok && branch != userType {
		return nil
	}

	def, ok := stepTable[step]
	if !ok {
		return nil
	}

	fields := make([]FieldDefinition, 0, len(def.fields))
	for _, field := range def.fields {
		if field.branch != "" && field.branch != userType {
			continue
		}
		fields = append(fields, field.FieldDefinition)
	}
	return fields
}

func floatPtr(v float64) *float64 {
	return &v
}

// stepTable is the single declarative source for every wizard variant: both
// branches share one table, with per-branch fields tagged instead of
// duplicating flow logic per user type.
var stepTable = map[Step]stepDefinition{
	StepBasicProfile: {
		section: SectionBasicProfile,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "fullName", Type: FieldText, Label: "Full name", Required: true}},
			{FieldDefinition: FieldDefinition{ID: "email", Type: FieldEmail, Label: "Email", Required: true, Pattern: `^[^\s@]+@[^\s@]+\.[^\s@]+$`}},
			{FieldDefinition: FieldDefinition{ID: "phone", Type: FieldTel, Label: "Phone number", Pattern: `^\+?[0-9().\-\s]{7,20}$`}},
			{FieldDefinition: FieldDefinition{ID: "zipCode", Type: FieldText, Label: "ZIP code", Pattern: `^\d{5}$`}},
		},
	},
	StepAthleteDetails: {
		section: SectionAthleteDetails,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "school", Type: FieldText, Label: "School", Required: true}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "sport", Type: FieldSelect, Label: "Sport", Required: true, Options: []string{
				"baseball", "basketball", "football", "golf", "gymnastics", "hockey",
				"lacrosse", "soccer", "softball", "swimming", "tennis", "track_field",
				"volleyball", "wrestling", "other",
			}}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "division", Type: FieldSelect, Label: "Division", Required: true, Options: []string{"D1", "D2", "D3", "NAIA", "JUCO"}}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "graduationYear", Type: FieldSelect, Label: "Graduation year", Required: true, Options: []string{"2026", "2027", "2028", "2029", "2030"}}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "primaryPlatform", Type: FieldSelect, Label: "Primary platform", Required: true, Options: []string{"instagram", "tiktok", "x", "youtube"}}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "socialHandle", Type: FieldText, Label: "Social handle", Required: true}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "followerCount", Type: FieldSlider, Label: "Follower count", Min: floatPtr(0), Max: floatPtr(1000000)}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "hasAgent", Type: FieldBoolean, Label: "Represented by an agent"}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "agentName", Type: FieldText, Label: "Agent name", Required: true, Conditional: &Condition{Field: "hasAgent", Value: true}}, branch: UserTypeAthlete},
		},
	},
	StepBusinessDetails: {
		section: SectionBusinessDetails,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "companyName", Type: FieldText, Label: "Company name", Required: true}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "industry", Type: FieldSelect, Label: "Industry", Required: true, Options: []string{
				"apparel", "automotive", "fitness", "food_beverage", "health_wellness",
				"media", "real_estate", "retail", "technology", "other",
			}}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "website", Type: FieldText, Label: "Website", Pattern: `^https?://\S+$`}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "companySize", Type: FieldSelect, Label: "Company size", Required: true, Options: []string{"1-10", "11-50", "51-200", "201-1000", "1000+"}}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "hasPartneredBefore", Type: FieldBoolean, Label: "Has run athlete partnerships before"}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "previousPartnershipNotes", Type: FieldTextarea, Label: "Previous partnership notes", Conditional: &Condition{Field: "hasPartneredBefore", Value: true}}, branch: UserTypeBusiness},
		},
	},
	StepBrandValues: {
		section: SectionBrandValues,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "values", Type: FieldMultiSelect, Label: "Brand values", Required: true, Options: []string{
				"authenticity", "community", "competition", "education", "faith",
				"family", "fitness", "innovation", "sustainability", "tradition",
			}}},
			{FieldDefinition: FieldDefinition{ID: "missionStatement", Type: FieldTextarea, Label: "Mission statement"}},
		},
	},
	StepGoals: {
		section: SectionGoals,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "goals", Type: FieldMultiSelect, Label: "Goals", Required: true, Options: []string{
				"monetize_following", "brand_partnerships", "build_portfolio",
				"support_family", "fund_training",
			}}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "objectives", Type: FieldMultiSelect, Label: "Objectives", Required: true, Options: []string{
				"brand_awareness", "local_marketing", "product_launch",
				"social_content", "event_promotion",
			}}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "timeline", Type: FieldSelect, Label: "Timeline", Required: true, Options: []string{"immediately", "1-3_months", "3-6_months", "exploring"}}},
		},
	},
	StepAudienceInfo: {
		section: SectionAudienceInfo,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "audienceAge", Type: FieldMultiSelect, Label: "Audience age groups", Required: true, Options: []string{"13-17", "18-24", "25-34", "35-44", "45+"}}},
			{FieldDefinition: FieldDefinition{ID: "audienceRegions", Type: FieldMultiSelect, Label: "Audience regions", Required: true, Options: []string{"northeast", "southeast", "midwest", "southwest", "west", "national"}}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "engagementRate", Type: FieldSlider, Label: "Engagement rate (%)", Min: floatPtr(0), Max: floatPtr(100)}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "targetRegions", Type: FieldMultiSelect, Label: "Target regions", Required: true, Options: []string{"northeast", "southeast", "midwest", "southwest", "west", "national"}}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "channels", Type: FieldMultiSelect, Label: "Marketing channels", Required: true, Options: []string{"instagram", "tiktok", "x", "youtube", "in_person"}}, branch: UserTypeBusiness},
		},
	},
	StepCompensation: {
		section: SectionCompensation,
		fields: []stepField{
			{FieldDefinition: FieldDefinition{ID: "minDealValue", Type: FieldSlider, Label: "Minimum deal value ($)", Min: floatPtr(0), Max: floatPtr(10000)}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "compensationTypes", Type: FieldMultiSelect, Label: "Compensation types", Required: true, Options: []string{"cash", "product", "revenue_share", "experiences"}}},
			{FieldDefinition: FieldDefinition{ID: "openToTrade", Type: FieldBoolean, Label: "Open to product-only deals"}, branch: UserTypeAthlete},
			{FieldDefinition: FieldDefinition{ID: "budgetRange", Type: FieldSelect, Label: "Budget range", Required: true, Options: []string{"under_1k", "1k-5k", "5k-20k", "20k-100k", "100k+"}}, branch: UserTypeBusiness},
			{FieldDefinition: FieldDefinition{ID: "termsAccepted", Type: FieldCheckbox, Label: "Terms and conditions", Required: true}},
		},
	},
}
