package wizard

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidUserType  = errors.New("invalid user type")
	ErrUserTypeRequired = errors.New("user type not selected")
	ErrUserTypeLocked   = errors.New("user type can no longer change")
	ErrSectionMismatch  = errors.New("section does not belong to the current step")
	ErrNoPreviousStep   = errors.New("no previous step")
	ErrAwaitingSubmit   = errors.New("review step advances through submission")
	ErrCompleted        = errors.New("wizard already completed")
)

// FormData accumulates the values typed into every visited section. Only the
// sections relevant to the chosen user type are ever populated; the other
// branch's section stays empty.
type FormData map[SectionKey]Section

// State is the full in-memory state of one wizard run: one session, one user
// type, one current step, the accumulated form data, and the field errors of
// the last failed validation pass. Exactly one logical user drives one state.
type State struct {
	SessionID string            `json:"session_id"`
	UserType  UserType          `json:"user_type,omitempty"`
	Step      Step              `json:"step"`
	Data      FormData          `json:"data"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// New starts a wizard at the welcome step with empty form data.
func New(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Step:      StepWelcome,
		Data:      make(FormData),
	}
}

// NewWithUserType starts a wizard for a caller whose user type was supplied
// externally, skipping straight to the basic profile step.
func NewWithUserType(sessionID string, userType UserType) *State {
	state := New(sessionID)
	state.UserType = userType
	state.Step = StepBasicProfile
	return state
}

// SelectUserType records the chosen branch and advances to the basic profile
// step in the same action. Re-selecting a different type while still on the
// selection step resets the branch-dependent sections; once past it the type
// is locked.
func (s *State) SelectUserType(userType UserType) error {
	if s.Step == StepComplete {
		return ErrCompleted
	}
	if s.Step > StepUserTypeSelection {
		return ErrUserTypeLocked
	}
	if _, ok := ParseUserType(string(userType)); !ok {
		return ErrInvalidUserType
	}

	if s.UserType != "" && s.UserType != userType {
		delete(s.Data, SectionAthleteDetails)
		delete(s.Data, SectionBusinessDetails)
		delete(s.Data, SectionGoals)
		delete(s.Data, SectionAudienceInfo)
		delete(s.Data, SectionCompensation)
	}

	s.UserType = userType
	s.Step = StepBasicProfile
	s.Errors = nil
	return nil
}

// SetField writes one field value into the current step's section and clears
// exactly that field's error, leaving other errors untouched.
func (s *State) SetField(section SectionKey, fieldID string, value any) error {
	if s.Step == StepComplete {
		return ErrCompleted
	}
	current, ok := SectionForStep(s.Step)
	if !ok || current != section {
		return ErrSectionMismatch
	}

	if s.Data[section] == nil {
		s.Data[section] = make(Section)
	}
	s.Data[section][fieldID] = value
	delete(s.Errors, fieldID)
	return nil
}

// Advance validates the current step and moves forward on success. A
// non-empty validation result blocks the transition and is kept on the state
// for field-level display.
func (s *State) Advance() error {
	switch s.Step {
	case StepComplete:
		return ErrCompleted
	case StepUserTypeSelection:
		return ErrUserTypeRequired
	case StepReviewSubmit:
		return ErrAwaitingSubmit
	}
	if s.Step >= StepBasicProfile && s.UserType == "" {
		return ErrUserTypeRequired
	}

	if section, ok := SectionForStep(s.Step); ok {
		fields := FieldsForStep(s.Step, s.UserType)
		if errs := Validate(fields, s.Data[section]); len(errs) > 0 {
			s.Errors = errs
			return ErrValidation
		}
	}

	s.Errors = nil
	s.Step = NextStep(s.Step, s.UserType, Forward)
	return nil
}

// Back moves to the previous step without validating. Pending errors are
// dropped since the step's fields leave the screen.
func (s *State) Back() error {
	if s.Step == StepComplete {
		return ErrCompleted
	}
	if s.Step <= StepWelcome {
		return ErrNoPreviousStep
	}
	s.Errors = nil
	s.Step = NextStep(s.Step, s.UserType, Backward)
	return nil
}

// MarkComplete transitions to the terminal step after a successful
// submission. The form data is handed off and never mutated again.
func (s *State) MarkComplete() {
	s.Step = StepComplete
	s.Errors = nil
}

// Completed reports whether the wizard has reached its terminal step.
func (s *State) Completed() bool {
	return s.Step == StepComplete
}

// submissionSteps lists every data-bearing step a branch visits, in order.
func submissionSteps(userType UserType) []Step {
	branch := StepAthleteDetails
	if userType == UserTypeBusiness {
		branch = StepBusinessDetails
	}
	return []Step{
		StepBasicProfile,
		branch,
		StepBrandValues,
		StepGoals,
		StepAudienceInfo,
		StepCompensation,
	}
}

// ValidateSubmission re-runs validation across every section the branch
// collects, as a final gate before the data leaves the wizard.
func ValidateSubmission(userType UserType, data FormData) map[string]string {
	errs := make(map[string]string)
	for _, step := range submissionSteps(userType) {
		section, ok := SectionForStep(step)
		if !ok {
			continue
		}
		fields := FieldsForStep(step, userType)
		for id, message := range Validate(fields, data[section]) {
			errs[id] = message
		}
	}
	return errs
}
