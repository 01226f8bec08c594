// internal/wizard/personal.go
package wizard

import (
	"strconv"
	"strings"

	"dental-intake/internal/models"
)

// PersonalStep owns the identity/contact/address/emergency/referral slice
// of the draft.
type PersonalStep struct {
	Info models.PersonalInfo
}

// SetPhone sanitizes phone input as the user types; only digits are stored.
func (s *PersonalStep) SetPrimaryPhone(raw string)   { s.Info.PrimaryPhone = StripDigits(raw) }
func (s *PersonalStep) SetSecondaryPhone(raw string) { s.Info.SecondaryPhone = StripDigits(raw) }
func (s *PersonalStep) SetSSN(raw string)            { s.Info.SSN = StripDigits(raw) }

// SelectProvider switches the referral into directory mode: the practice
// fields become derived from the selected entry and the provider identifier
// is carried alongside. Manual text entered before the switch is discarded.
func (s *PersonalStep) SelectProvider(p models.ProviderProfile) {
	s.Info.Referral = models.Referral{
		Mode:            models.ReferralModeDirectory,
		ProviderID:      p.ID,
		Practice:        p.PracticeName,
		ProviderName:    p.FullName,
		ProviderContact: p.ContactPhone,
		ProviderEmail:   p.ContactEmail,
	}
}

// EnterManually switches the referral into manual mode, clearing the
// directory-derived fields and the provider identifier.
func (s *PersonalStep) EnterManually() {
	s.Info.Referral = models.Referral{Mode: models.ReferralModeManual}
}

func (s *PersonalStep) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, requireText("first_name", s.Info.FirstName, "First name")...)
	errs = append(errs, requireText("last_name", s.Info.LastName, "Last name")...)

	errs = append(errs, s.validateBirthDate()...)

	if !ValidSSN(s.Info.SSN) {
		errs = append(errs, ValidationError{
			Field:   "ssn",
			Code:    CodeInvalidFormat,
			Message: "Social Security Number must be exactly 9 digits",
		})
	}

	errs = append(errs, requireText("driver_license", s.Info.DriverLicense, "Driver's license or state ID")...)
	errs = append(errs, requireText("sex", s.Info.Sex, "Sex")...)
	errs = append(errs, requireText("marital_status", s.Info.MaritalStatus, "Marital status")...)

	if !ValidPhone(s.Info.PrimaryPhone) {
		errs = append(errs, ValidationError{
			Field:   "primary_phone",
			Code:    CodeInvalidFormat,
			Message: "Primary phone must be exactly 10 digits",
		})
	}
	// Secondary phone is optional but must satisfy the 10-digit rule if present.
	if s.Info.SecondaryPhone != "" && !ValidPhone(s.Info.SecondaryPhone) {
		errs = append(errs, ValidationError{
			Field:   "secondary_phone",
			Code:    CodeInvalidFormat,
			Message: "Secondary phone must be exactly 10 digits",
		})
	}

	if !emailRegex.MatchString(strings.TrimSpace(s.Info.Email)) {
		errs = append(errs, ValidationError{
			Field:   "email",
			Code:    CodeInvalidFormat,
			Message: "A valid email address is required",
		})
	}

	errs = append(errs, requireText("street", s.Info.Address.Street, "Street address")...)
	errs = append(errs, requireText("city", s.Info.Address.City, "City")...)
	errs = append(errs, requireText("state", s.Info.Address.State, "State")...)
	errs = append(errs, requireText("zip", s.Info.Address.Zip, "ZIP code")...)

	errs = append(errs, requireText("emergency_name", s.Info.EmergencyContact.Name, "Emergency contact name")...)
	errs = append(errs, requireText("emergency_relationship", s.Info.EmergencyContact.Relationship, "Emergency contact relationship")...)
	if !ValidPhone(StripDigits(s.Info.EmergencyContact.Phone)) {
		errs = append(errs, ValidationError{
			Field:   "emergency_phone",
			Code:    CodeInvalidFormat,
			Message: "Emergency contact phone must be exactly 10 digits",
		})
	}

	errs = append(errs, s.validateReferral()...)
	errs = append(errs, validateEstimatedCost("estimated_cost", s.Info.EstimatedCost)...)

	return errs
}

func (s *PersonalStep) validateBirthDate() []ValidationError {
	var errs []ValidationError

	month, merr := strconv.Atoi(s.Info.BirthMonth)
	year, yerr := strconv.Atoi(s.Info.BirthYear)
	day, derr := strconv.Atoi(s.Info.BirthDay)

	if merr != nil || month < 1 || month > 12 {
		errs = append(errs, ValidationError{
			Field:   "birth_month",
			Code:    CodeInvalidValue,
			Message: "Birth month is required",
		})
	}
	if yerr != nil || year < 1900 {
		errs = append(errs, ValidationError{
			Field:   "birth_year",
			Code:    CodeInvalidValue,
			Message: "Birth year is required",
		})
	}
	if derr != nil || day < 1 {
		errs = append(errs, ValidationError{
			Field:   "birth_day",
			Code:    CodeInvalidValue,
			Message: "Birth day is required",
		})
		return errs
	}

	// Day options are a 31-day superset while month/year are unset; once
	// both are known the pair is re-validated against the true month length.
	if day > DaysInMonth(s.Info.BirthMonth, s.Info.BirthYear) {
		errs = append(errs, ValidationError{
			Field:   "birth_day",
			Code:    CodeInvalidValue,
			Message: "Selected day does not exist in the selected month",
		})
	}

	return errs
}

func (s *PersonalStep) validateReferral() []ValidationError {
	var errs []ValidationError

	switch s.Info.Referral.Mode {
	case models.ReferralModeDirectory:
		if s.Info.Referral.ProviderID == "" {
			errs = append(errs, ValidationError{
				Field:   "referral_provider",
				Code:    CodeInvalidValue,
				Message: "Select a practice from the directory or enter one manually",
			})
		}
	case models.ReferralModeManual, "":
		// Practice name is the only mandatory referral field in manual mode.
		if strings.TrimSpace(s.Info.Referral.Practice) == "" {
			errs = append(errs, ValidationError{
				Field:   "referral_practice",
				Code:    CodeMissingRequired,
				Message: "Referring practice is required",
			})
		}
		if s.Info.Referral.ProviderID != "" {
			errs = append(errs, ValidationError{
				Field:   "referral_provider",
				Code:    CodeInvalidValue,
				Message: "Provider identifier is only valid for directory selections",
			})
		}
	}

	return errs
}

func (s *PersonalStep) Apply(draft *models.ApplicationDraft) {
	draft.Personal = s.Info
}

func requireText(field, value, label string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{
			Field:   field,
			Code:    CodeMissingRequired,
			Message: label + " is required",
		}}
	}
	return nil
}
