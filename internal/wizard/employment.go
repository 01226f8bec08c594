// internal/wizard/employment.go
package wizard

import (
	"strings"

	"dental-intake/internal/models"
)

// EmploymentStep owns the employment/income slice of the draft.
type EmploymentStep struct {
	Info models.EmploymentInfo
}

var employmentTypes = map[string]bool{
	models.EmploymentFullTime:     true,
	models.EmploymentPartTime:     true,
	models.EmploymentSelfEmployed: true,
	models.EmploymentRetired:      true,
	models.EmploymentUnemployed:   true,
}

var lengthBuckets = map[string]bool{
	"under_1_year":  true,
	"1_to_2_years":  true,
	"2_to_5_years":  true,
	"5_to_10_years": true,
	"over_10_years": true,
}

var payFrequencies = map[string]bool{
	"weekly":       true,
	"biweekly":     true,
	"semi_monthly": true,
	"monthly":      true,
}

func (s *EmploymentStep) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, requireText("employer", s.Info.Employer, "Employer")...)
	errs = append(errs, requireText("job_title", s.Info.JobTitle, "Job title")...)

	if !employmentTypes[s.Info.EmploymentType] {
		errs = append(errs, ValidationError{
			Field:   "employment_type",
			Code:    CodeInvalidValue,
			Message: "Employment type is required",
		})
	}
	if !lengthBuckets[s.Info.LengthBucket] {
		errs = append(errs, ValidationError{
			Field:   "length_of_employment",
			Code:    CodeInvalidValue,
			Message: "Length of employment is required",
		})
	}
	if !payFrequencies[s.Info.PayFrequency] {
		errs = append(errs, ValidationError{
			Field:   "pay_frequency",
			Code:    CodeInvalidValue,
			Message: "Pay frequency is required",
		})
	}

	errs = append(errs, validateBalance("gross_monthly_income", s.Info.GrossMonthly, true)...)
	errs = append(errs, validateBalance("net_monthly_income", s.Info.NetMonthly, true)...)
	errs = append(errs, validateBalance("secondary_income", s.Info.SecondaryIncome, false)...)
	errs = append(errs, validateBalance("household_income", s.Info.HouseholdIncome, false)...)
	errs = append(errs, validateBalance("spouse_income", s.Info.SpouseIncome, false)...)

	// Spouse income without an employer is allowed; employer without income
	// is not, since the income figure is what underwriting reads.
	if strings.TrimSpace(s.Info.SpouseEmployer) != "" && strings.TrimSpace(s.Info.SpouseIncome) == "" {
		errs = append(errs, ValidationError{
			Field:   "spouse_income",
			Code:    CodeMissingRequired,
			Message: "Spouse income is required when a spouse employer is given",
		})
	}

	return errs
}

func (s *EmploymentStep) Apply(draft *models.ApplicationDraft) {
	draft.Employment = s.Info
}
