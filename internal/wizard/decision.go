// internal/wizard/decision.go
package wizard

import "dental-intake/internal/models"

// DecisionStep owns the emotional/decision-signal slice of the draft.
type DecisionStep struct {
	Info models.DecisionSignals
}

var timeConsideringOptions = map[string]bool{
	"under_1_month":  true,
	"1_to_3_months":  true,
	"3_to_6_months":  true,
	"6_to_12_months": true,
	"over_1_year":    true,
}

var financingPriorities = map[string]bool{
	"low_monthly_payment": true,
	"low_total_cost":      true,
	"fast_approval":       true,
	"flexible_terms":      true,
}

var readinessOptions = map[string]bool{
	"ready_now":      true,
	"within_30_days": true,
	"within_90_days": true,
	"exploring":      true,
}

func (s *DecisionStep) Validate() []ValidationError {
	var errs []ValidationError

	if !timeConsideringOptions[s.Info.TimeConsidering] {
		errs = append(errs, ValidationError{
			Field:   "time_considering",
			Code:    CodeInvalidValue,
			Message: "Tell us how long you have been considering treatment",
		})
	}
	if !financingPriorities[s.Info.FinancingPriority] {
		errs = append(errs, ValidationError{
			Field:   "financing_priority",
			Code:    CodeInvalidValue,
			Message: "Select your financing priority",
		})
	}
	if len(s.Info.TreatmentReasons) == 0 {
		errs = append(errs, ValidationError{
			Field:   "treatment_reasons",
			Code:    CodeMissingRequired,
			Message: "Select at least one treatment reason",
		})
	}
	if s.Info.Urgency < 1 || s.Info.Urgency > 10 {
		errs = append(errs, ValidationError{
			Field:   "urgency",
			Code:    CodeOutOfRange,
			Message: "Urgency must be between 1 and 10",
		})
	}
	if !readinessOptions[s.Info.Readiness] {
		errs = append(errs, ValidationError{
			Field:   "readiness",
			Code:    CodeInvalidValue,
			Message: "Select how ready you are to proceed",
		})
	}

	return errs
}

func (s *DecisionStep) Apply(draft *models.ApplicationDraft) {
	draft.Decision = s.Info
}
