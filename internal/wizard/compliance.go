// internal/wizard/compliance.go
package wizard

import "dental-intake/internal/models"

// ComplianceStep owns the four consent flags. All must be true before the
// signing flow is allowed to run.
type ComplianceStep struct {
	Flags models.ComplianceFlags
}

func (s *ComplianceStep) Validate() []ValidationError {
	var errs []ValidationError

	if !s.Flags.ConsentCreditPull {
		errs = append(errs, ValidationError{
			Field:   "consent_credit_pull",
			Code:    CodeMissingRequired,
			Message: "Credit report authorization is required",
		})
	}
	if !s.Flags.ConsentCommunications {
		errs = append(errs, ValidationError{
			Field:   "consent_communications",
			Code:    CodeMissingRequired,
			Message: "Communications consent is required",
		})
	}
	if !s.Flags.AckNoCreditImpact {
		errs = append(errs, ValidationError{
			Field:   "ack_no_credit_impact",
			Code:    CodeMissingRequired,
			Message: "The no-credit-impact acknowledgment is required",
		})
	}
	if !s.Flags.ConfirmAccuracy {
		errs = append(errs, ValidationError{
			Field:   "confirm_accuracy",
			Code:    CodeMissingRequired,
			Message: "You must confirm the information provided is accurate",
		})
	}

	return errs
}

func (s *ComplianceStep) Apply(draft *models.ApplicationDraft) {
	draft.Compliance = s.Flags
}
