// internal/wizard/financial.go
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"dental-intake/internal/models"
)

// FinancialStep owns the financial-overview slice of the draft.
type FinancialStep struct {
	Info models.FinancialInfo
}

func (s *FinancialStep) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateBalance("checking_balance", s.Info.CheckingBalance, false)...)
	errs = append(errs, validateBalance("savings_balance", s.Info.SavingsBalance, false)...)
	errs = append(errs, validateBalance("retirement_balance", s.Info.RetirementBalance, false)...)
	errs = append(errs, validateBalance("investment_balance", s.Info.InvestmentBalance, false)...)
	errs = append(errs, validateBalance("mortgage_or_rent", s.Info.MortgageOrRent, true)...)

	errs = append(errs, s.validateCreditScore()...)

	return errs
}

// validateCreditScore enforces the mutual exclusivity: exactly one of
// {numeric score in [300,850], unknown flag} must hold. Violations attach
// to the credit_score field specifically, not a generic form error.
func (s *FinancialStep) validateCreditScore() []ValidationError {
	hasScore := strings.TrimSpace(s.Info.CreditScore) != ""

	if s.Info.CreditScoreUnknown {
		if hasScore {
			return []ValidationError{{
				Field:   "credit_score",
				Code:    CodeInvalidValue,
				Message: "Provide a credit score or mark it unknown, not both",
			}}
		}
		return nil
	}

	if !hasScore {
		return []ValidationError{{
			Field:   "credit_score",
			Code:    CodeMissingRequired,
			Message: "Enter your credit score or mark it unknown",
		}}
	}

	score, err := strconv.Atoi(strings.TrimSpace(s.Info.CreditScore))
	if err != nil || score < MinCreditScore || score > MaxCreditScore {
		return []ValidationError{{
			Field:   "credit_score",
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("Credit score must be between %d and %d", MinCreditScore, MaxCreditScore),
		}}
	}

	return nil
}

func (s *FinancialStep) Apply(draft *models.ApplicationDraft) {
	draft.Financial = s.Info
}
