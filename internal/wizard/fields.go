// internal/wizard/fields.go
package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Predefined patterns
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitRegex = regexp.MustCompile(`\D`)
)

// Policy bounds. These are business rules, not incidental limits.
const (
	MaxEstimatedCost   = 250000
	MaxBalance         = 9_999_999
	MaxCostIntegerLen  = 7
	MinCreditScore     = 300
	MaxCreditScore     = 850
)

// StripDigits removes every non-digit character; phone and SSN inputs are
// sanitized with this during entry so only bare digits are ever stored.
func StripDigits(s string) string {
	return digitRegex.ReplaceAllString(s, "")
}

// ValidSSN reports whether the stored value is exactly 9 bare digits.
func ValidSSN(ssn string) bool {
	return len(ssn) == 9 && StripDigits(ssn) == ssn
}

// FormatSSN derives the ###-##-#### display form from the stored digits.
// Presentation only; the stored value never contains separators.
func FormatSSN(ssn string) string {
	if !ValidSSN(ssn) {
		return ssn
	}
	return fmt.Sprintf("%s-%s-%s", ssn[0:3], ssn[3:5], ssn[5:9])
}

// ValidPhone reports whether the stored value is exactly 10 bare digits.
func ValidPhone(phone string) bool {
	return len(phone) == 10 && StripDigits(phone) == phone
}

// IsLeapYear follows the Gregorian rule: divisible by 4 and not by 100,
// unless also divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the day count for a month/year selection. When month
// or year is unset (empty or unparseable) all 31 days are offered as a
// superset and the pair is re-validated once both are known.
func DaysInMonth(month, year string) int {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return 31
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 31
	}
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return daysPerMonth[m]
}

// DayOptions generates the selectable day strings for a month/year pair.
func DayOptions(month, year string) []string {
	n := DaysInMonth(month, year)
	opts := make([]string, n)
	for i := 1; i <= n; i++ {
		opts[i-1] = strconv.Itoa(i)
	}
	return opts
}

// parseAmount parses a user-typed monetary value. Non-numeric input fails
// here, before any bound check runs.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// integerPartLen counts digits before the decimal point.
func integerPartLen(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return len(StripDigits(s))
}

// validateEstimatedCost enforces the treatment-cost policy: required,
// numeric, 0 < v <= 250000, integer part capped at 7 digits.
func validateEstimatedCost(field, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{
			Field:   field,
			Code:    CodeMissingRequired,
			Message: "Estimated treatment cost is required",
		}}
	}
	v, err := parseAmount(value)
	if err != nil {
		return []ValidationError{{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: "Estimated treatment cost must be a number",
		}}
	}
	if integerPartLen(value) > MaxCostIntegerLen {
		return []ValidationError{{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("Estimated treatment cost may have at most %d digits", MaxCostIntegerLen),
		}}
	}
	if v <= 0 || v > MaxEstimatedCost {
		return []ValidationError{{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("Estimated treatment cost must be greater than 0 and at most %d", MaxEstimatedCost),
		}}
	}
	return nil
}

// validateBalance enforces 0 <= v <= 9,999,999. Optional fields pass when
// empty; mandatory ones report MISSING_REQUIRED instead.
func validateBalance(field, value string, required bool) []ValidationError {
	if strings.TrimSpace(value) == "" {
		if required {
			return []ValidationError{{
				Field:   field,
				Code:    CodeMissingRequired,
				Message: "This amount is required",
			}}
		}
		return nil
	}
	v, err := parseAmount(value)
	if err != nil {
		return []ValidationError{{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: "Amount must be a number",
		}}
	}
	if v < 0 || v > MaxBalance {
		return []ValidationError{{
			Field:   field,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("Amount must be between 0 and %d", MaxBalance),
		}}
	}
	return nil
}
