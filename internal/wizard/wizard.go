// internal/wizard/wizard.go
package wizard

import "dental-intake/internal/models"

// Step numbering across the wizard.
const (
	StepPersonal = iota
	StepEmployment
	StepFinancial
	StepDecision
	StepCompliance
	StepCount
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validation error codes.
const (
	CodeMissingRequired = "MISSING_REQUIRED"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidValue    = "INVALID_VALUE"
	CodeOutOfRange      = "OUT_OF_RANGE"
)

// Step is one wizard page. Validate checks only the step's own slice of the
// draft; Apply merges the validated slice into the aggregate. A step never
// touches fields owned by another step.
type Step interface {
	Validate() []ValidationError
	Apply(draft *models.ApplicationDraft)
}

// Wizard owns the shared ApplicationDraft and the navigation state. Steps
// receive the current aggregate only through Apply, so all mutation funnels
// through one merge point. Fields are validated only when the user attempts
// to advance; revisiting an earlier step does not re-validate until the
// next advance attempt.
type Wizard struct {
	draft     models.ApplicationDraft
	current   int
	attempted [StepCount]bool
}

func New() *Wizard {
	return &Wizard{}
}

// Draft returns the accumulated aggregate.
func (w *Wizard) Draft() *models.ApplicationDraft {
	return &w.draft
}

// Current returns the active step index.
func (w *Wizard) Current() int {
	return w.current
}

// Attempted reports whether the user has tried to advance past the step at
// least once; the UI shows the collected error summary only after that.
func (w *Wizard) Attempted(step int) bool {
	if step < 0 || step >= StepCount {
		return false
	}
	return w.attempted[step]
}

// Advance validates the given step and, on success, merges its slice into
// the draft and moves forward. On failure the step index does not move and
// the per-field errors are returned.
func (w *Wizard) Advance(step Step) []ValidationError {
	w.attempted[w.current] = true

	errs := step.Validate()
	if len(errs) > 0 {
		return errs
	}

	step.Apply(&w.draft)
	if w.current < StepCount-1 {
		w.current++
	}
	return nil
}

// GoBack never validates and always succeeds unless already on the first step.
func (w *Wizard) GoBack() bool {
	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// OnFinalStep reports whether the wizard is at the compliance/signature step.
func (w *Wizard) OnFinalStep() bool {
	return w.current == StepCompliance
}
