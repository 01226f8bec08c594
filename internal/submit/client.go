// internal/submit/client.go
package submit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dental-intake/internal/common/logger"
	"dental-intake/internal/intake"
	"dental-intake/internal/models"
)

// submitTimeout bounds the single submission POST end to end.
const submitTimeout = 30 * time.Second

// OutcomeKind classifies the result of a submission attempt.
type OutcomeKind int

const (
	// OutcomeSuccess: accepted, fully processed.
	OutcomeSuccess OutcomeKind = iota
	// OutcomePartialSuccess: application persisted but signature processing
	// failed server-side; the warning carries the server's description.
	OutcomePartialSuccess
	// OutcomeRejected: the server refused the submission (validation,
	// duplicate, origin). Reason is the server's error string.
	OutcomeRejected
	// OutcomeFailure: transport error, timeout, or unexpected status.
	OutcomeFailure
)

// Outcome is the classified result handed back to the caller. ID is set on
// Success and PartialSuccess; Warning only on PartialSuccess; Reason on
// Rejected; Err on Failure.
type Outcome struct {
	Kind    OutcomeKind
	ID      string
	Warning string
	Reason  string
	Err     error
}

// Client posts assembled applications to the intake endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   logger.Logger
}

func NewClient(endpoint string, log logger.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: submitTimeout},
		logger:   log,
	}
}

// BuildRequest flattens a completed draft and its signed-document package
// into the wire payload. Text fields carry over verbatim; monetary strings
// convert to numbers, with empty optional values omitted rather than sent
// as zero.
func BuildRequest(draft *models.ApplicationDraft, pkg *models.SignedDocumentPackage) *intake.SubmissionRequest {
	p := draft.Personal
	e := draft.Employment
	f := draft.Financial
	d := draft.Decision
	c := draft.Compliance

	req := &intake.SubmissionRequest{
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,

		BirthDay:   p.BirthDay,
		BirthMonth: p.BirthMonth,
		BirthYear:  p.BirthYear,

		SSN:           p.SSN,
		DriverLicense: p.DriverLicense,
		Sex:           p.Sex,
		MaritalStatus: p.MaritalStatus,

		PrimaryPhone:   p.PrimaryPhone,
		SecondaryPhone: p.SecondaryPhone,
		Email:          p.Email,

		Street:        p.Address.Street,
		City:          p.Address.City,
		State:         p.Address.State,
		Zip:           p.Address.Zip,
		TimeAtAddress: p.Address.TimeAtAddress,
		RentOrOwn:     p.Address.RentOrOwn,

		EmergencyName:         p.EmergencyContact.Name,
		EmergencyRelationship: p.EmergencyContact.Relationship,
		EmergencyPhone:        p.EmergencyContact.Phone,

		ReferralPractice: p.Referral.Practice,
		ProviderName:     p.Referral.ProviderName,
		ProviderContact:  p.Referral.ProviderContact,
		ProviderEmail:    p.Referral.ProviderEmail,
		ProviderID:       p.Referral.ProviderID,

		EstimatedCost: toNumber(p.EstimatedCost),

		Employer:           e.Employer,
		EmployerAddress:    e.EmployerAddress,
		JobTitle:           e.JobTitle,
		EmploymentType:     e.EmploymentType,
		LengthOfEmployment: e.LengthBucket,
		GrossMonthlyIncome: toNumber(e.GrossMonthly),
		NetMonthlyIncome:   toNumber(e.NetMonthly),
		PayFrequency:       e.PayFrequency,
		SecondaryIncome:    toNumber(e.SecondaryIncome),
		HouseholdIncome:    toNumber(e.HouseholdIncome),
		SpouseEmployer:     e.SpouseEmployer,
		SpouseIncome:       toNumber(e.SpouseIncome),

		CheckingBalance:    toNumber(f.CheckingBalance),
		SavingsBalance:     toNumber(f.SavingsBalance),
		RetirementBalance:  toNumber(f.RetirementBalance),
		InvestmentBalance:  toNumber(f.InvestmentBalance),
		MortgageOrRent:     toNumber(f.MortgageOrRent),
		CreditScore:        toNumber(f.CreditScore),
		CreditScoreUnknown: f.CreditScoreUnknown,

		TimeConsidering:   d.TimeConsidering,
		FinancingPriority: d.FinancingPriority,
		TreatmentReasons:  strings.Join(d.TreatmentReasons, ", "),
		Urgency:           d.Urgency,
		Readiness:         d.Readiness,

		ConsentCreditPull:     c.ConsentCreditPull,
		ConsentCommunications: c.ConsentCommunications,
		AckNoCreditImpact:     c.AckNoCreditImpact,
		ConfirmAccuracy:       c.ConfirmAccuracy,
	}

	if p.PreviousAddress != nil {
		req.PreviousStreet = p.PreviousAddress.Street
		req.PreviousCity = p.PreviousAddress.City
		req.PreviousState = p.PreviousAddress.State
		req.PreviousZip = p.PreviousAddress.Zip
	}

	if pkg != nil {
		req.SignatureData = &intake.SignatureData{
			SignerName:   pkg.SignerName,
			SignerEmail:  pkg.SignerEmail,
			ConsentGiven: pkg.ConsentGiven,
			IPAddress:    pkg.IPAddress,
			UserAgent:    pkg.UserAgent,
			DocumentHash: pkg.ContentHash,
			DocumentID:   pkg.DocumentID,
			PDFBase64:    base64.StdEncoding.EncodeToString(pkg.DocumentBytes),
		}
	}

	return req
}

// toNumber converts a wizard-validated monetary string. Empty stays nil so
// the field is omitted from the payload; unparseable values (which the
// wizard should have rejected) are also dropped rather than sent as zero.
func toNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Submit posts the payload once and classifies the response. There are no
// retries: the duplicate window on the server makes blind resubmission
// worse than surfacing the failure.
func (c *Client) Submit(ctx context.Context, req *intake.SubmissionRequest) Outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return Outcome{Kind: OutcomeFailure, Err: fmt.Errorf("encode submission: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: OutcomeFailure, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).Error("Submission request failed", nil)
		return Outcome{Kind: OutcomeFailure, Err: fmt.Errorf("submission request: %w", err)}
	}
	defer resp.Body.Close()

	var parsed intake.SubmissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"status": resp.StatusCode,
		}).Error("Submission response unreadable", nil)
		return Outcome{Kind: OutcomeFailure, Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}

	switch {
	case resp.StatusCode == http.StatusOK && parsed.Warning == "":
		return Outcome{Kind: OutcomeSuccess, ID: parsed.ID}

	case resp.StatusCode == http.StatusOK:
		c.logger.WithFields(map[string]interface{}{
			"application_id": parsed.ID,
			"warning":        parsed.Warning,
		}).Warn("Application accepted with warning", nil)
		return Outcome{Kind: OutcomePartialSuccess, ID: parsed.ID, Warning: parsed.Warning}

	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests:
		return Outcome{Kind: OutcomeRejected, Reason: parsed.Error}

	default:
		return Outcome{
			Kind: OutcomeFailure,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, parsed.Error),
		}
	}
}
