// internal/submit/client_test.go
package submit

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"dental-intake/internal/common/logger"
	"dental-intake/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraft() *models.ApplicationDraft {
	return &models.ApplicationDraft{
		Personal: models.PersonalInfo{
			FirstName:     "Jane",
			LastName:      "Doe",
			SSN:           "123456789",
			PrimaryPhone:  "5551234567",
			Email:         "jane@example.com",
			EstimatedCost: "12,500.50",
			Referral: models.Referral{
				Mode:     models.ReferralModeManual,
				Practice: "Springfield Dental",
			},
		},
		Employment: models.EmploymentInfo{
			Employer:     "Acme Corp",
			GrossMonthly: "6000",
			NetMonthly:   "4500",
		},
		Financial: models.FinancialInfo{
			MortgageOrRent:     "1500",
			CreditScoreUnknown: true,
		},
		Decision: models.DecisionSignals{
			TreatmentReasons: []string{"implants", "confidence", "pain relief"},
			Urgency:          7,
		},
		Compliance: models.ComplianceFlags{
			ConsentCreditPull:     true,
			ConsentCommunications: true,
			AckNoCreditImpact:     true,
			ConfirmAccuracy:       true,
		},
	}
}

func TestBuildRequestFlattensDraft(t *testing.T) {
	pkg := &models.SignedDocumentPackage{
		SignerName:    "Jane Doe",
		SignerEmail:   "jane@example.com",
		ConsentGiven:  true,
		IPAddress:     "203.0.113.9",
		UserAgent:     "test-agent/1.0",
		ContentHash:   "abc123",
		DocumentID:    "agreement-v3",
		DocumentBytes: []byte("%PDF-1.4 fake"),
	}

	req := BuildRequest(sampleDraft(), pkg)

	// Verbatim scalars.
	assert.Equal(t, "Jane", req.FirstName)
	assert.Equal(t, "123456789", req.SSN)
	assert.Equal(t, "Springfield Dental", req.ReferralPractice)

	// Numeric conversion, commas stripped.
	require.NotNil(t, req.EstimatedCost)
	assert.Equal(t, 12500.50, *req.EstimatedCost)
	require.NotNil(t, req.MortgageOrRent)
	assert.Equal(t, 1500.0, *req.MortgageOrRent)

	// Empty optionals omitted, not zeroed.
	assert.Nil(t, req.CheckingBalance)
	assert.Nil(t, req.SecondaryIncome)
	assert.Nil(t, req.CreditScore)
	assert.True(t, req.CreditScoreUnknown)

	// Multi-select joined into one delimited string.
	assert.Equal(t, "implants, confidence, pain relief", req.TreatmentReasons)

	// Signature package nested with the document base64-encoded.
	require.NotNil(t, req.SignatureData)
	assert.Equal(t, "abc123", req.SignatureData.DocumentHash)
	assert.Equal(t, "agreement-v3", req.SignatureData.DocumentID)
	decoded, err := base64.StdEncoding.DecodeString(req.SignatureData.PDFBase64)
	require.NoError(t, err)
	assert.Equal(t, pkg.DocumentBytes, decoded)
}

func TestBuildRequestWithoutSignature(t *testing.T) {
	req := BuildRequest(sampleDraft(), nil)
	assert.Nil(t, req.SignatureData)
}

func TestBuildRequestPreviousAddress(t *testing.T) {
	draft := sampleDraft()
	draft.Personal.PreviousAddress = &models.Address{
		Street: "9 Old Rd",
		City:   "Shelbyville",
		State:  "IL",
		Zip:    "62565",
	}

	req := BuildRequest(draft, nil)
	assert.Equal(t, "9 Old Rd", req.PreviousStreet)
	assert.Equal(t, "Shelbyville", req.PreviousCity)
}

func TestSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedKind OutcomeKind
		expectedID   string
		expectedWarn string
		expectedWhy  string
	}{
		{
			name:         "success",
			status:       http.StatusOK,
			body:         `{"success": true, "id": "app-1", "message": "Application submitted successfully"}`,
			expectedKind: OutcomeSuccess,
			expectedID:   "app-1",
		},
		{
			name:         "partial success carries warning",
			status:       http.StatusOK,
			body:         `{"success": true, "id": "app-2", "warning": "signature processing failed"}`,
			expectedKind: OutcomePartialSuccess,
			expectedID:   "app-2",
			expectedWarn: "signature processing failed",
		},
		{
			name:         "validation rejection",
			status:       http.StatusBadRequest,
			body:         `{"error": "Missing required field: email"}`,
			expectedKind: OutcomeRejected,
			expectedWhy:  "Missing required field: email",
		},
		{
			name:         "origin rejection",
			status:       http.StatusForbidden,
			body:         `{"error": "Origin not allowed"}`,
			expectedKind: OutcomeRejected,
			expectedWhy:  "Origin not allowed",
		},
		{
			name:         "duplicate rejection",
			status:       http.StatusTooManyRequests,
			body:         `{"error": "An application for jane@example.com was already submitted within the last 24 hours. Please wait before submitting again."}`,
			expectedKind: OutcomeRejected,
			expectedWhy:  "An application for jane@example.com was already submitted within the last 24 hours. Please wait before submitting again.",
		},
		{
			name:         "server error is failure",
			status:       http.StatusInternalServerError,
			body:         `{"error": "Failed to save application", "details": "connection refused"}`,
			expectedKind: OutcomeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, logger.NewNoOpLogger())
			outcome := c.Submit(context.Background(), BuildRequest(sampleDraft(), nil))

			assert.Equal(t, tt.expectedKind, outcome.Kind)
			assert.Equal(t, tt.expectedID, outcome.ID)
			assert.Equal(t, tt.expectedWarn, outcome.Warning)
			assert.Equal(t, tt.expectedWhy, outcome.Reason)
			if tt.expectedKind == OutcomeFailure {
				assert.Error(t, outcome.Err)
			} else {
				assert.NoError(t, outcome.Err)
			}
		})
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", logger.NewNoOpLogger())
	outcome := c.Submit(context.Background(), BuildRequest(sampleDraft(), nil))

	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Error(t, outcome.Err)
}
