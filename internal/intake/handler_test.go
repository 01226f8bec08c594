// internal/intake/handler_test.go
package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dental-intake/internal/common/config"
	"dental-intake/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockObjectStore struct {
	UploadDocumentFunc func(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

func (m *MockObjectStore) UploadDocument(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	return m.UploadDocumentFunc(ctx, objectName, data, contentType)
}

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

// ==========================
// Test Helper Functions
// ==========================

func testIntakeConfig() config.IntakeConfig {
	return config.IntakeConfig{
		AllowedOrigins:        []string{"https://app.example.com"},
		AllowedOriginSuffixes: []string{".trusted.example.org"},
		DuplicateWindowHours:  24,
		ExpirationDays:        30,
		MinUserAgentLength:    10,
	}
}

func newTestRouter(t *testing.T, notifier *Notifier, objects *MockObjectStore) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	if objects == nil {
		objects = &MockObjectStore{
			UploadDocumentFunc: func(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
				return "signed-agreements/" + objectName, nil
			},
		}
	}

	handler := NewHandler(testIntakeConfig(), NewStore(sqlDB), notifier, objects, logger.NewTestLogger(t))
	router := gin.New()
	handler.Register(router)
	return router, mock
}

func minimalPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":          "Jane",
		"last_name":           "Doe",
		"email":               "jane@example.com",
		"consent_credit_pull": true,
	}
}

func postApplication(router *gin.Engine, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/intake/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (test-suite)")
	req.Header.Set("Origin", "https://app.example.com")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func expectNoDuplicate(mock sqlmock.Sqlmock, email string) {
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(email, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
}

func expectApplicationInsert(mock sqlmock.Sqlmock) {
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
}

// ==========================
// Tests
// ==========================

func TestSubmitApplicationMinimalPayload(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)

	w := postApplication(router, minimalPayload(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Warning)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationDisallowedOrigin(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)

	w := postApplication(router, minimalPayload(), map[string]string{
		"Origin": "https://evil.example.net",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Origin not allowed", resp.Error)
	// Rejected before any database work.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationMissingOriginRejected(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)

	// No Origin header at all: the allow-list is the endpoint's only access
	// control, so absence rejects like any non-matching value.
	body, _ := json.Marshal(minimalPayload())
	req := httptest.NewRequest(http.MethodPost, "/api/intake/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (test-suite)")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Origin not allowed", resp.Error)
	assert.False(t, resp.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationOriginSuffixAllowed(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)

	w := postApplication(router, minimalPayload(), map[string]string{
		"Origin": "https://portal.trusted.example.org",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationShortUserAgent(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)

	w := postApplication(router, minimalPayload(), map[string]string{
		"User-Agent": "curl/7.1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request", resp.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationValidation(t *testing.T) {
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'a'
	}
	longEmailLocal := make([]byte, 250)
	for i := range longEmailLocal {
		longEmailLocal[i] = 'b'
	}

	tests := []struct {
		name          string
		mutate        func(p map[string]interface{})
		expectedError string
	}{
		{
			name:          "missing first name",
			mutate:        func(p map[string]interface{}) { delete(p, "first_name") },
			expectedError: "Missing required field: first_name",
		},
		{
			name:          "whitespace last name",
			mutate:        func(p map[string]interface{}) { p["last_name"] = "   " },
			expectedError: "Missing required field: last_name",
		},
		{
			name:          "missing consent",
			mutate:        func(p map[string]interface{}) { p["consent_credit_pull"] = false },
			expectedError: "Missing required field: consent_credit_pull",
		},
		{
			name:          "first name too long",
			mutate:        func(p map[string]interface{}) { p["first_name"] = string(longName) },
			expectedError: "Field first_name exceeds maximum length of 100 characters",
		},
		{
			name:          "email too long",
			mutate:        func(p map[string]interface{}) { p["email"] = string(longEmailLocal) + "@example.com" },
			expectedError: "Field email exceeds maximum length of 255 characters",
		},
		{
			name:          "malformed email",
			mutate:        func(p map[string]interface{}) { p["email"] = "not-an-email" },
			expectedError: "Invalid email format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mock := newTestRouter(t, nil, nil)

			payload := minimalPayload()
			tt.mutate(payload)
			w := postApplication(router, payload, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp SubmissionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedError, resp.Error)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("jane@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	w := postApplication(router, minimalPayload(), nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// The message names the email and the window.
	assert.Contains(t, resp.Error, "jane@example.com")
	assert.Contains(t, resp.Error, "24 hours")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationInsertFailure(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)
	expectNoDuplicate(mock, "jane@example.com")
	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(assert.AnError)

	w := postApplication(router, minimalPayload(), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to save application", resp.Error)
	assert.NotEmpty(t, resp.Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func signedPayload() map[string]interface{} {
	payload := minimalPayload()
	payload["signature_data"] = map[string]interface{}{
		"signer_name":   "Jane Doe",
		"signer_email":  "jane@example.com",
		"consent_given": true,
		"ip_address":    "203.0.113.9",
		"user_agent":    "Mozilla/5.0 (test-suite)",
		"document_hash": "abc123",
		"document_id":   "agreement-v3",
		"pdf_base64":    base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
	}
	return payload
}

func TestSubmitApplicationWithSignature(t *testing.T) {
	var uploadedName string
	objects := &MockObjectStore{
		UploadDocumentFunc: func(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
			uploadedName = objectName
			assert.Equal(t, "application/pdf", contentType)
			assert.Equal(t, []byte("%PDF-1.4 fake"), data)
			return "signed-agreements/" + objectName, nil
		},
	}

	router, mock := newTestRouter(t, nil, objects)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)
	mock.ExpectExec("INSERT INTO signatures").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO signed_documents").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := postApplication(router, signedPayload(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Warning)
	assert.Contains(t, uploadedName, "agreements/"+resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationInvalidBase64StillAccepted(t *testing.T) {
	router, mock := newTestRouter(t, nil, nil)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)

	payload := signedPayload()
	payload["signature_data"].(map[string]interface{})["pdf_base64"] = "!!! not base64 !!!"

	w := postApplication(router, payload, nil)

	// The application row is committed; the signature failure only downgrades
	// the response to success-with-warning.
	assert.Equal(t, http.StatusOK, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ID)
	// The warning names the failing stage, not just a generic notice.
	assert.Contains(t, resp.Warning, "could not be fully processed")
	assert.Contains(t, resp.Warning, "could not be decoded")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationUploadFailureStillAccepted(t *testing.T) {
	objects := &MockObjectStore{
		UploadDocumentFunc: func(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
			return "", assert.AnError
		},
	}

	router, mock := newTestRouter(t, nil, objects)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)

	w := postApplication(router, signedPayload(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Warning, "could not be stored")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationSendsNotifications(t *testing.T) {
	var recipients []string
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			recipients = append(recipients, params.Destination.ToAddresses[0])
			assert.Equal(t, "noreply@dental.example.com", *params.Source)
			return &ses.SendEmailOutput{}, nil
		},
	}

	var notifCfg config.NotificationConfig
	notifCfg.Email.Enabled = true
	notifCfg.Email.FromEmail = "noreply@dental.example.com"
	notifCfg.Email.ProviderInbox = "intake@dental.example.com"
	notifier := NewNotifier(mockSES, notifCfg, logger.NewNoOpLogger())

	router, mock := newTestRouter(t, notifier, nil)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)

	w := postApplication(router, minimalPayload(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"intake@dental.example.com", "jane@example.com"}, recipients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitApplicationNotificationFailureIgnored(t *testing.T) {
	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, assert.AnError
		},
	}

	var notifCfg config.NotificationConfig
	notifCfg.Email.Enabled = true
	notifCfg.Email.FromEmail = "noreply@dental.example.com"
	notifier := NewNotifier(mockSES, notifCfg, logger.NewNoOpLogger())

	router, mock := newTestRouter(t, notifier, nil)
	expectNoDuplicate(mock, "jane@example.com")
	expectApplicationInsert(mock)

	w := postApplication(router, minimalPayload(), nil)

	// Notification trouble never changes the submission outcome.
	assert.Equal(t, http.StatusOK, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Warning)
	assert.NoError(t, mock.ExpectationsWereMet())
}
