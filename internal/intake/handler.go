// internal/intake/handler.go
package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"dental-intake/internal/common/config"
	commonerrors "dental-intake/internal/common/errors"
	"dental-intake/internal/common/logger"
	"dental-intake/internal/common/metrics"
	"dental-intake/internal/common/storage"
	"dental-intake/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	MaxNameLength  = 100
	MaxEmailLength = 255

	// signatureWarning prefixes the partial-success warning; the failing
	// stage's message is appended so the caller sees what went wrong. The
	// application row is already committed when signature processing runs,
	// so its failures downgrade the response instead of failing it.
	signatureWarning = "Application saved, but the signed agreement could not be fully processed"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Handler serves the intake submission endpoint. The pipeline is strictly
// ordered: every rejection happens before any write, the application insert
// is the single point of no return, and everything after it is best-effort.
type Handler struct {
	cfg      config.IntakeConfig
	store    *Store
	notifier *Notifier
	objects  storage.ObjectStore
	logger   logger.Logger
}

func NewHandler(cfg config.IntakeConfig, store *Store, notifier *Notifier, objects storage.ObjectStore, log logger.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		notifier: notifier,
		objects:  objects,
		logger:   log,
	}
}

// Register mounts the intake routes on a gin router group.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/intake/applications", h.SubmitApplication)
}

// SubmitApplication runs the submission pipeline.
func (h *Handler) SubmitApplication(c *gin.Context) {
	start := time.Now()
	defer func() {
		metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
	}()

	// Origin allow-list. The header is the only access control on this
	// endpoint, so its absence rejects the same as a non-matching value;
	// browser POSTs always carry it.
	origin := c.GetHeader("Origin")
	if !h.originAllowed(origin) {
		h.reject(c, commonerrors.NewOriginNotAllowedError(origin))
		return
	}

	// User-agent floor. Empty or too-short strings are treated as non-browser
	// traffic, not as a validation problem to correct.
	if len(c.GetHeader("User-Agent")) < h.cfg.MinUserAgentLength {
		h.reject(c, commonerrors.NewSuspiciousUserAgentError("user agent below minimum length"))
		return
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, commonerrors.NewMissingRequiredFieldError("body"))
		return
	}

	if stdErr := h.validate(&req); stdErr != nil {
		h.reject(c, stdErr)
		return
	}

	ctx := c.Request.Context()

	// Duplicate window keyed on email. A transient DB failure here fails
	// closed: the submission is not accepted when the check cannot run.
	window := time.Duration(h.cfg.DuplicateWindowHours) * time.Hour
	dup, err := h.store.HasRecentApplication(ctx, req.Email, window)
	if err != nil {
		h.logger.WithError(err).Error("Duplicate check failed", map[string]interface{}{
			"email": req.Email,
		})
		h.serverError(c, commonerrors.NewDatabaseInsertFailedError(err))
		return
	}
	if dup {
		h.reject(c, commonerrors.NewDuplicateSubmissionError(req.Email, h.cfg.DuplicateWindowHours))
		return
	}

	expiration := time.Duration(h.cfg.ExpirationDays) * 24 * time.Hour
	app, err := h.store.InsertApplication(ctx, &req, expiration)
	if err != nil {
		h.logger.WithError(err).Error("Application insert failed", map[string]interface{}{
			"email": req.Email,
		})
		h.serverError(c, commonerrors.NewDatabaseInsertFailedError(err))
		return
	}

	log := h.logger.WithFields(map[string]interface{}{
		"application_id": app.ID,
	})
	log.Info("Application accepted", map[string]interface{}{
		"email":      req.Email,
		"expires_at": app.ExpiresAt.Format(time.RFC3339),
	})

	// Point of no return. The row above survives regardless of what the
	// notification and signature stages do.
	if h.notifier != nil {
		h.notifier.SendSubmissionEmails(ctx, app.ID, &req)
	}

	warning := ""
	if req.SignatureData != nil {
		if err := h.processSignature(ctx, app.ID, req.SignatureData); err != nil {
			log.WithError(err).Error("Signature processing failed", nil)
			warning = signatureWarning
			var stdErr *commonerrors.StandardError
			if errors.As(err, &stdErr) {
				warning = fmt.Sprintf("%s: %s", signatureWarning, stdErr.Message)
			}
		}
	}

	resp := SubmissionResponse{
		Success: true,
		ID:      app.ID,
		Message: "Application submitted successfully",
		Warning: warning,
	}
	if warning == "" {
		metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	} else {
		metrics.SubmissionsTotal.WithLabelValues("partial").Inc()
	}
	c.JSON(http.StatusOK, resp)
}

// originAllowed matches the exact allow-list first, then the suffix list.
func (h *Handler) originAllowed(origin string) bool {
	for _, allowed := range h.cfg.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	for _, suffix := range h.cfg.AllowedOriginSuffixes {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// validate runs the server-side checks in fixed order: required fields,
// then length bounds, then email shape. The first failure wins.
func (h *Handler) validate(req *SubmissionRequest) *commonerrors.StandardError {
	required := []struct {
		name  string
		empty bool
	}{
		{"first_name", strings.TrimSpace(req.FirstName) == ""},
		{"last_name", strings.TrimSpace(req.LastName) == ""},
		{"email", strings.TrimSpace(req.Email) == ""},
		{"consent_credit_pull", !req.ConsentCreditPull},
	}
	for _, field := range required {
		if field.empty {
			return commonerrors.NewMissingRequiredFieldError(field.name)
		}
	}

	if len(req.FirstName) > MaxNameLength {
		return commonerrors.NewFieldTooLongError("first_name", MaxNameLength)
	}
	if len(req.LastName) > MaxNameLength {
		return commonerrors.NewFieldTooLongError("last_name", MaxNameLength)
	}
	if len(req.Email) > MaxEmailLength {
		return commonerrors.NewFieldTooLongError("email", MaxEmailLength)
	}

	if !emailRegex.MatchString(req.Email) {
		return commonerrors.NewInvalidEmailFormatError(req.Email)
	}

	return nil
}

// processSignature decodes, uploads and records the signed agreement. The
// first failing stage aborts the rest; the caller turns any error into the
// response warning.
func (h *Handler) processSignature(ctx context.Context, applicationID string, sig *SignatureData) error {
	pdfBytes, err := base64.StdEncoding.DecodeString(sig.PDFBase64)
	if err != nil {
		return commonerrors.NewDocumentDecodeFailedError(err)
	}

	objectName := fmt.Sprintf("agreements/%s-%d.pdf", applicationID, time.Now().Unix())
	storagePath, err := h.objects.UploadDocument(ctx, objectName, pdfBytes, "application/pdf")
	if err != nil {
		return commonerrors.NewDocumentUploadFailedError(err)
	}

	rec := &models.SignatureRecord{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		SignerName:    sig.SignerName,
		SignerEmail:   sig.SignerEmail,
		IPAddress:     sig.IPAddress,
		UserAgent:     sig.UserAgent,
		ConsentGiven:  sig.ConsentGiven,
		Method:        models.SignatureMethodElectronic,
		SignedAt:      time.Now().UTC(),
		ContentHash:   sig.DocumentHash,
	}
	if err := h.store.InsertSignature(ctx, rec); err != nil {
		return commonerrors.NewSignatureRecordFailedError(err)
	}

	link := &models.SignedDocumentLink{
		SignatureID: rec.ID,
		StoragePath: storagePath,
	}
	if err := h.store.InsertDocumentLink(ctx, link); err != nil {
		return commonerrors.NewDocumentLinkFailedError(err)
	}

	return nil
}

// reject writes a 4xx rejection. Nothing has been persisted at this point.
func (h *Handler) reject(c *gin.Context, stdErr *commonerrors.StandardError) {
	metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
	metrics.SubmissionRejections.WithLabelValues(string(stdErr.Code)).Inc()
	h.logger.Warn("Submission rejected", map[string]interface{}{
		"error_code": string(stdErr.Code),
		"details":    stdErr.Details,
	})
	c.AbortWithStatusJSON(commonerrors.HTTPStatus(stdErr.Code), SubmissionResponse{
		Error: stdErr.Message,
	})
}

// serverError writes a 500 with message and details.
func (h *Handler) serverError(c *gin.Context, stdErr *commonerrors.StandardError) {
	metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
	c.AbortWithStatusJSON(http.StatusInternalServerError, SubmissionResponse{
		Error:   stdErr.Message,
		Details: stdErr.Details,
	})
}
