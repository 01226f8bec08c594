// internal/intake/store.go
package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dental-intake/internal/models"

	"github.com/google/uuid"
)

// Store persists applications, signature records and document links. Each
// write is a single-row insert; no multi-object transactions are required
// by the pipeline design.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// HasRecentApplication reports whether an application with the same email
// was created inside the duplicate window.
//
// Known race: this check and the subsequent insert are not atomic and the
// applications table carries no uniqueness constraint on (email, window).
// Two near-simultaneous submissions with the same email can both pass and
// both insert. The window is a courtesy anti-duplicate measure keyed on
// email+time, not a strong idempotency key; closing the race would change
// observable behavior and is deliberately not done here.
func (s *Store) HasRecentApplication(ctx context.Context, email string, window time.Duration) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE email = $1 AND created_at > $2
		)`, email, time.Now().UTC().Add(-window)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("duplicate check failed: %w", err)
	}
	return exists, nil
}

// InsertApplication persists the application row. The signature sub-object
// must already be stripped from req; signatures are stored separately. The
// server owns the creation and expiration timestamps and the generated id.
func (s *Store) InsertApplication(ctx context.Context, req *SubmissionRequest, expiration time.Duration) (*models.StoredApplication, error) {
	app := &models.StoredApplication{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
	app.ExpiresAt = app.CreatedAt.Add(expiration)

	// The full flat record goes into a JSONB column; the columns pulled out
	// alongside are the ones queries need (duplicate window, triage lists).
	stripped := *req
	stripped.SignatureData = nil
	applicationJSON, err := json.Marshal(&stripped)
	if err != nil {
		return nil, fmt.Errorf("marshal application data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, first_name, last_name, email, application_data,
			created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID,
		req.FirstName,
		req.LastName,
		req.Email,
		applicationJSON,
		app.CreatedAt,
		app.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	return app, nil
}

// InsertSignature persists the signature record for an application.
func (s *Store) InsertSignature(ctx context.Context, rec *models.SignatureRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signatures (
			id, application_id, signer_name, signer_email, ip_address,
			user_agent, consent_given, method, signed_at, content_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID,
		rec.ApplicationID,
		rec.SignerName,
		rec.SignerEmail,
		rec.IPAddress,
		rec.UserAgent,
		rec.ConsentGiven,
		rec.Method,
		rec.SignedAt,
		rec.ContentHash,
	)
	if err != nil {
		return fmt.Errorf("signature insert failed: %w", err)
	}
	return nil
}

// InsertDocumentLink persists the storage-path pointer for a signature's
// uploaded rendered document.
func (s *Store) InsertDocumentLink(ctx context.Context, link *models.SignedDocumentLink) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signed_documents (signature_id, storage_path)
		VALUES ($1, $2)`,
		link.SignatureID,
		link.StoragePath,
	)
	if err != nil {
		return fmt.Errorf("document link insert failed: %w", err)
	}
	return nil
}
