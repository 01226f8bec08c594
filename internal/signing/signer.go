// internal/signing/signer.go
package signing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	commonerrors "dental-intake/internal/common/errors"

	"github.com/jung-kurt/gofpdf"
)

// SignedDocument is the output of one signing operation.
type SignedDocument struct {
	DocumentBytes []byte
	ContentHash   string
}

// ContentHash returns the hex sha256 of the contract text alone. The hash is
// a content-commitment to the agreement version shown to the signer: it must
// never include the signer name or date, which only exist in the rendered
// bytes.
func ContentHash(contractText string) string {
	sum := sha256.Sum256([]byte(contractText))
	return hex.EncodeToString(sum[:])
}

// Sign renders the agreement as a PDF embedding the contract text, signer
// name and date, and computes the content hash of the text. A render failure
// is a hard stop for submission; callers must not retry it.
func Sign(contractText, signerName string, signDate time.Time) (*SignedDocument, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Patient Financing Agreement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Patient Financing Agreement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, contractText, "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Electronically signed by:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, signerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", signDate.Format("January 2, 2006")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, commonerrors.NewDocumentRenderFailedError(err)
	}

	return &SignedDocument{
		DocumentBytes: buf.Bytes(),
		ContentHash:   ContentHash(contractText),
	}, nil
}
