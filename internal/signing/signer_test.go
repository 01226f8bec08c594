// internal/signing/signer_test.go
package signing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "I authorize the financing provider to obtain my credit report and agree to the payment terms described above."

func TestContentHashDeterministic(t *testing.T) {
	h1 := ContentHash(testContract)
	h2 := ContentHash(testContract)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex sha256

	// Any change to the text changes the hash.
	assert.NotEqual(t, h1, ContentHash(testContract+" "))
}

func TestSignProducesDocumentAndHash(t *testing.T) {
	signDate := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	doc, err := Sign(testContract, "Jane Doe", signDate)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.NotEmpty(t, doc.DocumentBytes)
	assert.Equal(t, ContentHash(testContract), doc.ContentHash)

	// PDF magic bytes.
	assert.Equal(t, "%PDF", string(doc.DocumentBytes[:4]))
}

// The hash commits to the contract text only. Two signers of the same
// agreement produce different rendered bytes but identical hashes.
func TestSignHashIndependentOfSigner(t *testing.T) {
	signDate := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	doc1, err := Sign(testContract, "Jane Doe", signDate)
	require.NoError(t, err)
	doc2, err := Sign(testContract, "Someone Entirely Different", signDate)
	require.NoError(t, err)

	assert.Equal(t, doc1.ContentHash, doc2.ContentHash)
	assert.NotEqual(t, doc1.DocumentBytes, doc2.DocumentBytes)
}
