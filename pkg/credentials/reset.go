package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL is the window within which a password reset token can be
// exchanged for a new password.
const ResetTokenTTL = 10 * time.Minute

// NewResetToken generates a password reset secret. The plain form is
// delivered out-of-band; only the hashed form is ever stored, so consuming
// the token later means hashing the presented plain value and looking the
// hash up.
func NewResetToken() (plain, hashed string, expiry time.Time, err error) {
	b := make([]byte, 20)
	if _, err = rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	plain = hex.EncodeToString(b)
	return plain, HashResetToken(plain), time.Now().Add(ResetTokenTTL), nil
}

// HashResetToken is the deterministic one-way transform from the delivered
// token to its stored form.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
