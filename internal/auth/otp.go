package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// OTPTTL is how long a password-reset code stays valid.
const OTPTTL = 5 * time.Minute

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore keeps short-lived password-reset codes in memory, keyed by
// email. A code is single-use: Verify consumes it.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
}

func NewOTPStore() *OTPStore {
	return &OTPStore{entries: make(map[string]otpEntry)}
}

// Generate creates a numeric code of the given length and stores it,
// replacing any previous code for the email.
func (s *OTPStore) Generate(email string, length int) (string, error) {
	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		code += n.String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = otpEntry{code: code, expiresAt: time.Now().Add(OTPTTL)}
	return code, nil
}

// Verify consumes the code for the email if it matches and has not
// expired. A consumed or expired code never verifies again.
func (s *OTPStore) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, email)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		return false
	}
	delete(s.entries, email)
	return true
}
