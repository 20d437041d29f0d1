package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	otpLength = 6
	otpTTL    = 10 * time.Minute
)

type otpTicket struct {
	code      string
	expiresAt time.Time
}

// OTPService owns the in-process one-time-code store. Tickets are keyed by
// email; a reissue overwrites the outstanding ticket and a successful verify
// consumes it. The single mutex covers the whole map: both Issue (write) and
// Verify (read-then-delete) need it to stay atomic under concurrent requests.
type OTPService struct {
	mu      sync.Mutex
	tickets map[string]otpTicket
	now     func() time.Time
}

func NewOTPService() *OTPService {
	return &OTPService{
		tickets: make(map[string]otpTicket),
		now:     time.Now,
	}
}

// Issue generates a fresh numeric code for the email and stores it with a
// 10 minute expiry, invalidating any prior code for the same address.
func (s *OTPService) Issue(email string) (string, error) {
	code, err := generateOTP(otpLength)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.tickets[email] = otpTicket{code: code, expiresAt: s.now().Add(otpTTL)}
	s.mu.Unlock()

	return code, nil
}

// Verify is a consuming read: on success the ticket is deleted so the code
// cannot be spent twice. A failed attempt leaves the ticket in place and
// stays retryable until expiry or a reissue.
func (s *OTPService) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[email]
	if !ok || t.code != code {
		return ErrInvalidOrExpiredCode
	}
	if s.now().After(t.expiresAt) {
		return ErrInvalidOrExpiredCode
	}
	delete(s.tickets, email)
	return nil
}

func generateOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("otp rand: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
