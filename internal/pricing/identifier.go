package pricing

import (
	"context"
	cryptorand "crypto/rand"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const (
	orderNumberPrefix    = "ORD-"
	trackingNumberPrefix = "RTN-"

	trackingMinLength = 8
	trackingMaxLength = 10

	// DefaultMaxRetries bounds the collision-retry loop for unique
	// identifier generation.
	DefaultMaxRetries = 10
)

// trackingAlphabet is a 32-symbol alphabet excluding the visually
// ambiguous characters 0/O and 1/I.
const trackingAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var (
	orderNumberPattern    = regexp.MustCompile(`^ORD-\d{6}$`)
	trackingNumberPattern = regexp.MustCompile(`^RTN-[A-HJ-NP-Z2-9]{8,12}$`)
)

// ExistsFunc reports whether a candidate identifier is already taken,
// typically backed by a persistent store's lookup query.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// GenerateOrderNumber returns an "ORD-" number with six uniformly random
// digits. Not cryptographically secured; collisions are acceptable given
// retry-on-conflict at the persistence layer.
func GenerateOrderNumber() string {
	return fmt.Sprintf("%s%06d", orderNumberPrefix, 100000+rand.Intn(900000))
}

// GenerateTrackingNumber returns an "RTN-" number of 8-10 characters drawn
// from the ambiguity-free alphabet. A variable number of bytes from a
// cryptographically secure source is packed into 5-bit groups, each mapped
// to one alphabet symbol; short encodings are padded up to the minimum
// length and long ones truncated to the maximum.
func GenerateTrackingNumber() string {
	// 4-7 bytes encode to 6-11 symbols before padding and truncation.
	buf := make([]byte, 4+int(randomByte())%4)
	if _, err := cryptorand.Read(buf); err != nil {
		// crypto/rand read failure is unrecoverable process state.
		panic(fmt.Sprintf("pricing: crypto/rand failed: %v", err))
	}

	var sb strings.Builder
	var acc uint
	var bits uint
	for _, b := range buf {
		acc = acc<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(trackingAlphabet[(acc>>bits)&31])
		}
	}

	code := sb.String()
	for len(code) < trackingMinLength {
		code += string(randomAlphabetChar())
	}
	if len(code) > trackingMaxLength {
		code = code[:trackingMaxLength]
	}

	return trackingNumberPrefix + code
}

// randomAlphabetChar returns one secure-random alphabet symbol. The
// alphabet size divides 256, so the byte modulo stays uniform.
func randomAlphabetChar() byte {
	return trackingAlphabet[int(randomByte())%len(trackingAlphabet)]
}

func randomByte() byte {
	var b [1]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("pricing: crypto/rand failed: %v", err))
	}
	return b[0]
}

// UniqueOrderNumber generates an order number not yet known to the
// existence check, retrying up to maxRetries times. Attempts are
// sequential; each generation depends on the previous attempt's collision
// result.
func UniqueOrderNumber(ctx context.Context, exists ExistsFunc, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		candidate := GenerateOrderNumber()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrOrderNumberExhausted
}

// UniqueTrackingNumber generates a tracking number not yet known to the
// existence check, retrying up to maxRetries times. Exhaustion is fatal:
// silently returning a possibly-duplicate value would corrupt tracking
// integrity.
func UniqueTrackingNumber(ctx context.Context, exists ExistsFunc, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		candidate := GenerateTrackingNumber()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrTrackingNumberExhausted
}

// IsValidOrderNumber reports whether s has the ORD-\d{6} format.
func IsValidOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}

// IsValidTrackingNumber reports whether s has the RTN- format over the
// restricted alphabet.
func IsValidTrackingNumber(s string) bool {
	return trackingNumberPattern.MatchString(s)
}
