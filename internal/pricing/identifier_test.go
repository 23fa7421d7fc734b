package pricing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber_RoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		got := GenerateOrderNumber()
		assert.True(t, IsValidOrderNumber(got), "generated %q must validate", got)
	}
}

func TestGenerateTrackingNumber_RoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		got := GenerateTrackingNumber()

		assert.True(t, IsValidTrackingNumber(got), "generated %q must validate", got)
		assert.False(t, strings.ContainsAny(got[len("RTN-"):], "0O1I"),
			"%q must not contain visually ambiguous characters", got)

		code := strings.TrimPrefix(got, "RTN-")
		assert.GreaterOrEqual(t, len(code), 8)
		assert.LessOrEqual(t, len(code), 10)
	}
}

func TestGenerateTrackingNumber_LengthsVary(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		code := strings.TrimPrefix(GenerateTrackingNumber(), "RTN-")
		seen[len(code)] = true
	}

	for _, length := range []int{8, 9, 10} {
		assert.True(t, seen[length], "length %d never produced", length)
	}
}

func TestIsValidOrderNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid", input: "ORD-123456", want: true},
		{name: "too few digits", input: "ORD-12345", want: false},
		{name: "too many digits", input: "ORD-1234567", want: false},
		{name: "wrong prefix", input: "RTN-123456", want: false},
		{name: "letters in digits", input: "ORD-12A456", want: false},
		{name: "missing prefix", input: "123456", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsValidOrderNumber(tt.input))
		})
	}
}

func TestIsValidTrackingNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid short", input: "RTN-ABCDEFGH", want: true},
		{name: "valid long", input: "RTN-ABCDEFGHJKLM", want: true},
		{name: "too short", input: "RTN-ABCDEFG", want: false},
		{name: "too long", input: "RTN-ABCDEFGHJKLMN", want: false},
		{name: "contains zero", input: "RTN-ABCDEFG0", want: false},
		{name: "contains letter O", input: "RTN-ABCDEFGO", want: false},
		{name: "contains one", input: "RTN-ABCDEFG1", want: false},
		{name: "contains letter I", input: "RTN-ABCDEFGI", want: false},
		{name: "lowercase", input: "RTN-abcdefgh", want: false},
		{name: "wrong prefix", input: "ORD-ABCDEFGH", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsValidTrackingNumber(tt.input))
		})
	}
}

func TestUniqueTrackingNumber_RetriesOnCollision(t *testing.T) {
	t.Parallel()

	calls := 0
	exists := func(_ context.Context, _ string) (bool, error) {
		calls++
		return calls <= 2, nil // first two candidates collide
	}

	got, err := UniqueTrackingNumber(context.Background(), exists, 10)

	require.NoError(t, err)
	assert.True(t, IsValidTrackingNumber(got))
	assert.Equal(t, 3, calls)
}

func TestUniqueTrackingNumber_Exhaustion(t *testing.T) {
	t.Parallel()

	calls := 0
	exists := func(_ context.Context, _ string) (bool, error) {
		calls++
		return true, nil
	}

	got, err := UniqueTrackingNumber(context.Background(), exists, 5)

	assert.ErrorIs(t, err, ErrTrackingNumberExhausted)
	assert.Empty(t, got)
	assert.Equal(t, 5, calls)
}

func TestUniqueTrackingNumber_PropagatesCheckError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db unavailable")
	exists := func(_ context.Context, _ string) (bool, error) {
		return false, wantErr
	}

	_, err := UniqueTrackingNumber(context.Background(), exists, 10)

	assert.ErrorIs(t, err, wantErr)
}

func TestUniqueTrackingNumber_DefaultsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	exists := func(_ context.Context, _ string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := UniqueTrackingNumber(context.Background(), exists, 0)

	assert.ErrorIs(t, err, ErrTrackingNumberExhausted)
	assert.Equal(t, DefaultMaxRetries, calls)
}

func TestUniqueOrderNumber(t *testing.T) {
	t.Parallel()

	t.Run("first candidate free", func(t *testing.T) {
		t.Parallel()

		exists := func(_ context.Context, _ string) (bool, error) { return false, nil }

		got, err := UniqueOrderNumber(context.Background(), exists, 10)

		require.NoError(t, err)
		assert.True(t, IsValidOrderNumber(got))
	})

	t.Run("exhaustion", func(t *testing.T) {
		t.Parallel()

		exists := func(_ context.Context, _ string) (bool, error) { return true, nil }

		_, err := UniqueOrderNumber(context.Background(), exists, 3)

		assert.ErrorIs(t, err, ErrOrderNumberExhausted)
	})
}
