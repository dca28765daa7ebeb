package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOTPEntryExpired(t *testing.T) {
	exp := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	e := OTPEntry{Code: "123456", ExpiresAt: exp}

	require.False(t, e.Expired(exp.Add(-time.Second)))
	require.False(t, e.Expired(exp), "expiry instant is still valid")
	require.True(t, e.Expired(exp.Add(time.Nanosecond)))
}

func TestOTPOutcome(t *testing.T) {
	tests := []struct {
		outcome OTPOutcome
		message string
		err     error
	}{
		{OTPVerified, "OTP verified", nil},
		{OTPExpired, "OTP expired", ErrOTPExpired},
		{OTPInvalid, "Invalid OTP", ErrOTPInvalid},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			require.Equal(t, tt.message, tt.outcome.Message())
			if tt.err == nil {
				require.NoError(t, tt.outcome.Err())
			} else {
				require.ErrorIs(t, tt.outcome.Err(), tt.err)
			}
		})
	}
}
