package notify

import (
	"context"
	"fmt"
	"time"
)

// Sender delivers a message to an email address. Send reports delivery
// success; transport errors are logged by the implementation and never
// escape as panics or errors.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) bool
}

// OTPSubject is the subject line of every OTP message.
const OTPSubject = "Your OTP Code"

// OTPBody renders the OTP message body for a code valid for ttl.
func OTPBody(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP code is: %s. It is valid for %d minutes.", code, int(ttl.Minutes()))
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, to, subject, body string) bool

func (f SenderFunc) Send(ctx context.Context, to, subject, body string) bool {
	return f(ctx, to, subject, body)
}
