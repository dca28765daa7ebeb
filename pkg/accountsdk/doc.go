/*
Package accountsdk is a client for the passageqa account service, and the
home of the error values the service writes.

Every flow is a sequence of stateless calls. OTP steps return a ticket
that the caller passes to the next step:

	client := accountsdk.NewClient("http://localhost:8080")

	_, err := client.RequestSignupOTP(ctx, accountsdk.SignupOTPRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Password:        password,
		ConfirmPassword: password,
	})

	ticket, err := client.VerifySignupOTP(ctx, "alice@example.com", code)

	session, err := client.CompleteSignup(ctx, accountsdk.SignupRequest{
		Ticket:          ticket.Ticket,
		Username:        "alice",
		Password:        password,
		ConfirmPassword: password,
	})

Errors returned by the service are *APIError values and compare equal to
the predefined errors with errors.Is:

	if errors.Is(err, accountsdk.ErrOTPExpired) {
		// request a new code
	}
*/
package accountsdk
