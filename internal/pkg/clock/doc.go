// Package clock abstracts the wall clock.
//
// OTP expiry, lockouts, resend cooldowns and backup progress are all computed
// from a Clocker so tests can pin time.
package clock
