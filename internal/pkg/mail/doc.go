// Package mail defines the contract for sending email messages and its
// provider drivers (SMTP and SendGrid).
//
// Use cases depend on the Mail interface and the Message payload; the driver is
// selected from configuration with NewFromDriver.
package mail
