// Package jwt issues and verifies the short-lived admin access token.
//
// It includes:
//   - Claims carrying the token kind, admin identity and roles.
//   - A symmetric HS512 implementation for generating and verifying tokens.
//   - Context helpers for storing and retrieving authenticated claims.
package jwt
