package entity

import (
	"strings"
	"time"
)

// RoleSuperAdmin is granted when an admin has no explicit roles.
const RoleSuperAdmin = "super_admin"

type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	Roles        []string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

// EffectiveRoles returns Roles, or super_admin when none are assigned.
func (a Admin) EffectiveRoles() []string {
	if len(a.Roles) == 0 {
		return []string{RoleSuperAdmin}
	}
	return a.Roles
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskEmail renders an address for display: the first character of the local
// part, "***", the last character when the local part is longer than two
// characters, then the domain.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(NormalizeEmail(email), "@")
	if !ok || local == "" {
		return "***"
	}

	r := []rune(local)
	var b strings.Builder
	b.WriteRune(r[0])
	b.WriteString("***")
	if len(r) > 2 {
		b.WriteRune(r[len(r)-1])
	}
	b.WriteByte('@')
	b.WriteString(domain)

	return b.String()
}
