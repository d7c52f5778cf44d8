package inbound

import (
	"net/http"
	"strconv"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
)

type OTPStatus struct {
	ChallengeID              string `json:"challenge_id"`
	MaskedIdentity           string `json:"masked_identity"`
	OTPExpiresInSeconds      int64  `json:"otp_expires_in_seconds"`
	RemainingAttempts        int    `json:"remaining_attempts"`
	MaxAttempts              int    `json:"max_attempts"`
	LockoutRemainingSeconds  int64  `json:"lockout_remaining_seconds"`
	ResendAvailableInSeconds int64  `json:"resend_available_in_seconds"`
	Status                   string `json:"status" example:"pending"`
}

func toOTPStatus(s entity.ChallengeSnapshot) OTPStatus {
	return OTPStatus{
		ChallengeID:              strconv.FormatInt(s.ChallengeID, 10),
		MaskedIdentity:           s.MaskedIdentity,
		OTPExpiresInSeconds:      s.OTPExpiresInSeconds,
		RemainingAttempts:        s.RemainingAttempts,
		MaxAttempts:              s.MaxAttempts,
		LockoutRemainingSeconds:  s.LockoutRemainingSeconds,
		ResendAvailableInSeconds: s.ResendAvailableInSeconds,
		Status:                   s.Status.String(),
	}
}

type Admin struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

func toAdmin(a entity.Admin) Admin {
	return Admin{
		ID:       strconv.FormatInt(a.ID, 10),
		Email:    a.Email,
		FullName: a.FullName,
		Roles:    a.EffectiveRoles(),
	}
}

type Session struct {
	AccessTokenExpiresInSeconds int64 `json:"access_token_expires_in_seconds"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPResponse struct {
	OTPRequired bool      `json:"otp_required"`
	OTPStatus   OTPStatus `json:"otp_status"`

	message string
	cookies []*http.Cookie
}

func (r OTPResponse) Message() string {
	if r.message == "" {
		return "request has been successfully"
	}
	return r.message
}

func (r OTPResponse) Cookies() []*http.Cookie { return r.cookies }

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

type SessionResponse struct {
	Admin   Admin   `json:"admin"`
	Session Session `json:"session"`

	message string
	cookies []*http.Cookie
}

func (r SessionResponse) Message() string {
	if r.message == "" {
		return "request has been successfully"
	}
	return r.message
}

func (r SessionResponse) Cookies() []*http.Cookie { return r.cookies }

type ClearedResponse struct {
	message string
	cookies []*http.Cookie
}

func (r ClearedResponse) Message() string { return r.message }

func (r ClearedResponse) Cookies() []*http.Cookie { return r.cookies }
