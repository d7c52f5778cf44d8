package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
)

type fakeUC struct {
	loginIn  usecase.LoginInput
	verifyIn usecase.VerifyOTPInput
	logoutIn usecase.LogoutInput
}

func (f *fakeUC) Login(_ context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	f.loginIn = in
	return &usecase.LoginOutput{
		ChallengeToken: "challenge-token",
		Status:         entity.ChallengeSnapshot{ChallengeID: 7, MaxAttempts: 3, RemainingAttempts: 3, Status: entity.ChallengeStatusPending},
	}, nil
}

func (f *fakeUC) OTPStatus(context.Context, usecase.OTPStatusInput) (*entity.ChallengeSnapshot, error) {
	return &entity.ChallengeSnapshot{ChallengeID: 7}, nil
}

func (f *fakeUC) VerifyOTP(_ context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error) {
	f.verifyIn = in
	return &usecase.VerifyOTPOutput{
		Admin:                       entity.Admin{ID: 1, Email: "root@blipzo.test"},
		AccessToken:                 "access-token",
		AccessTokenExpiresInSeconds: 900,
	}, nil
}

func (f *fakeUC) ResendOTP(context.Context, usecase.ResendOTPInput) (*entity.ChallengeSnapshot, error) {
	return &entity.ChallengeSnapshot{}, nil
}

func (f *fakeUC) CancelOTP(context.Context, usecase.CancelOTPInput) error { return nil }

func (f *fakeUC) Session(context.Context, usecase.SessionInput) (*usecase.SessionOutput, error) {
	return &usecase.SessionOutput{}, nil
}

func (f *fakeUC) Logout(_ context.Context, in usecase.LogoutInput) error {
	f.logoutIn = in
	return nil
}

func newEndpoint(f *fakeUC) *HTTPEndpoint {
	return &HTTPEndpoint{uc: f, cfg: HTTPConfig{
		Cookie:         router.CookieOptions{Path: "/", Secure: true, SameSite: http.SameSiteLaxMode},
		OTPTTL:         5 * time.Minute,
		AccessTokenTTL: 15 * time.Minute,
	}}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHTTPEndpoint_Login(t *testing.T) {
	// Arrange
	f := &fakeUC{}
	h := newEndpoint(f)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/login",
		strings.NewReader(`{"email":"root@blipzo.test","password":"secret"}`))
	req.Header.Set("User-Agent", "test-agent")

	// Act
	resp, err := h.Login(&router.Request{Request: req})

	// Assert
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	out := resp.(OTPResponse)
	if !out.OTPRequired || out.OTPStatus.ChallengeID != "7" {
		t.Fatalf("response = %+v", out)
	}
	if f.loginIn.Meta.UserAgent != "test-agent" {
		t.Fatalf("meta = %+v", f.loginIn.Meta)
	}
	ck := cookieByName(out.Cookies(), CookieOTPChallenge)
	if ck == nil || ck.Value != "challenge-token" || ck.MaxAge != 360 || !ck.HttpOnly {
		t.Fatalf("challenge cookie = %+v", ck)
	}
}

func TestHTTPEndpoint_VerifyOTP(t *testing.T) {
	// Arrange
	f := &fakeUC{}
	h := newEndpoint(f)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/otp/verify", strings.NewReader(`{"otp":"123456"}`))
	req.AddCookie(&http.Cookie{Name: CookieOTPChallenge, Value: "challenge-token"})

	// Act
	resp, err := h.VerifyOTP(&router.Request{Request: req})

	// Assert
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}
	if f.verifyIn.ChallengeToken != "challenge-token" || f.verifyIn.Code != "123456" {
		t.Fatalf("input = %+v", f.verifyIn)
	}
	out := resp.(SessionResponse)
	if out.Admin.ID != "1" || out.Admin.Roles[0] != entity.RoleSuperAdmin {
		t.Fatalf("admin = %+v", out.Admin)
	}
	access := cookieByName(out.Cookies(), CookieAccessToken)
	if access == nil || access.Value != "access-token" || access.MaxAge != 900 {
		t.Fatalf("access cookie = %+v", access)
	}
	if cleared := cookieByName(out.Cookies(), CookieOTPChallenge); cleared == nil || cleared.MaxAge != -1 {
		t.Fatalf("challenge cookie = %+v", cleared)
	}
}

func TestHTTPEndpoint_Logout(t *testing.T) {
	// Arrange
	f := &fakeUC{}
	h := newEndpoint(f)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	// Act
	resp, err := h.Logout(&router.Request{Request: req})

	// Assert
	if err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if f.logoutIn.AccessToken != "header-token" {
		t.Fatalf("access token = %q", f.logoutIn.AccessToken)
	}
	out := resp.(ClearedResponse)
	if len(out.Cookies()) != 2 || out.Message() != "Logged out." {
		t.Fatalf("response = %+v", out)
	}
}
