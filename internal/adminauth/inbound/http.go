package inbound

import (
	"context"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
)

// Cookie names carrying admin credentials.
const (
	CookieAccessToken  = "adminAccessToken"
	CookieOTPChallenge = "adminOtpChallenge"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	OTPStatus(ctx context.Context, in usecase.OTPStatusInput) (*entity.ChallengeSnapshot, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*entity.ChallengeSnapshot, error)
	CancelOTP(ctx context.Context, in usecase.CancelOTPInput) error
	Session(ctx context.Context, in usecase.SessionInput) (*usecase.SessionOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
}

type HTTPConfig struct {
	Cookie         router.CookieOptions
	OTPTTL         time.Duration
	AccessTokenTTL time.Duration
	RateLimit      router.RateLimitConfig
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cfg HTTPConfig) {
	end := &HTTPEndpoint{uc: uc, cfg: cfg}
	limit := router.RateLimit(cfg.RateLimit)

	r.POST("/api/v1/admin/auth/login", end.Login, limit)
	r.GET("/api/v1/admin/auth/otp", end.OTPStatus)
	r.POST("/api/v1/admin/auth/otp/verify", end.VerifyOTP, limit)
	r.POST("/api/v1/admin/auth/otp/resend", end.ResendOTP, limit)
	r.POST("/api/v1/admin/auth/otp/cancel", end.CancelOTP)
	r.GET("/api/v1/admin/auth/session", end.Session)
	r.POST("/api/v1/admin/auth/logout", end.Logout)
}
