package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
)

// HTTPEndpoint exposes the admin login, OTP and session handlers.
type HTTPEndpoint struct {
	uc  uc
	cfg HTTPConfig
}

func meta(r *router.Request) usecase.RequestMeta {
	return usecase.RequestMeta{IP: r.ClientIP(), UserAgent: r.UserAgent()}
}

func (h *HTTPEndpoint) challengeCookie(token string) *http.Cookie {
	return h.cfg.Cookie.NewCookie(CookieOTPChallenge, token, h.cfg.OTPTTL+time.Minute)
}

// Login checks admin credentials and starts an OTP challenge.
// @Summary Admin login
// @Description Validates email and password, emails a one-time code and sets the challenge cookie.
// @Tags Admin, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=OTPResponse} "OTP challenge started"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Incorrect email or password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many login attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Meta:     meta(r),
	})
	if err != nil {
		return nil, err
	}

	return OTPResponse{
		OTPRequired: true,
		OTPStatus:   toOTPStatus(resp.Status),
		message:     "Verification code sent to your email.",
		cookies: []*http.Cookie{
			h.challengeCookie(resp.ChallengeToken),
			h.cfg.Cookie.ClearCookie(CookieAccessToken),
		},
	}, nil
}

// OTPStatus reports the pending challenge.
// @Summary OTP challenge status
// @Tags Admin, Authentication
// @Produce json
// @Success 200 {object} router.successResponse{data=OTPResponse} "Challenge status"
// @Failure 401 {object} router.errorResponse "Challenge not found, used or expired"
// @Failure 423 {object} router.errorResponse "Challenge locked"
// @Router /api/v1/admin/auth/otp [get]
func (h *HTTPEndpoint) OTPStatus(r *router.Request) (any, error) {
	snap, err := h.uc.OTPStatus(r.Context(), usecase.OTPStatusInput{
		ChallengeToken: r.GetCookie(CookieOTPChallenge),
	})
	if err != nil {
		return nil, err
	}

	return OTPResponse{OTPRequired: true, OTPStatus: toOTPStatus(*snap)}, nil
}

// VerifyOTP completes the login with the emailed code.
// @Summary Verify OTP
// @Description Checks the code of the challenge cookie. On success sets the access token cookie.
// @Tags Admin, Authentication
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "OTP payload"
// @Success 200 {object} router.successResponse{data=SessionResponse} "Logged in"
// @Failure 400 {object} router.errorResponse "Malformed code"
// @Failure 401 {object} router.errorResponse "Incorrect code, challenge used or expired"
// @Failure 423 {object} router.errorResponse "Attempts exhausted"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/auth/otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		ChallengeToken: r.GetCookie(CookieOTPChallenge),
		Code:           req.OTP,
		Meta:           meta(r),
	})
	if err != nil {
		return nil, err
	}

	return SessionResponse{
		Admin:   toAdmin(resp.Admin),
		Session: Session{AccessTokenExpiresInSeconds: resp.AccessTokenExpiresInSeconds},
		message: "Login successful.",
		cookies: []*http.Cookie{
			h.cfg.Cookie.NewCookie(CookieAccessToken, resp.AccessToken, h.cfg.AccessTokenTTL),
			h.cfg.Cookie.ClearCookie(CookieOTPChallenge),
		},
	}, nil
}

// ResendOTP emails a fresh code.
// @Summary Resend OTP
// @Tags Admin, Authentication
// @Produce json
// @Success 200 {object} router.successResponse{data=OTPResponse} "Code resent"
// @Failure 401 {object} router.errorResponse "Challenge not found, used or expired"
// @Failure 423 {object} router.errorResponse "Challenge locked"
// @Failure 429 {object} router.errorResponse "Resend cooldown active"
// @Router /api/v1/admin/auth/otp/resend [post]
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	token := r.GetCookie(CookieOTPChallenge)

	snap, err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{ChallengeToken: token, Meta: meta(r)})
	if err != nil {
		return nil, err
	}

	return OTPResponse{
		OTPRequired: true,
		OTPStatus:   toOTPStatus(*snap),
		message:     "A new verification code has been sent.",
		cookies:     []*http.Cookie{h.challengeCookie(token)},
	}, nil
}

// CancelOTP abandons the pending challenge.
// @Summary Cancel OTP
// @Tags Admin, Authentication
// @Produce json
// @Success 200 {object} router.successResponse "Challenge cancelled"
// @Router /api/v1/admin/auth/otp/cancel [post]
func (h *HTTPEndpoint) CancelOTP(r *router.Request) (any, error) {
	err := h.uc.CancelOTP(r.Context(), usecase.CancelOTPInput{ChallengeToken: r.GetCookie(CookieOTPChallenge)})
	if err != nil {
		return nil, err
	}

	return ClearedResponse{
		message: "Verification cancelled.",
		cookies: []*http.Cookie{h.cfg.Cookie.ClearCookie(CookieOTPChallenge)},
	}, nil
}

// Session returns the admin behind the access token.
// @Summary Current admin session
// @Tags Admin, Authentication
// @Produce json
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/admin/auth/session [get]
func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	resp, err := h.uc.Session(r.Context(), usecase.SessionInput{AccessToken: accessToken(r)})
	if err != nil {
		return nil, err
	}

	return SessionResponse{
		Admin:   toAdmin(resp.Admin),
		Session: Session{AccessTokenExpiresInSeconds: resp.AccessTokenExpiresInSeconds},
	}, nil
}

// Logout clears the admin cookies.
// @Summary Admin logout
// @Tags Admin, Authentication
// @Produce json
// @Success 200 {object} router.successResponse "Logged out"
// @Router /api/v1/admin/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		AccessToken:    accessToken(r),
		ChallengeToken: r.GetCookie(CookieOTPChallenge),
		Meta:           meta(r),
	}); err != nil {
		return nil, err
	}

	return ClearedResponse{
		message: "Logged out.",
		cookies: []*http.Cookie{
			h.cfg.Cookie.ClearCookie(CookieAccessToken),
			h.cfg.Cookie.ClearCookie(CookieOTPChallenge),
		},
	}, nil
}

func accessToken(r *router.Request) string {
	if v := r.GetCookie(CookieAccessToken); v != "" {
		return v
	}
	return router.BearerToken(r.Request)
}
