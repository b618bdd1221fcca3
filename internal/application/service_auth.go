package application

import (
	"context"
	"fmt"

	"github.com/mobivas/vas-platform/internal/domain"
	"github.com/mobivas/vas-platform/internal/ports"
)

// RequestOTP issues a fresh one-time code for the subscriber, replacing any
// outstanding one. Delivery over the carrier channel is out of scope; the
// code is logged so local runs can complete the flow.
func (s *Service) RequestOTP(ctx context.Context, req SendOTPRequest) error {
	msisdn, err := domain.NormalizeMSISDN(req.MSISDN)
	if err != nil {
		return err
	}

	now := s.nowFn()
	if s.otpLimiter != nil && !s.otpLimiter.Allow(msisdn, now) {
		return fmt.Errorf("%w: too many otp requests", domain.ErrRateLimited)
	}

	code, err := s.codeFn()
	if err != nil {
		return err
	}
	s.codes.Put(domain.OneTimeCode{
		MSISDN:    msisdn,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.OTPTTL),
	})

	// Stand-in for SMS delivery.
	s.logger.InfoContext(ctx, "otp issued",
		"operation", "request_otp",
		"outcome", "success",
		"msisdn", msisdn,
		"otp", code,
	)
	return nil
}

// VerifyOTP consumes the outstanding code and mints a session token. A
// mismatched code stays outstanding so the subscriber may retry.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (VerifyOTPResponse, error) {
	msisdn, err := domain.NormalizeMSISDN(req.MSISDN)
	if err != nil {
		return VerifyOTPResponse{}, err
	}
	if req.OTP == "" {
		return VerifyOTPResponse{}, fmt.Errorf("%w: otp is required", domain.ErrInvalidInput)
	}

	now := s.nowFn()
	if !s.codes.Consume(msisdn, req.OTP, now) {
		s.logger.WarnContext(ctx, "otp verification failed",
			"operation", "verify_otp",
			"outcome", "failure",
			"msisdn", msisdn,
		)
		return VerifyOTPResponse{}, domain.ErrInvalidOTP
	}

	token, err := s.tokenSigner.Sign(ports.AuthClaims{
		MSISDN:    msisdn,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return VerifyOTPResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.InfoContext(ctx, "subscriber authenticated",
		"operation", "verify_otp",
		"outcome", "success",
		"msisdn", msisdn,
		"admin", s.IsAdmin(msisdn),
	)
	return VerifyOTPResponse{Token: token}, nil
}

// ValidateToken checks a bearer token and returns its claims. Every failure
// unwraps to domain.ErrUnauthorized.
func (s *Service) ValidateToken(_ context.Context, raw string) (ports.AuthClaims, error) {
	return s.tokenSigner.ParseAndValidate(raw)
}
