// Package captcha verifies human-check tokens against the configured
// provider's siteverify endpoint. A misconfigured secret degrades to a
// logged skip rather than locking every visitor out.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Endpoint URLs are vars to allow test overrides via httptest.
var (
	recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	hcaptchaVerifyURL  = "https://hcaptcha.com/siteverify"
)

// SetRecaptchaVerifyURL overrides the reCAPTCHA endpoint. Tests only.
func SetRecaptchaVerifyURL(u string) { recaptchaVerifyURL = u }

// RecaptchaVerifyURL returns the current reCAPTCHA endpoint.
func RecaptchaVerifyURL() string { return recaptchaVerifyURL }

// SetHcaptchaVerifyURL overrides the hCaptcha endpoint. Tests only.
func SetHcaptchaVerifyURL(u string) { hcaptchaVerifyURL = u }

// HcaptchaVerifyURL returns the current hCaptcha endpoint.
func HcaptchaVerifyURL() string { return hcaptchaVerifyURL }

// Error is a verification rejection with a visitor-safe message.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "captcha verification failed: " + e.Reason }

// Verifier checks tokens for one configured provider.
type Verifier struct {
	provider string
	secret   string
	client   *http.Client
	log      *zap.Logger
}

// NewVerifier returns a Verifier for "recaptcha", "hcaptcha", or "none".
func NewVerifier(provider, secret string, log *zap.Logger) (*Verifier, error) {
	provider = strings.ToLower(provider)
	switch provider {
	case "recaptcha", "hcaptcha", "none", "":
	default:
		return nil, fmt.Errorf("invalid captcha provider: %s", provider)
	}
	if provider == "" {
		provider = "none"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{
		provider: provider,
		secret:   secret,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}, nil
}

// Required reports whether visitors must supply a token.
func (v *Verifier) Required() bool { return v.provider != "none" }

// Verify checks one token. A missing token fails immediately; a missing
// secret logs a warning and passes, so a half-configured deployment stays
// reachable.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if v.provider == "none" {
		return nil
	}
	if token == "" {
		return &Error{Reason: "no token provided"}
	}
	if v.secret == "" {
		v.log.Warn("captcha secret not configured, skipping verification",
			zap.String("provider", v.provider))
		return nil
	}

	endpoint := recaptchaVerifyURL
	if v.provider == "hcaptcha" {
		endpoint = hcaptchaVerifyURL
	}
	return v.siteverify(ctx, endpoint, token)
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *Verifier) siteverify(ctx context.Context, endpoint, token string) error {
	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Error("captcha verification request failed", zap.Error(err))
		return &Error{Reason: "verification service unreachable"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{Reason: "reading verification response"}
	}

	var sv siteverifyResponse
	if err := json.Unmarshal(body, &sv); err != nil {
		return &Error{Reason: "malformed verification response"}
	}
	if !sv.Success {
		reason := "unknown error"
		if len(sv.ErrorCodes) > 0 {
			reason = strings.Join(sv.ErrorCodes, ", ")
		}
		return &Error{Reason: reason}
	}
	return nil
}
