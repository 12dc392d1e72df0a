package captcha

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewVerifier_InvalidProvider(t *testing.T) {
	if _, err := NewVerifier("turnstile", "s", nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestVerify_NoneProviderSkips(t *testing.T) {
	v, err := NewVerifier("none", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Required() {
		t.Error("none provider should not require tokens")
	}
	if err := v.Verify(context.Background(), ""); err != nil {
		t.Errorf("none provider should accept empty token: %v", err)
	}
}

func TestVerify_MissingTokenRejected(t *testing.T) {
	v, _ := NewVerifier("recaptcha", "secret", nil)
	err := v.Verify(context.Background(), "")
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected captcha Error, got %v", err)
	}
}

func TestVerify_MissingSecretSkips(t *testing.T) {
	v, _ := NewVerifier("recaptcha", "", nil)
	if err := v.Verify(context.Background(), "some-token"); err != nil {
		t.Errorf("missing secret should skip verification, got %v", err)
	}
}

func TestVerify_Recaptcha(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostForm.Get("secret"); got != "test-secret" {
			t.Errorf("secret: got %q", got)
		}
		switch r.PostForm.Get("response") {
		case "good-token":
			w.Write([]byte(`{"success": true}`))
		default:
			w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
		}
	}))
	defer srv.Close()

	orig := RecaptchaVerifyURL()
	SetRecaptchaVerifyURL(srv.URL)
	defer SetRecaptchaVerifyURL(orig)

	v, _ := NewVerifier("recaptcha", "test-secret", nil)
	if err := v.Verify(context.Background(), "good-token"); err != nil {
		t.Errorf("good token rejected: %v", err)
	}

	err := v.Verify(context.Background(), "bad-token")
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected captcha Error, got %v", err)
	}
	if !strings.Contains(cerr.Reason, "invalid-input-response") {
		t.Errorf("rejection should carry provider error codes: %q", cerr.Reason)
	}
}

func TestVerify_Hcaptcha(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	orig := HcaptchaVerifyURL()
	SetHcaptchaVerifyURL(srv.URL)
	defer SetHcaptchaVerifyURL(orig)

	v, _ := NewVerifier("hcaptcha", "test-secret", nil)
	if err := v.Verify(context.Background(), "token"); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestVerify_ServiceUnreachable(t *testing.T) {
	orig := RecaptchaVerifyURL()
	SetRecaptchaVerifyURL("http://127.0.0.1:1") // nothing listening
	defer SetRecaptchaVerifyURL(orig)

	v, _ := NewVerifier("recaptcha", "test-secret", nil)
	err := v.Verify(context.Background(), "token")
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected captcha Error for unreachable service, got %v", err)
	}
}
