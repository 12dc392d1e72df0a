package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/leasedraft/internal/budget"
	"github.com/dshills/leasedraft/internal/captcha"
	"github.com/dshills/leasedraft/internal/document"
	"github.com/dshills/leasedraft/internal/generate"
	"github.com/dshills/leasedraft/internal/leads"
	"github.com/dshills/leasedraft/internal/redact"
	"github.com/dshills/leasedraft/internal/render"
	"github.com/dshills/leasedraft/internal/spec"
)

// maxRequestBytes bounds request bodies. Specifications are small; a
// megabyte is generous.
const maxRequestBytes = 1 << 20

type apiResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, errMsg, message string) {
	writeJSON(w, status, apiResponse{Success: false, Error: errMsg, Message: message})
}

// leaseEnvelope carries the transport-only fields that ride alongside
// the specification in the request body.
type leaseEnvelope struct {
	Format string `json:"format"`
}

func (s *Server) handleLease(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		res := s.limiter.Check(clientKey(r))
		w.Header().Set("X-Rate-Limit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-Rate-Limit-Reset", strconv.FormatInt(res.Reset.UnixMilli(), 10))
		if !res.Allowed {
			wait := int(time.Until(res.Reset).Seconds()) + 1
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded",
				fmt.Sprintf("Too many requests. Try again in %d seconds.", wait))
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input data", "Could not read request body.")
		return
	}

	var env leaseEnvelope
	json.Unmarshal(body, &env) // transport fields are optional; spec validation reports real errors

	input, err := spec.Validate(body)
	if err != nil {
		var verrs spec.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, apiResponse{
				Success: false,
				Error:   "Invalid input data",
				Details: verrs,
			})
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid input data", err.Error())
		return
	}

	if s.verifier != nil && s.verifier.Required() {
		if err := s.verifier.Verify(r.Context(), input.CaptchaToken); err != nil {
			var cerr *captcha.Error
			if errors.As(err, &cerr) {
				writeError(w, http.StatusBadRequest, "Captcha verification failed", cerr.Reason)
				return
			}
			writeError(w, http.StatusBadRequest, "Captcha verification failed", "")
			return
		}
	}

	renderer, err := render.NewRenderer(env.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input data", err.Error())
		return
	}

	lease, _, err := s.generator.Generate(r.Context(), input)
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	fileBytes, err := renderer.Render(lease, render.DefaultOptions())
	if err != nil {
		s.log.Error("document rendering failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error",
			"Failed to render the lease document. Please try again.")
		return
	}

	filename := fmt.Sprintf("lease-%d%s", s.now().UnixMilli(), renderer.Extension())
	if lease.Metadata.DocumentID != "" {
		w.Header().Set("X-Document-Id", lease.Metadata.DocumentID)
	}
	w.Header().Set("Content-Type", renderer.MimeType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(fileBytes)
}

// writeGenerateError maps pipeline errors onto the API status contract.
func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budget.ErrCeilingExceeded):
		writeError(w, http.StatusServiceUnavailable, "Daily cost limit exceeded",
			"Service temporarily unavailable due to cost limits.")
	case errors.Is(err, generate.ErrEmptyResponse):
		s.log.Error("provider returned no content", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error",
			"The drafting service returned an empty response. Please try again.")
	case errors.Is(err, generate.ErrProviderUnavailable):
		s.log.Error("provider unavailable", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error",
			"The drafting service is unavailable. Please try again.")
	default:
		var schemaErr *document.SchemaError
		var malformed *document.MalformedError
		switch {
		case errors.As(err, &schemaErr):
			writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
				Success: false,
				Error:   "Invalid lease data generated",
				Message: fmt.Sprintf("Missing or invalid fields: %s. Please try again.", strings.Join(schemaErr.Paths, ", ")),
				Details: schemaErr.Paths,
			})
		case errors.As(err, &malformed):
			s.log.Error("model output was not JSON", zap.String("raw", redact.Redact(malformed.Raw)))
			writeError(w, http.StatusUnprocessableEntity, "Invalid lease data generated",
				"The drafted document could not be parsed. Please try again.")
		default:
			s.log.Error("lease generation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error",
				"An unexpected error occurred. Please try again.")
		}
	}
}

type leadRequest struct {
	Email   string `json:"email"`
	Consent bool   `json:"consent"`
	Context string `json:"context"`
}

func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		// Lead capture shares the limiter but uses its own bucket so a
		// burned lease allowance does not block signups.
		res := s.limiter.Check("lead:" + clientKey(r))
		if !res.Allowed {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded",
				"Too many requests. Please try again later.")
			return
		}
	}

	var req leadRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input data", "Request body must be JSON.")
		return
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid input data", "Invalid email address.")
			return
		}
	}

	stored, err := s.leadStore.Capture(leads.Lead{
		Email:     req.Email,
		Consent:   req.Consent,
		Context:   req.Context,
		IP:        clientKey(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, leads.ErrConsentRequired) {
			writeError(w, http.StatusBadRequest, "Consent required",
				"Please provide consent to store your email address.")
			return
		}
		s.log.Error("lead capture failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error",
			"Failed to capture lead. Please try again.")
		return
	}

	if !stored {
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Lead already captured"})
		return
	}
	s.log.Info("lead captured", zap.String("email", redact.Email(req.Email)))
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Lead captured successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Lease Generator API is healthy",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}
