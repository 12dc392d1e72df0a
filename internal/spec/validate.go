package spec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// maxJointTenants bounds the joint-tenant list; beyond this the form is
// almost certainly malformed or abusive.
const maxJointTenants = 10

// FieldError describes one offending field.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ValidationErrors collects every offending field. The input either
// normalizes as a whole or fails as a whole — there is no partial accept.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	paths := make([]string, len(e))
	for i, fe := range e {
		paths[i] = fe.Path
	}
	return fmt.Sprintf("invalid specification: %s", strings.Join(paths, ", "))
}

// Validate parses raw JSON into a normalized Specification. Unknown fields
// are ignored, missing optional fields receive documented defaults, and
// every range or enum violation is reported with its field path.
func Validate(raw []byte) (*Specification, error) {
	var s Specification
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ValidationErrors{{Path: "$", Reason: fmt.Sprintf("malformed JSON: %s", err)}}
	}

	applyDefaults(&s)

	var errs ValidationErrors
	fail := func(path, reason string) {
		errs = append(errs, FieldError{Path: path, Reason: reason})
	}

	if len(s.Jurisdiction.Country) < 2 {
		fail("jurisdiction.country", "required, minimum 2 characters")
	}

	if len(s.Landlord.Name) < 2 {
		fail("landlord.name", "required, minimum 2 characters")
	}
	if len(s.Landlord.Address) < 5 {
		fail("landlord.address", "required, minimum 5 characters")
	}

	validateTenancy(s.Tenant, fail)

	if len(s.Property.Address) < 5 {
		fail("property.address", "required, minimum 5 characters")
	}
	if s.Property.Type != "" && !validPropertyType(s.Property.Type) {
		fail("property.type", "must be one of apartment, house, condo, duplex, townhouse")
	}
	if s.Property.Bedrooms != nil && *s.Property.Bedrooms < 0 {
		fail("property.bedrooms", "must be >= 0")
	}
	if s.Property.Bathrooms != nil && *s.Property.Bathrooms < 0 {
		fail("property.bathrooms", "must be >= 0")
	}

	if s.Term.StartDate == "" {
		fail("term.startDate", "required ISO date (YYYY-MM-DD)")
	} else if !validISODate(s.Term.StartDate) {
		fail("term.startDate", "must be an ISO date (YYYY-MM-DD)")
	}
	if s.Term.EndDate != "" && !validISODate(s.Term.EndDate) {
		fail("term.endDate", "must be an ISO date (YYYY-MM-DD)")
	}
	if s.Term.Months != nil && *s.Term.Months <= 0 {
		fail("term.months", "must be a positive integer")
	}
	switch s.Term.Renewal {
	case RenewalNone, RenewalAuto, RenewalMutual:
	default:
		fail("term.renewal", "must be one of none, auto, mutual")
	}

	if !(s.Financials.MonthlyRent > 0) {
		fail("financials.monthlyRent", "must be > 0")
	}
	if s.Financials.SecurityDeposit < 0 {
		fail("financials.securityDeposit", "must be >= 0")
	}
	if lf := s.Financials.LateFee; lf != nil {
		switch lf.Type {
		case LateFeeFlat, LateFeePercent:
		default:
			fail("financials.lateFee.type", "must be flat or percent")
		}
		if lf.Value < 0 {
			fail("financials.lateFee.value", "must be >= 0")
		}
		if lf.GraceDays < 0 {
			fail("financials.lateFee.graceDays", "must be >= 0")
		}
	}
	switch s.Financials.ProrationMethod {
	case ProrationActualDays, Proration30DayMonth:
	default:
		fail("financials.prorationMethod", "must be actual_days or 30_day_month")
	}
	for i, u := range s.Financials.UtilitiesIncluded {
		if !validUtilities[u] {
			fail(fmt.Sprintf("financials.utilitiesIncluded[%d]", i),
				"must be one of water, sewer, trash, gas, electric, internet")
		}
	}

	if s.Pets.Fee < 0 {
		fail("pets.fee", "must be >= 0")
	}
	if s.Pets.Deposit < 0 {
		fail("pets.deposit", "must be >= 0")
	}
	if s.Pets.Rent < 0 {
		fail("pets.rent", "must be >= 0")
	}

	switch s.Rules.Smoking {
	case SmokingProhibited, SmokingDesignated, SmokingAllowed:
	default:
		fail("rules.smoking", "must be one of prohibited, designated, allowed")
	}
	switch s.Rules.Subletting {
	case ConsentProhibited, ConsentWithConsent:
	default:
		fail("rules.subletting", "must be prohibited or with_consent")
	}
	switch s.Rules.Alterations {
	case ConsentProhibited, ConsentWithConsent:
	default:
		fail("rules.alterations", "must be prohibited or with_consent")
	}

	switch s.Notices.Delivery {
	case DeliveryEmail, DeliveryMail, DeliveryBoth:
	default:
		fail("notices.delivery", "must be one of email, mail, both")
	}

	switch s.Signatures.Method {
	case SignatureWet, SignatureESign:
	default:
		fail("signatures.method", "must be wet or e-sign")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &s, nil
}

// applyDefaults fills the documented defaults for absent optional fields.
func applyDefaults(s *Specification) {
	if s.Term.Renewal == "" {
		s.Term.Renewal = RenewalNone
	}
	if s.Financials.ProrationMethod == "" {
		s.Financials.ProrationMethod = ProrationActualDays
	}
	if s.Financials.UtilitiesIncluded == nil {
		s.Financials.UtilitiesIncluded = []string{}
	}
	if s.Financials.LateFee != nil && s.Financials.LateFee.Type == "" {
		s.Financials.LateFee.Type = LateFeeFlat
	}
	if s.Rules.Smoking == "" {
		s.Rules.Smoking = SmokingProhibited
	}
	if s.Rules.Subletting == "" {
		s.Rules.Subletting = ConsentWithConsent
	}
	if s.Rules.Alterations == "" {
		s.Rules.Alterations = ConsentWithConsent
	}
	if s.Notices.Delivery == "" {
		s.Notices.Delivery = DeliveryBoth
	}
	if s.Signatures.Method == "" {
		s.Signatures.Method = SignatureESign
	}
}

func validateTenancy(t Tenancy, fail func(path, reason string)) {
	switch {
	case t.Single != nil:
		if len(t.Single.Name) < 2 {
			fail("tenant.name", "required, minimum 2 characters")
		}
	case t.Joint != nil:
		if len(t.Joint) == 0 {
			fail("tenant", "joint tenant list must not be empty")
			return
		}
		if len(t.Joint) > maxJointTenants {
			fail("tenant", fmt.Sprintf("joint tenant list must not exceed %d entries", maxJointTenants))
		}
		for i, p := range t.Joint {
			if len(p.Name) < 2 {
				fail(fmt.Sprintf("tenant[%d].name", i), "required, minimum 2 characters")
			}
		}
	default:
		fail("tenant", "required: a tenant record or a list of tenant records")
	}
}

func validPropertyType(t string) bool {
	switch t {
	case "apartment", "house", "condo", "duplex", "townhouse":
		return true
	}
	return false
}

func validISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
