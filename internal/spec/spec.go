// Package spec defines the canonical lease specification: the normalized,
// validated form of everything the request supplies about a tenancy.
package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Renewal describes what happens when the lease term ends.
type Renewal string

const (
	RenewalNone   Renewal = "none"
	RenewalAuto   Renewal = "auto"
	RenewalMutual Renewal = "mutual"
)

// LateFeeType distinguishes flat-dollar late fees from percent-of-rent fees.
type LateFeeType string

const (
	LateFeeFlat    LateFeeType = "flat"
	LateFeePercent LateFeeType = "percent"
)

// ProrationMethod selects how partial-month rent is computed.
type ProrationMethod string

const (
	ProrationActualDays ProrationMethod = "actual_days"
	Proration30DayMonth ProrationMethod = "30_day_month"
)

// SmokingPolicy values.
type SmokingPolicy string

const (
	SmokingProhibited SmokingPolicy = "prohibited"
	SmokingDesignated SmokingPolicy = "designated"
	SmokingAllowed    SmokingPolicy = "allowed"
)

// ConsentPolicy is shared by subletting and alterations rules.
type ConsentPolicy string

const (
	ConsentProhibited  ConsentPolicy = "prohibited"
	ConsentWithConsent ConsentPolicy = "with_consent"
)

// NoticeDelivery values.
type NoticeDelivery string

const (
	DeliveryEmail NoticeDelivery = "email"
	DeliveryMail  NoticeDelivery = "mail"
	DeliveryBoth  NoticeDelivery = "both"
)

// SignatureMethod values.
type SignatureMethod string

const (
	SignatureWet   SignatureMethod = "wet"
	SignatureESign SignatureMethod = "e-sign"
)

// Utility names accepted in financials.utilitiesIncluded.
var validUtilities = map[string]bool{
	"water": true, "sewer": true, "trash": true,
	"gas": true, "electric": true, "internet": true,
}

// Jurisdiction drives clause-library selection. Country is required.
type Jurisdiction struct {
	Country string `json:"country"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
}

// Code returns the clause-library jurisdiction code, e.g. "US-CA".
func (j Jurisdiction) Code() string {
	if j.State == "" {
		return j.Country
	}
	return j.Country + "-" + j.State
}

// Landlord identifies the lessor.
type Landlord struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
}

// Party is a single tenant record.
type Party struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Tenancy is a tagged union: exactly one of Single or Joint is set.
// The wire form is untagged — a JSON object means a single tenant, a JSON
// array means joint tenants in signing order.
type Tenancy struct {
	Single *Party
	Joint  []Party
}

// Names returns every tenant name in order.
func (t Tenancy) Names() []string {
	if t.Single != nil {
		return []string{t.Single.Name}
	}
	names := make([]string, 0, len(t.Joint))
	for _, p := range t.Joint {
		names = append(names, p.Name)
	}
	return names
}

// JointNames returns all tenant names comma-joined in order.
func (t Tenancy) JointNames() string {
	return strings.Join(t.Names(), ", ")
}

// Parties returns the tenant records in order regardless of variant.
func (t Tenancy) Parties() []Party {
	if t.Single != nil {
		return []Party{*t.Single}
	}
	return t.Joint
}

// UnmarshalJSON discriminates the union by shape: object vs array.
func (t *Tenancy) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("tenant: empty value")
	}
	switch trimmed[0] {
	case '{':
		var p Party
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return fmt.Errorf("tenant: %w", err)
		}
		t.Single = &p
		t.Joint = nil
		return nil
	case '[':
		var ps []Party
		if err := json.Unmarshal(trimmed, &ps); err != nil {
			return fmt.Errorf("tenant: %w", err)
		}
		t.Single = nil
		t.Joint = ps
		return nil
	case 'n': // null
		return nil
	default:
		return fmt.Errorf("tenant: expected object or array")
	}
}

// MarshalJSON writes the wire form matching the variant.
func (t Tenancy) MarshalJSON() ([]byte, error) {
	if t.Single != nil {
		return json.Marshal(t.Single)
	}
	return json.Marshal(t.Joint)
}

// Property describes the leased premises.
type Property struct {
	Address        string   `json:"address"`
	Type           string   `json:"type,omitempty"`
	IncludeBedBath bool     `json:"includeBedBath,omitempty"`
	Bedrooms       *int     `json:"bedrooms,omitempty"`
	Bathrooms      *float64 `json:"bathrooms,omitempty"`
	ZipCode        string   `json:"zipCode,omitempty"`
}

// Term describes the lease duration.
type Term struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate,omitempty"`
	Months    *int    `json:"months,omitempty"`
	Renewal   Renewal `json:"renewal,omitempty"`
}

// LateFee is an optional late-payment charge.
type LateFee struct {
	Type      LateFeeType `json:"type"`
	Value     float64     `json:"value"`
	GraceDays int         `json:"graceDays"`
}

// Financials holds all money terms. MonthlyRent is the only strictly
// positive field; deposits and fees default to zero.
type Financials struct {
	MonthlyRent       float64         `json:"monthlyRent"`
	SecurityDeposit   float64         `json:"securityDeposit"`
	LateFee           *LateFee        `json:"lateFee,omitempty"`
	ProrationMethod   ProrationMethod `json:"prorationMethod,omitempty"`
	UtilitiesIncluded []string        `json:"utilitiesIncluded"`
}

// Pets holds the pet policy.
type Pets struct {
	Allowed      bool    `json:"allowed"`
	Fee          float64 `json:"fee"`
	Deposit      float64 `json:"deposit"`
	Rent         float64 `json:"rent"`
	Restrictions string  `json:"restrictions,omitempty"`
}

// Rules holds household policy choices.
type Rules struct {
	Smoking           SmokingPolicy `json:"smoking,omitempty"`
	Parking           string        `json:"parking,omitempty"`
	Subletting        ConsentPolicy `json:"subletting,omitempty"`
	Alterations       ConsentPolicy `json:"alterations,omitempty"`
	InsuranceRequired bool          `json:"insuranceRequired"`
}

// Notices holds the notice-delivery choice.
type Notices struct {
	Delivery NoticeDelivery `json:"delivery,omitempty"`
}

// Signatures holds the execution method choice.
type Signatures struct {
	Method SignatureMethod `json:"method,omitempty"`
}

// Specification is the normalized lease request. It is owned by the request
// scope: built from validated form input and discarded when the request ends.
type Specification struct {
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Landlord     Landlord     `json:"landlord"`
	Tenant       Tenancy      `json:"tenant"`
	Property     Property     `json:"property"`
	Term         Term         `json:"term"`
	Financials   Financials   `json:"financials"`
	Pets         Pets         `json:"pets"`
	Rules        Rules        `json:"rules"`
	Notices      Notices      `json:"notices"`
	Signatures   Signatures   `json:"signatures"`
	CaptchaToken string       `json:"captchaToken,omitempty"`
}
