// Package prompt builds the system and user prompts for lease generation.
// Building is a pure function of the specification and the resolved clause
// set: the same inputs always yield byte-identical prompts. Timestamps are
// injected downstream by the pipeline, never here.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/leasedraft/internal/clauses"
	"github.com/dshills/leasedraft/internal/spec"
)

// notSpecified is rendered for absent optional fields so the model sees an
// explicit signal instead of silently assuming a value.
const notSpecified = "Not specified"

// defaultWordCeiling caps the drafted output length when no ceiling is
// configured.
const defaultWordCeiling = 3000

const systemPromptBase = `You are a paralegal-grade drafting assistant generating plain-language residential leases, not legal advice.

CRITICAL INSTRUCTIONS:
- Always adapt to jurisdiction; cite no laws verbatim; instead apply known requirements via safe, general wording
- Never invent statute numbers
- Keep it concise, readable at grade 8-10
- Do not include hallucinated requirements
- If the jurisdiction is unknown to you, default to a general U.S. template and label the disclaimer "General (Non-jurisdictional)"
- Merge the provided clause reference with jurisdiction knowledge; you may reword clauses but must not omit a covered topic
- Respect every input choice (pets, smoking, subletting, and so on)
- Populate clauses[] in logical reading order with clear titles
- Return JSON only: no prose, no markdown fences, no explanation
- The JSON must match the provided structure exactly`

const schemaExample = `{
  "parties": {
    "landlord": {"name": "string", "address": "string"},
    "tenant": {"name": "string"},
    "property": {"address": "string", "type": "string"}
  },
  "economics": {
    "termLabel": "string",
    "rent": {"monthly": number, "prorationMethod": "string"},
    "deposits": {"security": number, "pets": number},
    "lateFees": "string",
    "utilities": "string"
  },
  "clauses": [
    {"title": "string", "body": "string"}
  ],
  "signatures": {
    "method": "string",
    "parties": [{"role": "string", "name": "string", "date": "string"}]
  },
  "disclaimer": "string"
}`

// BuildSystemPrompt constructs the fixed drafting-constraint prompt.
// wordCeiling bounds the total drafted length; values <= 0 use the default.
func BuildSystemPrompt(wordCeiling int) string {
	if wordCeiling <= 0 {
		wordCeiling = defaultWordCeiling
	}

	var sb strings.Builder
	sb.WriteString(systemPromptBase)
	sb.WriteString(fmt.Sprintf("\n- Keep the full output under ~%d words", wordCeiling))
	sb.WriteString("\n\nREQUIRED JSON STRUCTURE:\n")
	sb.WriteString(schemaExample)
	return sb.String()
}

// BuildUserPrompt serializes every specification field into labeled
// plain-text blocks and appends the resolved clause reference. No input is
// silently dropped: absent optionals render as "Not specified".
func BuildUserPrompt(s *spec.Specification, entries []clauses.Entry) string {
	var sb strings.Builder

	sb.WriteString("Generate a residential lease with the following details:\n\n")

	sb.WriteString("JURISDICTION: ")
	sb.WriteString(s.Jurisdiction.Country)
	if s.Jurisdiction.State != "" {
		sb.WriteString(", " + s.Jurisdiction.State)
	}
	if s.Jurisdiction.City != "" {
		sb.WriteString(", " + s.Jurisdiction.City)
	}
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("LANDLORD: %s (%s)", s.Landlord.Name, s.Landlord.Address))
	if s.Landlord.Email != "" {
		sb.WriteString(" - " + s.Landlord.Email)
	}
	sb.WriteString("\n")

	// Joint tenants render as one comma-joined list in signing order; the
	// surrounding prompt structure is identical for both variants.
	sb.WriteString("TENANT: " + s.Tenant.JointNames())
	if s.Tenant.Single != nil && s.Tenant.Single.Email != "" {
		sb.WriteString(" - " + s.Tenant.Single.Email)
	}
	sb.WriteString("\n")

	sb.WriteString("PROPERTY: " + s.Property.Address)
	if s.Property.Type != "" {
		sb.WriteString(" (" + s.Property.Type + ")")
	}
	if s.Property.Bedrooms != nil && s.Property.Bathrooms != nil {
		sb.WriteString(fmt.Sprintf(" - %d bedroom(s), %s bathroom(s)",
			*s.Property.Bedrooms, money(*s.Property.Bathrooms)))
	}
	sb.WriteString("\n\n")

	sb.WriteString("TERM: " + s.Term.StartDate)
	if s.Term.EndDate != "" {
		sb.WriteString(" to " + s.Term.EndDate)
	} else {
		sb.WriteString(" (end date: " + notSpecified + ")")
	}
	if s.Term.Months != nil {
		sb.WriteString(fmt.Sprintf(" (%d months)", *s.Term.Months))
	}
	sb.WriteString("\nRENEWAL: " + string(s.Term.Renewal) + "\n\n")

	sb.WriteString("FINANCIALS:\n")
	sb.WriteString("- Monthly Rent: $" + money(s.Financials.MonthlyRent) + "\n")
	sb.WriteString("- Security Deposit: $" + money(s.Financials.SecurityDeposit) + "\n")
	sb.WriteString("- Late Fee: " + lateFeeLabel(s.Financials.LateFee) + "\n")
	sb.WriteString("- Proration: " + string(s.Financials.ProrationMethod) + "\n")
	sb.WriteString("- Utilities Included: " + utilitiesLabel(s.Financials.UtilitiesIncluded) + "\n\n")

	sb.WriteString("PETS: " + petsLabel(s.Pets) + "\n\n")

	sb.WriteString("RULES:\n")
	sb.WriteString("- Smoking: " + string(s.Rules.Smoking) + "\n")
	sb.WriteString("- Parking: " + orNotSpecified(s.Rules.Parking) + "\n")
	sb.WriteString("- Subletting: " + string(s.Rules.Subletting) + "\n")
	sb.WriteString("- Alterations: " + string(s.Rules.Alterations) + "\n")
	sb.WriteString("- Insurance Required: " + yesNo(s.Rules.InsuranceRequired) + "\n\n")

	sb.WriteString("NOTICES: " + string(s.Notices.Delivery) + "\n")
	sb.WriteString("SIGNATURES: " + string(s.Signatures.Method) + "\n")

	if len(entries) > 0 {
		sb.WriteString("\nCLAUSE REFERENCE (non-binding drafting guidance; reword freely but cover every topic):\n")
		for _, e := range entries {
			sb.WriteString("- " + e.Title + ": " + e.Body + "\n")
		}
	}

	sb.WriteString("\nGenerate a complete lease document following the required JSON structure.")

	return sb.String()
}

// money formats a dollar amount without trailing zeros, deterministically.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func lateFeeLabel(lf *spec.LateFee) string {
	if lf == nil {
		return "None"
	}
	var amount string
	if lf.Type == spec.LateFeePercent {
		amount = money(lf.Value) + "%"
	} else {
		amount = "$" + money(lf.Value)
	}
	return fmt.Sprintf("%s after %d days", amount, lf.GraceDays)
}

func utilitiesLabel(utilities []string) string {
	if len(utilities) == 0 {
		return "None"
	}
	return strings.Join(utilities, ", ")
}

func petsLabel(p spec.Pets) string {
	if !p.Allowed {
		return "Not allowed"
	}
	var sb strings.Builder
	sb.WriteString("Allowed")
	if p.Fee > 0 {
		sb.WriteString(" - Fee: $" + money(p.Fee))
	}
	if p.Deposit > 0 {
		sb.WriteString(", Deposit: $" + money(p.Deposit))
	}
	if p.Rent > 0 {
		sb.WriteString(", Monthly: $" + money(p.Rent))
	}
	if p.Restrictions != "" {
		sb.WriteString(" - " + p.Restrictions)
	} else {
		sb.WriteString(" - Restrictions: " + notSpecified)
	}
	return sb.String()
}
