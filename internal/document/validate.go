package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// MalformedError reports model output that is not JSON at all. The raw
// text is carried for diagnostics, never for display to end users.
type MalformedError struct {
	Raw string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %s", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// SchemaError reports JSON that parsed but does not conform to the lease
// document schema. Every offending field path is collected so callers can
// show one actionable message instead of the first failure.
type SchemaError struct {
	Paths []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("model output failed schema validation: missing or invalid fields: %s",
		strings.Join(e.Paths, ", "))
}

// wire mirrors the document schema with pointer fields so that absent and
// present-but-zero values can be told apart during validation.
type wireLease struct {
	Metadata   *wireMetadata   `json:"metadata"`
	Parties    *wireParties    `json:"parties"`
	Economics  *wireEconomics  `json:"economics"`
	Clauses    *[]wireClause   `json:"clauses"`
	Signatures *wireSignatures `json:"signatures"`
	Disclaimer *string         `json:"disclaimer"`
}

type wireMetadata struct {
	Jurisdiction *string     `json:"jurisdiction"`
	Version      *string     `json:"version"`
	GeneratedAt  *string     `json:"generatedAt"`
	Model        *string     `json:"model"`
	TokenUsage   *TokenUsage `json:"tokenUsage"`
}

type wireParties struct {
	Landlord *struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
	} `json:"landlord"`
	Tenant *struct {
		Name *string `json:"name"`
	} `json:"tenant"`
	Property *struct {
		Address *string `json:"address"`
		Type    *string `json:"type"`
	} `json:"property"`
}

type wireEconomics struct {
	TermLabel *string `json:"termLabel"`
	Rent      *struct {
		Monthly         *float64 `json:"monthly"`
		ProrationMethod *string  `json:"prorationMethod"`
	} `json:"rent"`
	Deposits *struct {
		Security *float64 `json:"security"`
		Pets     *float64 `json:"pets"`
	} `json:"deposits"`
	LateFees  *string `json:"lateFees"`
	Utilities *string `json:"utilities"`
}

type wireClause struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type wireSignatures struct {
	Method  *string `json:"method"`
	Parties *[]struct {
		Role *string `json:"role"`
		Name *string `json:"name"`
		Date *string `json:"date"`
	} `json:"parties"`
}

// Parse validates raw model output against the lease document schema.
// Markdown fences are stripped first — models wrap JSON in them despite
// instructions. Failures are typed: *MalformedError for non-JSON,
// *SchemaError (with every offending path) for non-conforming JSON.
// No repair beyond fence stripping is attempted: a numeric string is not
// a number, and missing content is never guessed in a legal-adjacent
// document.
func Parse(raw string) (*Lease, error) {
	cleaned := stripFences(raw)

	var w wireLease
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			path := typeErr.Field
			if path == "" {
				path = "$"
			}
			return nil, &SchemaError{Paths: []string{path}}
		}
		return nil, &MalformedError{Raw: raw, Err: err}
	}

	v := &schemaCheck{}
	lease := v.build(&w)
	if len(v.paths) > 0 {
		return nil, &SchemaError{Paths: v.paths}
	}
	return lease, nil
}

// stripFences removes leading/trailing markdown code fences
// (```json ... ``` or ``` ... ```).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		if idx := strings.LastIndex(s, "\n```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// schemaCheck accumulates offending field paths while building the
// validated Lease from the wire form.
type schemaCheck struct {
	paths []string
}

func (v *schemaCheck) missing(path string) {
	v.paths = append(v.paths, path)
}

func (v *schemaCheck) str(p *string, path string) string {
	if p == nil || *p == "" {
		v.missing(path)
		return ""
	}
	return *p
}

func (v *schemaCheck) optStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (v *schemaCheck) num(p *float64, path string) float64 {
	if p == nil {
		v.missing(path)
		return 0
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		v.missing(path)
		return 0
	}
	return *p
}

func (v *schemaCheck) build(w *wireLease) *Lease {
	l := &Lease{}

	if w.Parties == nil {
		v.missing("parties")
	} else {
		if w.Parties.Landlord == nil {
			v.missing("parties.landlord")
		} else {
			l.Parties.Landlord.Name = v.str(w.Parties.Landlord.Name, "parties.landlord.name")
			l.Parties.Landlord.Address = v.str(w.Parties.Landlord.Address, "parties.landlord.address")
		}
		if w.Parties.Tenant == nil {
			v.missing("parties.tenant")
		} else {
			l.Parties.Tenant.Name = v.str(w.Parties.Tenant.Name, "parties.tenant.name")
		}
		if w.Parties.Property == nil {
			v.missing("parties.property")
		} else {
			l.Parties.Property.Address = v.str(w.Parties.Property.Address, "parties.property.address")
			l.Parties.Property.Type = v.optStr(w.Parties.Property.Type)
		}
	}

	if w.Economics == nil {
		v.missing("economics")
	} else {
		l.Economics.TermLabel = v.str(w.Economics.TermLabel, "economics.termLabel")
		if w.Economics.Rent == nil {
			v.missing("economics.rent")
		} else {
			l.Economics.Rent.Monthly = v.num(w.Economics.Rent.Monthly, "economics.rent.monthly")
			l.Economics.Rent.ProrationMethod = v.str(w.Economics.Rent.ProrationMethod, "economics.rent.prorationMethod")
		}
		if w.Economics.Deposits != nil {
			d := &Deposits{}
			d.Security = v.num(w.Economics.Deposits.Security, "economics.deposits.security")
			if w.Economics.Deposits.Pets != nil {
				pets := v.num(w.Economics.Deposits.Pets, "economics.deposits.pets")
				d.Pets = &pets
			}
			l.Economics.Deposits = d
		}
		l.Economics.LateFees = v.optStr(w.Economics.LateFees)
		l.Economics.Utilities = v.str(w.Economics.Utilities, "economics.utilities")
	}

	if w.Clauses == nil {
		v.missing("clauses")
	} else if len(*w.Clauses) == 0 {
		v.missing("clauses")
	} else {
		l.Clauses = make([]Clause, 0, len(*w.Clauses))
		for i, c := range *w.Clauses {
			clause := Clause{
				Title: v.str(c.Title, fmt.Sprintf("clauses[%d].title", i)),
				Body:  v.str(c.Body, fmt.Sprintf("clauses[%d].body", i)),
			}
			l.Clauses = append(l.Clauses, clause)
		}
	}

	if w.Signatures == nil {
		v.missing("signatures")
	} else {
		l.Signatures.Method = v.str(w.Signatures.Method, "signatures.method")
		if w.Signatures.Parties == nil {
			v.missing("signatures.parties")
		} else {
			for i, p := range *w.Signatures.Parties {
				l.Signatures.Parties = append(l.Signatures.Parties, SignatureParty{
					Role: v.str(p.Role, fmt.Sprintf("signatures.parties[%d].role", i)),
					Name: v.str(p.Name, fmt.Sprintf("signatures.parties[%d].name", i)),
					Date: v.optStr(p.Date),
				})
			}
		}
	}

	l.Disclaimer = v.str(w.Disclaimer, "disclaimer")

	// Metadata is stamped by the pipeline; when the model echoes it back
	// anyway, keep whatever conforms and let the pipeline overwrite.
	if w.Metadata != nil {
		l.Metadata.Jurisdiction = v.optStr(w.Metadata.Jurisdiction)
		l.Metadata.Version = v.optStr(w.Metadata.Version)
		l.Metadata.GeneratedAt = v.optStr(w.Metadata.GeneratedAt)
		l.Metadata.Model = v.optStr(w.Metadata.Model)
		l.Metadata.TokenUsage = w.Metadata.TokenUsage
	}

	return l
}

// Validate checks a fully assembled Lease (metadata stamped) before it is
// handed to the renderer. This is the round-trip gate: the document must
// conform without loss before rendering is attempted.
func (l *Lease) Validate() error {
	var paths []string
	if l.Metadata.Jurisdiction == "" {
		paths = append(paths, "metadata.jurisdiction")
	}
	if l.Metadata.Version == "" {
		paths = append(paths, "metadata.version")
	}
	if l.Metadata.GeneratedAt == "" {
		paths = append(paths, "metadata.generatedAt")
	}
	if l.Metadata.Model == "" {
		paths = append(paths, "metadata.model")
	}
	if len(l.Clauses) == 0 {
		paths = append(paths, "clauses")
	}
	if l.Disclaimer == "" {
		paths = append(paths, "disclaimer")
	}
	if len(paths) > 0 {
		return &SchemaError{Paths: paths}
	}
	return nil
}
