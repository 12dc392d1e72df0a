// Package document defines the lease document model: the structured,
// schema-validated result of clause generation, ready for rendering. The
// model output is untrusted input and gets the same validation rigor as
// the request boundary.
package document

// TokenUsage mirrors the provider-reported token counts.
type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
	Total      int `json:"total"`
}

// Metadata describes how and when the document was generated. It is
// stamped by the generation pipeline, not by the model.
type Metadata struct {
	DocumentID   string      `json:"documentId,omitempty"`
	Jurisdiction string      `json:"jurisdiction"`
	Version      string      `json:"version"`
	GeneratedAt  string      `json:"generatedAt"` // ISO timestamp
	Model        string      `json:"model"`
	TokenUsage   *TokenUsage `json:"tokenUsage,omitempty"`
}

// NamedParty is a party with a mailing address.
type NamedParty struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// TenantParty is the tenant line of the parties block. Joint tenants are
// comma-joined into a single name by the model per the prompt contract.
type TenantParty struct {
	Name string `json:"name"`
}

// PropertyRef identifies the premises.
type PropertyRef struct {
	Address string `json:"address"`
	Type    string `json:"type,omitempty"`
}

// Parties is the who-block of the lease.
type Parties struct {
	Landlord NamedParty  `json:"landlord"`
	Tenant   TenantParty `json:"tenant"`
	Property PropertyRef `json:"property"`
}

// Rent holds the monthly amount and proration method label.
type Rent struct {
	Monthly         float64 `json:"monthly"`
	ProrationMethod string  `json:"prorationMethod"`
}

// Deposits holds the deposit amounts.
type Deposits struct {
	Security float64  `json:"security"`
	Pets     *float64 `json:"pets,omitempty"`
}

// Economics is the money-block of the lease.
type Economics struct {
	TermLabel string    `json:"termLabel"`
	Rent      Rent      `json:"rent"`
	Deposits  *Deposits `json:"deposits,omitempty"`
	LateFees  string    `json:"lateFees,omitempty"`
	Utilities string    `json:"utilities"`
}

// Clause is one drafted section. Order within Lease.Clauses is document
// reading order and must be preserved end to end.
type Clause struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SignatureParty is one signature line.
type SignatureParty struct {
	Role string `json:"role"`
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}

// SignatureBlock describes how the lease is executed.
type SignatureBlock struct {
	Method  string           `json:"method"`
	Parties []SignatureParty `json:"parties"`
}

// Lease is the validated document model. It is owned by the response
// scope: built from model output, rendered, and discarded — never stored.
type Lease struct {
	Metadata   Metadata       `json:"metadata"`
	Parties    Parties        `json:"parties"`
	Economics  Economics      `json:"economics"`
	Clauses    []Clause       `json:"clauses"`
	Signatures SignatureBlock `json:"signatures"`
	Disclaimer string         `json:"disclaimer"`
}
