package llm

import "context"

// StubProvider returns a canned, schema-conformant lease for offline use:
// local development, cost-free smoke tests, and the CLI's --stub mode. The
// response is deterministic and never touches the network.
type StubProvider struct {
	ModelName string
	// Content overrides the canned document when non-empty.
	Content string
	// Err, when set, is returned instead of a response.
	Err error
}

const stubLeaseJSON = `{
  "parties": {
    "landlord": {"name": "Jane Owner", "address": "100 Main St, Oakland, CA 94607"},
    "tenant": {"name": "Tom Renter"},
    "property": {"address": "200 Elm St Apt 4, Oakland, CA 94607", "type": "apartment"}
  },
  "economics": {
    "termLabel": "12-month fixed term beginning September 1, 2026",
    "rent": {"monthly": 2500, "prorationMethod": "actual_days"},
    "deposits": {"security": 2500, "pets": 0},
    "lateFees": "A late fee of $50 applies to rent received more than 5 days after the due date.",
    "utilities": "Water and trash are included in the rent. Tenant pays all other utilities."
  },
  "clauses": [
    {"title": "Parties", "body": "This Residential Lease Agreement is entered into between Jane Owner (Landlord) and Tom Renter (Tenant)."},
    {"title": "Premises", "body": "Landlord leases to Tenant the residential property located at 200 Elm St Apt 4, Oakland, CA 94607 for use as a private residence only."},
    {"title": "Term", "body": "The lease term begins on September 1, 2026 and continues for twelve months, ending on August 31, 2027, unless renewed or terminated as provided in this agreement."},
    {"title": "Rent", "body": "Tenant shall pay monthly rent of $2,500, due on the first day of each month. Partial months are prorated by actual days in the month."},
    {"title": "Security Deposit", "body": "Tenant shall pay a security deposit of $2,500, to be held and returned as required by applicable law."},
    {"title": "Governing Law", "body": "This agreement is governed by the laws of the state in which the property is located."}
  ],
  "signatures": {
    "method": "e-sign",
    "parties": [
      {"role": "Landlord", "name": "Jane Owner", "date": ""},
      {"role": "Tenant", "name": "Tom Renter", "date": ""}
    ]
  },
  "disclaimer": "This document is an informational template, not legal advice. Consult a licensed attorney before signing."
}`

func (p *StubProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	content := p.Content
	if content == "" {
		content = stubLeaseJSON
	}
	model := p.ModelName
	if model == "" {
		model = "canned"
	}
	return &Response{
		Content: content,
		Model:   "stub:" + model,
		Usage:   Usage{Prompt: 1200, Completion: 800, Total: 2000},
	}, nil
}
