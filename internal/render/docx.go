package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dshills/leasedraft/internal/document"
)

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type docxRenderer struct{}

func (r *docxRenderer) MimeType() string  { return docxMimeType }
func (r *docxRenderer) Extension() string { return ".docx" }

// Render lays the lease out as title, parties and economics summaries,
// numbered clauses in document order, then the optional signature and
// disclaimer sections.
func (r *docxRenderer) Render(lease *document.Lease, opts Options) ([]byte, error) {
	if err := lease.Validate(); err != nil {
		return nil, err
	}

	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText("RESIDENTIAL LEASE AGREEMENT").Size("32").Bold()
	if lease.Metadata.Jurisdiction != "" {
		sub := w.AddParagraph().Justification("center")
		sub.AddText("Jurisdiction: " + lease.Metadata.Jurisdiction).Size("20")
	}
	w.AddParagraph()

	heading(w, "PARTIES")
	line(w, fmt.Sprintf("Landlord: %s, %s", lease.Parties.Landlord.Name, lease.Parties.Landlord.Address))
	line(w, "Tenant: "+lease.Parties.Tenant.Name)
	property := "Property: " + lease.Parties.Property.Address
	if lease.Parties.Property.Type != "" {
		property += " (" + lease.Parties.Property.Type + ")"
	}
	line(w, property)
	w.AddParagraph()

	heading(w, "ECONOMIC TERMS")
	line(w, "Term: "+lease.Economics.TermLabel)
	line(w, fmt.Sprintf("Monthly Rent: $%.2f (proration: %s)",
		lease.Economics.Rent.Monthly, lease.Economics.Rent.ProrationMethod))
	if d := lease.Economics.Deposits; d != nil {
		deposits := fmt.Sprintf("Security Deposit: $%.2f", d.Security)
		if d.Pets != nil && *d.Pets > 0 {
			deposits += fmt.Sprintf("; Pet Deposit: $%.2f", *d.Pets)
		}
		line(w, deposits)
	}
	if lease.Economics.LateFees != "" {
		line(w, "Late Fees: "+lease.Economics.LateFees)
	}
	line(w, "Utilities: "+lease.Economics.Utilities)
	w.AddParagraph()

	for i, clause := range lease.Clauses {
		heading(w, fmt.Sprintf("%d. %s", i+1, strings.ToUpper(clause.Title)))
		line(w, clause.Body)
		w.AddParagraph()
	}

	if opts.IncludeSignatures {
		heading(w, "SIGNATURES")
		line(w, "Execution method: "+lease.Signatures.Method)
		w.AddParagraph()
		for _, party := range lease.Signatures.Parties {
			line(w, fmt.Sprintf("%s: %s", party.Role, party.Name))
			date := party.Date
			if date == "" {
				date = "____________________"
			}
			line(w, "Signature: ____________________   Date: "+date)
			w.AddParagraph()
		}
	}

	if opts.IncludeDisclaimer {
		heading(w, "DISCLAIMER")
		p := w.AddParagraph()
		p.AddText(lease.Disclaimer).Size("18").Italic()
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing docx: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(w *docx.Docx, text string) {
	p := w.AddParagraph()
	p.AddText(text).Size("24").Bold()
}

func line(w *docx.Docx, text string) {
	p := w.AddParagraph()
	p.AddText(text).Size("22")
}
