package clauses

// baseClauses returns the jurisdiction-neutral library. Order is document
// reading order and is part of the contract.
func baseClauses() []Entry {
	return []Entry{
		{
			Key:   "parties",
			Title: "Parties to Agreement",
			Body:  "This lease agreement is between the Landlord and Tenant as identified above.",
		},
		{
			Key:   "property",
			Title: "Property Description",
			Body:  "The Landlord agrees to rent to the Tenant the property located at the address specified above.",
		},
		{
			Key:   "term",
			Title: "Lease Term",
			Body:  "The lease term shall begin on the start date and continue until the end date, unless terminated earlier in accordance with this agreement.",
		},
		{
			Key:   "rent",
			Title: "Rent Payment",
			Body:  "Tenant agrees to pay rent in the amount specified, due on the first day of each month. Rent is payable at the address specified by Landlord or by other means agreed upon in writing.",
		},
		{
			Key:   "deposits",
			Title: "Security Deposit",
			Body:  "Tenant has deposited with Landlord the sum specified as security for the faithful performance of this lease. This deposit may be applied to damages, unpaid rent, or other charges due under this lease.",
		},
		{
			Key:   "lateFees",
			Title: "Late Fees",
			Body:  "If rent is not received by the due date, Tenant may be subject to late fees as specified in this agreement.",
		},
		{
			Key:   "utilities",
			Title: "Utilities",
			Body:  "Tenant is responsible for all utilities unless otherwise specified in this agreement.",
		},
		{
			Key:   "maintenance",
			Title: "Maintenance and Repairs",
			Body:  "Tenant shall maintain the premises in good condition and promptly report any needed repairs to Landlord. Landlord is responsible for structural repairs and major systems.",
		},
		{
			Key:   "entry",
			Title: "Landlord's Right of Entry",
			Body:  "Landlord may enter the premises with reasonable notice for inspection, repairs, or showing to prospective tenants or buyers.",
		},
		{
			Key:   "habitability",
			Title: "Warranty of Habitability",
			Body:  "Landlord warrants that the premises are habitable and fit for residential use at the commencement of the lease term.",
		},
		{
			Key:   "notices",
			Title: "Notices",
			Body:  "All notices required under this lease shall be in writing and delivered as specified in this agreement.",
		},
		{
			Key:   "default",
			Title: "Default and Termination",
			Body:  "Either party may terminate this lease in accordance with applicable law for material breach of the terms contained herein.",
		},
		{
			Key:   "dispute",
			Title: "Dispute Resolution",
			Body:  "Any disputes arising under this lease shall be resolved through mediation or arbitration as required by applicable law.",
		},
		{
			Key:   "governing",
			Title: "Governing Law",
			Body:  "This lease shall be governed by the laws of the jurisdiction where the property is located.",
		},
		{
			Key:   "signatures",
			Title: "Signatures",
			Body:  "This lease shall be binding upon execution by both parties.",
		},
	}
}
