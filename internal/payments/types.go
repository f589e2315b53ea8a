package payments

// PaymentRecord is the gateway's authoritative view of a payment. Amount is
// in minor currency units (paise) exactly as the gateway reports it; it is
// never derived from client input.
type PaymentRecord struct {
	Ref         string
	AmountPaise int64
	Currency    string
	Status      string
	Method      string
}

// Captured reports whether the gateway considers the money secured.
// Both captured and authorized payments are acceptable for admission.
func (p PaymentRecord) Captured() bool {
	return p.Status == "captured" || p.Status == "authorized"
}
