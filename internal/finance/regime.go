package finance

import (
	"encoding/json"
	"fmt"
)

// VATRegime selects how Dutch VAT applies to a purchase or sale.
// The wire tokens match what the forms and the database store.
type VATRegime string

const (
	// RegimeStandard charges 21% VAT over the net price.
	RegimeStandard VATRegime = "21%"
	// RegimeMargin charges VAT only over the dealer margin (margeregeling,
	// used goods bought without deductible input VAT).
	RegimeMargin VATRegime = "marge"
	// RegimeExempt charges no VAT at all (private or export sale).
	RegimeExempt VATRegime = "geen_btw"
)

// ParseVATRegime validates a wire token. Unknown tokens are rejected rather
// than falling back to the standard rate.
func ParseVATRegime(s string) (VATRegime, error) {
	switch VATRegime(s) {
	case RegimeStandard, RegimeMargin, RegimeExempt:
		return VATRegime(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegime, s)
}

// Valid reports whether the regime is one of the three known tokens.
func (r VATRegime) Valid() bool {
	_, err := ParseVATRegime(string(r))
	return err == nil
}

func (r VATRegime) String() string {
	return string(r)
}

// UnmarshalJSON rejects unknown regime tokens at the API boundary.
func (r *VATRegime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVATRegime(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
