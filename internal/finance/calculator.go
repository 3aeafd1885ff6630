// Package finance holds the purchase/sale VAT and profit calculations and the
// invoice document assembler. Everything in here is pure: no I/O, no state,
// the same functions serve live form previews and final persistence so the
// previewed figures always match what gets stored.
package finance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Dutch VAT rate applied to standard-regime prices and to all third-party
// acquisition costs.
var vatRate = decimal.New(21, -2) // 0.21

var (
	// ErrInvalidAmount marks a negative monetary input. Amounts are never
	// silently clamped.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownRegime marks a VAT regime token outside the known set.
	ErrUnknownRegime = errors.New("unknown vat regime")
	// ErrMissingPurchaseReference marks a margin-scheme sale computed without
	// a linked purchase: margin VAT and profit cannot be derived.
	ErrMissingPurchaseReference = errors.New("missing purchase reference")
)

// PurchaseInput carries the raw monetary fields of a vehicle acquisition.
type PurchaseInput struct {
	NetPrice decimal.Decimal
	Regime   VATRegime
	BPM      decimal.Decimal

	TransportCost   decimal.Decimal
	MaintenanceCost decimal.Decimal
	CleaningCost    decimal.Decimal
	GuaranteeCost   decimal.Decimal
	OtherCosts      decimal.Decimal
}

// PurchaseTotals echoes the inputs and adds the derived VAT amount and the
// grand total including VAT.
type PurchaseTotals struct {
	NetPrice decimal.Decimal
	Regime   VATRegime
	BPM      decimal.Decimal

	TransportCost   decimal.Decimal
	MaintenanceCost decimal.Decimal
	CleaningCost    decimal.Decimal
	GuaranteeCost   decimal.Decimal
	OtherCosts      decimal.Decimal

	AdditionalCosts decimal.Decimal
	VATAmount       decimal.Decimal
	TotalInclVAT    decimal.Decimal
}

// SaleInput carries the raw monetary fields of a vehicle sale. Purchase is
// the computed totals of the linked acquisition, nil when the sale has no
// recorded purchase.
type SaleInput struct {
	NetPrice decimal.Decimal
	Regime   VATRegime
	Discount decimal.Decimal
	Purchase *PurchaseTotals
}

// SaleTotals holds the derived sale figures. ProfitExclVAT and ProfitInclVAT
// are nil when no purchase reference was supplied: "no data" is distinct from
// a zero profit.
type SaleTotals struct {
	NetPrice decimal.Decimal
	Regime   VATRegime
	Discount decimal.Decimal

	VATAmount     decimal.Decimal
	GrossPrice    decimal.Decimal
	FinalPrice    decimal.Decimal
	ProfitExclVAT *decimal.Decimal
	ProfitInclVAT *decimal.Decimal
}

// ProfitKnown reports whether the profit figures could be derived.
func (t SaleTotals) ProfitKnown() bool {
	return t.ProfitExclVAT != nil && t.ProfitInclVAT != nil
}

// ComputePurchaseTotals derives the VAT amount and the VAT-inclusive grand
// total for an acquisition.
//
// Price VAT is 21% under the standard regime and zero under marge and
// geen_btw: margin VAT is realised at sale time, over the margin. The five
// itemized costs are invoices from third-party services and therefore always
// carry 21% VAT, whatever the vehicle's own regime. BPM carries no VAT.
func ComputePurchaseTotals(in PurchaseInput) (PurchaseTotals, error) {
	if !in.Regime.Valid() {
		return PurchaseTotals{}, fmt.Errorf("%w: %q", ErrUnknownRegime, in.Regime)
	}
	if err := validateAmounts(map[string]decimal.Decimal{
		"net_price":        in.NetPrice,
		"bpm":              in.BPM,
		"transport_cost":   in.TransportCost,
		"maintenance_cost": in.MaintenanceCost,
		"cleaning_cost":    in.CleaningCost,
		"guarantee_cost":   in.GuaranteeCost,
		"other_costs":      in.OtherCosts,
	}); err != nil {
		return PurchaseTotals{}, err
	}

	priceVAT := decimal.Zero
	if in.Regime == RegimeStandard {
		priceVAT = in.NetPrice.Mul(vatRate)
	}

	additional := in.TransportCost.
		Add(in.MaintenanceCost).
		Add(in.CleaningCost).
		Add(in.GuaranteeCost).
		Add(in.OtherCosts)
	additionalVAT := additional.Mul(vatRate)

	return PurchaseTotals{
		NetPrice:        in.NetPrice,
		Regime:          in.Regime,
		BPM:             in.BPM,
		TransportCost:   in.TransportCost,
		MaintenanceCost: in.MaintenanceCost,
		CleaningCost:    in.CleaningCost,
		GuaranteeCost:   in.GuaranteeCost,
		OtherCosts:      in.OtherCosts,
		AdditionalCosts: additional,
		VATAmount:       round2(priceVAT.Add(additionalVAT)),
		TotalInclVAT:    round2(in.NetPrice.Add(priceVAT).Add(in.BPM).Add(additional).Add(additionalVAT)),
	}, nil
}

// ComputeSaleTotals derives VAT, gross, final price and profit for a sale.
//
// Margin-regime VAT is 21% over (sale price minus purchase net price),
// floored at zero: a loss-making margin sale carries no VAT, never negative
// VAT. Without a purchase reference the margin cannot be computed; VAT stays
// zero, gross equals the net price and both profit fields are left nil.
// Callers that need a hard failure can test ProfitKnown and report
// ErrMissingPurchaseReference themselves.
//
// The final price (gross minus discount) is deliberately not floored: a discount
// exceeding the gross price is a validation concern for the caller.
func ComputeSaleTotals(in SaleInput) (SaleTotals, error) {
	if !in.Regime.Valid() {
		return SaleTotals{}, fmt.Errorf("%w: %q", ErrUnknownRegime, in.Regime)
	}
	if err := validateAmounts(map[string]decimal.Decimal{
		"net_price": in.NetPrice,
		"discount":  in.Discount,
	}); err != nil {
		return SaleTotals{}, err
	}

	vat := decimal.Zero
	switch in.Regime {
	case RegimeStandard:
		vat = in.NetPrice.Mul(vatRate)
	case RegimeMargin:
		if in.Purchase != nil {
			margin := in.NetPrice.Sub(in.Purchase.NetPrice)
			if margin.IsPositive() {
				vat = margin.Mul(vatRate)
			}
		}
	case RegimeExempt:
		// No VAT.
	}

	vat = round2(vat)
	gross := round2(in.NetPrice.Add(vat))
	final := round2(gross.Sub(in.Discount))

	totals := SaleTotals{
		NetPrice:   in.NetPrice,
		Regime:     in.Regime,
		Discount:   in.Discount,
		VATAmount:  vat,
		GrossPrice: gross,
		FinalPrice: final,
	}

	if in.Purchase != nil {
		profitExcl := round2(in.NetPrice.Sub(in.Purchase.NetPrice))
		profitIncl := round2(final.Sub(in.Purchase.TotalInclVAT))
		totals.ProfitExclVAT = &profitExcl
		totals.ProfitInclVAT = &profitIncl
	}

	return totals, nil
}

// round2 rounds half-up to two decimals. Rounding happens only on derived
// outputs, never on intermediate sums.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func validateAmounts(fields map[string]decimal.Decimal) error {
	for name, d := range fields {
		if d.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidAmount, name)
		}
	}
	return nil
}
