package finance

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputePurchaseTotals_StandardRegime(t *testing.T) {
	totals, err := ComputePurchaseTotals(PurchaseInput{
		NetPrice:        dec("20000"),
		Regime:          RegimeStandard,
		BPM:             dec("1500"),
		TransportCost:   dec("200"),
		MaintenanceCost: dec("300"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 20000×0.21 = 4200 price VAT, (200+300)×0.21 = 105 cost VAT.
	if !totals.VATAmount.Equal(dec("4305")) {
		t.Errorf("expected VAT 4305, got %s", totals.VATAmount)
	}
	if !totals.TotalInclVAT.Equal(dec("26305")) {
		t.Errorf("expected total 26305, got %s", totals.TotalInclVAT)
	}
	if !totals.AdditionalCosts.Equal(dec("500")) {
		t.Errorf("expected additional costs 500, got %s", totals.AdditionalCosts)
	}
}

func TestComputePurchaseTotals_CostVATIsRegimeIndependent(t *testing.T) {
	// Third-party cost invoices always carry 21% VAT, whatever the vehicle's
	// own regime.
	for _, regime := range []VATRegime{RegimeMargin, RegimeExempt} {
		totals, err := ComputePurchaseTotals(PurchaseInput{
			NetPrice:      dec("10000"),
			Regime:        regime,
			TransportCost: dec("100"),
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", regime, err)
		}
		if !totals.VATAmount.Equal(dec("21")) {
			t.Errorf("%s: expected VAT 21.00, got %s", regime, totals.VATAmount)
		}
		if !totals.TotalInclVAT.Equal(dec("10121")) {
			t.Errorf("%s: expected total 10121, got %s", regime, totals.TotalInclVAT)
		}
	}
}

func TestComputePurchaseTotals_MargeAndExemptYieldIdenticalPriceVAT(t *testing.T) {
	in := PurchaseInput{NetPrice: dec("15000"), BPM: dec("800")}

	in.Regime = RegimeMargin
	marge, err := ComputePurchaseTotals(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.Regime = RegimeExempt
	exempt, err := ComputePurchaseTotals(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !marge.VATAmount.Equal(exempt.VATAmount) || !marge.VATAmount.IsZero() {
		t.Errorf("expected zero price VAT under both regimes, got marge=%s exempt=%s",
			marge.VATAmount, exempt.VATAmount)
	}
	if !marge.TotalInclVAT.Equal(exempt.TotalInclVAT) {
		t.Errorf("expected identical totals, got marge=%s exempt=%s",
			marge.TotalInclVAT, exempt.TotalInclVAT)
	}
}

func TestComputePurchaseTotals_MonotonicInEveryCost(t *testing.T) {
	base := PurchaseInput{
		NetPrice:        dec("9000"),
		Regime:          RegimeStandard,
		BPM:             dec("400"),
		TransportCost:   dec("50"),
		MaintenanceCost: dec("60"),
		CleaningCost:    dec("70"),
		GuaranteeCost:   dec("80"),
		OtherCosts:      dec("90"),
	}
	baseline, err := ComputePurchaseTotals(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bump := dec("123.45")
	variants := map[string]PurchaseInput{
		"net_price":        {NetPrice: base.NetPrice.Add(bump), Regime: base.Regime, BPM: base.BPM, TransportCost: base.TransportCost, MaintenanceCost: base.MaintenanceCost, CleaningCost: base.CleaningCost, GuaranteeCost: base.GuaranteeCost, OtherCosts: base.OtherCosts},
		"bpm":              {NetPrice: base.NetPrice, Regime: base.Regime, BPM: base.BPM.Add(bump), TransportCost: base.TransportCost, MaintenanceCost: base.MaintenanceCost, CleaningCost: base.CleaningCost, GuaranteeCost: base.GuaranteeCost, OtherCosts: base.OtherCosts},
		"transport_cost":   {NetPrice: base.NetPrice, Regime: base.Regime, BPM: base.BPM, TransportCost: base.TransportCost.Add(bump), MaintenanceCost: base.MaintenanceCost, CleaningCost: base.CleaningCost, GuaranteeCost: base.GuaranteeCost, OtherCosts: base.OtherCosts},
		"maintenance_cost": {NetPrice: base.NetPrice, Regime: base.Regime, BPM: base.BPM, TransportCost: base.TransportCost, MaintenanceCost: base.MaintenanceCost.Add(bump), CleaningCost: base.CleaningCost, GuaranteeCost: base.GuaranteeCost, OtherCosts: base.OtherCosts},
		"cleaning_cost":    {NetPrice: base.NetPrice, Regime: base.Regime, BPM: base.BPM, TransportCost: base.TransportCost, MaintenanceCost: base.MaintenanceCost, CleaningCost: base.CleaningCost.Add(bump), GuaranteeCost: base.GuaranteeCost, OtherCosts: base.OtherCosts},
		"guarantee_cost":   {NetPrice: base.NetPrice, Regime: base.Regime, BPM: base.BPM, TransportCost: base.TransportCost, MaintenanceCost: base.MaintenanceCost, CleaningCost: base.CleaningCost, GuaranteeCost: base.GuaranteeCost.Add(bump), OtherCosts: base.OtherCosts},
		"other_costs":      {NetPrice: base.NetPrice, Regime: base.Regime, BPM: base.BPM, TransportCost: base.TransportCost, MaintenanceCost: base.MaintenanceCost, CleaningCost: base.CleaningCost, GuaranteeCost: base.GuaranteeCost, OtherCosts: base.OtherCosts.Add(bump)},
	}

	for field, in := range variants {
		bumped, err := ComputePurchaseTotals(in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", field, err)
		}
		if bumped.TotalInclVAT.LessThan(baseline.TotalInclVAT) {
			t.Errorf("increasing %s decreased the total: %s -> %s",
				field, baseline.TotalInclVAT, bumped.TotalInclVAT)
		}
	}
}

func TestComputePurchaseTotals_RejectsNegativeAmounts(t *testing.T) {
	_, err := ComputePurchaseTotals(PurchaseInput{
		NetPrice: dec("-1"),
		Regime:   RegimeStandard,
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = ComputePurchaseTotals(PurchaseInput{
		NetPrice:     dec("1000"),
		Regime:       RegimeStandard,
		CleaningCost: dec("-0.01"),
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative cost, got %v", err)
	}
}

func TestComputePurchaseTotals_RejectsUnknownRegime(t *testing.T) {
	_, err := ComputePurchaseTotals(PurchaseInput{
		NetPrice: dec("1000"),
		Regime:   VATRegime("btw_hoog"),
	})
	if !errors.Is(err, ErrUnknownRegime) {
		t.Fatalf("expected ErrUnknownRegime, got %v", err)
	}
}

func TestComputeSaleTotals_StandardRegimeRoundTrip(t *testing.T) {
	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("12345.67"),
		Regime:   RegimeStandard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// gross / 1.21 must land back on the net price within a cent.
	back := totals.GrossPrice.Div(dec("1.21"))
	if back.Sub(totals.NetPrice).Abs().GreaterThan(dec("0.01")) {
		t.Errorf("round trip drifted: gross %s / 1.21 = %s, net %s",
			totals.GrossPrice, back, totals.NetPrice)
	}
}

func TestComputeSaleTotals_MarginRegime(t *testing.T) {
	purchase, err := ComputePurchaseTotals(PurchaseInput{
		NetPrice:        dec("20000"),
		Regime:          RegimeStandard,
		BPM:             dec("1500"),
		TransportCost:   dec("200"),
		MaintenanceCost: dec("300"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("30000"),
		Regime:   RegimeMargin,
		Discount: dec("500"),
		Purchase: &purchase,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// margin 10000 -> VAT 2100, gross 32100, final 31600.
	if !totals.VATAmount.Equal(dec("2100")) {
		t.Errorf("expected VAT 2100, got %s", totals.VATAmount)
	}
	if !totals.GrossPrice.Equal(dec("32100")) {
		t.Errorf("expected gross 32100, got %s", totals.GrossPrice)
	}
	if !totals.FinalPrice.Equal(dec("31600")) {
		t.Errorf("expected final 31600, got %s", totals.FinalPrice)
	}
	if !totals.ProfitKnown() {
		t.Fatal("expected profit to be known with a purchase reference")
	}
	if !totals.ProfitExclVAT.Equal(dec("10000")) {
		t.Errorf("expected profit excl VAT 10000, got %s", totals.ProfitExclVAT)
	}
	if !totals.ProfitInclVAT.Equal(dec("5295")) {
		t.Errorf("expected profit incl VAT 5295, got %s", totals.ProfitInclVAT)
	}
}

func TestComputeSaleTotals_MarginVATNeverNegative(t *testing.T) {
	purchase, err := ComputePurchaseTotals(PurchaseInput{
		NetPrice: dec("9000"),
		Regime:   RegimeMargin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("8000"),
		Regime:   RegimeMargin,
		Purchase: &purchase,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.VATAmount.IsZero() {
		t.Errorf("loss-making margin sale must carry zero VAT, got %s", totals.VATAmount)
	}
	if !totals.GrossPrice.Equal(dec("8000")) {
		t.Errorf("expected gross 8000, got %s", totals.GrossPrice)
	}
	// The loss itself must be surfaced, not hidden.
	if !totals.ProfitKnown() {
		t.Fatal("expected profit to be known")
	}
	if !totals.ProfitExclVAT.Equal(dec("-1000")) {
		t.Errorf("expected profit excl VAT -1000, got %s", totals.ProfitExclVAT)
	}
}

func TestComputeSaleTotals_MarginWithoutPurchaseLeavesProfitAbsent(t *testing.T) {
	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("14000"),
		Regime:   RegimeMargin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if totals.ProfitKnown() {
		t.Fatal("profit must be absent without a purchase reference, not zero")
	}
	if totals.ProfitExclVAT != nil || totals.ProfitInclVAT != nil {
		t.Errorf("expected nil profit fields, got %v / %v", totals.ProfitExclVAT, totals.ProfitInclVAT)
	}
	if !totals.VATAmount.IsZero() {
		t.Errorf("expected zero VAT without margin data, got %s", totals.VATAmount)
	}
	if !totals.GrossPrice.Equal(dec("14000")) {
		t.Errorf("expected gross to equal net, got %s", totals.GrossPrice)
	}
}

func TestComputeSaleTotals_ExemptRegime(t *testing.T) {
	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("7500"),
		Regime:   RegimeExempt,
		Discount: dec("250"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.VATAmount.IsZero() {
		t.Errorf("expected zero VAT, got %s", totals.VATAmount)
	}
	if !totals.GrossPrice.Equal(dec("7500")) {
		t.Errorf("expected gross 7500, got %s", totals.GrossPrice)
	}
	if !totals.FinalPrice.Equal(dec("7250")) {
		t.Errorf("expected final 7250, got %s", totals.FinalPrice)
	}
}

func TestComputeSaleTotals_DiscountMayExceedGross(t *testing.T) {
	// Not clamped here: the caller decides whether a negative final price is
	// a validation failure.
	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("100"),
		Regime:   RegimeExempt,
		Discount: dec("150"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.FinalPrice.Equal(dec("-50")) {
		t.Errorf("expected final -50, got %s", totals.FinalPrice)
	}
}

func TestComputeSaleTotals_RejectsNegativeInputs(t *testing.T) {
	_, err := ComputeSaleTotals(SaleInput{NetPrice: dec("-100"), Regime: RegimeStandard})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = ComputeSaleTotals(SaleInput{NetPrice: dec("100"), Regime: RegimeStandard, Discount: dec("-1")})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative discount, got %v", err)
	}
}

func TestParseVATRegime(t *testing.T) {
	for _, token := range []string{"21%", "marge", "geen_btw"} {
		if _, err := ParseVATRegime(token); err != nil {
			t.Errorf("expected %q to parse, got %v", token, err)
		}
	}

	for _, token := range []string{"", "21", "MARGE", "btw", "geen btw"} {
		if _, err := ParseVATRegime(token); !errors.Is(err, ErrUnknownRegime) {
			t.Errorf("expected %q to be rejected, got %v", token, err)
		}
	}
}

func TestVATRegime_UnmarshalJSONRejectsUnknownTokens(t *testing.T) {
	var r VATRegime
	if err := json.Unmarshal([]byte(`"marge"`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != RegimeMargin {
		t.Errorf("expected marge, got %q", r)
	}

	if err := json.Unmarshal([]byte(`"6%"`), &r); !errors.Is(err, ErrUnknownRegime) {
		t.Errorf("expected ErrUnknownRegime, got %v", err)
	}
}
