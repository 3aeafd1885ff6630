package service

import (
	"errors"
	"testing"

	"github.com/jatochnietverkeerd/dd-sub000/internal/finance"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestParseAmount(t *testing.T) {
	got, err := parseAmount("net_price", "")
	if err != nil {
		t.Fatalf("empty amount: unexpected error %v", err)
	}
	if !got.IsZero() {
		t.Errorf("empty amount = %s, want 0", got)
	}

	got, err = parseAmount("net_price", "1234.56")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec(t, "1234.56")) {
		t.Errorf("parseAmount = %s, want 1234.56", got)
	}

	if _, err := parseAmount("bpm", "niet-een-getal"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestComputePurchaseFromForm(t *testing.T) {
	totals, err := computePurchase(PurchaseAmounts{
		NetPrice:      "20000",
		VATRegime:     "21%",
		BPM:           "1500",
		TransportCost: "200",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := toPurchaseTotalsResponse(totals)
	if resp.VATAmount != "4242.00" {
		t.Errorf("VATAmount = %s, want 4242.00", resp.VATAmount)
	}
	if resp.TotalInclVAT != "25942.00" {
		t.Errorf("TotalInclVAT = %s, want 25942.00", resp.TotalInclVAT)
	}
	if resp.AdditionalCosts != "200.00" {
		t.Errorf("AdditionalCosts = %s, want 200.00", resp.AdditionalCosts)
	}
}

func TestComputePurchaseRejectsUnknownRegime(t *testing.T) {
	_, err := computePurchase(PurchaseAmounts{NetPrice: "1000", VATRegime: "btw-hoog"})
	if !errors.Is(err, finance.ErrUnknownRegime) {
		t.Fatalf("err = %v, want ErrUnknownRegime", err)
	}
}

func TestComputeSaleDefaultsRegimeFromPurchase(t *testing.T) {
	purchase := &model.Purchase{
		NetPrice:     dec(t, "25000"),
		VATRegime:    "marge",
		TotalInclVAT: dec(t, "26000"),
	}

	totals, err := computeSale(SaleAmounts{NetPrice: "30000"}, purchase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if totals.Regime != finance.RegimeMargin {
		t.Errorf("Regime = %s, want marge", totals.Regime)
	}
	if !totals.VATAmount.Equal(dec(t, "1050")) {
		t.Errorf("VATAmount = %s, want 1050", totals.VATAmount)
	}
	if !totals.FinalPrice.Equal(dec(t, "31050")) {
		t.Errorf("FinalPrice = %s, want 31050", totals.FinalPrice)
	}
	if totals.ProfitInclVAT == nil || !totals.ProfitInclVAT.Equal(dec(t, "5050")) {
		t.Errorf("ProfitInclVAT = %v, want 5050", totals.ProfitInclVAT)
	}
}

func TestComputeSaleWithoutPurchaseHasNoProfit(t *testing.T) {
	totals, err := computeSale(SaleAmounts{NetPrice: "30000", VATRegime: "marge"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.ProfitKnown() {
		t.Fatal("expected unknown profit without a purchase")
	}

	resp := toSaleTotalsResponse(totals)
	if resp.ProfitExclVAT != nil || resp.ProfitInclVAT != nil {
		t.Error("profit fields should be null without a purchase")
	}
	if resp.Warning == "" {
		t.Error("expected a warning for a margin sale without a purchase")
	}
}

func TestPurchaseTotalsFromModelSumsCosts(t *testing.T) {
	p := model.Purchase{
		NetPrice:        dec(t, "10000"),
		VATRegime:       "21%",
		TransportCost:   dec(t, "100"),
		MaintenanceCost: dec(t, "250.50"),
		CleaningCost:    dec(t, "50"),
		VATAmount:       dec(t, "2184.11"),
		TotalInclVAT:    dec(t, "12584.61"),
	}

	totals := purchaseTotalsFromModel(p)
	if !totals.AdditionalCosts.Equal(dec(t, "400.50")) {
		t.Errorf("AdditionalCosts = %s, want 400.50", totals.AdditionalCosts)
	}
	// Stored derived columns are passed through untouched.
	if !totals.VATAmount.Equal(p.VATAmount) || !totals.TotalInclVAT.Equal(p.TotalInclVAT) {
		t.Error("derived columns must not be recomputed")
	}
}
