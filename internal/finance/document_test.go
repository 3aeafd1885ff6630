package finance

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testCompany = CompanyInfo{
	Name:       "Autobedrijf De Zwaan",
	Address:    "Industrieweg 12",
	PostalCode: "1234 AB",
	City:       "Zwolle",
	KvKNumber:  "12345678",
	VATNumber:  "NL001234567B01",
}

var testVehicle = VehicleInfo{
	Brand:        "Volkswagen",
	Model:        "Golf",
	Year:         2019,
	Mileage:      84500,
	Fuel:         "benzine",
	Transmission: "handgeschakeld",
	Color:        "grijs",
	LicensePlate: "XX-123-X",
}

func testPurchaseData(t *testing.T) *PurchaseData {
	t.Helper()
	totals, err := ComputePurchaseTotals(PurchaseInput{
		NetPrice:      dec("20000"),
		Regime:        RegimeStandard,
		BPM:           dec("1500"),
		TransportCost: dec("200"),
		CleaningCost:  dec("150"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &PurchaseData{
		Reference:    "3f2a9c1e-0000-0000-0000-000000000000",
		SupplierName: "Autohandel Jansen BV",
		Date:         time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Totals:       totals,
	}
}

func testSaleData(t *testing.T) *SaleData {
	t.Helper()
	purchase := testPurchaseData(t)
	totals, err := ComputeSaleTotals(SaleInput{
		NetPrice: dec("26500"),
		Regime:   RegimeMargin,
		Discount: dec("500"),
		Purchase: &purchase.Totals,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &SaleData{
		Reference:     "77b1d2aa-0000-0000-0000-000000000000",
		CustomerName:  "P. de Vries",
		CustomerEmail: "p.devries@example.nl",
		Date:          time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Totals:        totals,
	}
}

func TestBuildInvoiceDocument_RequiresExactlyOneRecord(t *testing.T) {
	purchase := testPurchaseData(t)
	sale := testSaleData(t)

	if _, err := BuildInvoiceDocument(testVehicle, nil, nil, testCompany); !errors.Is(err, ErrAmbiguousDocument) {
		t.Errorf("neither record: expected ErrAmbiguousDocument, got %v", err)
	}
	if _, err := BuildInvoiceDocument(testVehicle, purchase, sale, testCompany); !errors.Is(err, ErrAmbiguousDocument) {
		t.Errorf("both records: expected ErrAmbiguousDocument, got %v", err)
	}
}

func TestBuildInvoiceDocument_PurchaseDocument(t *testing.T) {
	doc, err := BuildInvoiceDocument(testVehicle, testPurchaseData(t), nil, testCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != DocumentPurchase {
		t.Errorf("expected purchase document, got %q", doc.Kind)
	}
	if doc.PartyName != "Autohandel Jansen BV" {
		t.Errorf("expected supplier as party, got %q", doc.PartyName)
	}
	if !strings.HasPrefix(doc.Number, "IF-20240314-") {
		t.Errorf("unexpected document number %q", doc.Number)
	}

	// Base price, BPM, transport and cleaning rows; maintenance, guarantee
	// and other are zero and must not render.
	if len(doc.Lines) != 4 {
		t.Fatalf("expected 4 line items, got %d: %+v", len(doc.Lines), doc.Lines)
	}
	if doc.Lines[0].Description != "Inkoopprijs voertuig" || !doc.Lines[0].Amount.Equal(dec("20000")) {
		t.Errorf("unexpected first line: %+v", doc.Lines[0])
	}

	// Display figures come from the stored totals: VAT 4200 + 73.50, total
	// incl VAT, subtotal = total minus VAT.
	if !doc.VATAmount.Equal(dec("4273.50")) {
		t.Errorf("expected VAT 4273.50, got %s", doc.VATAmount)
	}
	if !doc.Total.Equal(dec("26123.50")) {
		t.Errorf("expected total 26123.50, got %s", doc.Total)
	}
	if !doc.Subtotal.Equal(dec("21850")) {
		t.Errorf("expected subtotal 21850, got %s", doc.Subtotal)
	}
}

func TestBuildInvoiceDocument_SaleDocument(t *testing.T) {
	sale := testSaleData(t)
	doc, err := BuildInvoiceDocument(testVehicle, nil, sale, testCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != DocumentSale {
		t.Errorf("expected sale document, got %q", doc.Kind)
	}
	if doc.PartyName != "P. de Vries" || doc.PartyEmail != "p.devries@example.nl" {
		t.Errorf("unexpected party block: %q %q", doc.PartyName, doc.PartyEmail)
	}
	if !strings.HasPrefix(doc.Number, "VF-20240502-") {
		t.Errorf("unexpected document number %q", doc.Number)
	}

	if len(doc.Lines) != 2 {
		t.Fatalf("expected price and discount rows, got %d", len(doc.Lines))
	}
	if doc.Lines[1].Description != "Korting" || !doc.Lines[1].Amount.Equal(dec("-500")) {
		t.Errorf("expected discount row of -500, got %+v", doc.Lines[1])
	}

	if !doc.Subtotal.Equal(dec("26500")) {
		t.Errorf("expected subtotal 26500, got %s", doc.Subtotal)
	}
	if !doc.VATAmount.Equal(sale.Totals.VATAmount) {
		t.Errorf("expected stored VAT %s, got %s", sale.Totals.VATAmount, doc.VATAmount)
	}
	if !doc.Total.Equal(sale.Totals.FinalPrice) {
		t.Errorf("expected stored final price %s, got %s", sale.Totals.FinalPrice, doc.Total)
	}
}

func TestBuildInvoiceDocument_SaleWithoutDiscountHasNoDiscountRow(t *testing.T) {
	totals, err := ComputeSaleTotals(SaleInput{NetPrice: dec("9999"), Regime: RegimeExempt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := BuildInvoiceDocument(testVehicle, nil, &SaleData{
		Reference:    "abc",
		CustomerName: "K. Bakker",
		Date:         time.Now(),
		Totals:       totals,
	}, testCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 1 {
		t.Errorf("expected a single price row, got %d", len(doc.Lines))
	}
}

func TestBuildInvoiceDocument_MissingVehicleFieldsDegradeToUnknown(t *testing.T) {
	doc, err := BuildInvoiceDocument(VehicleInfo{Brand: "Opel"}, testPurchaseData(t), nil, testCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Vehicle.Brand != "Opel" {
		t.Errorf("expected brand to pass through, got %q", doc.Vehicle.Brand)
	}
	for field, got := range map[string]string{
		"model":        doc.Vehicle.Model,
		"year":         doc.Vehicle.Year,
		"mileage":      doc.Vehicle.Mileage,
		"fuel":         doc.Vehicle.Fuel,
		"transmission": doc.Vehicle.Transmission,
		"color":        doc.Vehicle.Color,
	} {
		if got != "onbekend" {
			t.Errorf("expected %s to degrade to onbekend, got %q", field, got)
		}
	}
}
