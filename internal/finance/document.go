package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes purchase invoices from sale invoices. A document
// is always exactly one of the two.
type DocumentKind string

const (
	DocumentPurchase DocumentKind = "inkoop"
	DocumentSale     DocumentKind = "verkoop"
)

// ErrAmbiguousDocument marks an assembler call with zero or two source
// records.
var ErrAmbiguousDocument = errors.New("ambiguous document: need exactly one of purchase or sale")

// Fallback shown for vehicle display fields that were never filled in.
const unknownField = "onbekend"

// CompanyInfo is the dealer's identity block, supplied by configuration.
type CompanyInfo struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	Phone      string
	Email      string
	KvKNumber  string
	VATNumber  string
	IBAN       string
}

// VehicleInfo carries the display fields of the vehicle on the document.
type VehicleInfo struct {
	Brand        string
	Model        string
	Year         int
	Mileage      int
	Fuel         string
	Transmission string
	Color        string
	LicensePlate string
	VIN          string
}

// PurchaseData feeds a purchase invoice: the supplier, the record reference
// and the persisted, already-computed totals.
type PurchaseData struct {
	Reference    string
	SupplierName string
	Date         time.Time
	Totals       PurchaseTotals
}

// SaleData feeds a sale invoice.
type SaleData struct {
	Reference     string
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	Totals        SaleTotals
}

// LineItem is one row on the rendered document.
type LineItem struct {
	Description string
	Amount      decimal.Decimal
}

// VehicleBlock is the vehicle section of the document, with every field
// stringified and missing values degraded to "onbekend" so any renderer can
// print it without branching.
type VehicleBlock struct {
	Brand        string
	Model        string
	Year         string
	Mileage      string
	Fuel         string
	Transmission string
	Color        string
	LicensePlate string
}

// InvoiceDocument is the renderable, self-contained description of one
// invoice. It is rebuilt on every render request and never cached; the
// rendering layer (PDF, HTML, plain text) decides the rest.
type InvoiceDocument struct {
	Kind   DocumentKind
	Number string
	Date   time.Time

	Company    CompanyInfo
	PartyName  string
	PartyEmail string
	Vehicle    VehicleBlock
	Regime     VATRegime

	Lines     []LineItem
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// BuildInvoiceDocument assembles a document from a vehicle plus exactly one
// of a purchase or a sale record. The subtotal, VAT and total shown on the
// document are re-derived from the record's own stored figures rather than by
// rerunning the regime logic, so one template renders both kinds uniformly.
func BuildInvoiceDocument(vehicle VehicleInfo, purchase *PurchaseData, sale *SaleData, company CompanyInfo) (InvoiceDocument, error) {
	if (purchase == nil) == (sale == nil) {
		return InvoiceDocument{}, ErrAmbiguousDocument
	}

	doc := InvoiceDocument{
		Company: company,
		Vehicle: vehicleBlock(vehicle),
	}

	if purchase != nil {
		t := purchase.Totals
		doc.Kind = DocumentPurchase
		doc.Number = documentNumber("IF", purchase.Date, purchase.Reference)
		doc.Date = purchase.Date
		doc.PartyName = purchase.SupplierName
		doc.Regime = t.Regime

		doc.Lines = append(doc.Lines, LineItem{Description: "Inkoopprijs voertuig", Amount: t.NetPrice})
		if t.BPM.IsPositive() {
			doc.Lines = append(doc.Lines, LineItem{Description: "BPM", Amount: t.BPM})
		}
		for _, row := range []struct {
			label  string
			amount decimal.Decimal
		}{
			{"Transportkosten", t.TransportCost},
			{"Onderhoudskosten", t.MaintenanceCost},
			{"Poetskosten", t.CleaningCost},
			{"Garantiekosten", t.GuaranteeCost},
			{"Overige kosten", t.OtherCosts},
		} {
			if row.amount.IsPositive() {
				doc.Lines = append(doc.Lines, LineItem{Description: row.label, Amount: row.amount})
			}
		}

		doc.VATAmount = t.VATAmount
		doc.Total = t.TotalInclVAT
		doc.Subtotal = round2(t.TotalInclVAT.Sub(t.VATAmount))
		return doc, nil
	}

	t := sale.Totals
	doc.Kind = DocumentSale
	doc.Number = documentNumber("VF", sale.Date, sale.Reference)
	doc.Date = sale.Date
	doc.PartyName = sale.CustomerName
	doc.PartyEmail = sale.CustomerEmail
	doc.Regime = t.Regime

	doc.Lines = append(doc.Lines, LineItem{Description: "Verkoopprijs voertuig", Amount: t.NetPrice})
	if t.Discount.IsPositive() {
		doc.Lines = append(doc.Lines, LineItem{Description: "Korting", Amount: t.Discount.Neg()})
	}

	doc.Subtotal = t.NetPrice
	doc.VATAmount = t.VATAmount
	doc.Total = t.FinalPrice
	return doc, nil
}

func vehicleBlock(v VehicleInfo) VehicleBlock {
	return VehicleBlock{
		Brand:        orUnknown(v.Brand),
		Model:        orUnknown(v.Model),
		Year:         intOrUnknown(v.Year),
		Mileage:      intOrUnknown(v.Mileage),
		Fuel:         orUnknown(v.Fuel),
		Transmission: orUnknown(v.Transmission),
		Color:        orUnknown(v.Color),
		LicensePlate: orUnknown(v.LicensePlate),
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownField
	}
	return s
}

func intOrUnknown(n int) string {
	if n <= 0 {
		return unknownField
	}
	return strconv.Itoa(n)
}

// documentNumber derives a stable display number from the record reference.
// Documents are never persisted, so there is no counter to increment; the
// reference prefix keeps the number reproducible across renders.
func documentNumber(prefix string, date time.Time, reference string) string {
	ref := strings.ReplaceAll(reference, "-", "")
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, date.Format("20060102"), strings.ToUpper(ref))
}
