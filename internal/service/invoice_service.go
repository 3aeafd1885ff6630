package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jatochnietverkeerd/dd-sub000/internal/finance"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type InvoiceLineResponse struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type InvoiceVehicleResponse struct {
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Mileage      string `json:"mileage"`
	Fuel         string `json:"fuel"`
	Transmission string `json:"transmission"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

type InvoiceCompanyResponse struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	KvKNumber  string `json:"kvk_number"`
	VATNumber  string `json:"vat_number"`
	IBAN       string `json:"iban"`
}

// InvoiceResponse is the renderable document. It is rebuilt from the stored
// purchase or sale record on every request and never persisted.
type InvoiceResponse struct {
	Kind       string                 `json:"kind"` // inkoop, verkoop
	Number     string                 `json:"number"`
	Date       string                 `json:"date"`
	Company    InvoiceCompanyResponse `json:"company"`
	PartyName  string                 `json:"party_name"`
	PartyEmail string                 `json:"party_email,omitempty"`
	Vehicle    InvoiceVehicleResponse `json:"vehicle"`
	VATRegime  string                 `json:"vat_regime"`
	Lines      []InvoiceLineResponse  `json:"lines"`
	Subtotal   string                 `json:"subtotal"`
	VATAmount  string                 `json:"vat_amount"`
	Total      string                 `json:"total"`
}

// --- Interface ---

type InvoiceService interface {
	GetPurchaseInvoice(ctx context.Context, purchaseID string) (InvoiceResponse, error)
	GetSaleInvoice(ctx context.Context, saleID string) (InvoiceResponse, error)
}

type invoiceService struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	company      finance.CompanyInfo
}

func NewInvoiceService(purchaseRepo repository.PurchaseRepository, saleRepo repository.SaleRepository, company finance.CompanyInfo) InvoiceService {
	return &invoiceService{purchaseRepo: purchaseRepo, saleRepo: saleRepo, company: company}
}

// --- Implementation ---

func (s *invoiceService) GetPurchaseInvoice(ctx context.Context, purchaseID string) (InvoiceResponse, error) {
	id, err := uuid.Parse(purchaseID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid purchase id: %w", err)
	}

	purchase, err := s.purchaseRepo.FindByIDWithVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, errors.New("purchase not found")
		}
		return InvoiceResponse{}, fmt.Errorf("failed to fetch purchase: %w", err)
	}

	data := finance.PurchaseData{
		Reference:    purchase.ID.String(),
		SupplierName: purchase.SupplierName,
		Date:         purchase.PurchaseDate,
		Totals:       purchaseTotalsFromModel(*purchase),
	}

	doc, err := finance.BuildInvoiceDocument(vehicleInfoFromModel(purchase.Vehicle), &data, nil, s.company)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to assemble invoice: %w", err)
	}

	return toInvoiceResponse(doc), nil
}

func (s *invoiceService) GetSaleInvoice(ctx context.Context, saleID string) (InvoiceResponse, error) {
	id, err := uuid.Parse(saleID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid sale id: %w", err)
	}

	sale, err := s.saleRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, errors.New("sale not found")
		}
		return InvoiceResponse{}, fmt.Errorf("failed to fetch sale: %w", err)
	}

	data := finance.SaleData{
		Reference:     sale.ID.String(),
		CustomerName:  sale.CustomerName,
		CustomerEmail: sale.CustomerEmail,
		Date:          sale.SaleDate,
		Totals:        saleTotalsFromModel(*sale),
	}

	doc, err := finance.BuildInvoiceDocument(vehicleInfoFromModel(sale.Vehicle), nil, &data, s.company)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to assemble invoice: %w", err)
	}

	return toInvoiceResponse(doc), nil
}

// --- Mapping ---

func vehicleInfoFromModel(v *model.Vehicle) finance.VehicleInfo {
	if v == nil {
		return finance.VehicleInfo{}
	}
	return finance.VehicleInfo{
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Mileage:      v.Mileage,
		Fuel:         v.Fuel,
		Transmission: v.Transmission,
		Color:        v.Color,
		LicensePlate: v.LicensePlate,
		VIN:          v.VIN,
	}
}

func toInvoiceResponse(doc finance.InvoiceDocument) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		lines = append(lines, InvoiceLineResponse{
			Description: line.Description,
			Amount:      line.Amount.StringFixed(2),
		})
	}

	return InvoiceResponse{
		Kind:   string(doc.Kind),
		Number: doc.Number,
		Date:   doc.Date.Format("2006-01-02"),
		Company: InvoiceCompanyResponse{
			Name:       doc.Company.Name,
			Address:    doc.Company.Address,
			PostalCode: doc.Company.PostalCode,
			City:       doc.Company.City,
			Phone:      doc.Company.Phone,
			Email:      doc.Company.Email,
			KvKNumber:  doc.Company.KvKNumber,
			VATNumber:  doc.Company.VATNumber,
			IBAN:       doc.Company.IBAN,
		},
		PartyName:  doc.PartyName,
		PartyEmail: doc.PartyEmail,
		Vehicle: InvoiceVehicleResponse{
			Brand:        doc.Vehicle.Brand,
			Model:        doc.Vehicle.Model,
			Year:         doc.Vehicle.Year,
			Mileage:      doc.Vehicle.Mileage,
			Fuel:         doc.Vehicle.Fuel,
			Transmission: doc.Vehicle.Transmission,
			Color:        doc.Vehicle.Color,
			LicensePlate: doc.Vehicle.LicensePlate,
		},
		VATRegime: string(doc.Regime),
		Lines:     lines,
		Subtotal:  doc.Subtotal.StringFixed(2),
		VATAmount: doc.VATAmount.StringFixed(2),
		Total:     doc.Total.StringFixed(2),
	}
}
