package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jatochnietverkeerd/dd-sub000/internal/finance"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"
	"github.com/jatochnietverkeerd/dd-sub000/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

// SaleAmounts carries the raw monetary fields of a sale form. VATRegime may be
// left empty when a purchase is linked; it then defaults to the purchase's
// regime.
type SaleAmounts struct {
	NetPrice  string `json:"net_price" binding:"required"`
	VATRegime string `json:"vat_regime"`
	Discount  string `json:"discount"`
}

type CreateSaleRequest struct {
	VehicleID     string `json:"vehicle_id" binding:"required"`
	PurchaseID    string `json:"purchase_id"` // empty: auto-link the vehicle's purchase if one exists
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	SaleDate      string `json:"sale_date" binding:"required"` // YYYY-MM-DD
	Note          string `json:"note"`
	SaleAmounts
}

type UpdateSaleRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	SaleDate      string `json:"sale_date" binding:"required"`
	Note          string `json:"note"`
	SaleAmounts
}

// SalePreviewRequest is the calculator form: a sale that may not exist yet,
// optionally pointing at a purchase for margin and profit figures.
type SalePreviewRequest struct {
	PurchaseID string `json:"purchase_id"`
	SaleAmounts
}

// SaleTotalsResponse is the derived side of a sale. Profit fields are null
// when no purchase is linked; Warning explains why figures are incomplete.
type SaleTotalsResponse struct {
	NetPrice      string  `json:"net_price"`
	VATRegime     string  `json:"vat_regime"`
	Discount      string  `json:"discount"`
	VATAmount     string  `json:"vat_amount"`
	GrossPrice    string  `json:"gross_price"`
	FinalPrice    string  `json:"final_price"`
	ProfitExclVAT *string `json:"profit_excl_vat"`
	ProfitInclVAT *string `json:"profit_incl_vat"`
	Warning       string  `json:"warning,omitempty"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	VehicleID     string             `json:"vehicle_id"`
	VehicleName   string             `json:"vehicle_name,omitempty"`
	PurchaseID    *string            `json:"purchase_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	SaleDate      string             `json:"sale_date"`
	Note          string             `json:"note"`
	CreatedAt     string             `json:"created_at"`
	Totals        SaleTotalsResponse `json:"totals"`
}

// --- Interface ---

type SaleService interface {
	Preview(ctx context.Context, req SalePreviewRequest) (SaleTotalsResponse, error)
	CreateSale(ctx context.Context, req CreateSaleRequest, userID string) (SaleResponse, error)
	UpdateSale(ctx context.Context, id string, req UpdateSaleRequest, userID string) (SaleResponse, error)
	DeleteSale(ctx context.Context, id string, userID string) error
	GetSale(ctx context.Context, id string) (SaleResponse, error)
	ListSales(ctx context.Context, page, limit int) ([]SaleResponse, int64, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	vehicleRepo  repository.VehicleRepository
	txManager    repository.TransactionManager
	hub          *websocket.Hub
	audit        AuditService
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	vehicleRepo repository.VehicleRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	audit AuditService,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		hub:          hub,
		audit:        audit,
	}
}

// --- Implementation ---

// Preview runs the sale calculator without persisting anything.
func (s *saleService) Preview(ctx context.Context, req SalePreviewRequest) (SaleTotalsResponse, error) {
	var purchase *model.Purchase
	if req.PurchaseID != "" {
		purchaseID, err := uuid.Parse(req.PurchaseID)
		if err != nil {
			return SaleTotalsResponse{}, fmt.Errorf("invalid purchase_id: %w", err)
		}
		purchase, err = s.purchaseRepo.FindByID(ctx, purchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SaleTotalsResponse{}, errors.New("purchase not found")
			}
			return SaleTotalsResponse{}, fmt.Errorf("failed to fetch purchase: %w", err)
		}
	}

	totals, err := computeSale(req.SaleAmounts, purchase)
	if err != nil {
		return SaleTotalsResponse{}, err
	}
	return toSaleTotalsResponse(totals), nil
}

func (s *saleService) CreateSale(ctx context.Context, req CreateSaleRequest, userID string) (SaleResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid vehicle_id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SaleResponse{}, errors.New("vehicle not found")
		}
		return SaleResponse{}, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	if vehicle.Status == model.VehicleSold {
		return SaleResponse{}, errors.New("vehicle is already sold")
	}

	purchase, err := s.resolvePurchase(ctx, req.PurchaseID, vehicleID)
	if err != nil {
		return SaleResponse{}, err
	}

	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid sale_date (expected YYYY-MM-DD): %w", err)
	}

	totals, err := computeSale(req.SaleAmounts, purchase)
	if err != nil {
		return SaleResponse{}, err
	}
	if totals.FinalPrice.IsNegative() {
		return SaleResponse{}, errors.New("discount exceeds the gross price")
	}

	sale := model.Sale{
		VehicleID:     vehicleID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		SaleDate:      saleDate,
		Note:          req.Note,
	}
	if purchase != nil {
		id := purchase.ID
		sale.PurchaseID = &id
	}
	applySaleTotals(&sale, totals)

	// The sale and the vehicle status flip must land together.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.Create(txCtx, &sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		if err := s.vehicleRepo.UpdateStatus(txCtx, vehicleID, model.VehicleSold); err != nil {
			return fmt.Errorf("failed to update vehicle status: %w", err)
		}
		return nil
	})
	if err != nil {
		return SaleResponse{}, err
	}

	s.audit.Record(ctx, userID, model.ActionCreateSale, sale.ID.String(), vehicle.Brand+" "+vehicle.Model, req)
	s.hub.BroadcastEvent(websocket.EventSaleRecorded, map[string]string{
		"sale_id":     sale.ID.String(),
		"vehicle_id":  vehicleID.String(),
		"vehicle":     vehicle.Brand + " " + vehicle.Model,
		"final_price": totals.FinalPrice.StringFixed(2),
	})

	sale.Vehicle = vehicle
	sale.Purchase = purchase
	return toSaleResponse(sale), nil
}

func (s *saleService) UpdateSale(ctx context.Context, id string, req UpdateSaleRequest, userID string) (SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid sale id: %w", err)
	}

	sale, err := s.saleRepo.FindByIDWithRelations(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SaleResponse{}, errors.New("sale not found")
		}
		return SaleResponse{}, fmt.Errorf("failed to fetch sale: %w", err)
	}

	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid sale_date (expected YYYY-MM-DD): %w", err)
	}

	totals, err := computeSale(req.SaleAmounts, sale.Purchase)
	if err != nil {
		return SaleResponse{}, err
	}
	if totals.FinalPrice.IsNegative() {
		return SaleResponse{}, errors.New("discount exceeds the gross price")
	}

	sale.CustomerName = req.CustomerName
	sale.CustomerEmail = req.CustomerEmail
	sale.CustomerPhone = req.CustomerPhone
	sale.SaleDate = saleDate
	sale.Note = req.Note
	applySaleTotals(sale, totals)

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return SaleResponse{}, fmt.Errorf("failed to update sale: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdateSale, sale.ID.String(), "", req)

	return toSaleResponse(*sale), nil
}

func (s *saleService) DeleteSale(ctx context.Context, id string, userID string) error {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid sale id: %w", err)
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("sale not found")
		}
		return fmt.Errorf("failed to fetch sale: %w", err)
	}

	// Removing a sale puts the vehicle back on the lot.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.Delete(txCtx, saleID); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		if err := s.vehicleRepo.UpdateStatus(txCtx, sale.VehicleID, model.VehicleAvailable); err != nil {
			return fmt.Errorf("failed to update vehicle status: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, userID, model.ActionDeleteSale, id, "", map[string]string{"deleted_id": id})

	return nil
}

func (s *saleService) GetSale(ctx context.Context, id string) (SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("invalid sale id: %w", err)
	}

	sale, err := s.saleRepo.FindByIDWithRelations(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SaleResponse{}, errors.New("sale not found")
		}
		return SaleResponse{}, fmt.Errorf("failed to fetch sale: %w", err)
	}

	return toSaleResponse(*sale), nil
}

func (s *saleService) ListSales(ctx context.Context, page, limit int) ([]SaleResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	sales, total, err := s.saleRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}

	res := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		res = append(res, toSaleResponse(sale))
	}
	return res, total, nil
}

// --- Helpers ---

// resolvePurchase finds the purchase to link: the explicitly named one, or the
// vehicle's own purchase record when none is named. Returns nil when the
// vehicle has no purchase record at all.
func (s *saleService) resolvePurchase(ctx context.Context, purchaseIDStr string, vehicleID uuid.UUID) (*model.Purchase, error) {
	if purchaseIDStr != "" {
		purchaseID, err := uuid.Parse(purchaseIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid purchase_id: %w", err)
		}
		purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("purchase not found")
			}
			return nil, fmt.Errorf("failed to fetch purchase: %w", err)
		}
		return purchase, nil
	}

	purchase, err := s.purchaseRepo.FindByVehicleID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch purchase: %w", err)
	}
	return purchase, nil
}

// computeSale parses the form amounts and runs the finance calculator. The
// regime defaults to the linked purchase's regime when the form leaves it
// empty.
func computeSale(req SaleAmounts, purchase *model.Purchase) (finance.SaleTotals, error) {
	regimeToken := req.VATRegime
	if regimeToken == "" && purchase != nil {
		regimeToken = purchase.VATRegime
	}
	regime, err := finance.ParseVATRegime(regimeToken)
	if err != nil {
		return finance.SaleTotals{}, err
	}

	netPrice, err := parseAmount("net_price", req.NetPrice)
	if err != nil {
		return finance.SaleTotals{}, err
	}
	discount, err := parseAmount("discount", req.Discount)
	if err != nil {
		return finance.SaleTotals{}, err
	}

	in := finance.SaleInput{
		NetPrice: netPrice,
		Regime:   regime,
		Discount: discount,
	}
	if purchase != nil {
		totals := purchaseTotalsFromModel(*purchase)
		in.Purchase = &totals
	}

	return finance.ComputeSaleTotals(in)
}

func applySaleTotals(sale *model.Sale, t finance.SaleTotals) {
	sale.NetPrice = t.NetPrice
	sale.VATRegime = string(t.Regime)
	sale.Discount = t.Discount
	sale.VATAmount = t.VATAmount
	sale.GrossPrice = t.GrossPrice
	sale.FinalPrice = t.FinalPrice
	sale.ProfitExclVAT = t.ProfitExclVAT
	sale.ProfitInclVAT = t.ProfitInclVAT
}

// --- Mapping ---

func toSaleTotalsResponse(t finance.SaleTotals) SaleTotalsResponse {
	resp := SaleTotalsResponse{
		NetPrice:   t.NetPrice.StringFixed(2),
		VATRegime:  string(t.Regime),
		Discount:   t.Discount.StringFixed(2),
		VATAmount:  t.VATAmount.StringFixed(2),
		GrossPrice: t.GrossPrice.StringFixed(2),
		FinalPrice: t.FinalPrice.StringFixed(2),
	}
	if t.ProfitExclVAT != nil {
		v := t.ProfitExclVAT.StringFixed(2)
		resp.ProfitExclVAT = &v
	}
	if t.ProfitInclVAT != nil {
		v := t.ProfitInclVAT.StringFixed(2)
		resp.ProfitInclVAT = &v
	}
	if !t.ProfitKnown() {
		if t.Regime == finance.RegimeMargin {
			resp.Warning = finance.ErrMissingPurchaseReference.Error() + ": margin VAT and profit cannot be derived"
		} else {
			resp.Warning = finance.ErrMissingPurchaseReference.Error() + ": profit cannot be derived"
		}
	}
	return resp
}

func toSaleResponse(sale model.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            sale.ID.String(),
		VehicleID:     sale.VehicleID.String(),
		CustomerName:  sale.CustomerName,
		CustomerEmail: sale.CustomerEmail,
		CustomerPhone: sale.CustomerPhone,
		SaleDate:      sale.SaleDate.Format("2006-01-02"),
		Note:          sale.Note,
		CreatedAt:     sale.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Totals:        toSaleTotalsResponse(saleTotalsFromModel(sale)),
	}
	if sale.PurchaseID != nil {
		id := sale.PurchaseID.String()
		resp.PurchaseID = &id
	}
	if sale.Vehicle != nil {
		resp.VehicleName = sale.Vehicle.Brand + " " + sale.Vehicle.Model
	}
	return resp
}

// saleTotalsFromModel rebuilds the calculator output shape from the persisted
// columns. Derived figures are trusted as stored, not re-derived.
func saleTotalsFromModel(sale model.Sale) finance.SaleTotals {
	return finance.SaleTotals{
		NetPrice:      sale.NetPrice,
		Regime:        finance.VATRegime(sale.VATRegime),
		Discount:      sale.Discount,
		VATAmount:     sale.VATAmount,
		GrossPrice:    sale.GrossPrice,
		FinalPrice:    sale.FinalPrice,
		ProfitExclVAT: sale.ProfitExclVAT,
		ProfitInclVAT: sale.ProfitInclVAT,
	}
}
