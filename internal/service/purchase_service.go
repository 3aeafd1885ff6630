package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jatochnietverkeerd/dd-sub000/internal/finance"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// PurchaseAmounts carries the raw monetary fields of a purchase form. All
// amounts are decimal strings; empty means zero.
type PurchaseAmounts struct {
	NetPrice        string `json:"net_price" binding:"required"`
	VATRegime       string `json:"vat_regime" binding:"required"`
	BPM             string `json:"bpm"`
	TransportCost   string `json:"transport_cost"`
	MaintenanceCost string `json:"maintenance_cost"`
	CleaningCost    string `json:"cleaning_cost"`
	GuaranteeCost   string `json:"guarantee_cost"`
	OtherCosts      string `json:"other_costs"`
}

type CreatePurchaseRequest struct {
	VehicleID    string `json:"vehicle_id" binding:"required"`
	SupplierName string `json:"supplier_name"`
	PurchaseDate string `json:"purchase_date" binding:"required"` // YYYY-MM-DD
	Note         string `json:"note"`
	PurchaseAmounts
}

type UpdatePurchaseRequest struct {
	SupplierName string `json:"supplier_name"`
	PurchaseDate string `json:"purchase_date" binding:"required"`
	Note         string `json:"note"`
	PurchaseAmounts
}

// PurchaseTotalsResponse is the calculator output shown in the live form
// preview and echoed on persisted purchases. The same finance call produces
// both, so the preview always matches what gets stored.
type PurchaseTotalsResponse struct {
	NetPrice        string `json:"net_price"`
	VATRegime       string `json:"vat_regime"`
	BPM             string `json:"bpm"`
	TransportCost   string `json:"transport_cost"`
	MaintenanceCost string `json:"maintenance_cost"`
	CleaningCost    string `json:"cleaning_cost"`
	GuaranteeCost   string `json:"guarantee_cost"`
	OtherCosts      string `json:"other_costs"`
	AdditionalCosts string `json:"additional_costs"`
	VATAmount       string `json:"vat_amount"`
	TotalInclVAT    string `json:"total_incl_vat"`
}

type PurchaseResponse struct {
	ID           string                 `json:"id"`
	VehicleID    string                 `json:"vehicle_id"`
	VehicleName  string                 `json:"vehicle_name,omitempty"`
	SupplierName string                 `json:"supplier_name"`
	PurchaseDate string                 `json:"purchase_date"`
	Note         string                 `json:"note"`
	CreatedAt    string                 `json:"created_at"`
	Totals       PurchaseTotalsResponse `json:"totals"`
}

// --- Interface ---

type PurchaseService interface {
	Preview(ctx context.Context, req PurchaseAmounts) (PurchaseTotalsResponse, error)
	CreatePurchase(ctx context.Context, req CreatePurchaseRequest, userID string) (PurchaseResponse, error)
	UpdatePurchase(ctx context.Context, id string, req UpdatePurchaseRequest, userID string) (PurchaseResponse, error)
	DeletePurchase(ctx context.Context, id string, userID string) error
	GetPurchase(ctx context.Context, id string) (PurchaseResponse, error)
	ListPurchases(ctx context.Context, page, limit int) ([]PurchaseResponse, int64, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	vehicleRepo  repository.VehicleRepository
	audit        AuditService
}

func NewPurchaseService(purchaseRepo repository.PurchaseRepository, vehicleRepo repository.VehicleRepository, audit AuditService) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo, vehicleRepo: vehicleRepo, audit: audit}
}

// --- Implementation ---

// Preview runs the purchase calculator without persisting anything. The form
// layer calls this on every change to show live totals.
func (s *purchaseService) Preview(ctx context.Context, req PurchaseAmounts) (PurchaseTotalsResponse, error) {
	totals, err := computePurchase(req)
	if err != nil {
		return PurchaseTotalsResponse{}, err
	}
	return toPurchaseTotalsResponse(totals), nil
}

func (s *purchaseService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest, userID string) (PurchaseResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return PurchaseResponse{}, fmt.Errorf("invalid vehicle_id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseResponse{}, errors.New("vehicle not found")
		}
		return PurchaseResponse{}, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	if _, err := s.purchaseRepo.FindByVehicleID(ctx, vehicleID); err == nil {
		return PurchaseResponse{}, errors.New("vehicle already has a purchase record")
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return PurchaseResponse{}, fmt.Errorf("invalid purchase_date (expected YYYY-MM-DD): %w", err)
	}

	totals, err := computePurchase(req.PurchaseAmounts)
	if err != nil {
		return PurchaseResponse{}, err
	}

	purchase := model.Purchase{
		VehicleID:    vehicleID,
		SupplierName: req.SupplierName,
		PurchaseDate: purchaseDate,
		Note:         req.Note,
	}
	applyPurchaseTotals(&purchase, totals)

	if err := s.purchaseRepo.Create(ctx, &purchase); err != nil {
		return PurchaseResponse{}, fmt.Errorf("failed to create purchase: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionCreatePurchase, purchase.ID.String(), vehicle.Brand+" "+vehicle.Model, req)

	purchase.Vehicle = vehicle
	return toPurchaseResponse(purchase), nil
}

func (s *purchaseService) UpdatePurchase(ctx context.Context, id string, req UpdatePurchaseRequest, userID string) (PurchaseResponse, error) {
	purchaseID, err := uuid.Parse(id)
	if err != nil {
		return PurchaseResponse{}, fmt.Errorf("invalid purchase id: %w", err)
	}

	purchase, err := s.purchaseRepo.FindByIDWithVehicle(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseResponse{}, errors.New("purchase not found")
		}
		return PurchaseResponse{}, fmt.Errorf("failed to fetch purchase: %w", err)
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return PurchaseResponse{}, fmt.Errorf("invalid purchase_date (expected YYYY-MM-DD): %w", err)
	}

	totals, err := computePurchase(req.PurchaseAmounts)
	if err != nil {
		return PurchaseResponse{}, err
	}

	purchase.SupplierName = req.SupplierName
	purchase.PurchaseDate = purchaseDate
	purchase.Note = req.Note
	applyPurchaseTotals(purchase, totals)

	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return PurchaseResponse{}, fmt.Errorf("failed to update purchase: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdatePurchase, purchase.ID.String(), "", req)

	return toPurchaseResponse(*purchase), nil
}

func (s *purchaseService) DeletePurchase(ctx context.Context, id string, userID string) error {
	purchaseID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid purchase id: %w", err)
	}

	if _, err := s.purchaseRepo.FindByID(ctx, purchaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("purchase not found")
		}
		return fmt.Errorf("failed to fetch purchase: %w", err)
	}

	// A purchase referenced by a sale stays: deleting it would orphan the
	// sale's profit figures.
	refs, err := s.purchaseRepo.CountSalesReferencing(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to check sale references: %w", err)
	}
	if refs > 0 {
		return errors.New("purchase is referenced by a sale and cannot be deleted")
	}

	if err := s.purchaseRepo.Delete(ctx, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionDeletePurchase, id, "", map[string]string{"deleted_id": id})

	return nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, id string) (PurchaseResponse, error) {
	purchaseID, err := uuid.Parse(id)
	if err != nil {
		return PurchaseResponse{}, fmt.Errorf("invalid purchase id: %w", err)
	}

	purchase, err := s.purchaseRepo.FindByIDWithVehicle(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseResponse{}, errors.New("purchase not found")
		}
		return PurchaseResponse{}, fmt.Errorf("failed to fetch purchase: %w", err)
	}

	return toPurchaseResponse(*purchase), nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, page, limit int) ([]PurchaseResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	purchases, total, err := s.purchaseRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	res := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		res = append(res, toPurchaseResponse(p))
	}
	return res, total, nil
}

// --- Helpers ---

// parseAmount turns a decimal string into a decimal, treating empty as zero.
func parseAmount(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

// computePurchase parses the form amounts and runs the finance calculator.
func computePurchase(req PurchaseAmounts) (finance.PurchaseTotals, error) {
	regime, err := finance.ParseVATRegime(req.VATRegime)
	if err != nil {
		return finance.PurchaseTotals{}, err
	}

	in := finance.PurchaseInput{Regime: regime}
	for _, f := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"net_price", req.NetPrice, &in.NetPrice},
		{"bpm", req.BPM, &in.BPM},
		{"transport_cost", req.TransportCost, &in.TransportCost},
		{"maintenance_cost", req.MaintenanceCost, &in.MaintenanceCost},
		{"cleaning_cost", req.CleaningCost, &in.CleaningCost},
		{"guarantee_cost", req.GuaranteeCost, &in.GuaranteeCost},
		{"other_costs", req.OtherCosts, &in.OtherCosts},
	} {
		d, err := parseAmount(f.name, f.value)
		if err != nil {
			return finance.PurchaseTotals{}, err
		}
		*f.dst = d
	}

	return finance.ComputePurchaseTotals(in)
}

func applyPurchaseTotals(p *model.Purchase, t finance.PurchaseTotals) {
	p.NetPrice = t.NetPrice
	p.VATRegime = string(t.Regime)
	p.BPM = t.BPM
	p.TransportCost = t.TransportCost
	p.MaintenanceCost = t.MaintenanceCost
	p.CleaningCost = t.CleaningCost
	p.GuaranteeCost = t.GuaranteeCost
	p.OtherCosts = t.OtherCosts
	p.VATAmount = t.VATAmount
	p.TotalInclVAT = t.TotalInclVAT
}

// purchaseTotalsFromModel rebuilds the calculator output shape from the
// persisted columns. Derived figures are trusted as stored, not re-derived.
func purchaseTotalsFromModel(p model.Purchase) finance.PurchaseTotals {
	return finance.PurchaseTotals{
		NetPrice:        p.NetPrice,
		Regime:          finance.VATRegime(p.VATRegime),
		BPM:             p.BPM,
		TransportCost:   p.TransportCost,
		MaintenanceCost: p.MaintenanceCost,
		CleaningCost:    p.CleaningCost,
		GuaranteeCost:   p.GuaranteeCost,
		OtherCosts:      p.OtherCosts,
		AdditionalCosts: p.TransportCost.Add(p.MaintenanceCost).Add(p.CleaningCost).Add(p.GuaranteeCost).Add(p.OtherCosts),
		VATAmount:       p.VATAmount,
		TotalInclVAT:    p.TotalInclVAT,
	}
}

// --- Mapping ---

func toPurchaseTotalsResponse(t finance.PurchaseTotals) PurchaseTotalsResponse {
	return PurchaseTotalsResponse{
		NetPrice:        t.NetPrice.StringFixed(2),
		VATRegime:       string(t.Regime),
		BPM:             t.BPM.StringFixed(2),
		TransportCost:   t.TransportCost.StringFixed(2),
		MaintenanceCost: t.MaintenanceCost.StringFixed(2),
		CleaningCost:    t.CleaningCost.StringFixed(2),
		GuaranteeCost:   t.GuaranteeCost.StringFixed(2),
		OtherCosts:      t.OtherCosts.StringFixed(2),
		AdditionalCosts: t.AdditionalCosts.StringFixed(2),
		VATAmount:       t.VATAmount.StringFixed(2),
		TotalInclVAT:    t.TotalInclVAT.StringFixed(2),
	}
}

func toPurchaseResponse(p model.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		ID:           p.ID.String(),
		VehicleID:    p.VehicleID.String(),
		SupplierName: p.SupplierName,
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		Note:         p.Note,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Totals:       toPurchaseTotalsResponse(purchaseTotalsFromModel(p)),
	}
	if p.Vehicle != nil {
		resp.VehicleName = p.Vehicle.Brand + " " + p.Vehicle.Model
	}
	return resp
}
