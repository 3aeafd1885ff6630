package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"
	"github.com/jatochnietverkeerd/dd-sub000/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// CreateLeadRequest comes from the public site, unauthenticated.
type CreateLeadRequest struct {
	Type          string `json:"type" binding:"required"` // CONTACT, RESERVERING
	VehicleID     string `json:"vehicle_id"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Message       string `json:"message"`
	DepositAmount string `json:"deposit_amount"`
}

type LeadResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	VehicleID     *string `json:"vehicle_id"`
	VehicleName   string  `json:"vehicle_name,omitempty"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Message       string  `json:"message"`
	DepositAmount string  `json:"deposit_amount"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

// --- Interface ---

type LeadService interface {
	CreateLead(ctx context.Context, req CreateLeadRequest) (LeadResponse, error)
	HandleLead(ctx context.Context, id string, userID string) (LeadResponse, error)
	GetLead(ctx context.Context, id string) (LeadResponse, error)
	ListLeads(ctx context.Context, filter repository.LeadListFilter) ([]LeadResponse, int64, error)
}

type leadService struct {
	leadRepo    repository.LeadRepository
	vehicleRepo repository.VehicleRepository
	txManager   repository.TransactionManager
	hub         *websocket.Hub
	audit       AuditService
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	vehicleRepo repository.VehicleRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	audit AuditService,
) LeadService {
	return &leadService{
		leadRepo:    leadRepo,
		vehicleRepo: vehicleRepo,
		txManager:   txManager,
		hub:         hub,
		audit:       audit,
	}
}

// --- Implementation ---

// CreateLead records a public enquiry. A reservation requires an available
// vehicle and flips it to GERESERVEERD in the same transaction.
func (s *leadService) CreateLead(ctx context.Context, req CreateLeadRequest) (LeadResponse, error) {
	if req.Type != model.LeadTypeContact && req.Type != model.LeadTypeReservation {
		return LeadResponse{}, fmt.Errorf("invalid lead type: %q", req.Type)
	}

	lead := model.Lead{
		Type:    req.Type,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  model.LeadStatusNew,
	}

	deposit := decimal.Zero
	if req.DepositAmount != "" {
		var err error
		deposit, err = decimal.NewFromString(req.DepositAmount)
		if err != nil {
			return LeadResponse{}, fmt.Errorf("invalid deposit_amount: %w", err)
		}
		if deposit.IsNegative() {
			return LeadResponse{}, errors.New("deposit_amount must not be negative")
		}
	}
	lead.DepositAmount = deposit

	var vehicle *model.Vehicle
	if req.VehicleID != "" {
		vehicleID, err := uuid.Parse(req.VehicleID)
		if err != nil {
			return LeadResponse{}, fmt.Errorf("invalid vehicle_id: %w", err)
		}
		vehicle, err = s.vehicleRepo.FindByID(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeadResponse{}, errors.New("vehicle not found")
			}
			return LeadResponse{}, fmt.Errorf("failed to fetch vehicle: %w", err)
		}
		id := vehicle.ID
		lead.VehicleID = &id
	}

	if req.Type == model.LeadTypeReservation {
		if vehicle == nil {
			return LeadResponse{}, errors.New("a reservation requires a vehicle")
		}
		if vehicle.Status != model.VehicleAvailable {
			return LeadResponse{}, errors.New("vehicle is not available for reservation")
		}
		err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := s.leadRepo.Create(txCtx, &lead); err != nil {
				return fmt.Errorf("failed to create lead: %w", err)
			}
			if err := s.vehicleRepo.UpdateStatus(txCtx, vehicle.ID, model.VehicleReserved); err != nil {
				return fmt.Errorf("failed to reserve vehicle: %w", err)
			}
			return nil
		})
		if err != nil {
			return LeadResponse{}, err
		}
	} else {
		if err := s.leadRepo.Create(ctx, &lead); err != nil {
			return LeadResponse{}, fmt.Errorf("failed to create lead: %w", err)
		}
	}

	payload := map[string]string{
		"lead_id": lead.ID.String(),
		"type":    lead.Type,
		"name":    lead.Name,
	}
	if vehicle != nil {
		payload["vehicle"] = vehicle.Brand + " " + vehicle.Model
	}
	s.hub.BroadcastEvent(websocket.EventLeadCreated, payload)

	lead.Vehicle = vehicle
	return toLeadResponse(lead), nil
}

// HandleLead marks a lead as AFGEHANDELD.
func (s *leadService) HandleLead(ctx context.Context, id string, userID string) (LeadResponse, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return LeadResponse{}, fmt.Errorf("invalid lead id: %w", err)
	}

	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeadResponse{}, errors.New("lead not found")
		}
		return LeadResponse{}, fmt.Errorf("failed to fetch lead: %w", err)
	}

	if lead.Status == model.LeadStatusHandled {
		return toLeadResponse(*lead), nil
	}

	lead.Status = model.LeadStatusHandled
	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return LeadResponse{}, fmt.Errorf("failed to update lead: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionHandleLead, lead.ID.String(), lead.Name, nil)

	return toLeadResponse(*lead), nil
}

func (s *leadService) GetLead(ctx context.Context, id string) (LeadResponse, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return LeadResponse{}, fmt.Errorf("invalid lead id: %w", err)
	}

	lead, err := s.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeadResponse{}, errors.New("lead not found")
		}
		return LeadResponse{}, fmt.Errorf("failed to fetch lead: %w", err)
	}

	return toLeadResponse(*lead), nil
}

func (s *leadService) ListLeads(ctx context.Context, filter repository.LeadListFilter) ([]LeadResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	leads, total, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch leads: %w", err)
	}

	res := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		res = append(res, toLeadResponse(lead))
	}
	return res, total, nil
}

// --- Mapping ---

func toLeadResponse(lead model.Lead) LeadResponse {
	resp := LeadResponse{
		ID:            lead.ID.String(),
		Type:          lead.Type,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Message:       lead.Message,
		DepositAmount: lead.DepositAmount.StringFixed(2),
		Status:        lead.Status,
		CreatedAt:     lead.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if lead.VehicleID != nil {
		id := lead.VehicleID.String()
		resp.VehicleID = &id
	}
	if lead.Vehicle != nil {
		resp.VehicleName = lead.Vehicle.Brand + " " + lead.Vehicle.Model
	}
	return resp
}
