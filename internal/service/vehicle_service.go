package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateVehicleRequest struct {
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"omitempty,gte=1900"`
	Mileage      int    `json:"mileage" binding:"omitempty,gte=0"`
	Fuel         string `json:"fuel"`
	Transmission string `json:"transmission"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
	VIN          string `json:"vin"`
	AskingPrice  string `json:"asking_price"` // decimal string
	Description  string `json:"description"`
}

type UpdateVehicleRequest struct {
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	Mileage      *int    `json:"mileage"`
	Fuel         *string `json:"fuel"`
	Transmission *string `json:"transmission"`
	Color        *string `json:"color"`
	LicensePlate *string `json:"license_plate"`
	VIN          *string `json:"vin"`
	AskingPrice  *string `json:"asking_price"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
}

type AddVehicleImageRequest struct {
	URL       string `json:"url" binding:"required,url"`
	Position  int    `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

type VehicleImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Position  int    `json:"position"`
	IsPrimary bool   `json:"is_primary"`
}

type VehicleResponse struct {
	ID           string                 `json:"id"`
	Brand        string                 `json:"brand"`
	Model        string                 `json:"model"`
	Year         int                    `json:"year"`
	Mileage      int                    `json:"mileage"`
	Fuel         string                 `json:"fuel"`
	Transmission string                 `json:"transmission"`
	Color        string                 `json:"color"`
	LicensePlate string                 `json:"license_plate"`
	VIN          string                 `json:"vin"`
	AskingPrice  string                 `json:"asking_price"`
	Status       string                 `json:"status"`
	Description  string                 `json:"description"`
	Images       []VehicleImageResponse `json:"images"`
	CreatedAt    string                 `json:"created_at"`
}

// --- Interface ---

type VehicleService interface {
	CreateVehicle(ctx context.Context, req CreateVehicleRequest, userID string) (VehicleResponse, error)
	UpdateVehicle(ctx context.Context, id string, req UpdateVehicleRequest, userID string) (VehicleResponse, error)
	DeleteVehicle(ctx context.Context, id string, userID string) error
	GetVehicle(ctx context.Context, id string) (VehicleResponse, error)
	ListVehicles(ctx context.Context, filter repository.VehicleListFilter) ([]VehicleResponse, int64, error)

	AddImage(ctx context.Context, vehicleID string, req AddVehicleImageRequest) (VehicleImageResponse, error)
	SetPrimaryImage(ctx context.Context, vehicleID, imageID string) error
	DeleteImage(ctx context.Context, imageID string) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	txManager   repository.TransactionManager
	audit       AuditService
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, txManager repository.TransactionManager, audit AuditService) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, txManager: txManager, audit: audit}
}

// --- Implementation ---

func validVehicleStatus(status string) bool {
	return status == model.VehicleAvailable || status == model.VehicleReserved || status == model.VehicleSold
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest, userID string) (VehicleResponse, error) {
	askingPrice := decimal.Zero
	if req.AskingPrice != "" {
		var err error
		askingPrice, err = decimal.NewFromString(req.AskingPrice)
		if err != nil {
			return VehicleResponse{}, fmt.Errorf("invalid asking_price: %w", err)
		}
		if askingPrice.IsNegative() {
			return VehicleResponse{}, errors.New("asking_price must not be negative")
		}
	}

	vehicle := model.Vehicle{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Mileage:      req.Mileage,
		Fuel:         req.Fuel,
		Transmission: req.Transmission,
		Color:        req.Color,
		LicensePlate: req.LicensePlate,
		VIN:          req.VIN,
		AskingPrice:  askingPrice,
		Status:       model.VehicleAvailable,
		Description:  req.Description,
	}

	if err := s.vehicleRepo.Create(ctx, &vehicle); err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionCreateVehicle, vehicle.ID.String(), vehicle.Brand+" "+vehicle.Model, req)

	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id string, req UpdateVehicleRequest, userID string) (VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid vehicle id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByIDWithImages(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VehicleResponse{}, errors.New("vehicle not found")
		}
		return VehicleResponse{}, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.Fuel != nil {
		vehicle.Fuel = *req.Fuel
	}
	if req.Transmission != nil {
		vehicle.Transmission = *req.Transmission
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.LicensePlate != nil {
		vehicle.LicensePlate = *req.LicensePlate
	}
	if req.VIN != nil {
		vehicle.VIN = *req.VIN
	}
	if req.AskingPrice != nil {
		price, err := decimal.NewFromString(*req.AskingPrice)
		if err != nil {
			return VehicleResponse{}, fmt.Errorf("invalid asking_price: %w", err)
		}
		if price.IsNegative() {
			return VehicleResponse{}, errors.New("asking_price must not be negative")
		}
		vehicle.AskingPrice = price
	}
	if req.Description != nil {
		vehicle.Description = *req.Description
	}
	if req.Status != nil {
		if !validVehicleStatus(*req.Status) {
			return VehicleResponse{}, fmt.Errorf("invalid status %q", *req.Status)
		}
		vehicle.Status = *req.Status
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionUpdateVehicle, vehicle.ID.String(), vehicle.Brand+" "+vehicle.Model, req)

	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id string, userID string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("vehicle not found")
		}
		return fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.audit.Record(ctx, userID, model.ActionDeleteVehicle, id, vehicle.Brand+" "+vehicle.Model, map[string]string{"deleted_id": id})

	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid vehicle id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByIDWithImages(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VehicleResponse{}, errors.New("vehicle not found")
		}
		return VehicleResponse{}, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, filter repository.VehicleListFilter) ([]VehicleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Status != "" && !validVehicleStatus(filter.Status) {
		return nil, 0, fmt.Errorf("invalid status %q", filter.Status)
	}

	vehicles, total, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	res := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, toVehicleResponse(v))
	}
	return res, total, nil
}

func (s *vehicleService) AddImage(ctx context.Context, vehicleID string, req AddVehicleImageRequest) (VehicleImageResponse, error) {
	parsed, err := uuid.Parse(vehicleID)
	if err != nil {
		return VehicleImageResponse{}, fmt.Errorf("invalid vehicle id: %w", err)
	}

	if _, err := s.vehicleRepo.FindByID(ctx, parsed); err != nil {
		return VehicleImageResponse{}, errors.New("vehicle not found")
	}

	image := model.VehicleImage{
		VehicleID: parsed,
		URL:       req.URL,
		Position:  req.Position,
		IsPrimary: req.IsPrimary,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if req.IsPrimary {
			if err := s.vehicleRepo.ClearPrimaryImage(txCtx, parsed); err != nil {
				return err
			}
		}
		return s.vehicleRepo.AddImage(txCtx, &image)
	})
	if err != nil {
		return VehicleImageResponse{}, fmt.Errorf("failed to add image: %w", err)
	}

	return toImageResponse(image), nil
}

func (s *vehicleService) SetPrimaryImage(ctx context.Context, vehicleID, imageID string) error {
	vID, err := uuid.Parse(vehicleID)
	if err != nil {
		return fmt.Errorf("invalid vehicle id: %w", err)
	}
	imgID, err := uuid.Parse(imageID)
	if err != nil {
		return fmt.Errorf("invalid image id: %w", err)
	}

	image, err := s.vehicleRepo.FindImageByID(ctx, imgID)
	if err != nil {
		return errors.New("image not found")
	}
	if image.VehicleID != vID {
		return errors.New("image does not belong to this vehicle")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.vehicleRepo.ClearPrimaryImage(txCtx, vID); err != nil {
			return err
		}
		image.IsPrimary = true
		return s.vehicleRepo.UpdateImage(txCtx, image)
	})
}

func (s *vehicleService) DeleteImage(ctx context.Context, imageID string) error {
	imgID, err := uuid.Parse(imageID)
	if err != nil {
		return fmt.Errorf("invalid image id: %w", err)
	}
	if _, err := s.vehicleRepo.FindImageByID(ctx, imgID); err != nil {
		return errors.New("image not found")
	}
	return s.vehicleRepo.DeleteImage(ctx, imgID)
}

// --- Mapping ---

func toVehicleResponse(v model.Vehicle) VehicleResponse {
	images := make([]VehicleImageResponse, 0, len(v.Images))
	for _, img := range v.Images {
		images = append(images, toImageResponse(img))
	}

	return VehicleResponse{
		ID:           v.ID.String(),
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Mileage:      v.Mileage,
		Fuel:         v.Fuel,
		Transmission: v.Transmission,
		Color:        v.Color,
		LicensePlate: v.LicensePlate,
		VIN:          v.VIN,
		AskingPrice:  v.AskingPrice.StringFixed(2),
		Status:       v.Status,
		Description:  v.Description,
		Images:       images,
		CreatedAt:    v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toImageResponse(img model.VehicleImage) VehicleImageResponse {
	return VehicleImageResponse{
		ID:        img.ID.String(),
		URL:       img.URL,
		Position:  img.Position,
		IsPrimary: img.IsPrimary,
	}
}
