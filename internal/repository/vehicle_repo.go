package repository

import (
	"context"

	"github.com/jatochnietverkeerd/dd-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleListFilter narrows catalog and back-office vehicle listings.
type VehicleListFilter struct {
	Search string // matches brand or model
	Status string // BESCHIKBAAR, GERESERVEERD, VERKOCHT or empty for all
	Brand  string
	Page   int
	Limit  int
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	FindByIDWithImages(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, filter VehicleListFilter) ([]model.Vehicle, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	AddImage(ctx context.Context, image *model.VehicleImage) error
	UpdateImage(ctx context.Context, image *model.VehicleImage) error
	DeleteImage(ctx context.Context, id uuid.UUID) error
	FindImageByID(ctx context.Context, id uuid.UUID) (*model.VehicleImage, error)
	ClearPrimaryImage(ctx context.Context, vehicleID uuid.UUID) error
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vehicle{}).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := GetDB(ctx, r.db).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByIDWithImages(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := GetDB(ctx, r.db).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter VehicleListFilter) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Vehicle{})
	if filter.Search != "" {
		db = db.Where("brand ILIKE ? OR model ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Brand != "" {
		db = db.Where("brand ILIKE ?", filter.Brand)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("created_at desc").Offset(offset).Limit(filter.Limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Vehicle{}).Where("id = ?", id).Update("status", status).Error
}

func (r *vehicleRepository) AddImage(ctx context.Context, image *model.VehicleImage) error {
	return GetDB(ctx, r.db).Create(image).Error
}

func (r *vehicleRepository) UpdateImage(ctx context.Context, image *model.VehicleImage) error {
	return GetDB(ctx, r.db).Save(image).Error
}

func (r *vehicleRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VehicleImage{}).Error
}

func (r *vehicleRepository) FindImageByID(ctx context.Context, id uuid.UUID) (*model.VehicleImage, error) {
	var image model.VehicleImage
	if err := GetDB(ctx, r.db).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *vehicleRepository) ClearPrimaryImage(ctx context.Context, vehicleID uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.VehicleImage{}).
		Where("vehicle_id = ?", vehicleID).Update("is_primary", false).Error
}
