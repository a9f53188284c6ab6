package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/DanillS/doors-web/internal/domain"
	doorrepo "github.com/DanillS/doors-web/internal/repository/door"
)

var (
	// ErrNameRequired rejects a submitted door without a name.
	ErrNameRequired = errors.New("name required")
	// ErrNegativePrice rejects a negative price; prices are whole
	// non-negative currency units.
	ErrNegativePrice = errors.New("price must not be negative")
)

// Service exposes the catalog operations the HTTP layer consumes.
type Service struct {
	repo doorrepo.Repository
}

func New(repo doorrepo.Repository) *Service {
	return &Service{repo: repo}
}

// DoorInput mirrors the submitted door record. Optional fields left
// empty are filled with catalog defaults on create.
type DoorInput struct {
	Name          string                `json:"name"`
	Price         int64                 `json:"price"`
	BasePrice     *int64                `json:"basePrice,omitempty"`
	Material      string                `json:"material"`
	Size          string                `json:"size"`
	Color         string                `json:"color"`
	Glass         string                `json:"glass"`
	TearType      string                `json:"tearType"`
	Description   string                `json:"description"`
	Image         string                `json:"image"`
	Images        []string              `json:"images"`
	ColorVariants []domain.ColorVariant `json:"colorVariants"`
	IsActive      *bool                 `json:"isActive"`
}

// List returns catalog rows newest first. The admin view includes
// inactive rows; the public view does not.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]domain.Door, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Door, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a door, filling defaults for omitted optional fields:
// empty images list, default glass and opening type, active unless
// specified otherwise.
func (s *Service) Create(ctx context.Context, in DoorInput) (*domain.Door, error) {
	door, err := doorFromInput(in)
	if err != nil {
		return nil, err
	}
	if door.Glass == "" {
		door.Glass = domain.DefaultGlass
	}
	if door.TearType == "" {
		door.TearType = domain.DefaultTearType
	}
	return s.repo.Create(ctx, door)
}

// Update replaces the mutable fields of an existing door. BasePrice is
// not touched here; only the bulk price adjuster reads it and only a
// direct import sets it.
func (s *Service) Update(ctx context.Context, id int64, in DoorInput) (*domain.Door, error) {
	door, err := doorFromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, door)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Ping performs the keep-alive catalog read.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func doorFromInput(in DoorInput) (domain.Door, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Door{}, ErrNameRequired
	}
	if in.Price < 0 {
		return domain.Door{}, ErrNegativePrice
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	return domain.Door{
		Name:          in.Name,
		Price:         in.Price,
		BasePrice:     in.BasePrice,
		Material:      in.Material,
		Size:          in.Size,
		Color:         in.Color,
		Glass:         in.Glass,
		TearType:      in.TearType,
		Description:   in.Description,
		Image:         in.Image,
		Images:        images,
		ColorVariants: in.ColorVariants,
		IsActive:      active,
	}, nil
}
