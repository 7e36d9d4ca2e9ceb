package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
)

type catalogRepository interface {
	List(ctx context.Context, kind models.CatalogKind) ([]models.NamedEntity, error)
	Create(ctx context.Context, kind models.CatalogKind, name string) (*models.NamedEntity, error)
	Ensure(ctx context.Context, kind models.CatalogKind, name string) error
}

// CreateNamedEntityRequest is the payload for registering a catalog name.
type CreateNamedEntityRequest struct {
	Name string `json:"name" validate:"required"`
}

// CatalogService manages the section/faculty/room lookup tables.
type CatalogService struct {
	repo      catalogRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService instantiates CatalogService.
func NewCatalogService(repo catalogRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, validator: validate, logger: logger}
}

// List returns catalog rows for one kind, ordered by name.
func (s *CatalogService) List(ctx context.Context, kind models.CatalogKind) ([]models.NamedEntity, error) {
	items, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list catalog")
	}
	return items, nil
}

// Create registers a new catalog name.
func (s *CatalogService) Create(ctx context.Context, kind models.CatalogKind, req CreateNamedEntityRequest) (*models.NamedEntity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid catalog payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be blank")
	}

	item, err := s.repo.Create(ctx, kind, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create catalog row")
	}
	return item, nil
}
