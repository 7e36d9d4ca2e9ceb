package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
)

// CatalogRepository persists the named-entity lookup tables (sections,
// faculty, rooms). Table names come from the CatalogKind whitelist, never
// from user input.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// List returns catalog rows ordered by name.
func (r *CatalogRepository) List(ctx context.Context, kind models.CatalogKind) ([]models.NamedEntity, error) {
	table := kind.Table()
	if table == "" {
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	query := fmt.Sprintf("SELECT id, name FROM %s ORDER BY name ASC", table)
	var items []models.NamedEntity
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return items, nil
}

// Create inserts a catalog row and returns it with its assigned id.
func (r *CatalogRepository) Create(ctx context.Context, kind models.CatalogKind, name string) (*models.NamedEntity, error) {
	table := kind.Table()
	if table == "" {
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING id", table)
	item := models.NamedEntity{Name: name}
	if err := r.db.QueryRowxContext(ctx, query, name).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("create %s row: %w", table, err)
	}
	return &item, nil
}

// Ensure registers a name if it is not present yet. Import runs call this
// for every row, so duplicate names are a no-op rather than an error.
func (r *CatalogRepository) Ensure(ctx context.Context, kind models.CatalogKind, name string) error {
	table := kind.Table()
	if table == "" {
		return fmt.Errorf("unknown catalog kind %q", kind)
	}
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", table)
	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("ensure %s row: %w", table, err)
	}
	return nil
}
