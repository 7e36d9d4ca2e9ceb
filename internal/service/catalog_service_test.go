package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
)

func TestCatalogServiceCreateTrimsName(t *testing.T) {
	svc := NewCatalogService(&catalogRepoStub{}, nil, nil)

	item, err := svc.Create(context.Background(), models.CatalogRooms, CreateNamedEntityRequest{Name: "  Room 401  "})
	require.NoError(t, err)
	assert.Equal(t, "Room 401", item.Name)
}

func TestCatalogServiceCreateRejectsBlankName(t *testing.T) {
	svc := NewCatalogService(&catalogRepoStub{}, nil, nil)

	_, err := svc.Create(context.Background(), models.CatalogRooms, CreateNamedEntityRequest{Name: "   "})
	require.Error(t, err)
}
