package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
)

func TestCatalogRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCatalogRepository(db)
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "Room 401").
		AddRow(2, "Room 402")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM rooms ORDER BY name ASC")).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.CatalogRooms)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Room 401", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCatalogRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sections (name) VALUES ($1) RETURNING id")).
		WithArgs("BSIT-3A").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	item, err := repo.Create(context.Background(), models.CatalogSections, "BSIT-3A")
	require.NoError(t, err)
	require.Equal(t, int64(5), item.ID)
	require.Equal(t, "BSIT-3A", item.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryEnsureIsIdempotent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCatalogRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty (name) VALUES ($1) ON CONFLICT (name) DO NOTHING")).
		WithArgs("Cruz, J.").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Ensure(context.Background(), models.CatalogFaculty, "Cruz, J."))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryRejectsUnknownKind(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCatalogRepository(db)
	_, err := repo.List(context.Background(), models.CatalogKind("programs"))
	require.Error(t, err)
	_, err = repo.Create(context.Background(), models.CatalogKind("programs"), "x")
	require.Error(t, err)
	require.Error(t, repo.Ensure(context.Background(), models.CatalogKind("programs"), "x"))
}
