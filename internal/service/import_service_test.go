package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
)

type importRepoStub struct {
	created    []models.ScheduleEntry
	deleteAlls int
	resets     int
	err        error
}

func (s *importRepoStub) BulkCreate(ctx context.Context, entries []models.ScheduleEntry) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, entries...)
	return nil
}

func (s *importRepoStub) DeleteAll(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.deleteAlls++
	return nil
}

func (s *importRepoStub) Reset(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.resets++
	return nil
}

type catalogRepoStub struct {
	ensured map[string][]string
	err     error
}

func (s *catalogRepoStub) List(ctx context.Context, kind models.CatalogKind) ([]models.NamedEntity, error) {
	return nil, s.err
}

func (s *catalogRepoStub) Create(ctx context.Context, kind models.CatalogKind, name string) (*models.NamedEntity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.NamedEntity{ID: 1, Name: name}, nil
}

func (s *catalogRepoStub) Ensure(ctx context.Context, kind models.CatalogKind, name string) error {
	if s.err != nil {
		return s.err
	}
	if s.ensured == nil {
		s.ensured = map[string][]string{}
	}
	s.ensured[string(kind)] = append(s.ensured[string(kind)], name)
	return nil
}

const sampleCSVHeader = "Program,Section,Course Code,Course Description,Units,# of Hours,Time (LPU Std),Days,Room,Faculty\n"

func TestImportServiceImportsRows(t *testing.T) {
	repo := &importRepoStub{}
	catalog := &catalogRepoStub{}
	cache := &invalidatorStub{}
	svc := NewImportService(repo, catalog, cache, nil)

	csv := sampleCSVHeader +
		"BSIT,BSIT-3A,CS101,Intro to Computing,3,3,10:00a-12:00p,MWF,Room 401,\"Cruz, J.\"\n" +
		"BSIT,BSIT-3A,CS102,Data Structures,3,3,tba,MWF,Room 402,\"Cruz, J.\"\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsTotal)
	assert.Equal(t, 2, result.RowsImported)
	assert.Equal(t, 0, result.RowsSkipped)
	assert.Empty(t, result.Errors)

	require.Len(t, repo.created, 2)
	first := repo.created[0]
	assert.Equal(t, "M,W,F", first.Days)
	require.NotNil(t, first.StartMinutes)
	assert.Equal(t, 600, *first.StartMinutes)

	second := repo.created[1]
	assert.Equal(t, "TBA", second.TimeDisplay)
	assert.Equal(t, "TBA", second.Days)
	assert.Nil(t, second.StartMinutes)

	assert.Equal(t, []string{"BSIT-3A", "BSIT-3A"}, catalog.ensured["sections"])
	assert.Equal(t, 1, cache.calls)
}

func TestImportServiceSkipsBadRows(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, &catalogRepoStub{}, nil, nil)

	csv := sampleCSVHeader +
		"BSIT,BSIT-3A,CS101,Intro,3,3,25:00a-12:00p,MWF,R1,A\n" +
		"BSIT,BSIT-3A,CS102,Data,3,3,10:00a-12:00p,QQ,R1,A\n" +
		"BSIT,BSIT-3A,CS103,Nets,3,3,10:00a-12:00p,MWF,R1,A\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.RowsTotal)
	assert.Equal(t, 1, result.RowsImported)
	assert.Equal(t, 2, result.RowsSkipped)
	require.Len(t, result.Errors, 2)

	// Spreadsheet row numbers: header is row 1, data starts at row 2.
	assert.Equal(t, 2, result.Errors[0].RowIndex)
	assert.Contains(t, result.Errors[0].Reason, "Time (LPU Std)")
	assert.Equal(t, 3, result.Errors[1].RowIndex)
	assert.Contains(t, result.Errors[1].Reason, "Days")
	require.Len(t, repo.created, 1)
}

func TestImportServiceMissingColumns(t *testing.T) {
	svc := NewImportService(&importRepoStub{}, &catalogRepoStub{}, nil, nil)

	csv := "Program,Section\nBSIT,BSIT-3A\n"
	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{})
	require.NoError(t, err)

	assert.Contains(t, result.MissingColumns, "Time (LPU Std)")
	assert.Contains(t, result.MissingColumns, "Faculty")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].RowIndex)
	assert.Equal(t, 0, result.RowsImported)
}

func TestImportServicePreviewWritesNothing(t *testing.T) {
	repo := &importRepoStub{}
	catalog := &catalogRepoStub{}
	cache := &invalidatorStub{}
	svc := NewImportService(repo, catalog, cache, nil)

	csv := sampleCSVHeader + "BSIT,BSIT-3A,CS101,Intro,3,3,10:00a-12:00p,MWF,R1,A\n"
	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{Preview: true, Replace: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.RowsImported)
	assert.Empty(t, repo.created)
	assert.Equal(t, 0, repo.deleteAlls)
	assert.Empty(t, catalog.ensured)
	assert.Equal(t, 0, cache.calls)
}

func TestImportServiceReplaceClearsFirst(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, &catalogRepoStub{}, nil, nil)

	csv := sampleCSVHeader + "BSIT,BSIT-3A,CS101,Intro,3,3,10:00a-12:00p,MWF,R1,A\n"
	_, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{Replace: true})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.deleteAlls)
	require.Len(t, repo.created, 1)
}

func TestImportServiceReplaceKeepsDataWhenAllRowsRejected(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, &catalogRepoStub{}, nil, nil)

	csv := sampleCSVHeader +
		"BSIT,BSIT-3A,CS101,Intro,3,3,25:00a-12:00p,MWF,R1,A\n" +
		"BSIT,BSIT-3A,CS102,Data,3,3,10:00a-12:00p,QQ,R1,A\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{Replace: true})
	require.NoError(t, err)

	assert.Equal(t, 0, result.RowsImported)
	assert.Equal(t, 2, result.RowsSkipped)
	assert.Equal(t, 0, repo.deleteAlls)
	assert.Empty(t, repo.created)
}

func TestImportServiceToleratesBOMAndSynonyms(t *testing.T) {
	repo := &importRepoStub{}
	svc := NewImportService(repo, &catalogRepoStub{}, nil, nil)

	csv := "\uFEFFprogram,SECTION,course code,Course Description,units,# of hours,TIME (LPU STD),days,room,FACULTY,Unnamed: 10\n" +
		"BSIT,BSIT-3A,CS101,Intro,3,3,10:00a-12:00p,MWF,R1,A,\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv), ImportOptions{})
	require.NoError(t, err)

	assert.Empty(t, result.MissingColumns)
	assert.Equal(t, 1, result.RowsImported)
}

func TestImportServiceReset(t *testing.T) {
	repo := &importRepoStub{}
	cache := &invalidatorStub{}
	svc := NewImportService(repo, &catalogRepoStub{}, cache, nil)

	require.NoError(t, svc.Reset(context.Background()))
	assert.Equal(t, 1, repo.resets)
	assert.Equal(t, 1, cache.calls)
}
