package nik

import (
	"context"
	"database/sql"
	"testing"
	"time"

	nikerrors "github.com/AlfahrezaRico/backend/internal/nik/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNikRepo struct {
	byDepartment map[string]*DepartmentNikConfig
	byName       map[string]*DepartmentNikConfig
}

func (f *fakeNikRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeNikRepo) Create(ctx context.Context, cfg *DepartmentNikConfig) error { return nil }

func (f *fakeNikRepo) FindAll(ctx context.Context) ([]DepartmentNikConfig, error) { return nil, nil }

func (f *fakeNikRepo) FindByID(ctx context.Context, id string) (*DepartmentNikConfig, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNikRepo) FindActiveByDepartment(ctx context.Context, departmentID string) (*DepartmentNikConfig, error) {
	if cfg, ok := f.byDepartment[departmentID]; ok {
		return cfg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNikRepo) FindActiveByDepartmentName(ctx context.Context, name string) (*DepartmentNikConfig, error) {
	if cfg, ok := f.byName[name]; ok {
		return cfg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNikRepo) IssueNextSequence(ctx context.Context, configID string) (int64, error) {
	for _, cfg := range f.byDepartment {
		if cfg.ID.String() == configID {
			issued := cfg.CurrentSequence
			cfg.CurrentSequence++
			return issued, nil
		}
	}
	for _, cfg := range f.byName {
		if cfg.ID.String() == configID {
			issued := cfg.CurrentSequence
			cfg.CurrentSequence++
			return issued, nil
		}
	}
	return 0, gorm.ErrRecordNotFound
}

func (f *fakeNikRepo) Update(ctx context.Context, cfg *DepartmentNikConfig) error { return nil }

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestGenerate_IssuesAndAdvancesSequence(t *testing.T) {
	departmentID := uuid.New()
	cfg := &DepartmentNikConfig{
		ID:              uuid.New(),
		DepartmentID:    departmentID,
		Prefix:          "OPS",
		CurrentSequence: 7,
		SequenceLength:  3,
		IsActive:        true,
	}
	repo := &fakeNikRepo{
		byDepartment: map[string]*DepartmentNikConfig{departmentID.String(): cfg},
	}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewService(db, repo)

	got, err := svc.Generate(context.Background(), departmentID.String())
	require.NoError(t, err)

	assert.Equal(t, "OPS007", got.Nik)
	assert.Equal(t, int64(7), got.Sequence)
	assert.Equal(t, int64(8), got.NextSequence)
	assert.False(t, got.UsedFallback)
	assert.Equal(t, int64(8), cfg.CurrentSequence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerate_FallsBackToDefaultDepartment(t *testing.T) {
	defaultCfg := &DepartmentNikConfig{
		ID:              uuid.New(),
		DepartmentID:    uuid.New(),
		Prefix:          "EMP",
		CurrentSequence: 1,
		SequenceLength:  4,
		IsActive:        true,
	}
	repo := &fakeNikRepo{
		byDepartment: map[string]*DepartmentNikConfig{},
		byName:       map[string]*DepartmentNikConfig{"Operational": defaultCfg},
	}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewService(db, repo)

	got, err := svc.Generate(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, "EMP0001", got.Nik)
	assert.True(t, got.UsedFallback)
}

func TestGenerate_NoResolvableConfig(t *testing.T) {
	repo := &fakeNikRepo{
		byDepartment: map[string]*DepartmentNikConfig{},
		byName:       map[string]*DepartmentNikConfig{},
	}

	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	svc := NewService(db, repo)

	_, err := svc.Generate(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, nikerrors.ErrNotConfigured)
}

func TestGenerate_RejectsMalformedDepartmentID(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeNikRepo{})

	_, err := svc.Generate(context.Background(), "bukan-uuid")
	assert.ErrorIs(t, err, nikerrors.ErrInvalidDepartmentID)
}

func TestValidateFormat_OperationalAcceptsBothLegacyPrefixes(t *testing.T) {
	cfg := &DepartmentNikConfig{
		ID:             uuid.New(),
		Prefix:         "OPS19",
		SequenceLength: 3,
		IsActive:       true,
	}
	repo := &fakeNikRepo{
		byName: map[string]*DepartmentNikConfig{"Operational": cfg},
	}

	db, _ := newTestDB(t)
	svc := NewService(db, repo)

	cases := []struct {
		nik   string
		valid bool
	}{
		{"OPS003", true},
		{"OPS19003", true},
		{"OPS3", false},
		{"ABC003", false},
	}
	for _, tc := range cases {
		got, err := svc.ValidateFormat(context.Background(), ValidateFormatRequest{
			Nik:            tc.nik,
			DepartmentName: "Operational",
		})
		require.NoError(t, err)
		assert.Equal(t, tc.valid, got.Valid, "nik %s", tc.nik)
		assert.Len(t, got.AcceptedForms, 2)
	}
}

func TestValidateFormat_NonLegacyDepartmentUsesConfiguredPrefixOnly(t *testing.T) {
	cfg := &DepartmentNikConfig{
		ID:             uuid.New(),
		Prefix:         "FIN",
		SequenceLength: 3,
		IsActive:       true,
	}
	repo := &fakeNikRepo{
		byName: map[string]*DepartmentNikConfig{"Finance": cfg},
	}

	db, _ := newTestDB(t)
	svc := NewService(db, repo)

	got, err := svc.ValidateFormat(context.Background(), ValidateFormatRequest{
		Nik:            "FIN001",
		DepartmentName: "Finance",
	})
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Len(t, got.AcceptedForms, 1)
}

func TestValidateFormat_NotConfigured(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeNikRepo{byName: map[string]*DepartmentNikConfig{}})

	_, err := svc.ValidateFormat(context.Background(), ValidateFormatRequest{
		Nik:            "OPS001",
		DepartmentName: "Ghost",
	})
	assert.ErrorIs(t, err, nikerrors.ErrNotConfigured)
}

func TestFallbackNik_Shape(t *testing.T) {
	now := time.Unix(1700001234, 0)
	assert.Equal(t, "EMP001234", FallbackNik(now))

	assert.Regexp(t, `^EMP\d{6}$`, FallbackNik(time.Unix(3, 0)))
}
