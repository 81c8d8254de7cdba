package department

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	departmenterrors "github.com/AlfahrezaRico/backend/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDepartmentRepo struct {
	byID  map[string]*Department
	inUse map[string]bool
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{byID: map[string]*Department{}, inUse: map[string]bool{}}
}

func (f *fakeDepartmentRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeDepartmentRepo) Create(ctx context.Context, dept *Department) error {
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Name, dept.Name) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_department_name"}
		}
	}
	f.byID[dept.ID.String()] = dept
	return nil
}

func (f *fakeDepartmentRepo) FindAll(ctx context.Context) ([]Department, error) {
	var out []Department
	for _, dept := range f.byID {
		out = append(out, *dept)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) FindByID(ctx context.Context, id string) (*Department, error) {
	if dept, ok := f.byID[id]; ok {
		return dept, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepo) FindByName(ctx context.Context, name string) (*Department, error) {
	for _, dept := range f.byID {
		if strings.EqualFold(dept.Name, name) {
			return dept, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, dept *Department) error {
	f.byID[dept.ID.String()] = dept
	return nil
}

func (f *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	if f.inUse[id] {
		return &pgconn.PgError{Code: "23503", ConstraintName: "fk_employees_department"}
	}
	delete(f.byID, id)
	return nil
}

func newDepartmentService(t *testing.T, repo Repository, commits, rollbacks int) Service {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < commits+rollbacks; i++ {
		mock.ExpectBegin()
	}
	for i := 0; i < commits; i++ {
		mock.ExpectCommit()
	}
	for i := 0; i < rollbacks; i++ {
		mock.ExpectRollback()
	}
	return NewService(db, repo)
}

func TestCreateDepartment_TrimsName(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newDepartmentService(t, repo, 1, 0)

	got, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "  Finance  "})
	require.NoError(t, err)
	assert.Equal(t, "Finance", got.Name)
}

func TestCreateDepartment_DuplicateName(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newDepartmentService(t, repo, 1, 1)

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Finance"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateDepartmentRequest{Name: "Finance"})
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameTaken)
}

func TestGetDepartmentByID_NotFound(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newDepartmentService(t, repo, 0, 0)

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestDeleteDepartment_InUse(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newDepartmentService(t, repo, 1, 1)

	created, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Operational"})
	require.NoError(t, err)
	repo.inUse[created.ID] = true

	// Departemen yang masih dirujuk karyawan tidak boleh terhapus.
	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}
