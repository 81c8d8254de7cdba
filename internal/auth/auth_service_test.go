package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "github.com/AlfahrezaRico/backend/internal/auth/errors"
	"github.com/AlfahrezaRico/backend/internal/domain"
	"github.com/AlfahrezaRico/backend/internal/employee"
	employeeerrors "github.com/AlfahrezaRico/backend/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	byEmail map[string]*User
	created []*User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{byEmail: map[string]*User{}}
}

func (f *fakeAuthRepo) Create(ctx context.Context, user *User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.byEmail[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return &User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return &User{}, gorm.ErrRecordNotFound
}

type fakeRbacService struct {
	loadCalls int
}

func (f *fakeRbacService) LoadPolicy() error {
	f.loadCalls++
	return nil
}

func (f *fakeRbacService) Enforce(domain.EnforceRequest) (bool, error) {
	return true, nil
}

type fakeAuthEmployeeRepo struct {
	known     map[string]*employee.Employee
	findCalls int
}

func newFakeAuthEmployeeRepo() *fakeAuthEmployeeRepo {
	return &fakeAuthEmployeeRepo{known: map[string]*employee.Employee{}}
}

func (f *fakeAuthEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeAuthEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeAuthEmployeeRepo) FindAll(ctx context.Context, limit, offset int) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeAuthEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	f.findCalls++
	emp, ok := f.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return emp, nil
}

func (f *fakeAuthEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeAuthEmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeAuthEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func registerRequest(employeeID string) RegisterRequest {
	return RegisterRequest{
		EmployeeID: employeeID,
		Email:      "budi@kantor.id",
		Name:       "Budi Santoso",
		Password:   "rahasia-123",
	}
}

func TestRegister_InvalidEmployeeID(t *testing.T) {
	repo := newFakeAuthRepo()
	empRepo := newFakeAuthEmployeeRepo()
	svc := NewService(repo, &fakeRbacService{}, empRepo)

	_, err := svc.Register(context.Background(), registerRequest("bukan-uuid"))

	require.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	assert.Zero(t, empRepo.findCalls)
	assert.Empty(t, repo.created)
}

func TestRegister_UnknownEmployee(t *testing.T) {
	repo := newFakeAuthRepo()
	empRepo := newFakeAuthEmployeeRepo()
	svc := NewService(repo, &fakeRbacService{}, empRepo)

	_, err := svc.Register(context.Background(), registerRequest(uuid.NewString()))

	require.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.Empty(t, repo.created)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newFakeAuthRepo()
	empRepo := newFakeAuthEmployeeRepo()
	rbacSvc := &fakeRbacService{}
	svc := NewService(repo, rbacSvc, empRepo)

	empID := uuid.New()
	empRepo.known[empID.String()] = &employee.Employee{ID: empID}

	req := registerRequest(empID.String())
	resp, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, empID.String(), resp.EmployeeID)
	assert.Equal(t, "EMPLOYEE", resp.Role)
	assert.Equal(t, 1, rbacSvc.loadCalls)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, req.Password, stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)))
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "kunci-uji")

	repo := newFakeAuthRepo()
	svc := NewService(repo, &fakeRbacService{}, newFakeAuthEmployeeRepo())

	hashed, err := bcrypt.GenerateFromPassword([]byte("rahasia-123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	empID := uuid.New()
	repo.byEmail["budi@kantor.id"] = &User{
		ID:         uuid.New(),
		EmployeeID: &empID,
		Email:      "budi@kantor.id",
		Name:       "Budi Santoso",
		Password:   string(hashed),
		Role:       "HRD",
	}

	access, refresh, resp, err := svc.Login(context.Background(), "budi@kantor.id", "rahasia-123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "HRD", resp.Role)
	assert.Equal(t, empID.String(), resp.EmployeeID)

	_, _, _, err = svc.Login(context.Background(), "budi@kantor.id", "salah")
	require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "tidak-ada@kantor.id", "rahasia-123")
	require.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}
