package employee

import (
	"context"
	"testing"

	"github.com/AlfahrezaRico/backend/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportFile(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func importHeader() []any {
	return []any{"first_name", "last_name", "email", "phone", "address", "position", "department_id", "hire_date"}
}

func assertInvalidImportFile(t *testing.T, err error) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
}

func TestImportXlsx_PerRowFailureIsolation(t *testing.T) {
	fx := newEmployeeFixture(t, nil, 2, 0)
	deptID := uuid.NewString()

	file := buildImportFile(t, [][]any{
		importHeader(),
		{"Budi", "Santoso", "budi@example.com", "", "", "Staff", deptID, "2026-08-01"},
		{"Siti", "Aminah", "", "", "", "Staff", deptID, ""}, // email kosong
		{"Andi", "Wijaya", "andi@example.com", "", "", "Staff", deptID, ""},
	})

	summary, err := fx.svc.ImportXlsx(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 3)

	assert.Equal(t, 2, summary.Results[0].Row)
	assert.Equal(t, "imported", summary.Results[0].Status)
	assert.NotEmpty(t, summary.Results[0].Nik)

	assert.Equal(t, 3, summary.Results[1].Row)
	assert.Equal(t, "failed", summary.Results[1].Status)
	assert.NotEmpty(t, summary.Results[1].Error)

	assert.Equal(t, 4, summary.Results[2].Row)
	assert.Equal(t, "imported", summary.Results[2].Status)

	assert.Len(t, fx.repo.byID, 2)
}

func TestImportXlsx_FailedRowDoesNotAbortBatch(t *testing.T) {
	fx := newEmployeeFixture(t, nil, 1, 0)
	deptID := uuid.NewString()

	// department_id bukan uuid: baris gagal di service, baris berikut tetap jalan.
	file := buildImportFile(t, [][]any{
		importHeader(),
		{"Budi", "Santoso", "budi@example.com", "", "", "Staff", "not-a-uuid", ""},
		{"Siti", "Aminah", "siti@example.com", "", "", "Staff", deptID, ""},
	})

	summary, err := fx.svc.ImportXlsx(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, fx.repo.byID, 1)
}

func TestImportXlsx_HeaderOnly(t *testing.T) {
	fx := newEmployeeFixture(t, nil, 0, 0)

	file := buildImportFile(t, [][]any{importHeader()})

	_, err := fx.svc.ImportXlsx(context.Background(), file)
	assertInvalidImportFile(t, err)
}

func TestImportXlsx_WrongHeader(t *testing.T) {
	fx := newEmployeeFixture(t, nil, 0, 0)

	file := buildImportFile(t, [][]any{
		{"nama", "email", "telepon"},
		{"Budi", "budi@example.com", "0812"},
	})

	_, err := fx.svc.ImportXlsx(context.Background(), file)
	assertInvalidImportFile(t, err)
}

func TestImportXlsx_NotAnXlsxFile(t *testing.T) {
	fx := newEmployeeFixture(t, nil, 0, 0)

	_, err := fx.svc.ImportXlsx(context.Background(), []byte("bukan file xlsx"))
	assertInvalidImportFile(t, err)
}
