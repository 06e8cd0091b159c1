package salary

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSalaryRepo struct {
	byID      map[string]salary.Salary
	upsertFn  func(ctx context.Context, s salary.Salary) (salary.Salary, bool, error)
	lastSaved salary.Salary
}

func newFakeRepo(records ...salary.Salary) *fakeSalaryRepo {
	repo := &fakeSalaryRepo{byID: map[string]salary.Salary{}}
	for _, r := range records {
		repo.byID[r.ID] = r
	}
	return repo
}

func (f *fakeSalaryRepo) Upsert(ctx context.Context, s salary.Salary) (salary.Salary, bool, error) {
	f.lastSaved = s
	if f.upsertFn != nil {
		return f.upsertFn(ctx, s)
	}
	for id, existing := range f.byID {
		if existing.EmployeeID == s.EmployeeID && existing.Month == s.Month {
			s.ID = id
			f.byID[id] = s
			return s, false, nil
		}
	}
	f.byID[s.ID] = s
	return s, true, nil
}

func (f *fakeSalaryRepo) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	s, ok := f.byID[id]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return s, nil
}

func (f *fakeSalaryRepo) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	if _, ok := f.byID[s.ID]; !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	f.lastSaved = s
	f.byID[s.ID] = s
	return s, nil
}

func (f *fakeSalaryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return salary.ErrSalaryNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeSalaryRepo) ListByMonth(ctx context.Context, month string) ([]salary.Salary, error) {
	var out []salary.Salary
	for _, s := range f.byID {
		if s.Month == month {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Salary, error) {
	var out []salary.Salary
	for _, s := range f.byID {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) SummaryByMonth(ctx context.Context, month string) (salary.PayrollSummary, error) {
	summary := salary.PayrollSummary{Month: month}
	for _, s := range f.byID {
		if s.Month != month {
			continue
		}
		summary.TotalEmployees++
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(s.BaseSalary)
		summary.TotalBonus = summary.TotalBonus.Add(s.Bonus)
		summary.TotalDeductions = summary.TotalDeductions.Add(s.Deductions)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(s.NetSalary)
	}
	return summary, nil
}

const salaryID = "0190a4b2-7c3d-7e4f-8a5b-6c7d8e9f0a1b"

func sampleSalary() salary.Salary {
	name := "Ada Lovelace"
	s := salary.Salary{
		ID:           salaryID,
		EmployeeID:   "E001",
		EmployeeName: &name,
		Month:        "2024-02",
		BaseSalary:   decimal.RequireFromString("5000"),
		Bonus:        decimal.RequireFromString("250.50"),
		Deductions:   decimal.RequireFromString("100"),
		CreatedAt:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Recompute()
	return s
}

func TestCreateSalary(t *testing.T) {
	ctx := context.Background()

	t.Run("computes net and reports creation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewSalaryService(repo)

		resp, err := svc.CreateSalary(ctx, salary.CreateSalaryRequest{
			EmployeeID: "E001",
			Month:      "2024-02",
			BaseSalary: decimal.NewFromInt(1000),
			Bonus:      decimal.NewFromInt(200),
			Deductions: decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.True(t, resp.Salary.NetSalary.Equal(decimal.NewFromInt(1150)))
		assert.True(t, validator.IsValidUUID(resp.Salary.ID))
	})

	t.Run("second save for the month overwrites", func(t *testing.T) {
		repo := newFakeRepo(sampleSalary())
		svc := NewSalaryService(repo)

		resp, err := svc.CreateSalary(ctx, salary.CreateSalaryRequest{EmployeeID: "E001", Month: "2024-02", BaseSalary: decimal.NewFromInt(6000)})
		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, salaryID, resp.Salary.ID)
		assert.True(t, resp.Salary.NetSalary.Equal(decimal.NewFromInt(6000)))
	})

	t.Run("unknown employee", func(t *testing.T) {
		repo := newFakeRepo()
		repo.upsertFn = func(ctx context.Context, s salary.Salary) (salary.Salary, bool, error) {
			return salary.Salary{}, false, salary.ErrEmployeeNotFound
		}
		svc := NewSalaryService(repo)

		_, err := svc.CreateSalary(ctx, salary.CreateSalaryRequest{EmployeeID: "E404", Month: "2024-02"})
		assert.True(t, errors.Is(err, salary.ErrEmployeeNotFound))
	})

	t.Run("invalid month", func(t *testing.T) {
		svc := NewSalaryService(newFakeRepo())

		_, err := svc.CreateSalary(ctx, salary.CreateSalaryRequest{EmployeeID: "E001", Month: "Feb 2024"})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})
}

func TestUpdateSalary(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(sampleSalary())
	svc := NewSalaryService(repo)

	deductions := decimal.NewFromInt(500)
	resp, err := svc.UpdateSalary(ctx, salary.UpdateSalaryRequest{ID: salaryID, Deductions: &deductions})
	require.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(decimal.RequireFromString("4750.50")), resp.NetSalary.String())
	assert.True(t, resp.BaseSalary.Equal(decimal.NewFromInt(5000)))

	unchanged, err := svc.UpdateSalary(ctx, salary.UpdateSalaryRequest{ID: salaryID})
	require.NoError(t, err)
	assert.True(t, unchanged.NetSalary.Equal(resp.NetSalary))

	_, err = svc.UpdateSalary(ctx, salary.UpdateSalaryRequest{ID: "0190a4b2-7c3d-7e4f-8a5b-000000000000", Deductions: &deductions})
	assert.True(t, errors.Is(err, salary.ErrSalaryNotFound))
}

func TestUpdateSalary_NetOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(sampleSalary())
	svc := NewSalaryService(repo)

	huge := decimal.RequireFromString("999999999999.99")
	_, err := svc.UpdateSalary(ctx, salary.UpdateSalaryRequest{ID: salaryID, BaseSalary: &huge, Bonus: &huge})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "net_salary")

	stored, err := repo.GetByID(ctx, salaryID)
	require.NoError(t, err)
	assert.True(t, stored.BaseSalary.Equal(decimal.NewFromInt(5000)))
}

func TestGetAndDeleteSalary(t *testing.T) {
	ctx := context.Background()
	svc := NewSalaryService(newFakeRepo(sampleSalary()))

	_, err := svc.GetSalary(ctx, "not-a-uuid")
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	got, err := svc.GetSalary(ctx, salaryID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", *got.EmployeeName)

	require.NoError(t, svc.DeleteSalary(ctx, salaryID))
	assert.True(t, errors.Is(svc.DeleteSalary(ctx, salaryID), salary.ErrSalaryNotFound))
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := NewSalaryService(newFakeRepo(sampleSalary()))

	summary, err := svc.Summary(ctx, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalEmployees)
	assert.True(t, summary.TotalDeductions.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.TotalNetSalary.Equal(decimal.RequireFromString("5150.50")))

	_, err = svc.Summary(ctx, "2024-2")
	assert.True(t, errors.Is(err, salary.ErrInvalidMonth))
}

func TestExportMonth(t *testing.T) {
	ctx := context.Background()
	svc := NewSalaryService(newFakeRepo(sampleSalary()))

	doc, err := svc.ExportMonth(ctx, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, "payroll-2024-02.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(payrollSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Employee ID", header)

	name, err := f.GetCellValue(payrollSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)

	total, err := f.GetCellValue(payrollSheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	_, err = svc.ExportMonth(ctx, "2023-01")
	assert.True(t, errors.Is(err, salary.ErrEmptyPayroll))
}

func TestPayslip(t *testing.T) {
	ctx := context.Background()
	svc := NewSalaryService(newFakeRepo(sampleSalary()))

	doc, err := svc.Payslip(ctx, salaryID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "payslip-E001-2024-02.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}
