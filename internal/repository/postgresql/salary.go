package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgForeignKeyViolation is raised when employee_id does not reference an employee.
const pgForeignKeyViolation = "23503"

const salaryColumns = `s.id::text, s.employee_id, s.month, s.base_salary, s.bonus, s.deductions,
	s.net_salary, s.created_at, s.updated_at, e.full_name`

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

func scanSalary(row pgx.Row, extra ...interface{}) (salary.Salary, error) {
	var s salary.Salary
	dest := []interface{}{
		&s.ID, &s.EmployeeID, &s.Month, &s.BaseSalary, &s.Bonus, &s.Deductions,
		&s.NetSalary, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return salary.Salary{}, err
	}
	return s, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// Upsert implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Upsert(ctx context.Context, s salary.Salary) (salary.Salary, bool, error) {
	q := GetQuerier(ctx, r.db)

	// xmax is zero only for freshly inserted tuples.
	query := `
		WITH s AS (
			INSERT INTO salaries (id, employee_id, month, base_salary, bonus, deductions, net_salary)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT ON CONSTRAINT salaries_employee_month_key DO UPDATE
			SET base_salary = EXCLUDED.base_salary,
				bonus = EXCLUDED.bonus,
				deductions = EXCLUDED.deductions,
				net_salary = EXCLUDED.net_salary,
				updated_at = NOW()
			RETURNING *, (xmax = 0) AS inserted
		)
		SELECT ` + salaryColumns + `, s.inserted
		FROM s
		LEFT JOIN employees e ON e.employee_id = s.employee_id
	`

	var created bool
	saved, err := scanSalary(q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.Month, s.BaseSalary, s.Bonus, s.Deductions, s.NetSalary,
	), &created)
	if err != nil {
		if isForeignKeyViolation(err) {
			return salary.Salary{}, false, salary.ErrEmployeeNotFound
		}
		return salary.Salary{}, false, fmt.Errorf("failed to save salary for %s in %s: %w", s.EmployeeID, s.Month, err)
	}
	return saved, created, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salaries s
		LEFT JOIN employees e ON e.employee_id = s.employee_id
		WHERE s.id = $1
	`

	s, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary %s: %w", id, err)
	}
	return s, nil
}

// Update implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH s AS (
			UPDATE salaries
			SET base_salary = $1, bonus = $2, deductions = $3, net_salary = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING *
		)
		SELECT ` + salaryColumns + `
		FROM s
		LEFT JOIN employees e ON e.employee_id = s.employee_id
	`

	updated, err := scanSalary(q.QueryRow(ctx, query, s.BaseSalary, s.Bonus, s.Deductions, s.NetSalary, s.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to update salary %s: %w", s.ID, err)
	}
	return updated, nil
}

// Delete implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}
	return nil
}

func (r *salaryRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	salaries := make([]salary.Salary, 0)
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return salaries, nil
}

// ListByMonth implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListByMonth(ctx context.Context, month string) ([]salary.Salary, error) {
	query := `
		SELECT ` + salaryColumns + `
		FROM salaries s
		LEFT JOIN employees e ON e.employee_id = s.employee_id
		WHERE s.month = $1
		ORDER BY s.created_at, s.id
	`
	salaries, err := r.list(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries for %s: %w", month, err)
	}
	return salaries, nil
}

// ListByEmployee implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Salary, error) {
	query := `
		SELECT ` + salaryColumns + `
		FROM salaries s
		LEFT JOIN employees e ON e.employee_id = s.employee_id
		WHERE s.employee_id = $1
		ORDER BY s.month DESC
	`
	salaries, err := r.list(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries for employee %s: %w", employeeID, err)
	}
	return salaries, nil
}

// SummaryByMonth implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) SummaryByMonth(ctx context.Context, month string) (salary.PayrollSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(base_salary), 0),
			COALESCE(SUM(bonus), 0),
			COALESCE(SUM(deductions), 0),
			COALESCE(SUM(net_salary), 0)
		FROM salaries
		WHERE month = $1
	`

	summary := salary.PayrollSummary{Month: month}
	err := q.QueryRow(ctx, query, month).Scan(
		&summary.TotalEmployees,
		&summary.TotalBaseSalary,
		&summary.TotalBonus,
		&summary.TotalDeductions,
		&summary.TotalNetSalary,
	)
	if err != nil {
		return salary.PayrollSummary{}, fmt.Errorf("failed to summarise payroll for %s: %w", month, err)
	}
	return summary, nil
}
