package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// attendanceColumns renders date as YYYY-MM-DD so it scans straight into Record.Date.
const attendanceColumns = `id::text, employee_id, to_char(date, 'YYYY-MM-DD'), status, timestamp`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		rec    attendance.Record
		status string
	)
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &status, &rec.Timestamp); err != nil {
		return attendance.Record{}, err
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_id, date, status, timestamp)
		VALUES ($1, $2, $3::text::date, $4, $5)
		RETURNING ` + attendanceColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, string(record.Status), record.Timestamp,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to insert attendance for %s on %s: %w", record.EmployeeID, record.Date, err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance %s: %w", id, err)
	}
	return rec, nil
}

// ExistsForEmployeeOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ExistsForEmployeeOnDate(ctx context.Context, employeeID string, date string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM attendance WHERE employee_id = $1 AND date = $2::text::date)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance for %s on %s: %w", employeeID, date, err)
	}
	return exists, nil
}

// LockEmployeeDate implements attendance.AttendanceRepository. Outside a
// transaction the lock is released as soon as the statement returns.
func (r *attendanceRepositoryImpl) LockEmployeeDate(ctx context.Context, employeeID string, date string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`, employeeID, date); err != nil {
		return fmt.Errorf("failed to lock attendance for %s on %s: %w", employeeID, date, err)
	}
	return nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, id string, status attendance.Status, at time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET status = $1, timestamp = $2
		WHERE id = $3
		RETURNING ` + attendanceColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, string(status), at, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance %s: %w", id, err)
	}
	return rec, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		ORDER BY date DESC, timestamp DESC NULLS LAST
	`
	records, err := r.list(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", employeeID, err)
	}
	return records, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE date = $1::text::date
		ORDER BY timestamp NULLS FIRST
	`
	records, err := r.list(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance on %s: %w", date, err)
	}
	return records, nil
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListAll(ctx context.Context) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		ORDER BY date DESC, timestamp DESC NULLS LAST
	`
	records, err := r.list(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// Count implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}

// DeleteAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}
