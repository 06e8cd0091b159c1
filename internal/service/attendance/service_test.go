package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []attendance.Record
	failFor map[string]error
	locked  []string
}

func (f *fakeAttendanceRepo) LockEmployeeDate(ctx context.Context, employeeID, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = append(f.locked, employeeID+"/"+date)
	return nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ExistsForEmployeeOnDate(ctx context.Context, employeeID, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) UpdateStatus(ctx context.Context, id string, status attendance.Status, at time.Time) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.ID == id {
			f.records[i].Status = status
			f.records[i].Timestamp = &at
			return f.records[i], nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[employeeID]; ok {
		return nil, err
	}
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	return attendance.FilterByDate(f.records, date), nil
}

func (f *fakeAttendanceRepo) ListAll(ctx context.Context) ([]attendance.Record, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeAttendanceRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(f.records))
	f.records = nil
	return n, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	listErr   error
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.listErr
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEmployeeRepo) ExistsByIDOrEmail(ctx context.Context, id, email string) (bool, bool, error) {
	return false, false, nil
}
func (f *fakeEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.employees)), nil
}
func (f *fakeEmployeeRepo) DeleteAll(ctx context.Context) (int64, error) { return 0, nil }

var fixedNow = time.Date(2024, 1, 7, 10, 30, 0, 0, time.UTC)

func newTestService(records []attendance.Record, employees []employee.Employee) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{records: records, failFor: map[string]error{}}
	// A single mutex stands in for the day lock held by the transaction.
	var txMu sync.Mutex
	svc := &AttendanceServiceImpl{
		attendanceRepo: repo,
		employeeRepo:   &fakeEmployeeRepo{employees: employees},
		loc:            time.UTC,
		now:            func() time.Time { return fixedNow },
		runInTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			txMu.Lock()
			defer txMu.Unlock()
			return fn(ctx)
		},
	}
	return svc, repo
}

func at(hour, minute int) *time.Time {
	t := time.Date(2024, 1, 7, hour, minute, 0, 0, time.UTC)
	return &t
}

var staff = []employee.Employee{
	{EmployeeID: "E001", FullName: "Ada"},
	{EmployeeID: "E002", FullName: "Grace"},
	{EmployeeID: "E003", FullName: "Linus"},
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("success stamps the write time", func(t *testing.T) {
		svc, repo := newTestService(nil, staff)

		resp, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "2024-01-07", Status: "present"})
		require.NoError(t, err)

		assert.True(t, validator.IsValidUUID(resp.ID))
		assert.Equal(t, "Present", resp.Status)
		require.NotNil(t, resp.Timestamp)
		assert.Equal(t, "2024-01-07T10:30:00Z", *resp.Timestamp)
		assert.Len(t, repo.records, 1)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := newTestService(nil, staff)

		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E404", Date: "2024-01-07", Status: "Present"})
		assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	})

	t.Run("duplicate day", func(t *testing.T) {
		svc, _ := newTestService([]attendance.Record{{ID: "r1", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusAbsent}}, staff)

		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "2024-01-07", Status: "Present"})
		assert.True(t, errors.Is(err, attendance.ErrAttendanceAlreadyMarked))
	})

	t.Run("leave cannot be written", func(t *testing.T) {
		svc, _ := newTestService(nil, staff)

		_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "2024-01-07", Status: "Leave"})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})
}

func TestMarkAttendance_ConcurrentSameDay(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(nil, staff)

	const callers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		dupes   int
		unknown []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "2024-01-07", Status: "Present"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, attendance.ErrAttendanceAlreadyMarked):
				dupes++
			default:
				unknown = append(unknown, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unknown)
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, dupes)
	assert.Len(t, repo.records, 1)
	assert.Len(t, repo.locked, callers)
	assert.Equal(t, "E001/2024-01-07", repo.locked[0])
}

func TestUpdateAttendance(t *testing.T) {
	ctx := context.Background()
	id := "0190a4b2-7c3d-7e4f-8a5b-6c7d8e9f0a1b"
	svc, _ := newTestService([]attendance.Record{{ID: id, EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusAbsent, Timestamp: at(9, 0)}}, staff)

	resp, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: id, Status: "Present"})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "Present", resp.Status)
	assert.Equal(t, "2024-01-07T10:30:00Z", *resp.Timestamp)

	_, err = svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: "0190a4b2-7c3d-7e4f-8a5b-000000000000", Status: "Present"})
	assert.True(t, errors.Is(err, attendance.ErrAttendanceNotFound))
}

func TestListAll_FiltersRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService([]attendance.Record{
		{ID: "a", EmployeeID: "E001", Date: "2024-01-04"},
		{ID: "b", EmployeeID: "E001", Date: "2024-01-05"},
		{ID: "c", EmployeeID: "E002", Date: "2024-01-10"},
	}, staff)

	got, err := svc.ListAll(ctx, attendance.ListAttendanceFilter{StartDate: "2024-01-05", EndDate: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	_, err = svc.ListAll(ctx, attendance.ListAttendanceFilter{StartDate: "2024-01-10", EndDate: "2024-01-05"})
	assert.Error(t, err)
}

func TestListByEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService([]attendance.Record{
		{ID: "a", EmployeeID: "E001", Date: "2024-01-04"},
		{ID: "b", EmployeeID: "E002", Date: "2024-01-05"},
	}, staff)

	got, err := svc.ListByEmployee(ctx, attendance.ListAttendanceFilter{EmployeeID: "E001"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestTodayStats_UsesEffectiveRecords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService([]attendance.Record{
		{ID: "1", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusAbsent, Timestamp: at(9, 0)},
		{ID: "2", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusPresent, Timestamp: at(9, 5)},
		{ID: "3", EmployeeID: "E002", Date: "2024-01-07", Status: attendance.StatusAbsent, Timestamp: at(8, 0)},
		{ID: "4", EmployeeID: "E003", Date: "2024-01-06", Status: attendance.StatusPresent},
	}, staff)

	stats, err := svc.TodayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.TodayStatsResponse{Date: "2024-01-07", TotalMarked: 2, Present: 1, Absent: 1}, stats)
}

func TestTodayStats_UsesConfiguredLocation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService([]attendance.Record{
		{ID: "1", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusPresent},
		{ID: "2", EmployeeID: "E002", Date: "2024-01-08", Status: attendance.StatusAbsent},
	}, staff)
	svc.loc = time.FixedZone("UTC+7", 7*60*60)
	svc.now = func() time.Time { return time.Date(2024, 1, 7, 20, 0, 0, 0, time.UTC) }

	stats, err := svc.TodayStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.TodayStatsResponse{Date: "2024-01-08", TotalMarked: 1, Absent: 1}, stats)
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	records := []attendance.Record{
		{ID: "1", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusAbsent, Timestamp: at(9, 0)},
		{ID: "2", EmployeeID: "E001", Date: "2024-01-07", Status: attendance.StatusPresent, Timestamp: at(9, 5)},
		{ID: "3", EmployeeID: "E002", Date: "2024-01-07", Status: attendance.StatusAbsent},
		{ID: "4", EmployeeID: "E003", Date: "2024-01-06", Status: attendance.StatusPresent},
	}

	t.Run("all marked", func(t *testing.T) {
		svc, _ := newTestService(records, staff)

		got, err := svc.Roster(ctx, attendance.RosterFilter{})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-07", got.Date)
		assert.Equal(t, attendance.RosterAll, got.Status)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, "E001", got.Entries[0].Employee.EmployeeID)
		assert.Equal(t, "2", got.Entries[0].Attendance.ID)
		assert.Equal(t, "E002", got.Entries[1].Employee.EmployeeID)
	})

	t.Run("present only", func(t *testing.T) {
		svc, _ := newTestService(records, staff)

		got, err := svc.Roster(ctx, attendance.RosterFilter{Status: attendance.RosterPresent})
		require.NoError(t, err)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "E001", got.Entries[0].Employee.EmployeeID)
	})

	t.Run("failed lookup degrades to unmarked", func(t *testing.T) {
		svc, repo := newTestService(records, staff)
		repo.failFor["E002"] = errors.New("connection reset")

		got, err := svc.Roster(ctx, attendance.RosterFilter{Status: attendance.RosterUnmarked})
		require.NoError(t, err)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, "E002", got.Entries[0].Employee.EmployeeID)
		assert.Nil(t, got.Entries[0].Attendance)
		assert.Equal(t, "E003", got.Entries[1].Employee.EmployeeID)
	})

	t.Run("explicit date", func(t *testing.T) {
		svc, _ := newTestService(records, staff)

		got, err := svc.Roster(ctx, attendance.RosterFilter{Date: "2024-01-06"})
		require.NoError(t, err)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "E003", got.Entries[0].Employee.EmployeeID)
	})

	t.Run("employee list failure aborts", func(t *testing.T) {
		svc, _ := newTestService(records, staff)
		svc.employeeRepo = &fakeEmployeeRepo{listErr: errors.New("db down")}

		_, err := svc.Roster(ctx, attendance.RosterFilter{})
		assert.Error(t, err)
	})
}
