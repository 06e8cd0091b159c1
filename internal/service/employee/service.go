package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/cache"
	"golang.org/x/sync/singleflight"
)

// ListCacheKey holds the cached employee list.
const ListCacheKey = "employees:list"

const listLoadTimeout = 10 * time.Second

// listCache is the part of cache.Store the service uses.
type listCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	cache        listCache
	sf           *singleflight.Group

	// cacheMu orders list cache writes against invalidations. generation is
	// bumped by every mutation; a load that started before the bump is not
	// written back.
	cacheMu    sync.Mutex
	generation uint64
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, store *cache.Store) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		cache:        store,
		sf:           &singleflight.Group{},
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	idTaken, emailTaken, err := s.employeeRepo.ExistsByIDOrEmail(ctx, req.EmployeeID, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing employee: %w", err)
	}
	if idTaken {
		return employee.EmployeeResponse{}, employee.ErrEmployeeExists
	}
	if emailTaken {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	// The repository maps unique violations, so a concurrent insert that
	// slips past the check above still surfaces as a conflict.
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.invalidateList(ctx)
	slog.Info("employee created", "employee_id", created.EmployeeID)

	return employee.ToResponse(created), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	var cached []employee.EmployeeResponse
	if s.cache.GetJSON(ctx, ListCacheKey, &cached) {
		return cached, nil
	}

	v, err, _ := s.sf.Do(ListCacheKey, func() (interface{}, error) {
		// The flight is shared, so it must outlive the caller that started it.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listLoadTimeout)
		defer cancel()

		gen := s.listGeneration()
		employees, err := s.employeeRepo.List(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}

		resp := employee.ToResponses(employees)
		s.storeList(loadCtx, gen, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]employee.EmployeeResponse), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}

	s.invalidateList(ctx)
	slog.Info("employee deleted", "employee_id", employeeID)
	return nil
}

func (s *EmployeeServiceImpl) listGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// storeList caches resp unless a mutation happened since gen was read.
func (s *EmployeeServiceImpl) storeList(ctx context.Context, gen uint64, resp []employee.EmployeeResponse) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.generation != gen {
		return
	}
	s.cache.SetJSON(ctx, ListCacheKey, resp)
}

func (s *EmployeeServiceImpl) invalidateList(ctx context.Context) {
	s.cacheMu.Lock()
	s.generation++
	s.cache.Invalidate(context.WithoutCancel(ctx), ListCacheKey)
	s.cacheMu.Unlock()

	// Callers arriving after the mutation start a fresh load.
	s.sf.Forget(ListCacheKey)
}
