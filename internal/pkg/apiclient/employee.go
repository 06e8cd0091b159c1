package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
)

func (c *Client) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	var result []employee.EmployeeResponse
	if err := c.do(ctx, http.MethodGet, "/employees", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	var result employee.EmployeeResponse
	err := c.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(employeeID), nil, nil, &result)
	return result, err
}

func (c *Client) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	var result employee.EmployeeResponse
	err := c.do(ctx, http.MethodPost, "/employees", nil, req, &result)
	return result, err
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(employeeID), nil, nil, nil)
}
