package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/salary"
)

func (c *Client) ListSalariesByMonth(ctx context.Context, month string) ([]salary.SalaryResponse, error) {
	var result []salary.SalaryResponse
	if err := c.do(ctx, http.MethodGet, "/salary/month/"+url.PathEscape(month), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListSalariesByEmployee(ctx context.Context, employeeID string) ([]salary.SalaryResponse, error) {
	var result []salary.SalaryResponse
	if err := c.do(ctx, http.MethodGet, "/salary/employee/"+url.PathEscape(employeeID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSalary upserts the salary for an employee and month.
func (c *Client) CreateSalary(ctx context.Context, req salary.CreateSalaryRequest) (salary.SaveSalaryResponse, error) {
	var result salary.SaveSalaryResponse
	err := c.do(ctx, http.MethodPost, "/salary", nil, req, &result)
	return result, err
}

func (c *Client) UpdateSalary(ctx context.Context, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	var result salary.SalaryResponse
	err := c.do(ctx, http.MethodPut, "/salary/"+url.PathEscape(req.ID), nil, req, &result)
	return result, err
}

func (c *Client) DeleteSalary(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/salary/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) PayrollSummary(ctx context.Context, month string) (salary.PayrollSummaryResponse, error) {
	var result salary.PayrollSummaryResponse
	err := c.do(ctx, http.MethodGet, "/salary/payroll/summary/"+url.PathEscape(month), nil, nil, &result)
	return result, err
}

// ExportPayroll downloads the xlsx workbook for month.
func (c *Client) ExportPayroll(ctx context.Context, month string) ([]byte, error) {
	return c.download(ctx, "/salary/payroll/export/"+url.PathEscape(month))
}
