// Command hrmsctl is a terminal client for a running HRMS API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
)

const usage = `usage: hrmsctl <command> [flags]

commands:
  dashboard  today's tallies, recent activity and the weekly trend
  roster     every employee with their status for a day
  history    one employee's attendance, optionally within a date range
  payroll    salaries and totals for a month, or export them to xlsx
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := apiclient.New(cfg.Client.BaseURL, cfg.Client.Timeout)
	out := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer out.Flush()

	args := os.Args[2:]
	switch os.Args[1] {
	case "dashboard":
		err = runDashboard(ctx, client, out, args)
	case "roster":
		err = runRoster(ctx, client, out, args)
	case "history":
		err = runHistory(ctx, client, out, args)
	case "payroll":
		err = runPayroll(ctx, client, out, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		out.Flush()
		fmt.Fprintln(os.Stderr, "Error:", apiclient.Message(err, err.Error()))
		os.Exit(1)
	}
}

func runDashboard(ctx context.Context, client *apiclient.Client, out *tabwriter.Writer, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	date := fs.String("date", "", "day to summarise (YYYY-MM-DD, default today)")
	days := fs.Int("days", 7, "trend window in days")
	_ = fs.Parse(args)

	ref := time.Now()
	if *date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -date %q", *date)
		}
		ref = parsed
	}
	day := ref.Format("2006-01-02")

	employees, err := client.ListEmployees(ctx)
	if err != nil {
		return err
	}
	all, err := client.ListAllAttendance(ctx, "", "")
	if err != nil {
		return err
	}

	records := make([]attendance.Record, 0, len(all))
	for _, a := range all {
		records = append(records, a.ToRecord())
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.EmployeeID] = e.FullName
	}

	todays := attendance.LatestByEmployee(attendance.FilterByDate(records, day))
	tallies := attendance.ComputeDailyTallies(todays)

	fmt.Fprintf(out, "Date\t%s\n", day)
	fmt.Fprintf(out, "Employees\t%d\n", len(employees))
	fmt.Fprintf(out, "Present\t%d\n", tallies.Present)
	fmt.Fprintf(out, "Absent\t%d\n", tallies.Absent)
	fmt.Fprintf(out, "Unmarked\t%d\n\n", tallies.Unmarked(len(employees)))

	fmt.Fprintln(out, "RECENT\tSTATUS\tDATE")
	for _, r := range attendance.RecentActivity(todays, 5) {
		name := names[r.EmployeeID]
		if name == "" {
			name = r.EmployeeID
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", name, r.Status, r.Date)
	}

	fmt.Fprintln(out, "\nDAY\tDATE\tPRESENT")
	for _, p := range attendance.ComputeTrailingWindow(records, *days, ref) {
		fmt.Fprintf(out, "%s\t%s\t%d\n", p.DayLabel, p.Date, p.PresentCount)
	}
	return nil
}

func runRoster(ctx context.Context, client *apiclient.Client, out *tabwriter.Writer, args []string) error {
	fs := flag.NewFlagSet("roster", flag.ExitOnError)
	date := fs.String("date", time.Now().Format("2006-01-02"), "day (YYYY-MM-DD)")
	status := fs.String("status", "all", "all, present, absent or unmarked")
	_ = fs.Parse(args)

	filter := attendance.RosterFilter{Date: *date, Status: attendance.RosterStatus(*status)}
	if err := filter.Validate(); err != nil {
		return err
	}

	entries, err := client.FetchRoster(ctx, filter.Date)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "EMPLOYEE ID\tNAME\tDEPARTMENT\tSTATUS")
	for _, e := range attendance.FilterRoster(entries, filter.Status) {
		state := "-"
		if e.Attendance != nil {
			state = e.Attendance.Status
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", e.Employee.EmployeeID, e.Employee.FullName, e.Employee.Department, state)
	}
	return nil
}

func runHistory(ctx context.Context, client *apiclient.Client, out *tabwriter.Writer, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	employeeID := fs.String("employee", "", "employee id (required)")
	start := fs.String("start", "", "first day, inclusive (YYYY-MM-DD)")
	end := fs.String("end", "", "last day, inclusive (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *employeeID == "" {
		return fmt.Errorf("-employee is required")
	}

	history, err := client.ListAttendance(ctx, *employeeID)
	if err != nil {
		return err
	}
	records := make([]attendance.Record, 0, len(history))
	for _, h := range history {
		records = append(records, h.ToRecord())
	}
	filtered, err := attendance.FilterByRange(records, *start, *end)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "DATE\tSTATUS\tRECORDED")
	for _, r := range filtered {
		recorded := "-"
		if r.Timestamp != nil {
			recorded = r.Timestamp.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", r.Date, r.Status, recorded)
	}
	fmt.Fprintf(out, "\n%d record(s)\n", len(filtered))
	return nil
}

func runPayroll(ctx context.Context, client *apiclient.Client, out *tabwriter.Writer, args []string) error {
	fs := flag.NewFlagSet("payroll", flag.ExitOnError)
	month := fs.String("month", time.Now().Format("2006-01"), "month (YYYY-MM)")
	export := fs.String("export", "", "write the xlsx export to this path instead of printing")
	_ = fs.Parse(args)

	if *export != "" {
		content, err := client.ExportPayroll(ctx, *month)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*export, content, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s (%d bytes)\n", *export, len(content))
		return nil
	}

	salaries, err := client.ListSalariesByMonth(ctx, *month)
	if err != nil {
		return err
	}
	summary, err := client.PayrollSummary(ctx, *month)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "EMPLOYEE ID\tNAME\tBASE\tBONUS\tDEDUCTIONS\tNET")
	for _, s := range salaries {
		name := s.EmployeeID
		if s.EmployeeName != nil {
			name = *s.EmployeeName
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\n", s.EmployeeID, name,
			s.BaseSalary.StringFixed(2), s.Bonus.StringFixed(2), s.Deductions.StringFixed(2), s.NetSalary.StringFixed(2))
	}
	fmt.Fprintf(out, "TOTAL (%d)\t\t%s\t%s\t%s\t%s\n", summary.TotalEmployees,
		summary.TotalBaseSalary.StringFixed(2), summary.TotalBonus.StringFixed(2),
		summary.TotalDeductions.StringFixed(2), summary.TotalNetSalary.StringFixed(2))
	return nil
}
