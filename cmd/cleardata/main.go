// Command cleardata wipes every employee and attendance row. Salaries go with
// their employees.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrms-lite/internal/service/maintenance"
)

func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		fmt.Println("Warning: cache not reachable, skipping invalidation:", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	svc := maintenance.NewMaintenanceService(
		db,
		postgresql.NewAttendanceRepository(db),
		postgresql.NewEmployeeRepository(db),
		cache.NewStore(rdb, cfg.Redis.TTL),
	)

	before, err := svc.Counts(ctx)
	if err != nil {
		fmt.Println("Error counting rows:", err)
		os.Exit(1)
	}
	fmt.Printf("Found %d employees and %d attendance records.\n", before.Employees, before.Attendance)

	if !*yes {
		fmt.Print("Delete everything? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	result, err := svc.ClearAll(ctx)
	if err != nil {
		fmt.Println("Error clearing data:", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %d attendance records.\n", result.Attendance)
	fmt.Printf("Deleted %d employees.\n", result.Employees)
}
