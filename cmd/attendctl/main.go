package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"attendtrack/internal/aggregate"
	"attendtrack/internal/config"
	"attendtrack/internal/store"
	"attendtrack/internal/student"
)

// attendctl is a small operator console over the same repositories the API
// uses: roster listing, daily summaries and branch rollups from a terminal.
func main() {
	cfg := config.Load()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(db.Client); err != nil {
		log.Printf("Warning: error ensuring schema: %v", err)
	}

	students := student.NewRepository(db.Client)
	aggregates := aggregate.NewService(aggregate.NewRepository(db.Client), students, nil)

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)
	for {
		displayMenu()
		switch readLine(reader) {
		case "1":
			listStudents(ctx, students)
		case "2":
			fmt.Print("Date (YYYY-MM-DD, empty for today): ")
			showDailySummary(ctx, aggregates, readLine(reader))
		case "3":
			fmt.Print("Window in days (default 30): ")
			showBranchTable(ctx, aggregates, readLine(reader))
		case "4":
			fmt.Print("Window in days (default 30): ")
			showTrend(ctx, aggregates, readLine(reader))
		case "5":
			color.Green("Bye!")
			return
		default:
			color.Red("Invalid choice. Please try again.")
		}
	}
}

func displayMenu() {
	color.Cyan("\n=== Attendance Console ===")
	fmt.Println("1. List students")
	fmt.Println("2. Daily summary")
	fmt.Println("3. Branch rollup")
	fmt.Println("4. Recent trend")
	fmt.Println("5. Exit")
	fmt.Print("Choice: ")
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func listStudents(ctx context.Context, repo *student.Repository) {
	students, err := repo.List(ctx)
	if err != nil {
		log.Printf("Error listing students: %v", err)
		return
	}

	color.Yellow("\nStudents (%d)", len(students))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Register Number", "Name", "Year", "Branch", "Last Attendance", "Status"})
	for _, s := range students {
		table.Append([]string{
			s.RegisterNumber,
			s.Name,
			strconv.Itoa(s.YearOfStudy),
			s.Branch,
			orDash(s.LastAttendance),
			orDash(s.LastStatus),
		})
	}
	table.Render()
}

func showDailySummary(ctx context.Context, svc *aggregate.Service, dateStr string) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			color.Red("Invalid date %q", dateStr)
			return
		}
		day = parsed
	}

	for _, mode := range []aggregate.Mode{aggregate.ModeLedgerOnly, aggregate.ModeRosterComplete} {
		d, err := svc.Daily(ctx, day, mode)
		if err != nil {
			log.Printf("Error computing daily summary: %v", err)
			return
		}
		color.Yellow("\n%s (%s)", d.Date, mode)
		fmt.Printf("  present %d / absent %d / total %d  ->  %d%%\n",
			d.Present, d.Absent, d.Total, d.Percentage)
	}
}

func showBranchTable(ctx context.Context, svc *aggregate.Service, daysStr string) {
	start, end := parseWindow(daysStr)
	rollup, err := svc.Branches(ctx, start, end)
	if err != nil {
		log.Printf("Error computing branch rollup: %v", err)
		return
	}

	color.Yellow("\nBranch rollup %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Branch", "Students", "Present Marks", "Percentage"})
	for _, b := range rollup {
		table.Append([]string{
			b.Branch,
			strconv.Itoa(b.TotalStudents),
			strconv.Itoa(b.Present),
			fmt.Sprintf("%d%%", b.Percentage),
		})
	}
	table.Render()
}

func showTrend(ctx context.Context, svc *aggregate.Service, daysStr string) {
	start, end := parseWindow(daysStr)
	days, err := svc.Range(ctx, start, end, aggregate.OrderDesc)
	if err != nil {
		log.Printf("Error computing trend: %v", err)
		return
	}

	color.Yellow("\nRecent days %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Present", "Absent", "Total", "Percentage"})
	for _, d := range days {
		table.Append([]string{
			d.Date,
			strconv.Itoa(d.Present),
			strconv.Itoa(d.Absent),
			strconv.Itoa(d.Total),
			fmt.Sprintf("%d%%", d.Percentage),
		})
	}
	table.Render()
}

func parseWindow(daysStr string) (start, end time.Time) {
	days := 30
	if daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil && parsed > 0 {
			days = parsed
		}
	}
	end = time.Now().UTC().Truncate(24 * time.Hour)
	return end.AddDate(0, 0, -(days - 1)), end
}

func orDash(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
