package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/scheduler"
)

// Config holds configuration for output generation
type Config struct {
	Format       string
	OutputDir    string
	Verbose      bool
	ScheduleTime time.Duration
}

// DailySummary counts the slots placed on one work day by class
type DailySummary struct {
	Date         string `json:"date"`
	HighPriority int    `json:"mesa"`
	Regular      int    `json:"regular"`
	Total        int    `json:"total"`
}

// BuildDailySummaries groups slots by date and counts high-priority versus
// regular placements. Each slot's class is re-derived from its order, so the
// summary always agrees with the prioritizer's definition.
func BuildDailySummaries(result *scheduler.Result, orders []entities.Order) []DailySummary {
	ordersByID := make(map[entities.OrderID]entities.Order, len(orders))
	for _, order := range orders {
		ordersByID[order.OrderID] = order
	}

	byDate := make(map[string]*DailySummary)
	for _, slot := range result.Slots {
		date := slot.Date.Format("2006-01-02")
		summary, exists := byDate[date]
		if !exists {
			summary = &DailySummary{Date: date}
			byDate[date] = summary
		}

		if order, found := ordersByID[slot.OrderID]; found && order.IsHighPriority() {
			summary.HighPriority++
		} else {
			summary.Regular++
		}
		summary.Total++
	}

	summaries := make([]DailySummary, 0, len(byDate))
	for _, summary := range byDate {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date < summaries[j].Date
	})
	return summaries
}

// Generate creates output in the configured format
func Generate(result *scheduler.Result, orders []entities.Order, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, orders, config)
	case "json":
		return generateJSONOutput(result, orders, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *scheduler.Result, orders []entities.Order, config Config) error {
	fmt.Printf("📊 Layup Schedule Summary\n")
	fmt.Printf("=========================\n\n")

	fmt.Printf("Scheduled Orders: %d\n", len(result.Slots))
	fmt.Printf("Unscheduled Orders: %d\n", len(result.Unscheduled))
	if config.ScheduleTime > 0 {
		fmt.Printf("Scheduling Time: %v\n", config.ScheduleTime)
	}
	fmt.Println()

	if len(result.Slots) > 0 {
		fmt.Printf("📋 Schedule:\n")
		fmt.Printf("%-15s %-18s %-10s %-12s %-16s %-16s\n",
			"Order", "Mold", "Employee", "Date", "Start", "End")
		fmt.Printf("%-15s %-18s %-10s %-12s %-16s %-16s\n",
			"---------------", "------------------", "----------", "------------", "----------------", "----------------")

		for _, slot := range result.Slots {
			fmt.Printf("%-15s %-18s %-10s %-12s %-16s %-16s\n",
				slot.OrderID,
				slot.MoldID,
				slot.EmployeeID,
				slot.Date.Format("2006-01-02"),
				slot.StartTime.Format("2006-01-02 15:04"),
				slot.EndTime.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	summaries := BuildDailySummaries(result, orders)
	if len(summaries) > 0 {
		fmt.Printf("📅 Daily Summary:\n")
		for _, summary := range summaries {
			fmt.Printf("%s: %d Mesa Universal, %d Regular (Total: %d)\n",
				summary.Date, summary.HighPriority, summary.Regular, summary.Total)
		}
		fmt.Println()
	}

	if len(result.Unscheduled) > 0 {
		fmt.Printf("⚠️  Unscheduled Orders:\n")
		for _, orderID := range result.Unscheduled {
			fmt.Printf("  %s could not be placed within the horizon\n", orderID)
		}
		fmt.Println()
	}

	return nil
}

// jsonSchedule mirrors the planning pipeline's integration payload
type jsonSchedule struct {
	Schedule []jsonSlot              `json:"schedule"`
	Summary  map[string]DailySummary `json:"summary"`

	Unscheduled []string `json:"unscheduled,omitempty"`
}

type jsonSlot struct {
	OrderID       string `json:"order_id"`
	MoldID        string `json:"mold_id"`
	EmployeeID    string `json:"employee_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ScheduledDate string `json:"scheduled_date"`
}

// generateJSONOutput writes the machine-readable result
func generateJSONOutput(result *scheduler.Result, orders []entities.Order, config Config) error {
	payload := jsonSchedule{
		Schedule: make([]jsonSlot, 0, len(result.Slots)),
		Summary:  make(map[string]DailySummary),
	}

	for _, slot := range result.Slots {
		payload.Schedule = append(payload.Schedule, jsonSlot{
			OrderID:       string(slot.OrderID),
			MoldID:        string(slot.MoldID),
			EmployeeID:    string(slot.EmployeeID),
			StartTime:     slot.StartTime.Format("2006-01-02 15:04"),
			EndTime:       slot.EndTime.Format("2006-01-02 15:04"),
			ScheduledDate: slot.Date.Format("2006-01-02"),
		})
	}

	for _, summary := range BuildDailySummaries(result, orders) {
		payload.Summary[summary.Date] = summary
	}

	for _, orderID := range result.Unscheduled {
		payload.Unscheduled = append(payload.Unscheduled, string(orderID))
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schedule JSON: %w", err)
	}

	if config.OutputDir != "" {
		path := filepath.Join(config.OutputDir, "schedule.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if config.Verbose {
			fmt.Printf("✅ JSON output written to %s\n", path)
		}
		return nil
	}

	fmt.Println(string(data))
	return nil
}

// generateCSVOutput writes the slot list as CSV
func generateCSVOutput(result *scheduler.Result, config Config) error {
	out := os.Stdout
	if config.OutputDir != "" {
		path := filepath.Join(config.OutputDir, "schedule.csv")
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"order_id", "mold_id", "employee_id", "start_time", "end_time", "scheduled_date"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, slot := range result.Slots {
		record := []string{
			string(slot.OrderID),
			string(slot.MoldID),
			string(slot.EmployeeID),
			slot.StartTime.Format("2006-01-02 15:04"),
			slot.EndTime.Format("2006-01-02 15:04"),
			slot.Date.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}
