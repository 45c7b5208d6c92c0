package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/infrastructure/persistence/sqlite"
	"github.com/moldworks/layup/pkg/infrastructure/repositories/csv"
	"github.com/moldworks/layup/pkg/infrastructure/repositories/scenario"
	"github.com/moldworks/layup/pkg/interfaces/cli/output"
	"github.com/moldworks/layup/pkg/scheduler"
)

// Config holds configuration for the schedule command
type Config struct {
	ScenarioDir   string
	ScenarioFile  string
	OrdersFile    string
	MoldsFile     string
	EmployeesFile string
	OutputDir     string
	Format        string
	Horizon       string
	MaxWeeks      int
	HistoryDB     string
	Verbose       bool
	Help          bool
}

// ScheduleCommand handles the main scheduling execution logic
type ScheduleCommand struct {
	config Config
}

// NewScheduleCommand creates a new schedule command with the given configuration
func NewScheduleCommand(config Config) *ScheduleCommand {
	return &ScheduleCommand{
		config: config,
	}
}

// Execute runs the schedule command
func (c *ScheduleCommand) Execute() error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	orders, molds, employees, engineConfig, err := c.loadInputs()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		highPriority := 0
		for _, order := range orders {
			if order.IsHighPriority() {
				highPriority++
			}
		}
		fmt.Printf("📋 Processing %d orders:\n", len(orders))
		fmt.Printf("   • %d Mesa Universal/Production orders (%d/day limit)\n", highPriority, scheduler.HighPriorityDailyQuota)
		fmt.Printf("   • %d Regular orders\n", len(orders)-highPriority)
		fmt.Printf("   • %d molds, %d employees, %d week horizon\n\n", len(molds), len(employees), engineConfig.MaxWeeks)
	}

	engine := scheduler.NewEngineWithConfig(molds, employees, engineConfig)

	startTime := time.Now()
	result := engine.Schedule(orders)
	scheduleTime := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("✅ Scheduling completed in %v: %d placed, %d unscheduled\n\n",
			scheduleTime, len(result.Slots), len(result.Unscheduled))
	}

	if c.config.HistoryDB != "" {
		if err := c.recordRun(result, engineConfig); err != nil {
			return fmt.Errorf("failed to record run history: %w", err)
		}
	}

	outputConfig := output.Config{
		Format:       c.config.Format,
		OutputDir:    c.config.OutputDir,
		Verbose:      c.config.Verbose,
		ScheduleTime: scheduleTime,
	}

	if err := output.Generate(result, orders, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// loadInputs resolves the configured input source into rosters plus engine
// configuration.
func (c *ScheduleCommand) loadInputs() ([]entities.Order, []entities.Mold, []entities.Employee, scheduler.Config, error) {
	engineConfig := scheduler.Config{MaxWeeks: c.config.MaxWeeks}
	if engineConfig.MaxWeeks <= 0 {
		engineConfig.MaxWeeks = scheduler.DefaultMaxWeeks
	}

	if c.config.Horizon != "" {
		horizon, err := time.Parse("2006-01-02", c.config.Horizon)
		if err != nil {
			return nil, nil, nil, engineConfig, fmt.Errorf("invalid -horizon %q (expected YYYY-MM-DD)", c.config.Horizon)
		}
		engineConfig.Horizon = horizon
	}

	if c.config.ScenarioFile != "" {
		loaded, err := scenario.LoadFile(c.config.ScenarioFile)
		if err != nil {
			return nil, nil, nil, engineConfig, fmt.Errorf("error loading scenario: %w", err)
		}
		// Command-line flags win over the scenario file's settings.
		if c.config.MaxWeeks <= 0 && loaded.MaxWeeks > 0 {
			engineConfig.MaxWeeks = loaded.MaxWeeks
		}
		if c.config.Horizon == "" && !loaded.Horizon.IsZero() {
			engineConfig.Horizon = loaded.Horizon
		}
		return loaded.Orders, loaded.Molds, loaded.Employees, engineConfig, nil
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return nil, nil, nil, engineConfig, fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	orderPtrs, err := csvLoader.LoadOrders(files["Orders"])
	if err != nil {
		return nil, nil, nil, engineConfig, fmt.Errorf("error loading orders: %w", err)
	}

	moldPtrs, err := csvLoader.LoadMolds(files["Molds"])
	if err != nil {
		return nil, nil, nil, engineConfig, fmt.Errorf("error loading molds: %w", err)
	}

	employeePtrs, err := csvLoader.LoadEmployees(files["Employees"])
	if err != nil {
		return nil, nil, nil, engineConfig, fmt.Errorf("error loading employees: %w", err)
	}

	orders := make([]entities.Order, len(orderPtrs))
	for i, order := range orderPtrs {
		orders[i] = *order
	}
	molds := make([]entities.Mold, len(moldPtrs))
	for i, mold := range moldPtrs {
		molds[i] = *mold
	}
	employees := make([]entities.Employee, len(employeePtrs))
	for i, employee := range employeePtrs {
		employees[i] = *employee
	}

	return orders, molds, employees, engineConfig, nil
}

// recordRun appends the run to the sqlite history database
func (c *ScheduleCommand) recordRun(result *scheduler.Result, engineConfig scheduler.Config) error {
	store, err := sqlite.NewStore(c.config.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(sqlite.Run{
		Horizon:     engineConfig.Horizon,
		MaxWeeks:    engineConfig.MaxWeeks,
		Slots:       result.Slots,
		Unscheduled: result.Unscheduled,
	})
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("💾 Run recorded as #%d in %s\n\n", id, c.config.HistoryDB)
	}
	return nil
}

// validateInputs validates the command configuration
func (c *ScheduleCommand) validateInputs() error {
	if c.config.ScenarioFile == "" && c.config.ScenarioDir == "" &&
		(c.config.OrdersFile == "" || c.config.MoldsFile == "" || c.config.EmployeesFile == "") {
		return fmt.Errorf("must specify -config, -scenario directory, or individual CSV files")
	}
	return nil
}

// resolveInputFiles determines the actual CSV file paths to use
func (c *ScheduleCommand) resolveInputFiles() (map[string]string, error) {
	var ordersPath, moldsPath, employeesPath string

	if c.config.ScenarioDir != "" {
		ordersPath = filepath.Join(c.config.ScenarioDir, "orders.csv")
		moldsPath = filepath.Join(c.config.ScenarioDir, "molds.csv")
		employeesPath = filepath.Join(c.config.ScenarioDir, "employees.csv")
	} else {
		ordersPath = c.config.OrdersFile
		moldsPath = c.config.MoldsFile
		employeesPath = c.config.EmployeesFile
	}

	files := map[string]string{
		"Orders":    ordersPath,
		"Molds":     moldsPath,
		"Employees": employeesPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// showHelp displays the help message
func (c *ScheduleCommand) showHelp() {
	fmt.Printf(`Layup Scheduler CLI - Mold/Employee Assignment for Production Planning

USAGE:
    layup -scenario <directory>                # Use scenario directory with CSV files
    layup -config <file.yaml|file.json>        # Use a single scenario file
    layup -orders <file> -molds <file> ...     # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -config <file>      Path to a YAML or JSON scenario file
    -orders <file>      Path to orders CSV file
    -molds <file>       Path to molds CSV file
    -employees <file>   Path to employees CSV file
    -horizon <date>     Scheduling start date, YYYY-MM-DD (default: today)
    -max-weeks <n>      Scheduling horizon in weeks (default: 8)
    -history <file>     SQLite database to append this run to (optional)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── orders.csv      # Order backlog
    ├── molds.csv       # Mold roster
    └── employees.csv   # Employee roster

CSV FILE FORMATS:

orders.csv:
    order_id,order_type,quantity,priority,deadline,stock_model_id,features
    PUR00199-001,mesa_universal,1,20,2025-08-05,mesa_universal,"{""product"":""Mesa - Universal""}"
    ORD001,P1,1,30,2025-08-05,,

molds.csv (list columns are pipe-separated):
    mold_id,capacity,compatible_types,stock_models
    mesa_universal-1,1,mesa_universal,mesa_universal
    MOLD-B,2,regular|P1,

employees.csv (list columns are pipe-separated):
    employee_id,skills,prod_rate,hours_per_day
    EMP-1,mesa_universal|P1,1,10

EXAMPLES:
    # Run a CSV scenario with a fixed horizon
    layup -scenario examples/mesa_week -horizon 2025-08-04 -verbose

    # Run from a single YAML scenario and keep history
    layup -config examples/mesa_week.yaml -history runs.db

    # Integration mode: JSON in, JSON out
    layup -config payload.json -format json
`)
}
