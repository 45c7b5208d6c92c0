package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/moldworks/layup/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		scenarioFile  = flag.String("config", "", "Path to a YAML or JSON scenario file")
		ordersFile    = flag.String("orders", "", "Path to orders CSV file")
		moldsFile     = flag.String("molds", "", "Path to molds CSV file")
		employeesFile = flag.String("employees", "", "Path to employees CSV file")
		horizon       = flag.String("horizon", "", "Scheduling start date, YYYY-MM-DD (default: today)")
		maxWeeks      = flag.Int("max-weeks", 0, "Scheduling horizon in weeks (default: 8)")
		historyDB     = flag.String("history", "", "SQLite database to append this run to (optional)")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:   *scenarioDir,
		ScenarioFile:  *scenarioFile,
		OrdersFile:    *ordersFile,
		MoldsFile:     *moldsFile,
		EmployeesFile: *employeesFile,
		Horizon:       *horizon,
		MaxWeeks:      *maxWeeks,
		HistoryDB:     *historyDB,
		OutputDir:     *outputDir,
		Format:        *format,
		Verbose:       *verbose,
		Help:          *help,
	}

	// Create and execute command
	cmd := commands.NewScheduleCommand(config)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
