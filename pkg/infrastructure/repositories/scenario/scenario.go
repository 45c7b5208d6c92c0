// Package scenario loads a complete scheduling scenario (orders, molds,
// employees, optional horizon settings) from a single YAML or JSON file.
// The JSON shape matches the planning pipeline's integration payload; the
// YAML shape is the same with the usual YAML ergonomics.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/moldworks/layup/pkg/domain/entities"
)

// Scenario is a fully parsed scheduling scenario
type Scenario struct {
	Orders    []entities.Order
	Molds     []entities.Mold
	Employees []entities.Employee
	Horizon   time.Time // zero when the file does not pin a horizon
	MaxWeeks  int       // zero when the file does not set one
}

type scenarioFile struct {
	Orders    []orderRecord    `yaml:"orders" json:"orders"`
	Molds     []moldRecord     `yaml:"molds" json:"molds"`
	Employees []employeeRecord `yaml:"employees" json:"employees"`
	Horizon   string           `yaml:"horizon" json:"horizon"`
	MaxWeeks  int              `yaml:"max_weeks" json:"max_weeks"`
}

type orderRecord struct {
	OrderID      string            `yaml:"order_id" json:"order_id"`
	OrderType    string            `yaml:"order_type" json:"order_type"`
	Features     map[string]string `yaml:"features" json:"features"`
	Quantity     int               `yaml:"quantity" json:"quantity"`
	Priority     int               `yaml:"priority" json:"priority"`
	Deadline     string            `yaml:"deadline" json:"deadline"`
	StockModelID string            `yaml:"stock_model_id" json:"stock_model_id"`
}

type moldRecord struct {
	MoldID          string   `yaml:"mold_id" json:"mold_id"`
	Capacity        int      `yaml:"capacity" json:"capacity"`
	CompatibleTypes []string `yaml:"compatible_types" json:"compatible_types"`
	StockModels     []string `yaml:"stock_models" json:"stock_models"`
}

type employeeRecord struct {
	EmployeeID  string   `yaml:"employee_id" json:"employee_id"`
	Skills      []string `yaml:"skills" json:"skills"`
	ProdRate    float64  `yaml:"prod_rate" json:"prod_rate"`
	HoursPerDay float64  `yaml:"hours_per_day" json:"hours_per_day"`
}

// LoadFile loads a scenario, dispatching on the file extension
// (.yaml/.yml or .json).
func LoadFile(filename string) (*Scenario, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file %s: %w", filename, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadYAML(file)
	case ".json":
		return LoadJSON(file)
	default:
		return nil, fmt.Errorf("unsupported scenario file extension: %s (expected .yaml, .yml, or .json)", filename)
	}
}

// LoadYAML parses a YAML scenario from r
func LoadYAML(r io.Reader) (*Scenario, error) {
	var file scenarioFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode YAML scenario: %w", err)
	}
	return file.toScenario()
}

// LoadJSON parses a JSON scenario payload from r
func LoadJSON(r io.Reader) (*Scenario, error) {
	var file scenarioFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode JSON scenario: %w", err)
	}
	return file.toScenario()
}

func (f *scenarioFile) toScenario() (*Scenario, error) {
	if len(f.Orders) == 0 {
		return nil, fmt.Errorf("scenario has no orders")
	}

	scenario := &Scenario{MaxWeeks: f.MaxWeeks}

	if f.Horizon != "" {
		horizon, err := parseDate(f.Horizon)
		if err != nil {
			return nil, fmt.Errorf("invalid horizon: %w", err)
		}
		scenario.Horizon = horizon
	}

	for i, rec := range f.Orders {
		deadline, err := parseDate(rec.Deadline)
		if err != nil {
			return nil, fmt.Errorf("order %d (%s): invalid deadline: %w", i, rec.OrderID, err)
		}

		order, err := entities.NewOrder(
			entities.OrderID(rec.OrderID),
			entities.OrderType(rec.OrderType),
			rec.Features,
			rec.Quantity,
			rec.Priority,
			deadline,
			entities.StockModelID(rec.StockModelID),
		)
		if err != nil {
			return nil, fmt.Errorf("order %d (%s): %w", i, rec.OrderID, err)
		}
		scenario.Orders = append(scenario.Orders, *order)
	}

	for i, rec := range f.Molds {
		var compatibleTypes []entities.OrderType
		for _, tag := range rec.CompatibleTypes {
			compatibleTypes = append(compatibleTypes, entities.OrderType(tag))
		}
		var stockModels []entities.StockModelID
		for _, tag := range rec.StockModels {
			stockModels = append(stockModels, entities.StockModelID(tag))
		}

		mold, err := entities.NewMold(entities.MoldID(rec.MoldID), rec.Capacity, compatibleTypes, stockModels)
		if err != nil {
			return nil, fmt.Errorf("mold %d (%s): %w", i, rec.MoldID, err)
		}
		scenario.Molds = append(scenario.Molds, *mold)
	}

	for i, rec := range f.Employees {
		employee, err := entities.NewEmployee(
			entities.EmployeeID(rec.EmployeeID),
			rec.Skills,
			decimal.NewFromFloat(rec.ProdRate),
			decimal.NewFromFloat(rec.HoursPerDay),
		)
		if err != nil {
			return nil, fmt.Errorf("employee %d (%s): %w", i, rec.EmployeeID, err)
		}
		scenario.Employees = append(scenario.Employees, *employee)
	}

	return scenario, nil
}

// parseDate accepts plain dates and RFC 3339 timestamps
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}
