package csv

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moldworks/layup/pkg/domain/entities"
)

// Loader handles loading scheduling data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadOrders loads the order backlog from a CSV file
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open orders file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("orders CSV must have header and at least one data row")
	}

	expectedHeader := []string{"order_id", "order_type", "quantity", "priority", "deadline", "stock_model_id", "features"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var orders []*entities.Order
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}

		orders = append(orders, &order)
	}

	return orders, nil
}

// LoadMolds loads the mold roster from a CSV file. Row order is preserved
// because it drives the engine's first-fit selection.
func (l *Loader) LoadMolds(filename string) ([]*entities.Mold, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open molds file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read molds CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("molds CSV must have header and at least one data row")
	}

	expectedHeader := []string{"mold_id", "capacity", "compatible_types", "stock_models"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("molds CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var molds []*entities.Mold
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("molds CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		mold, err := parseMold(record)
		if err != nil {
			return nil, fmt.Errorf("molds CSV row %d: %w", i+2, err)
		}

		molds = append(molds, &mold)
	}

	return molds, nil
}

// LoadEmployees loads the employee roster from a CSV file. Row order is
// preserved because it drives the engine's first-fit selection.
func (l *Loader) LoadEmployees(filename string) ([]*entities.Employee, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open employees file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read employees CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("employees CSV must have header and at least one data row")
	}

	expectedHeader := []string{"employee_id", "skills", "prod_rate", "hours_per_day"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("employees CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var employees []*entities.Employee
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("employees CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		employee, err := parseEmployee(record)
		if err != nil {
			return nil, fmt.Errorf("employees CSV row %d: %w", i+2, err)
		}

		employees = append(employees, &employee)
	}

	return employees, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseOrder(record []string) (entities.Order, error) {
	orderID := entities.OrderID(record[0])
	orderType := entities.OrderType(record[1])

	quantity, err := strconv.Atoi(record[2])
	if err != nil {
		return entities.Order{}, fmt.Errorf("invalid quantity: %s", record[2])
	}

	priority, err := strconv.Atoi(record[3])
	if err != nil {
		return entities.Order{}, fmt.Errorf("invalid priority: %s", record[3])
	}

	deadline, err := time.Parse("2006-01-02", record[4])
	if err != nil {
		return entities.Order{}, fmt.Errorf("invalid deadline format: %s (expected YYYY-MM-DD)", record[4])
	}

	stockModelID := entities.StockModelID(record[5])

	var features map[string]string
	if record[6] != "" {
		if err := json.Unmarshal([]byte(record[6]), &features); err != nil {
			return entities.Order{}, fmt.Errorf("invalid features JSON: %s", record[6])
		}
	}

	order, err := entities.NewOrder(orderID, orderType, features, quantity, priority, deadline, stockModelID)
	if err != nil {
		return entities.Order{}, err
	}
	return *order, nil
}

func parseMold(record []string) (entities.Mold, error) {
	moldID := entities.MoldID(record[0])

	capacity, err := strconv.Atoi(record[1])
	if err != nil {
		return entities.Mold{}, fmt.Errorf("invalid capacity: %s", record[1])
	}

	var compatibleTypes []entities.OrderType
	for _, tag := range splitTags(record[2]) {
		compatibleTypes = append(compatibleTypes, entities.OrderType(tag))
	}

	var stockModels []entities.StockModelID
	for _, tag := range splitTags(record[3]) {
		stockModels = append(stockModels, entities.StockModelID(tag))
	}

	mold, err := entities.NewMold(moldID, capacity, compatibleTypes, stockModels)
	if err != nil {
		return entities.Mold{}, err
	}
	return *mold, nil
}

func parseEmployee(record []string) (entities.Employee, error) {
	employeeID := entities.EmployeeID(record[0])
	skills := splitTags(record[1])

	prodRate, err := decimal.NewFromString(record[2])
	if err != nil {
		return entities.Employee{}, fmt.Errorf("invalid prod_rate: %s", record[2])
	}

	hoursPerDay := decimal.Zero // NewEmployee substitutes the default shift
	if record[3] != "" {
		hoursPerDay, err = decimal.NewFromString(record[3])
		if err != nil {
			return entities.Employee{}, fmt.Errorf("invalid hours_per_day: %s", record[3])
		}
	}

	employee, err := entities.NewEmployee(employeeID, skills, prodRate, hoursPerDay)
	if err != nil {
		return entities.Employee{}, err
	}
	return *employee, nil
}

// splitTags parses a pipe-separated tag list, dropping empty entries
func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, "|") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
