package scheduler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/domain/services"
)

// DefaultMaxWeeks is the default scheduling horizon in weeks
const DefaultMaxWeeks = 8

// workDaysPerWeek is fixed by the Monday-Thursday production calendar
const workDaysPerWeek = 4

// Config holds configuration for a scheduling engine
type Config struct {
	// MaxWeeks bounds the per-order search to MaxWeeks * 4 work-day
	// attempts. Zero or negative falls back to DefaultMaxWeeks.
	MaxWeeks int
	// Horizon is the date scheduling starts from. The zero value means
	// "now". The time of day is normalized to shift start (08:00).
	Horizon time.Time
}

// Engine assigns a backlog of orders to molds and employees day by day.
//
// The engine is strictly sequential: orders are processed one at a time in
// priority order, and each order's calendar attempts run one at a time.
// The capacity ledger's two-phase check-then-commit relies on this; nothing
// in the engine may be parallelized without making that path atomic.
type Engine struct {
	molds     []entities.Mold
	employees []entities.Employee
	config    Config
}

// Result contains the output of one scheduling run
type Result struct {
	// Slots holds one entry per successfully scheduled order, in the
	// order placements were committed.
	Slots []entities.ScheduleSlot
	// Unscheduled lists orders that could not be placed within the
	// horizon. Not an error: the caller may re-run with a larger horizon
	// or more resources.
	Unscheduled []entities.OrderID
}

// NewEngine creates an engine with the default eight-week horizon starting now
func NewEngine(molds []entities.Mold, employees []entities.Employee) *Engine {
	return NewEngineWithConfig(molds, employees, Config{MaxWeeks: DefaultMaxWeeks})
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(molds []entities.Mold, employees []entities.Employee, config Config) *Engine {
	return &Engine{
		molds:     molds,
		employees: employees,
		config:    config,
	}
}

// Schedule places each backlog order on the first work day with an eligible
// mold, an eligible employee with enough remaining hours, and (for
// high-priority orders) quota headroom. Placement is first-fit in roster
// order and is never revisited: once a slot is committed it stays, and an
// order that finds no feasible day within the attempt budget is reported in
// Unscheduled while the rest of the backlog continues.
func (e *Engine) Schedule(orders []entities.Order) *Result {
	maxWeeks := e.config.MaxWeeks
	if maxWeeks <= 0 {
		maxWeeks = DefaultMaxWeeks
	}

	horizon := e.config.Horizon
	if horizon.IsZero() {
		horizon = time.Now()
	}
	horizon = services.ShiftStart(horizon)

	ledger := NewCapacityLedger()
	prioritized := services.PrioritizeOrders(orders)

	result := &Result{
		Slots: make([]entities.ScheduleSlot, 0, len(orders)),
	}

	for _, order := range prioritized {
		slot, ok := e.placeOrder(order, horizon, maxWeeks*workDaysPerWeek, ledger)
		if ok {
			result.Slots = append(result.Slots, slot)
		} else {
			result.Unscheduled = append(result.Unscheduled, order.OrderID)
		}
	}

	return result
}

// placeOrder walks the calendar from the shared horizon looking for the
// first feasible day. Skipping a non-work day is free; every other advance
// spends one attempt.
func (e *Engine) placeOrder(
	order entities.Order,
	horizon time.Time,
	maxAttempts int,
	ledger *CapacityLedger,
) (entities.ScheduleSlot, bool) {
	highPriority := order.IsHighPriority()
	productionHours := productionHours(order)

	attemptDate := horizon
	for attempts := 0; attempts < maxAttempts; {
		if !services.IsWorkDay(attemptDate) {
			attemptDate = services.NextWorkDay(attemptDate)
			continue
		}

		if highPriority && ledger.HighPriorityRemaining(attemptDate) == 0 {
			attemptDate = services.NextWorkDay(attemptDate)
			attempts++
			continue
		}

		mold, moldOK := e.firstEligibleMold(order, attemptDate, ledger)
		employee, empOK := e.firstAvailableEmployee(order, attemptDate, productionHours, ledger)

		if moldOK && empOK {
			start := services.ShiftStart(attemptDate).
				Add(hoursToDuration(ledger.EmployeeHoursUsed(attemptDate, employee.EmployeeID)))
			end := start.Add(hoursToDuration(productionHours))

			slot := entities.ScheduleSlot{
				OrderID:    order.OrderID,
				MoldID:     mold.MoldID,
				EmployeeID: employee.EmployeeID,
				StartTime:  start,
				EndTime:    end,
				Date:       attemptDate,
			}

			ledger.ConsumeMold(attemptDate, mold.MoldID)
			ledger.ConsumeEmployeeHours(attemptDate, employee.EmployeeID, productionHours)
			if highPriority {
				ledger.ConsumeHighPriority(attemptDate)
			}

			return slot, true
		}

		attemptDate = services.NextWorkDay(attemptDate)
		attempts++
	}

	return entities.ScheduleSlot{}, false
}

// firstEligibleMold returns the first mold, in roster order, that is
// compatible with the order and has capacity left on the date.
func (e *Engine) firstEligibleMold(
	order entities.Order,
	date time.Time,
	ledger *CapacityLedger,
) (entities.Mold, bool) {
	for _, mold := range e.molds {
		if services.MoldEligible(order, mold) && ledger.MoldRemaining(date, mold) > 0 {
			return mold, true
		}
	}
	return entities.Mold{}, false
}

// firstAvailableEmployee returns the first employee, in roster order, with
// the right skills and enough remaining hours on the date to absorb the
// order in full.
func (e *Engine) firstAvailableEmployee(
	order entities.Order,
	date time.Time,
	productionHours decimal.Decimal,
	ledger *CapacityLedger,
) (entities.Employee, bool) {
	for _, employee := range e.employees {
		if services.EmployeeEligible(order, employee) &&
			ledger.EmployeeHoursRemaining(date, employee).GreaterThanOrEqual(productionHours) {
			return employee, true
		}
	}
	return entities.Employee{}, false
}

// productionHours charges one hour per unit with a one-hour floor. A
// non-positive quantity clamps to the floor instead of failing the order.
func productionHours(order entities.Order) decimal.Decimal {
	return decimal.NewFromInt(int64(max(1, order.Quantity)))
}

func hoursToDuration(hours decimal.Decimal) time.Duration {
	return time.Duration(hours.Mul(decimal.NewFromInt(int64(time.Hour))).IntPart())
}
