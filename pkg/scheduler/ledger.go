package scheduler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moldworks/layup/pkg/domain/entities"
)

// HighPriorityDailyQuota caps how many high-priority production orders may
// be placed on any single work day.
const HighPriorityDailyQuota = 8

const dateKeyFormat = "2006-01-02"

type moldDay struct {
	date   string
	moldID entities.MoldID
}

type employeeDay struct {
	date       string
	employeeID entities.EmployeeID
}

// CapacityLedger tracks consumed capacity for one scheduling run: the
// high-priority quota per date, orders placed per (date, mold), and hours
// worked per (date, employee). A ledger is created empty at the start of a
// run and discarded with it.
//
// The ledger is not safe for concurrent use. The engine checks remaining
// capacity and commits in two separate steps, which is correct only while
// a single goroutine drives the run; callers introducing parallelism would
// have to make the check-then-commit path atomic per (date, resource).
type CapacityLedger struct {
	highPriority  map[string]int
	moldUsage     map[moldDay]int
	employeeHours map[employeeDay]decimal.Decimal
}

// NewCapacityLedger creates an empty ledger for a single run
func NewCapacityLedger() *CapacityLedger {
	return &CapacityLedger{
		highPriority:  make(map[string]int),
		moldUsage:     make(map[moldDay]int),
		employeeHours: make(map[employeeDay]decimal.Decimal),
	}
}

func dateKey(t time.Time) string {
	return t.Format(dateKeyFormat)
}

// HighPriorityRemaining returns how many high-priority orders may still be
// placed on the date.
func (l *CapacityLedger) HighPriorityRemaining(date time.Time) int {
	used := l.highPriority[dateKey(date)]
	if used >= HighPriorityDailyQuota {
		return 0
	}
	return HighPriorityDailyQuota - used
}

// ConsumeHighPriority records one high-priority order placed on the date
func (l *CapacityLedger) ConsumeHighPriority(date time.Time) {
	l.highPriority[dateKey(date)]++
}

// MoldRemaining returns how many more orders the mold can host on the date
func (l *CapacityLedger) MoldRemaining(date time.Time, mold entities.Mold) int {
	used := l.moldUsage[moldDay{dateKey(date), mold.MoldID}]
	if used >= mold.Capacity {
		return 0
	}
	return mold.Capacity - used
}

// ConsumeMold records one order placed on the mold on the date
func (l *CapacityLedger) ConsumeMold(date time.Time, moldID entities.MoldID) {
	l.moldUsage[moldDay{dateKey(date), moldID}]++
}

// EmployeeHoursUsed returns the hours already committed for the employee on
// the date. Assignments are packed back-to-back, so this is also the offset
// of the employee's next start time from shift start.
func (l *CapacityLedger) EmployeeHoursUsed(date time.Time, employeeID entities.EmployeeID) decimal.Decimal {
	return l.employeeHours[employeeDay{dateKey(date), employeeID}]
}

// EmployeeHoursRemaining returns the hours the employee has left on the date
func (l *CapacityLedger) EmployeeHoursRemaining(date time.Time, employee entities.Employee) decimal.Decimal {
	remaining := employee.HoursPerDay.Sub(l.EmployeeHoursUsed(date, employee.EmployeeID))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ConsumeEmployeeHours records hours worked by the employee on the date
func (l *CapacityLedger) ConsumeEmployeeHours(date time.Time, employeeID entities.EmployeeID, hours decimal.Decimal) {
	key := employeeDay{dateKey(date), employeeID}
	l.employeeHours[key] = l.employeeHours[key].Add(hours)
}
