package entities

import "time"

// ScheduleSlot is the scheduler's sole output entity: one order placed on
// one mold with one employee on one work day. Created exactly once per
// successfully scheduled order and never mutated afterwards. Date is
// derivable from StartTime but kept explicit for the per-day summary.
type ScheduleSlot struct {
	OrderID    OrderID
	MoldID     MoldID
	EmployeeID EmployeeID
	StartTime  time.Time
	EndTime    time.Time
	Date       time.Time
}
