package scheduler

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/domain/services"
)

// 2025-08-04 is a Monday; every fixed-horizon test starts there.
var monday = time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)

func mesaOrder(id string, qty int) entities.Order {
	return entities.Order{
		OrderID:      entities.OrderID(id),
		OrderType:    entities.TypeMesaUniversal,
		Quantity:     qty,
		Priority:     20,
		Deadline:     monday.AddDate(0, 0, 1),
		StockModelID: entities.StockModelMesaUniversal,
	}
}

func regularOrder(id string, qty, priority int) entities.Order {
	return entities.Order{
		OrderID:   entities.OrderID(id),
		OrderType: entities.TypeRegular,
		Quantity:  qty,
		Priority:  priority,
		Deadline:  monday.AddDate(0, 0, 2),
	}
}

func mesaMold(id string, capacity int) entities.Mold {
	return entities.Mold{
		MoldID:          entities.MoldID(id),
		Capacity:        capacity,
		CompatibleTypes: []entities.OrderType{entities.TypeMesaUniversal},
		StockModels:     []entities.StockModelID{entities.StockModelMesaUniversal},
	}
}

func generalMold(id string, capacity int) entities.Mold {
	return entities.Mold{
		MoldID:          entities.MoldID(id),
		Capacity:        capacity,
		CompatibleTypes: []entities.OrderType{entities.TypeRegular, entities.TypeP1},
	}
}

func worker(id string, skills []string, hoursPerDay int64) entities.Employee {
	return entities.Employee{
		EmployeeID:  entities.EmployeeID(id),
		Skills:      skills,
		ProdRate:    decimal.NewFromInt(1),
		HoursPerDay: decimal.NewFromInt(hoursPerDay),
	}
}

func newTestEngine(molds []entities.Mold, employees []entities.Employee, maxWeeks int) *Engine {
	return NewEngineWithConfig(molds, employees, Config{
		MaxWeeks: maxWeeks,
		Horizon:  monday,
	})
}

func TestEngine_Schedule_HighPriorityDailyQuota(t *testing.T) {
	// Nine Mesa orders against eight one-capacity Mesa molds: eight fill
	// Monday, the ninth rolls to Tuesday.
	var orders []entities.Order
	var molds []entities.Mold
	for i := 1; i <= 9; i++ {
		orders = append(orders, mesaOrder(fmt.Sprintf("MESA-%d", i), 1))
	}
	for i := 1; i <= 8; i++ {
		molds = append(molds, mesaMold(fmt.Sprintf("mesa_universal-%d", i), 1))
	}
	employees := []entities.Employee{worker("EMP-1", []string{"mesa_universal"}, 10)}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots) != 9 {
		t.Fatalf("scheduled %d orders, want 9", len(result.Slots))
	}
	if len(result.Unscheduled) != 0 {
		t.Fatalf("unscheduled %v, want none", result.Unscheduled)
	}

	byDate := map[string]int{}
	for _, slot := range result.Slots {
		byDate[slot.Date.Format("2006-01-02")]++
	}
	if byDate["2025-08-04"] != 8 {
		t.Errorf("Monday slots = %d, want 8", byDate["2025-08-04"])
	}
	if byDate["2025-08-05"] != 1 {
		t.Errorf("Tuesday slots = %d, want 1", byDate["2025-08-05"])
	}
}

func TestEngine_Schedule_QuotaBindsEvenWithMoldCapacityToSpare(t *testing.T) {
	// One big Mesa mold and plenty of employee hours: the 8/day quota is
	// still the binding constraint.
	var orders []entities.Order
	for i := 1; i <= 10; i++ {
		orders = append(orders, mesaOrder(fmt.Sprintf("MESA-%d", i), 1))
	}
	molds := []entities.Mold{mesaMold("mesa-big", 100)}
	employees := []entities.Employee{
		worker("EMP-1", []string{"mesa_universal"}, 10),
		worker("EMP-2", []string{"mesa_universal"}, 10),
	}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	byDate := map[string]int{}
	for _, slot := range result.Slots {
		byDate[slot.Date.Format("2006-01-02")]++
	}
	if byDate["2025-08-04"] != HighPriorityDailyQuota {
		t.Errorf("Monday slots = %d, want %d", byDate["2025-08-04"], HighPriorityDailyQuota)
	}
	if byDate["2025-08-05"] != 2 {
		t.Errorf("Tuesday slots = %d, want 2", byDate["2025-08-05"])
	}
}

func TestEngine_Schedule_ProductionHoursFromQuantity(t *testing.T) {
	orders := []entities.Order{regularOrder("ORD-1", 3, 10)}
	molds := []entities.Mold{generalMold("MOLD-B", 2)}
	employees := []entities.Employee{worker("EMP-1", []string{"regular"}, 10)}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots) != 1 {
		t.Fatalf("scheduled %d orders, want 1", len(result.Slots))
	}

	slot := result.Slots[0]
	wantStart := time.Date(2025, 8, 4, 8, 0, 0, 0, time.UTC)
	if !slot.StartTime.Equal(wantStart) {
		t.Errorf("start = %s, want %s", slot.StartTime, wantStart)
	}
	if got := slot.EndTime.Sub(slot.StartTime); got != 3*time.Hour {
		t.Errorf("duration = %v, want 3h", got)
	}
}

func TestEngine_Schedule_QuantityClampedToOneHour(t *testing.T) {
	order := regularOrder("ORD-1", 0, 10)
	molds := []entities.Mold{generalMold("MOLD-B", 2)}
	employees := []entities.Employee{worker("EMP-1", []string{"regular"}, 10)}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule([]entities.Order{order})

	if len(result.Slots) != 1 {
		t.Fatalf("scheduled %d orders, want 1", len(result.Slots))
	}
	if got := result.Slots[0].EndTime.Sub(result.Slots[0].StartTime); got != time.Hour {
		t.Errorf("duration = %v, want 1h", got)
	}
}

func TestEngine_Schedule_IncompatibleOrderLeftUnscheduled(t *testing.T) {
	// No mold or employee matches the order's type; with maxWeeks=1 the
	// four-attempt budget runs out and the order is reported, not fatal.
	orders := []entities.Order{
		{OrderID: "ODD-1", OrderType: "widget", Quantity: 1, Priority: 10, Deadline: monday},
	}
	molds := []entities.Mold{mesaMold("mesa_universal-1", 1)}
	employees := []entities.Employee{worker("EMP-1", []string{"mesa_universal"}, 10)}

	result := newTestEngine(molds, employees, 1).Schedule(orders)

	if len(result.Slots) != 0 {
		t.Errorf("scheduled %d orders, want 0", len(result.Slots))
	}
	if len(result.Unscheduled) != 1 || result.Unscheduled[0] != "ODD-1" {
		t.Errorf("unscheduled = %v, want [ODD-1]", result.Unscheduled)
	}
}

func TestEngine_Schedule_UnschedulableOrderDoesNotAbortRun(t *testing.T) {
	orders := []entities.Order{
		{OrderID: "ODD-1", OrderType: "widget", Quantity: 1, Priority: 1, Deadline: monday},
		regularOrder("ORD-1", 1, 10),
	}
	molds := []entities.Mold{generalMold("MOLD-B", 2)}
	employees := []entities.Employee{worker("EMP-1", []string{"regular"}, 10)}

	result := newTestEngine(molds, employees, 1).Schedule(orders)

	if len(result.Slots) != 1 || result.Slots[0].OrderID != "ORD-1" {
		t.Errorf("slots = %v, want ORD-1 scheduled", result.Slots)
	}
	if len(result.Unscheduled) != 1 || result.Unscheduled[0] != "ODD-1" {
		t.Errorf("unscheduled = %v, want [ODD-1]", result.Unscheduled)
	}
}

func TestEngine_Schedule_EmployeeHoursExhausted(t *testing.T) {
	// The first order burns nine of the employee's ten hours; the second
	// needs two and must wait for Tuesday even though the mold has room.
	orders := []entities.Order{
		regularOrder("BIG-1", 9, 1),
		regularOrder("SMALL-1", 2, 2),
	}
	molds := []entities.Mold{generalMold("MOLD-B", 2)}
	employees := []entities.Employee{worker("EMP-1", []string{"regular"}, 10)}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots) != 2 {
		t.Fatalf("scheduled %d orders, want 2", len(result.Slots))
	}

	slots := map[entities.OrderID]entities.ScheduleSlot{}
	for _, slot := range result.Slots {
		slots[slot.OrderID] = slot
	}

	if got := slots["BIG-1"].Date.Format("2006-01-02"); got != "2025-08-04" {
		t.Errorf("BIG-1 date = %s, want 2025-08-04", got)
	}
	if got := slots["SMALL-1"].Date.Format("2006-01-02"); got != "2025-08-05" {
		t.Errorf("SMALL-1 date = %s, want 2025-08-05", got)
	}
	wantStart := time.Date(2025, 8, 5, 8, 0, 0, 0, time.UTC)
	if !slots["SMALL-1"].StartTime.Equal(wantStart) {
		t.Errorf("SMALL-1 start = %s, want %s", slots["SMALL-1"].StartTime, wantStart)
	}
}

func TestEngine_Schedule_BackToBackAssignments(t *testing.T) {
	orders := []entities.Order{
		regularOrder("ORD-1", 2, 1),
		regularOrder("ORD-2", 3, 2),
	}
	molds := []entities.Mold{generalMold("MOLD-B", 2)}
	employees := []entities.Employee{worker("EMP-1", []string{"regular"}, 10)}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots) != 2 {
		t.Fatalf("scheduled %d orders, want 2", len(result.Slots))
	}

	first, second := result.Slots[0], result.Slots[1]
	if !first.EndTime.Equal(second.StartTime) {
		t.Errorf("assignments not back-to-back: first ends %s, second starts %s",
			first.EndTime, second.StartTime)
	}
	wantSecondEnd := time.Date(2025, 8, 4, 13, 0, 0, 0, time.UTC)
	if !second.EndTime.Equal(wantSecondEnd) {
		t.Errorf("second end = %s, want %s", second.EndTime, wantSecondEnd)
	}
}

func TestEngine_Schedule_FirstFitInRosterOrder(t *testing.T) {
	orders := []entities.Order{regularOrder("ORD-1", 1, 10)}
	molds := []entities.Mold{generalMold("MOLD-A", 2), generalMold("MOLD-B", 2)}
	employees := []entities.Employee{
		worker("EMP-1", []string{"regular"}, 10),
		worker("EMP-2", []string{"regular"}, 10),
	}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots) != 1 {
		t.Fatalf("scheduled %d orders, want 1", len(result.Slots))
	}
	if result.Slots[0].MoldID != "MOLD-A" {
		t.Errorf("mold = %s, want first roster mold MOLD-A", result.Slots[0].MoldID)
	}
	if result.Slots[0].EmployeeID != "EMP-1" {
		t.Errorf("employee = %s, want first roster employee EMP-1", result.Slots[0].EmployeeID)
	}
}

func TestEngine_Schedule_HorizonOnWeekendStartsMonday(t *testing.T) {
	friday := time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC)
	engine := NewEngineWithConfig(
		[]entities.Mold{generalMold("MOLD-B", 2)},
		[]entities.Employee{worker("EMP-1", []string{"regular"}, 10)},
		Config{MaxWeeks: DefaultMaxWeeks, Horizon: friday},
	)

	result := engine.Schedule([]entities.Order{regularOrder("ORD-1", 1, 10)})

	if len(result.Slots) != 1 {
		t.Fatalf("scheduled %d orders, want 1", len(result.Slots))
	}
	if got := result.Slots[0].Date.Format("2006-01-02"); got != "2025-08-11" {
		t.Errorf("date = %s, want Monday 2025-08-11", got)
	}
}

func TestEngine_Schedule_Deterministic(t *testing.T) {
	buildBacklog := func() []entities.Order {
		var orders []entities.Order
		for i := 1; i <= 12; i++ {
			orders = append(orders, mesaOrder(fmt.Sprintf("MESA-%d", i), 1))
		}
		for i := 1; i <= 6; i++ {
			orders = append(orders, regularOrder(fmt.Sprintf("REG-%d", i), i, 10+i))
		}
		return orders
	}
	molds := []entities.Mold{mesaMold("mesa-big", 8), generalMold("MOLD-B", 4)}
	employees := []entities.Employee{
		worker("EMP-1", []string{"mesa_universal"}, 10),
		worker("EMP-2", []string{"regular"}, 10),
	}

	first := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(buildBacklog())
	second := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(buildBacklog())

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs with a fixed horizon and identical inputs diverged")
	}
}

func TestEngine_Schedule_MixedBacklogInvariants(t *testing.T) {
	var orders []entities.Order
	for i := 1; i <= 14; i++ {
		orders = append(orders, mesaOrder(fmt.Sprintf("MESA-%d", i), 1))
	}
	for i := 1; i <= 8; i++ {
		orders = append(orders, regularOrder(fmt.Sprintf("REG-%d", i), 1+i%3, 10+i))
	}

	molds := []entities.Mold{
		mesaMold("mesa_universal-1", 4),
		mesaMold("mesa_universal-2", 4),
		generalMold("MOLD-B", 3),
	}
	employees := []entities.Employee{
		worker("EMP-1", []string{"mesa_universal", "P1"}, 10),
		worker("EMP-2", []string{"regular"}, 8),
	}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots)+len(result.Unscheduled) != len(orders) {
		t.Fatalf("slots (%d) + unscheduled (%d) != backlog (%d)",
			len(result.Slots), len(result.Unscheduled), len(orders))
	}

	ordersByID := map[entities.OrderID]entities.Order{}
	for _, order := range orders {
		ordersByID[order.OrderID] = order
	}
	moldsByID := map[entities.MoldID]entities.Mold{}
	for _, mold := range molds {
		moldsByID[mold.MoldID] = mold
	}
	employeesByID := map[entities.EmployeeID]entities.Employee{}
	for _, employee := range employees {
		employeesByID[employee.EmployeeID] = employee
	}

	type dayMold struct {
		date   string
		moldID entities.MoldID
	}
	type dayEmployee struct {
		date       string
		employeeID entities.EmployeeID
	}
	moldCounts := map[dayMold]int{}
	employeeHours := map[dayEmployee]decimal.Decimal{}
	mesaCounts := map[string]int{}

	for _, slot := range result.Slots {
		order := ordersByID[slot.OrderID]
		mold := moldsByID[slot.MoldID]
		employee := employeesByID[slot.EmployeeID]
		date := slot.Date.Format("2006-01-02")

		if !services.IsWorkDay(slot.Date) {
			t.Errorf("slot %s on non-work day %s", slot.OrderID, slot.Date.Weekday())
		}
		if !services.MoldEligible(order, mold) {
			t.Errorf("slot %s placed on ineligible mold %s", slot.OrderID, slot.MoldID)
		}
		if !services.EmployeeEligible(order, employee) {
			t.Errorf("slot %s assigned to ineligible employee %s", slot.OrderID, slot.EmployeeID)
		}

		moldCounts[dayMold{date, slot.MoldID}]++
		hours := decimal.NewFromInt(int64(max(1, order.Quantity)))
		key := dayEmployee{date, slot.EmployeeID}
		employeeHours[key] = employeeHours[key].Add(hours)
		if order.IsHighPriority() {
			mesaCounts[date]++
		}
	}

	for key, count := range moldCounts {
		if count > moldsByID[key.moldID].Capacity {
			t.Errorf("mold %s on %s hosts %d orders, capacity %d",
				key.moldID, key.date, count, moldsByID[key.moldID].Capacity)
		}
	}
	for key, hours := range employeeHours {
		if hours.GreaterThan(employeesByID[key.employeeID].HoursPerDay) {
			t.Errorf("employee %s on %s works %s hours, budget %s",
				key.employeeID, key.date, hours, employeesByID[key.employeeID].HoursPerDay)
		}
	}
	for date, count := range mesaCounts {
		if count > HighPriorityDailyQuota {
			t.Errorf("%d high-priority slots on %s, quota %d", count, date, HighPriorityDailyQuota)
		}
	}
}

func TestEngine_Schedule_HighPriorityNeverLaterThanRegular(t *testing.T) {
	orders := []entities.Order{
		regularOrder("REG-1", 1, 5),
		mesaOrder("MESA-1", 1),
	}
	molds := []entities.Mold{mesaMold("mesa_universal-1", 1), generalMold("MOLD-B", 2)}
	employees := []entities.Employee{worker("EMP-1", []string{"mesa_universal", "regular"}, 10)}

	result := newTestEngine(molds, employees, DefaultMaxWeeks).Schedule(orders)

	if len(result.Slots) != 2 {
		t.Fatalf("scheduled %d orders, want 2", len(result.Slots))
	}

	slots := map[entities.OrderID]entities.ScheduleSlot{}
	for _, slot := range result.Slots {
		slots[slot.OrderID] = slot
	}
	if slots["MESA-1"].Date.After(slots["REG-1"].Date) {
		t.Errorf("high-priority order scheduled later (%s) than regular order (%s)",
			slots["MESA-1"].Date.Format("2006-01-02"), slots["REG-1"].Date.Format("2006-01-02"))
	}
}
