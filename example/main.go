package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/infrastructure/repositories/memory"
	"github.com/moldworks/layup/pkg/interfaces/cli/output"
	"github.com/moldworks/layup/pkg/scheduler"
)

func main() {
	// Load the reference demo rosters: nine Mesa Universal purchase orders
	// against eight single-capacity Mesa molds, so the ninth order has to
	// roll over to the next work day.
	orderRepo, moldRepo, employeeRepo := setupDemoRosters()

	orderPtrs, _ := orderRepo.GetAllOrders()
	moldPtrs, _ := moldRepo.GetAllMolds()
	employeePtrs, _ := employeeRepo.GetAllEmployees()

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

	// Pin the horizon to a Monday so the run is reproducible.
	engine := scheduler.NewEngineWithConfig(molds, employees, scheduler.Config{
		MaxWeeks: scheduler.DefaultMaxWeeks,
		Horizon:  time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
	})

	fmt.Println("🏭 Running layup scheduler for demo week...")
	fmt.Printf("Backlog: %d orders, %d molds, %d employees\n\n", len(orders), len(molds), len(employees))

	result := engine.Schedule(orders)

	fmt.Printf("📊 Scheduled %d orders (%d unscheduled):\n", len(result.Slots), len(result.Unscheduled))
	for _, slot := range result.Slots {
		fmt.Printf("  %s → mold %s, employee %s, %s–%s\n",
			slot.OrderID,
			slot.MoldID,
			slot.EmployeeID,
			slot.StartTime.Format("2006-01-02 15:04"),
			slot.EndTime.Format("15:04"))
	}
	fmt.Println()

	for _, summary := range output.BuildDailySummaries(result, orders) {
		fmt.Printf("%s: %d Mesa Universal, %d Regular (Total: %d)\n",
			summary.Date, summary.HighPriority, summary.Regular, summary.Total)
	}

	for _, orderID := range result.Unscheduled {
		fmt.Printf("⚠️  Could not schedule order %s within the horizon\n", orderID)
	}
}

func setupDemoRosters() (*memory.OrderRepository, *memory.MoldRepository, *memory.EmployeeRepository) {
	orderRepo := memory.NewOrderRepository(11)
	moldRepo := memory.NewMoldRepository(9)
	employeeRepo := memory.NewEmployeeRepository(2)

	mesaDeadline := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 8; i++ {
		orderRepo.AddOrder(entities.Order{
			OrderID:      entities.OrderID(fmt.Sprintf("PUR00199-%03d", i)),
			OrderType:    entities.TypeMesaUniversal,
			Features:     map[string]string{"product": "Mesa - Universal"},
			Quantity:     1,
			Priority:     20,
			Deadline:     mesaDeadline,
			StockModelID: entities.StockModelMesaUniversal,
		})
	}
	// The ninth Mesa order exceeds the daily quota and rolls to Tuesday.
	orderRepo.AddOrder(entities.Order{
		OrderID:      "PUR00199-009",
		OrderType:    entities.TypeMesaUniversal,
		Features:     map[string]string{"product": "Mesa - Universal"},
		Quantity:     1,
		Priority:     20,
		Deadline:     time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC),
		StockModelID: entities.StockModelMesaUniversal,
	})
	orderRepo.AddOrder(entities.Order{
		OrderID:   "ORD001",
		OrderType: entities.TypeP1,
		Features:  map[string]string{"color": "red"},
		Quantity:  1,
		Priority:  30,
		Deadline:  time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
	})
	orderRepo.AddOrder(entities.Order{
		OrderID:   "ORD002",
		OrderType: entities.TypeRegular,
		Features:  map[string]string{"color": "blue"},
		Quantity:  1,
		Priority:  50,
		Deadline:  time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC),
	})

	for i := 1; i <= 8; i++ {
		moldRepo.AddMold(entities.Mold{
			MoldID:          entities.MoldID(fmt.Sprintf("mesa_universal-%d", i)),
			Capacity:        1,
			CompatibleTypes: []entities.OrderType{entities.TypeMesaUniversal},
			StockModels:     []entities.StockModelID{entities.StockModelMesaUniversal},
		})
	}
	moldRepo.AddMold(entities.Mold{
		MoldID:          "MOLD-B",
		Capacity:        2,
		CompatibleTypes: []entities.OrderType{entities.TypeRegular, entities.TypeP1},
	})

	employeeRepo.AddEmployee(entities.Employee{
		EmployeeID:  "EMP-1",
		Skills:      []string{"mesa_universal", "P1"},
		ProdRate:    decimal.NewFromInt(1),
		HoursPerDay: decimal.NewFromInt(10),
	})
	employeeRepo.AddEmployee(entities.Employee{
		EmployeeID:  "EMP-2",
		Skills:      []string{"regular"},
		ProdRate:    decimal.NewFromInt(1),
		HoursPerDay: decimal.NewFromInt(10),
	})

	return orderRepo, moldRepo, employeeRepo
}
