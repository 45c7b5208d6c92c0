package entities

import "fmt"

// MoldID uniquely identifies a production mold
type MoldID string

// Mold represents a physical mold with a daily order capacity and the order
// types / stock models it can service. Immutable; supplied by the caller.
type Mold struct {
	MoldID          MoldID
	Capacity        int // max orders per work day
	CompatibleTypes []OrderType
	StockModels     []StockModelID
}

// NewMold creates a validated Mold
func NewMold(moldID MoldID, capacity int, compatibleTypes []OrderType, stockModels []StockModelID) (*Mold, error) {
	if string(moldID) == "" {
		return nil, fmt.Errorf("mold ID cannot be empty")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("mold capacity must be positive, got %d", capacity)
	}

	return &Mold{
		MoldID:          moldID,
		Capacity:        capacity,
		CompatibleTypes: compatibleTypes,
		StockModels:     stockModels,
	}, nil
}

// AcceptsType reports whether the mold's compatible-types set contains t
func (m Mold) AcceptsType(t OrderType) bool {
	for _, ct := range m.CompatibleTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// AcceptsStockModel reports whether the mold's stock-models set contains s
func (m Mold) AcceptsStockModel(s StockModelID) bool {
	for _, sm := range m.StockModels {
		if sm == s {
			return true
		}
	}
	return false
}
