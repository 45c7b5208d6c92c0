package memory

import (
	"fmt"

	"github.com/moldworks/layup/pkg/domain/entities"
	"github.com/moldworks/layup/pkg/domain/repositories"
)

// MoldRepository provides in-memory mold storage. Insertion order is
// preserved: the engine's first-fit selection depends on roster order.
type MoldRepository struct {
	molds    []entities.Mold
	moldsMap map[entities.MoldID]int
}

// NewMoldRepository creates a new in-memory mold repository
func NewMoldRepository(expectedMolds int) *MoldRepository {
	return &MoldRepository{
		molds:    make([]entities.Mold, 0, expectedMolds),
		moldsMap: make(map[entities.MoldID]int, expectedMolds),
	}
}

// Verify interface compliance
var _ repositories.MoldRepository = (*MoldRepository)(nil)

// LoadMolds loads molds into the repository
func (r *MoldRepository) LoadMolds(molds []*entities.Mold) error {
	for _, mold := range molds {
		r.AddMold(*mold)
	}
	return nil
}

// AddMold adds a mold to the repository
func (r *MoldRepository) AddMold(mold entities.Mold) {
	r.moldsMap[mold.MoldID] = len(r.molds)
	r.molds = append(r.molds, mold)
}

// GetMold returns the mold with the given id
func (r *MoldRepository) GetMold(moldID entities.MoldID) (*entities.Mold, error) {
	index, exists := r.moldsMap[moldID]
	if !exists {
		return nil, fmt.Errorf("mold not found: %s", moldID)
	}
	return &r.molds[index], nil
}

// GetAllMolds returns all molds in insertion order
func (r *MoldRepository) GetAllMolds() ([]*entities.Mold, error) {
	var molds []*entities.Mold
	for i := range r.molds {
		molds = append(molds, &r.molds[i])
	}
	return molds, nil
}
