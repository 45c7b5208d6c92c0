package repositories

import "github.com/moldworks/layup/pkg/domain/entities"

// MoldRepository provides access to the mold roster
type MoldRepository interface {
	GetMold(moldID entities.MoldID) (*entities.Mold, error)
	GetAllMolds() ([]*entities.Mold, error)
	LoadMolds(molds []*entities.Mold) error
}
