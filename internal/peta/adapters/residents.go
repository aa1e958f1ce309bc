package adapters

import (
	"context"

	pekerjaanModels "github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/dominance"
)

// ResidentLister is the pekerjaan read the map pipeline depends on.
type ResidentLister interface {
	ListResidents(ctx context.Context) ([]pekerjaanModels.Resident, error)
}

// ResidentSource exposes pekerjaan records as dominance input, using gender
// as the category.
type ResidentSource struct {
	records ResidentLister
}

func NewResidentSource(records ResidentLister) *ResidentSource {
	return &ResidentSource{records: records}
}

func (a *ResidentSource) ListResidents(ctx context.Context) ([]dominance.Resident, error) {
	rows, err := a.records.ListResidents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dominance.Resident, len(rows))
	for i, r := range rows {
		out[i] = dominance.Resident{RT: r.RT, RW: r.RW, Category: r.JenisKelamin}
	}
	return out, nil
}
