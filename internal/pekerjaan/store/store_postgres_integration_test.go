//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/store"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
	"github.com/Ibramnsh/backend-sidokepung/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	_, err := s.postgres.Exec(context.Background(), store.Schema)
	s.Require().NoError(err)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "pekerjaan"))
}

func newRecord(rt, rw int, gender string, at time.Time) *models.Record {
	return &models.Record{
		ID:                   uuid.NewString(),
		RT:                   rt,
		RW:                   rw,
		Umur:                 30,
		JenisKelamin:         gender,
		StatusPekerjaanUtama: "Petani",
		NamaAnggota:          "Warga",
		IDKeluarga:           models.DefaultFamilyID,
		CreatedAt:            at,
	}
}

func (s *PostgresStoreSuite) TestCRUD() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	a := newRecord(1, 1, models.GenderMale, base)
	b := newRecord(2, 1, models.GenderFemale, base.Add(time.Second))
	s.Require().NoError(s.store.Create(ctx, a))
	s.Require().NoError(s.store.Create(ctx, b))

	records, err := s.store.List(ctx, models.Filter{})
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(a.ID, records[0].ID)

	rt, rw := 2, 1
	records, err = s.store.List(ctx, models.Filter{RT: &rt, RW: &rw})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(b.ID, records[0].ID)

	a.Umur = 31
	s.Require().NoError(s.store.Update(ctx, a))
	records, err = s.store.List(ctx, models.Filter{})
	s.Require().NoError(err)
	s.Equal(31, records[0].Umur)

	s.Require().NoError(s.store.Delete(ctx, a.ID))
	s.ErrorIs(s.store.Delete(ctx, a.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListResidentsSkipsMissingGender() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newRecord(1, 1, models.GenderMale, time.Now())))
	_, err := s.postgres.Exec(ctx, `
		INSERT INTO pekerjaan (id, rt, rw, umur, status_pekerjaan_utama, nama_anggota)
		VALUES ($1, 1, 1, 20, 'Pelajar', 'Tanpa Data')
	`, uuid.NewString())
	s.Require().NoError(err)

	residents, err := s.store.ListResidents(ctx)
	s.Require().NoError(err)
	s.Equal([]models.Resident{{RT: 1, RW: 1, JenisKelamin: models.GenderMale}}, residents)
}
