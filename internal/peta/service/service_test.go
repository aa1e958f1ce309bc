package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Ibramnsh/backend-sidokepung/internal/peta/dominance"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/service/mocks"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	boundaries *mocks.MockBoundarySource
	residents  *mocks.MockResidentSource
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.reset()
}

// reset gives each subtest its own controller so leftover expectations do not
// leak between cases.
func (s *ServiceSuite) reset() {
	s.ctrl = gomock.NewController(s.T())
	s.boundaries = mocks.NewMockBoundarySource(s.ctrl)
	s.residents = mocks.NewMockResidentSource(s.ctrl)
	s.service = New(s.boundaries, s.residents,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func doc(id, features string) models.BoundaryDocument {
	d := models.BoundaryDocument{ID: id, Type: models.FeatureCollectionType}
	if features != "" {
		d.Features = json.RawMessage(features)
	}
	return d
}

func (s *ServiceSuite) TestBuildMap() {
	ctx := context.Background()

	s.Run("enriches polygons against the aggregated residents", func() {
		s.reset()
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return([]models.BoundaryDocument{
			doc("a", `[
				{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{"nmsls":"SIDOKEPUNG RT 1 RW 2 DUSUN Krajan"}},
				{"type":"Feature","geometry":{"type":"Point","coordinates":[1,1]},"properties":{"nmsls":"DUSUN Krajan"}}
			]`),
		}, nil)
		s.residents.EXPECT().ListResidents(gomock.Any()).Return([]dominance.Resident{
			{RT: 1, RW: 2, Category: "L"},
			{RT: 1, RW: 2, Category: "L"},
			{RT: 1, RW: 2, Category: "P"},
		}, nil)

		fc, err := s.service.BuildMap(ctx)
		s.Require().NoError(err)
		s.Equal("FeatureCollection", fc.Type)
		s.Require().Len(fc.Features, 2)

		hit := fc.Features[0].Properties
		s.Equal("1", hit["RT"])
		s.Equal("2", hit["RW"])
		s.Equal("Krajan", hit["dusun"])
		s.Equal("L", hit["dominantGender"])
		s.Equal(2, hit["dominantGenderCount"])
		s.Equal(3, hit["totalPopulation"])

		miss := fc.Features[1].Properties
		s.Equal("-", miss["RT"])
		s.Equal("-", miss["RW"])
		s.Equal("Krajan", miss["dusun"])
		s.Nil(miss["dominantGender"])
		s.Equal(0, miss["dominantGenderCount"])
		s.Equal(0, miss["totalPopulation"])
	})

	s.Run("skips malformed documents and keeps traversal order", func() {
		s.reset()
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return([]models.BoundaryDocument{
			doc("first", `[{"type":"Feature","geometry":null,"properties":{"nmsls":"RT 1 RW 1"}},{"type":"Feature","geometry":null,"properties":{"nmsls":"RT 2 RW 1"}}]`),
			doc("missing", ""),
			doc("object", `{"type":"Feature"}`),
			doc("second", `[{"type":"Feature","geometry":null,"properties":{"nmsls":"RT 3 RW 1"}}]`),
		}, nil)
		s.residents.EXPECT().ListResidents(gomock.Any()).Return(nil, nil)

		fc, err := s.service.BuildMap(ctx)
		s.Require().NoError(err)
		s.Require().Len(fc.Features, 3)
		s.Equal("1", fc.Features[0].Properties["RT"])
		s.Equal("2", fc.Features[1].Properties["RT"])
		s.Equal("3", fc.Features[2].Properties["RT"])
	})

	s.Run("empty sources yield an empty collection", func() {
		s.reset()
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return(nil, nil)
		s.residents.EXPECT().ListResidents(gomock.Any()).Return(nil, nil)

		fc, err := s.service.BuildMap(ctx)
		s.Require().NoError(err)
		s.NotNil(fc.Features)
		s.Empty(fc.Features)
	})

	s.Run("residents are read once regardless of polygon count", func() {
		s.reset()
		features := "["
		for i := 0; i < 50; i++ {
			if i > 0 {
				features += ","
			}
			features += `{"type":"Feature","geometry":null,"properties":{"nmsls":"RT 1 RW 1"}}`
		}
		features += "]"
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return([]models.BoundaryDocument{doc("big", features)}, nil)
		s.residents.EXPECT().ListResidents(gomock.Any()).Return([]dominance.Resident{{RT: 1, RW: 1, Category: "P"}}, nil).Times(1)

		fc, err := s.service.BuildMap(ctx)
		s.Require().NoError(err)
		s.Len(fc.Features, 50)
		for _, f := range fc.Features {
			s.Equal("P", f.Properties["dominantGender"])
		}
	})
}

func (s *ServiceSuite) TestBuildMap_SourceFailures() {
	ctx := context.Background()

	s.Run("boundary read failure aborts the run", func() {
		s.reset()
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return(nil, errors.New("db down"))
		s.residents.EXPECT().ListResidents(gomock.Any()).Return(nil, nil).AnyTimes()

		fc, err := s.service.BuildMap(ctx)
		s.Nil(fc)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("resident read failure aborts the run", func() {
		s.reset()
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return([]models.BoundaryDocument{doc("a", `[]`)}, nil).AnyTimes()
		s.residents.EXPECT().ListResidents(gomock.Any()).Return(nil, errors.New("query failed"))

		fc, err := s.service.BuildMap(ctx)
		s.Nil(fc)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("timeout yields a timeout error and no partial output", func() {
		s.reset()
		svc := New(s.boundaries, s.residents,
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			WithTimeout(20*time.Millisecond),
		)
		s.boundaries.EXPECT().ListBoundaryDocuments(gomock.Any()).Return([]models.BoundaryDocument{doc("a", `[]`)}, nil).AnyTimes()
		s.residents.EXPECT().ListResidents(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]dominance.Resident, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

		fc, err := svc.BuildMap(ctx)
		s.Nil(fc)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}
