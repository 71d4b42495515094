package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/journey-microservice/internal/domain"
	"github.com/journey-microservice/internal/domain/repository"
	"github.com/journey-microservice/internal/repository/postgres"
	"github.com/journey-microservice/internal/repository/postgres/testhelpers"
)

// JourneyRepositoryTestSuite тестирует все методы JourneyRepository
type JourneyRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.JourneyRepository
	ctx    context.Context
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *JourneyRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.ctx = context.Background()

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_create_journeys.sql"))
	s.Require().NoError(err, "Failed to read journeys schema")
	s.testDB.ApplySchema(s.T(), string(schema))

	s.repo = postgres.NewJourneyRepository(
		postgres.NewFromSqlx(s.testDB.DB, s.testDB.Logger),
		s.testDB.Logger,
	)
}

func (s *JourneyRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *JourneyRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *JourneyRepositoryTestSuite) newFinishedJourney(vehicleID string, predicted, actual, distance float64) *domain.Journey {
	j := &domain.Journey{
		RecordID:          uuid.New(),
		VehicleID:         vehicleID,
		StartEdge:         "A1",
		EndEdge:           "A9",
		RouteEdges:        []string{"A1", "A5", "A9"},
		Distance:          distance,
		PredictedDuration: predicted,
		StartTime:         18000,
		StartTimeString:   "05:00:00",
		Status:            domain.JourneyStatusRunning,
	}
	j.Complete(18000 + actual)
	return j
}

func (s *JourneyRepositoryTestSuite) TestSaveAndGetRecent() {
	j := s.newFinishedJourney("veh_1", 100, 120, 1500)
	s.Require().NoError(s.repo.SaveJourney(s.ctx, j))

	page, err := s.repo.GetRecentJourneys(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(1, page.TotalCount)
	s.Require().Len(page.Journeys, 1)

	got := page.Journeys[0]
	s.Equal(j.RecordID, got.RecordID)
	s.Equal([]string{"A1", "A5", "A9"}, got.RouteEdges)
	s.Require().NotNil(got.Accuracy)
	s.InDelta(83.333, *got.Accuracy, 0.001)
}

func (s *JourneyRepositoryTestSuite) TestSaveJourneyUpsert() {
	j := s.newFinishedJourney("veh_1", 100, 120, 1500)
	s.Require().NoError(s.repo.SaveJourney(s.ctx, j))
	s.Require().NoError(s.repo.SaveJourney(s.ctx, j))

	page, err := s.repo.GetRecentJourneys(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(1, page.TotalCount)
}

func (s *JourneyRepositoryTestSuite) TestGetRecentJourneysOrder() {
	older := s.newFinishedJourney("veh_old", 100, 120, 1500)
	older.StartTime = 17000
	newer := s.newFinishedJourney("veh_new", 100, 110, 1500)
	newer.StartTime = 19000

	s.Require().NoError(s.repo.SaveJourney(s.ctx, older))
	s.Require().NoError(s.repo.SaveJourney(s.ctx, newer))

	page, err := s.repo.GetRecentJourneys(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(page.Journeys, 2)
	s.Equal("veh_new", page.Journeys[0].VehicleID)
	s.Equal("veh_old", page.Journeys[1].VehicleID)
}

func (s *JourneyRepositoryTestSuite) TestGetJourneyStatistics() {
	s.Require().NoError(s.repo.SaveJourney(s.ctx, s.newFinishedJourney("veh_1", 100, 120, 1000)))
	s.Require().NoError(s.repo.SaveJourney(s.ctx, s.newFinishedJourney("veh_2", 200, 160, 3000)))

	bounds := domain.BucketBoundaries{
		DurationShortMax:  300,
		DurationMediumMax: 900,
		DistanceShortMax:  2000,
		DistanceMediumMax: 5000,
	}
	stats, err := s.repo.GetJourneyStatistics(s.ctx, bounds)
	s.Require().NoError(err)

	s.Equal(2, stats.TotalJourneys)
	s.Equal(30.0, stats.MAE)
	s.Require().Len(stats.DurationBuckets, 3)
	s.Equal(2, stats.DurationBuckets[0].Count)
	s.Equal(1, stats.DistanceBuckets[0].Count)
	s.Equal(1, stats.DistanceBuckets[1].Count)
}

func TestJourneyRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(JourneyRepositoryTestSuite))
}
