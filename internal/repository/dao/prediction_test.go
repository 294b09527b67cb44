package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool -> %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=boxbox",
		"POSTGRES_PASSWORD=boxbox",
		"POSTGRES_DB=boxbox_test",
	})
	if err != nil {
		log.Fatalf("pool.Run -> %v", err)
	}

	dsn := fmt.Sprintf(
		"host=localhost port=%s user=boxbox password=boxbox dbname=boxbox_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, dbErr := testDB.DB()
		if dbErr != nil {
			return dbErr
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("pool.Retry -> %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("InitTables -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func requireTestDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("integration test needs docker")
	}
}

func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"predictions", "sprint_predictions", "races", "sprint_races", "users"} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
}

func seedRace(t *testing.T, season, round int) Race {
	t.Helper()

	race, err := NewRaceDAO(testDB).Insert(context.Background(), Race{
		ID:     fmt.Sprintf("%d-%d", season, round),
		Season: season,
		Round:  round,
		Name:   "Test Grand Prix",
		Start:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	return race
}

func seedSprintRace(t *testing.T, season, round int) SprintRace {
	t.Helper()

	race, err := NewRaceDAO(testDB).InsertSprint(context.Background(), SprintRace{
		ID:     fmt.Sprintf("%d-%d", season, round),
		Season: season,
		Round:  round,
		Name:   "Test Sprint",
		Start:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	return race
}

func seedUser(t *testing.T, email string) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:    email,
		Password: "hash",
		Name:     "Test User",
	})
	require.NoError(t, err)

	return user
}

func testPrediction(userID uint, raceID string) Prediction {
	return Prediction{
		UserID:              userID,
		RaceID:              raceID,
		FirstPlaceDriverID:  "verstappen",
		SecondPlaceDriverID: "norris",
		ThirdPlaceDriverID:  "leclerc",
		FastestLapDriverID:  "hamilton",
		DriverOfTheDayID:    "russell",
	}
}

func TestPredictionDAO_InsertEnforcesOnePerUserPerRace(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	dao := NewPredictionDAO(testDB)

	_, err := dao.Insert(context.Background(), testPrediction(1, race.ID))
	require.NoError(t, err)

	_, err = dao.Insert(context.Background(), testPrediction(1, race.ID))
	assert.ErrorIs(t, err, ErrPredictionExists)

	// A different user on the same race is fine.
	_, err = dao.Insert(context.Background(), testPrediction(2, race.ID))
	assert.NoError(t, err)
}

func TestPredictionDAO_ConcurrentInsertsKeepOneRow(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	dao := NewPredictionDAO(testDB)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := dao.Insert(context.Background(), testPrediction(1, race.ID)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, testDB.Model(&Prediction{}).
		Where("user_id = ? AND race_id = ?", 1, race.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPredictionDAO_ScoreRaceOverwrites(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	dao := NewPredictionDAO(testDB)

	_, err := dao.Insert(context.Background(), testPrediction(1, race.ID))
	require.NoError(t, err)
	_, err = dao.Insert(context.Background(), testPrediction(2, race.ID))
	require.NoError(t, err)

	err = dao.ScoreRace(context.Background(), race.ID, func(p Prediction) int {
		return int(p.UserID) * 3
	})
	require.NoError(t, err)

	first, err := dao.FindByUserAndRace(context.Background(), 1, race.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Score)
	assert.Equal(t, 3, *first.Score)

	// Re-scoring replaces the stored value instead of accumulating.
	err = dao.ScoreRace(context.Background(), race.ID, func(Prediction) int {
		return 1
	})
	require.NoError(t, err)

	first, err = dao.FindByUserAndRace(context.Background(), 1, race.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Score)
	assert.Equal(t, 1, *first.Score)

	second, err := dao.FindByUserAndRace(context.Background(), 2, race.ID)
	require.NoError(t, err)
	require.NotNil(t, second.Score)
	assert.Equal(t, 1, *second.Score)
}

func TestPredictionDAO_UpdateGuessKeepsScore(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	dao := NewPredictionDAO(testDB)

	_, err := dao.Insert(context.Background(), testPrediction(1, race.ID))
	require.NoError(t, err)

	revised := testPrediction(1, race.ID)
	revised.FirstPlaceDriverID = "norris"
	revised.SecondPlaceDriverID = "verstappen"

	updated, err := dao.UpdateGuess(context.Background(), revised)
	require.NoError(t, err)
	assert.Equal(t, "norris", updated.FirstPlaceDriverID)
	assert.Nil(t, updated.Score)
}

func TestPredictionDAO_UpdateGuessMissingRow(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)

	_, err := NewPredictionDAO(testDB).UpdateGuess(context.Background(), testPrediction(7, race.ID))

	assert.ErrorIs(t, err, ErrPredictionNotFound)
}

func TestPredictionDAO_FindBySeasonJoinsRaces(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	r1 := seedRace(t, 2026, 1)
	r2 := seedRace(t, 2026, 2)
	other := seedRace(t, 2025, 1)

	dao := NewPredictionDAO(testDB)
	for _, raceID := range []string{r1.ID, r2.ID, other.ID} {
		_, err := dao.Insert(context.Background(), testPrediction(1, raceID))
		require.NoError(t, err)
	}

	predictions, err := dao.FindBySeason(context.Background(), 2026)
	require.NoError(t, err)

	assert.Len(t, predictions, 2)
	for _, p := range predictions {
		assert.NotEqual(t, other.ID, p.RaceID)
	}
}

func TestRaceDAO_DeleteCascadesToPredictions(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	predictions := NewPredictionDAO(testDB)

	_, err := predictions.Insert(context.Background(), testPrediction(1, race.ID))
	require.NoError(t, err)

	require.NoError(t, NewRaceDAO(testDB).Delete(context.Background(), race.ID))

	_, err = predictions.FindByUserAndRace(context.Background(), 1, race.ID)
	assert.ErrorIs(t, err, ErrPredictionNotFound)
}

func TestUserDAO_DeleteCascadesToPredictions(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	sprint := seedSprintRace(t, 2026, 2)
	user := seedUser(t, "kimi@example.com")
	other := seedUser(t, "seb@example.com")

	predictions := NewPredictionDAO(testDB)

	_, err := predictions.Insert(context.Background(), testPrediction(user.ID, race.ID))
	require.NoError(t, err)
	_, err = predictions.Insert(context.Background(), testPrediction(other.ID, race.ID))
	require.NoError(t, err)
	_, err = predictions.InsertSprint(context.Background(), SprintPrediction{
		UserID:              user.ID,
		SprintRaceID:        sprint.ID,
		FirstPlaceDriverID:  "verstappen",
		SecondPlaceDriverID: "norris",
		ThirdPlaceDriverID:  "leclerc",
	})
	require.NoError(t, err)

	users := NewUserDAO(testDB)
	require.NoError(t, users.Delete(context.Background(), user.ID))

	// Both kinds of prediction go with the user; other users' rows stay.
	_, err = predictions.FindByUserAndRace(context.Background(), user.ID, race.ID)
	assert.ErrorIs(t, err, ErrPredictionNotFound)
	_, err = predictions.FindSprintByUserAndRace(context.Background(), user.ID, sprint.ID)
	assert.ErrorIs(t, err, ErrPredictionNotFound)
	_, err = predictions.FindByUserAndRace(context.Background(), other.ID, race.ID)
	assert.NoError(t, err)

	_, err = users.FindByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, users.Delete(context.Background(), user.ID), ErrUserNotFound)
}

func TestRaceDAO_SetResultsFlipsCompleted(t *testing.T) {
	requireTestDB(t)
	resetTables(t)

	race := seedRace(t, 2026, 1)
	dao := NewRaceDAO(testDB)

	err := dao.SetResults(context.Background(), race.ID,
		"verstappen", "norris", "leclerc", "hamilton", "russell")
	require.NoError(t, err)

	got, err := dao.FindByID(context.Background(), race.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.FirstPlaceDriverID)
	assert.Equal(t, "verstappen", *got.FirstPlaceDriverID)

	err = dao.SetResults(context.Background(), "2026-99",
		"verstappen", "norris", "leclerc", "hamilton", "russell")
	assert.ErrorIs(t, err, ErrRaceNotFound)
}
