package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
)

type LeaderboardPredictionRepository interface {
	FindBySeason(ctx context.Context, season int) ([]domain.Prediction, error)
	FindSprintsBySeason(ctx context.Context, season int) ([]domain.SprintPrediction, error)
}

type LeaderboardRaceRepository interface {
	FindBySeason(ctx context.Context, season int) ([]domain.Race, error)
}

type LeaderboardUserRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
}

type LeaderboardCache interface {
	Get(ctx context.Context, key string, now time.Time) (string, error)
	Put(ctx context.Context, key, payload string, ttlSeconds int, now time.Time) error
}

// LeaderboardService folds scored predictions into ranked season
// standings. Computation is a pure query over committed data; a short
// TTL row keeps repeated reads from re-aggregating every request.
type LeaderboardService struct {
	predictions LeaderboardPredictionRepository
	races       LeaderboardRaceRepository
	users       LeaderboardUserRepository
	cache       LeaderboardCache
	cacheTTL    int

	now func() time.Time
}

func NewLeaderboardService(
	predictions LeaderboardPredictionRepository,
	races LeaderboardRaceRepository,
	users LeaderboardUserRepository,
	cache LeaderboardCache,
	cacheTTL int,
) *LeaderboardService {
	return &LeaderboardService{
		predictions: predictions,
		races:       races,
		users:       users,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

func (s *LeaderboardService) Season(ctx context.Context, season int) ([]domain.Standing, error) {
	cacheKey := fmt.Sprintf("leaderboard-%d", season)

	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, cacheKey, s.now()); err == nil {
			var standings []domain.Standing
			if err = json.Unmarshal([]byte(payload), &standings); err == nil {
				return standings, nil
			}
			zap.L().Warn("discarding unreadable cached leaderboard", zap.String("key", cacheKey))
		} else if !errors.Is(err, repository.ErrCacheMiss) {
			zap.L().Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	standings, err := s.compute(ctx, season)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		payload, err := json.Marshal(standings)
		if err == nil {
			if err = s.cache.Put(ctx, cacheKey, string(payload), s.cacheTTL, s.now()); err != nil {
				zap.L().Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return standings, nil
}

func (s *LeaderboardService) compute(ctx context.Context, season int) ([]domain.Standing, error) {
	races, err := s.races.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("s.races.FindBySeason -> %w", err)
	}

	predictions, err := s.predictions.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("s.predictions.FindBySeason -> %w", err)
	}

	sprints, err := s.predictions.FindSprintsBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("s.predictions.FindSprintsBySeason -> %w", err)
	}

	current := aggregate(predictions, sprints, func(string) bool { return true })

	// Previous ranks come from re-running the same aggregation over
	// races completed strictly before the most recent completed one.
	previous := map[uint]int{}
	if cutoff, ok := latestCompletedRound(races); ok {
		before := roundsBefore(races, cutoff)
		prior := aggregate(predictions, sprints, func(raceID string) bool {
			return before[raceID]
		})
		for _, st := range rankStandings(prior) {
			previous[st.UserID] = st.Rank
		}
	}

	standings := rankStandings(current)
	if len(standings) == 0 {
		return []domain.Standing{}, nil
	}

	ids := make([]uint, 0, len(standings))
	for _, st := range standings {
		ids = append(ids, st.UserID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByIDs -> %w", err)
	}
	byID := make(map[uint]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for i := range standings {
		if u, ok := byID[standings[i].UserID]; ok {
			standings[i].UserName = u.Name
			standings[i].AvatarURL = u.AvatarURL
		}
		standings[i].PreviousRank = previous[standings[i].UserID]
	}

	return standings, nil
}

type userTotal struct {
	userID uint
	points int
	scored int
}

// aggregate sums scored predictions per user over the races admitted by
// include. Pending predictions are excluded entirely, never counted as
// zero; users whose every prediction is pending still appear, with zero
// scored predictions.
func aggregate(predictions []domain.Prediction, sprints []domain.SprintPrediction, include func(raceID string) bool) map[uint]userTotal {
	totals := map[uint]userTotal{}

	add := func(userID uint, raceID string, score domain.Score) {
		if !include(raceID) {
			return
		}
		t, ok := totals[userID]
		if !ok {
			t = userTotal{userID: userID}
		}
		if score.Scored {
			t.points += score.Points
			t.scored++
		}
		totals[userID] = t
	}

	for _, p := range predictions {
		add(p.UserID, p.RaceID, p.Score)
	}
	for _, p := range sprints {
		add(p.UserID, p.SprintRaceID, p.Score)
	}

	return totals
}

// rankStandings orders totals with standard competition ranking: ties
// share a rank and the next distinct score skips the tied positions.
// User ID breaks ties in the ordering so output is reproducible even
// when everyone is level.
func rankStandings(totals map[uint]userTotal) []domain.Standing {
	ordered := make([]userTotal, 0, len(totals))
	for _, t := range totals {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].points != ordered[j].points {
			return ordered[i].points > ordered[j].points
		}
		return ordered[i].userID < ordered[j].userID
	})

	standings := make([]domain.Standing, 0, len(ordered))
	for i, t := range ordered {
		rank := i + 1
		if i > 0 && t.points == ordered[i-1].points {
			rank = standings[i-1].Rank
		}
		standings = append(standings, domain.Standing{
			UserID:      t.userID,
			Points:      t.points,
			ScoredCount: t.scored,
			Rank:        rank,
		})
	}

	return standings
}

// latestCompletedRound finds the highest completed round of the season.
func latestCompletedRound(races []domain.Race) (int, bool) {
	latest, found := 0, false
	for _, r := range races {
		if r.Completed() && r.Round > latest {
			latest = r.Round
			found = true
		}
	}

	return latest, found
}

// roundsBefore marks every race ID whose round is strictly before the
// cutoff. Sprint races share their weekend's ID, so the same set gates
// both prediction kinds.
func roundsBefore(races []domain.Race, cutoff int) map[string]bool {
	ids := map[string]bool{}
	for _, r := range races {
		if r.Round < cutoff {
			ids[r.ID] = true
		}
	}

	return ids
}
