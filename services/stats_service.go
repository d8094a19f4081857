package services

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"golf-performance-system/models"
	"golf-performance-system/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) fetchRounds(userID string) ([]models.GolfRound, error) {
	var rounds []models.GolfRound
	err := s.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&rounds).Error
	return rounds, err
}

// GetSnapshot returns current/previous rolling averages and their deltas.
// The default window is served from the scheduler-maintained cache when it
// is still current; custom windows always compute fresh.
func (s *StatsService) GetSnapshot(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	windowSize := stats.DefaultWindowSize
	if w := c.Query("window"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "window must be a positive integer"})
		}
		windowSize = n
	}

	if windowSize == stats.DefaultWindowSize {
		if cached, ok := s.cachedSnapshot(userID); ok {
			c.Set("Content-Type", fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	rounds, err := s.fetchRounds(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch rounds"})
	}

	snap, err := stats.ComputeSnapshot(rounds, windowSize)
	if err != nil {
		// A ComputationError here means the stored data is broken, not that
		// the request was bad.
		log.Printf("❌ Snapshot computation failed for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "statistics computation failed", "cause": err.Error()})
	}

	return c.JSON(snap)
}

func (s *StatsService) cachedSnapshot(userID string) (string, bool) {
	var cache models.StatSnapshotCache
	if err := s.DB.First(&cache, "user_id = ?", userID).Error; err != nil {
		return "", false
	}

	var count int64
	err := s.DB.Model(&models.GolfRound{}).
		Where("user_id = ? AND created_at > ?", userID, cache.ComputedAt).
		Count(&count).Error
	if err != nil || count > 0 {
		return "", false
	}

	var total int64
	if err := s.DB.Model(&models.GolfRound{}).Where("user_id = ?", userID).Count(&total).Error; err != nil || total != cache.RoundCount {
		// A delete since the cache was written also invalidates it.
		return "", false
	}

	return cache.Snapshot, true
}

// timeframePoint matches the shape the dashboard charts consume: label plus
// a value rounded to 2 decimals, oldest first.
type timeframePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// GetTimeframe returns the chart series for one metric over the last N rounds.
func (s *StatsService) GetTimeframe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	statistic := c.Query("statistic", "scoring_average")
	if _, ok := stats.LowerIsBetter(statistic); !ok {
		return c.Status(400).JSON(fiber.Map{
			"error":  "unknown statistic",
			"fields": stats.MetricFieldNames(),
		})
	}

	numRounds := 10
	if n := c.Query("rounds"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil || v <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "rounds must be a positive integer"})
		}
		numRounds = v
	}

	rounds, err := s.fetchRounds(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch rounds"})
	}
	if len(rounds) > numRounds {
		rounds = rounds[:numRounds]
	}

	points := make([]timeframePoint, len(rounds))
	for i, r := range rounds {
		v, _ := stats.MetricValue(r, statistic)
		// reverse: charts plot oldest to newest
		points[len(rounds)-1-i] = timeframePoint{
			Date:  r.Date.Format("Jan 2, 2006"),
			Value: stats.Round2(v),
		}
	}

	lower, _ := stats.LowerIsBetter(statistic)
	return c.JSON(fiber.Map{
		"statistic":    statistic,
		"lower_better": lower,
		"points":       points,
	})
}

// GetRoundHandicap computes the handicap differential for one round from its
// hole-by-hole detail, falling back to strokes-over-par when the course has
// no rating data. Rounds without hole detail return handicap: null.
func (s *StatsService) GetRoundHandicap(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	roundID := c.Params("id")

	var round models.GolfRound
	if err := s.DB.First(&round, "id = ? AND user_id = ?", roundID, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "round not found"})
	}

	var holes []models.RoundHoleScore
	err := s.DB.Where("round_id = ?", roundID).
		Order("hole_number ASC").
		Find(&holes).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch hole scores"})
	}

	var course *models.Course
	if round.CourseID != nil {
		var loaded models.Course
		if err := s.DB.First(&loaded, "id = ?", *round.CourseID).Error; err == nil {
			course = &loaded
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(500).JSON(fiber.Map{"error": "failed to resolve course"})
		}
		// a dangling course reference falls through to the par-relative path
	}

	handicap, err := stats.ComputeRoundHandicap(holes, course)
	if err != nil {
		log.Printf("❌ Handicap computation failed for round %s: %v", roundID, err)
		return c.Status(500).JSON(fiber.Map{"error": "handicap computation failed", "cause": err.Error()})
	}

	return c.JSON(fiber.Map{"round_id": roundID, "handicap": handicap})
}

// RefreshSnapshotCaches recomputes the cached default-window snapshot for
// every user whose rounds changed since their cache was written. Called by
// the scheduler.
func (s *StatsService) RefreshSnapshotCaches() {
	var userIDs []string
	err := s.DB.Model(&models.GolfRound{}).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		log.Printf("[Scheduler] DB error listing users: %v", err)
		return
	}

	var refreshed int
	for _, userID := range userIDs {
		if _, ok := s.cachedSnapshot(userID); ok {
			continue // still current
		}

		rounds, err := s.fetchRounds(userID)
		if err != nil {
			log.Printf("[Scheduler] Failed to fetch rounds for %s: %v", userID, err)
			continue
		}

		snap, err := stats.ComputeSnapshot(rounds, stats.DefaultWindowSize)
		if err != nil {
			log.Printf("[Scheduler] Snapshot failed for %s: %v", userID, err)
			continue
		}

		payload, err := json.Marshal(snap)
		if err != nil {
			log.Printf("[Scheduler] Marshal failed for %s: %v", userID, err)
			continue
		}

		cache := models.StatSnapshotCache{
			ID:         uuid.NewString(),
			UserID:     userID,
			WindowSize: stats.DefaultWindowSize,
			Snapshot:   string(payload),
			RoundCount: int64(len(rounds)),
			ComputedAt: time.Now(),
		}
		err = s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"window_size", "snapshot", "round_count", "computed_at", "updated_at"}),
		}).Create(&cache).Error
		if err != nil {
			log.Printf("[Scheduler] Failed to store snapshot cache for %s: %v", userID, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		log.Printf("✅ Refreshed %d snapshot cache(s)", refreshed)
	}
}
