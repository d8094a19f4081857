package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"golf-performance-system/models"
	"golf-performance-system/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoundService struct {
	DB *gorm.DB
}

func NewRoundService(db *gorm.DB) *RoundService {
	return &RoundService{DB: db}
}

// roundInput is the fully-typed result of parsing the add-round form. It is
// the only place form strings become numbers — the stats core never sees an
// unparsed value.
type roundInput struct {
	Date                time.Time
	CourseID            *string
	ScoringAverage      float64
	FairwaysHit         float64
	GreensInRegulation  float64
	UpAndDownPercentage float64
	PuttsPerRound       float64
	StrokesGained       float64
}

func parseMetricField(c *fiber.Ctx, name string) (float64, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func parseRoundForm(c *fiber.Ctx) (*roundInput, error) {
	dateStr := c.FormValue("date")
	if dateStr == "" {
		return nil, errors.New("date is required")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, errors.New("invalid date (use YYYY-MM-DD)")
	}

	in := &roundInput{Date: date}
	if courseID := c.FormValue("course_id"); courseID != "" {
		in.CourseID = &courseID
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"scoring_average", &in.ScoringAverage},
		{"fairways_hit", &in.FairwaysHit},
		{"greens_in_regulation", &in.GreensInRegulation},
		{"up_and_down_percentage", &in.UpAndDownPercentage},
		{"putts_per_round", &in.PuttsPerRound},
		{"strokes_gained", &in.StrokesGained},
	}
	for _, f := range fields {
		v, err := parseMetricField(c, f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return in, nil
}

// CreateRound logs a new round. The adjusted scoring average is computed
// here, once, and stored — it is not recomputed if the course changes later.
func (s *RoundService) CreateRound(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	in, err := parseRoundForm(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	// Resolve the course par at creation time. A course id pointing nowhere
	// is tolerated: the round keeps the reference and the adjusted average
	// stays null.
	var adjusted *float64
	if in.CourseID != nil {
		var course models.Course
		if err := s.DB.First(&course, "id = ?", *in.CourseID).Error; err == nil {
			par := course.Par
			adjusted = stats.ComputeAdjustedScoringAverage(in.ScoringAverage, &par)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(500).JSON(fiber.Map{"error": "failed to resolve course"})
		}
	}

	round := &models.GolfRound{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		Date:                   in.Date,
		CourseID:               in.CourseID,
		ScoringAverage:         in.ScoringAverage,
		FairwaysHit:            in.FairwaysHit,
		GreensInRegulation:     in.GreensInRegulation,
		UpAndDownPercentage:    in.UpAndDownPercentage,
		PuttsPerRound:          in.PuttsPerRound,
		StrokesGained:          in.StrokesGained,
		AdjustedScoringAverage: adjusted,
	}

	if err := s.DB.Create(round).Error; err != nil {
		log.Printf("❌ Failed to insert round for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	reloaded, err := s.loadRoundWithCourse(round.ID)
	if err != nil {
		log.Printf("⚠️ Round %s saved but reload with course failed: %v", round.ID, err)
		return c.Status(201).JSON(round)
	}
	return c.Status(201).JSON(reloaded)
}

// loadRoundWithCourse fetches a round with its course attached, for the
// create response.
func (s *RoundService) loadRoundWithCourse(roundID string) (*models.GolfRound, error) {
	var round models.GolfRound
	if err := s.DB.Preload("Course").First(&round, "id = ?", roundID).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

// GetRounds lists the user's rounds most-recent-date-first, ties broken by
// most-recently-inserted-first. This ordering is the contract the stats
// engine relies on.
func (s *RoundService) GetRounds(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var rounds []models.GolfRound
	err := s.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&rounds).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch rounds"})
	}

	return c.JSON(rounds)
}

func (s *RoundService) DeleteRound(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	roundID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", roundID, userID).Delete(&models.GolfRound{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("round_id = ?", roundID).Delete(&models.RoundHoleScore{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "round not found"})
	}
	if err != nil {
		log.Printf("❌ Failed to delete round %s: %v", roundID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}

	return c.JSON(fiber.Map{"deleted": roundID})
}

type holeScoreInput struct {
	HoleNumber int `json:"hole_number"`
	Par        int `json:"par"`
	Score      int `json:"score"`
}

type roundScoresRequest struct {
	Holes []holeScoreInput `json:"holes"`
}

func validateHoleScores(holes []holeScoreInput) error {
	if len(holes) == 0 {
		return errors.New("holes are required")
	}
	if len(holes) > 18 {
		return errors.New("a round has at most 18 holes")
	}
	seen := make(map[int]bool, len(holes))
	for _, h := range holes {
		if h.HoleNumber < 1 || h.HoleNumber > 18 {
			return fmt.Errorf("hole_number %d out of range 1-18", h.HoleNumber)
		}
		if seen[h.HoleNumber] {
			return fmt.Errorf("duplicate hole_number %d", h.HoleNumber)
		}
		seen[h.HoleNumber] = true
		if h.Par < 3 || h.Par > 6 {
			return fmt.Errorf("par for hole %d out of range 3-6", h.HoleNumber)
		}
		if h.Score < 1 || h.Score > 15 {
			return fmt.Errorf("score for hole %d out of range 1-15", h.HoleNumber)
		}
	}
	return nil
}

// AddRoundScores records (or re-records) hole-by-hole detail for a round.
func (s *RoundService) AddRoundScores(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	roundID := c.Params("id")

	var req roundScoresRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if err := validateHoleScores(req.Holes); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var round models.GolfRound
	if err := s.DB.First(&round, "id = ? AND user_id = ?", roundID, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "round not found"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, h := range req.Holes {
			record := models.RoundHoleScore{
				ID:         uuid.NewString(),
				RoundID:    roundID,
				HoleNumber: h.HoleNumber,
				Par:        h.Par,
				Score:      h.Score,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "round_id"}, {Name: "hole_number"}},
				DoUpdates: clause.AssignmentColumns([]string{"par", "score", "updated_at"}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to save hole scores for round %s: %v", roundID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to save hole scores"})
	}

	return s.respondWithScores(c, roundID)
}

// GetRoundScores returns the hole-by-hole detail for a round, ordered by
// hole number. A round without detail returns holes: null.
func (s *RoundService) GetRoundScores(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	roundID := c.Params("id")

	var round models.GolfRound
	if err := s.DB.First(&round, "id = ? AND user_id = ?", roundID, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "round not found"})
	}

	return s.respondWithScores(c, roundID)
}

func (s *RoundService) respondWithScores(c *fiber.Ctx, roundID string) error {
	var holes []models.RoundHoleScore
	err := s.DB.Where("round_id = ?", roundID).
		Order("hole_number ASC").
		Find(&holes).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch hole scores"})
	}

	if len(holes) == 0 {
		return c.JSON(fiber.Map{"round_id": roundID, "holes": nil})
	}
	return c.JSON(fiber.Map{"round_id": roundID, "holes": holes})
}
