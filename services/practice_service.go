package services

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"golf-performance-system/models"
	"golf-performance-system/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PracticeService struct {
	DB *gorm.DB
}

func NewPracticeService(db *gorm.DB) *PracticeService {
	return &PracticeService{DB: db}
}

// drillSessionWindow is the rolling window used for drill trends. Drills
// accumulate sessions far slower than rounds, so the window is smaller than
// the dashboard's.
const drillSessionWindow = 5

func (s *PracticeService) CreateDrill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	name := strings.TrimSpace(c.FormValue("name"))
	description := c.FormValue("description")
	scoreType := c.FormValue("score_type", models.ScoreTypeIndividual)
	targetShotsStr := c.FormValue("target_shots")

	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if scoreType != models.ScoreTypeIndividual && scoreType != models.ScoreTypeFinal {
		return c.Status(400).JSON(fiber.Map{"error": "score_type must be 'individual' or 'final'"})
	}

	targetShots := 0
	if targetShotsStr != "" {
		n, err := strconv.Atoi(targetShotsStr)
		if err != nil || n < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "target_shots must be a non-negative integer"})
		}
		targetShots = n
	}

	drill := &models.PracticeDrill{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		ScoreType:   scoreType,
		TargetShots: targetShots,
	}
	if err := s.DB.Create(drill).Error; err != nil {
		log.Printf("❌ Failed to insert drill for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	return c.Status(201).JSON(drill)
}

func (s *PracticeService) GetDrills(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var drills []models.PracticeDrill
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&drills).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch drills"})
	}
	return c.JSON(drills)
}

func (s *PracticeService) GetDrillByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var drill models.PracticeDrill
	err := s.DB.First(&drill, "id = ? AND user_id = ?", c.Params("id"), userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "drill not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch drill"})
	}
	return c.JSON(drill)
}

// DeleteDrill removes a drill and all its sessions.
func (s *PracticeService) DeleteDrill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	drillID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", drillID, userID).Delete(&models.PracticeDrill{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("drill_id = ?", drillID).Delete(&models.PracticeSession{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "drill not found"})
	}
	if err != nil {
		log.Printf("❌ Failed to delete drill %s: %v", drillID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}

	return c.JSON(fiber.Map{"deleted": drillID})
}

type sessionRequest struct {
	Date       string    `json:"date"`
	Scores     []float64 `json:"scores,omitempty"`
	FinalScore *float64  `json:"final_score,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// CreateSession logs one sitting of a drill. The drill's score type decides
// which score shape is required.
func (s *PracticeService) CreateSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	drillID := c.Params("id")

	var drill models.PracticeDrill
	if err := s.DB.First(&drill, "id = ? AND user_id = ?", drillID, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "drill not found"})
	}

	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if req.Date == "" {
		return c.Status(400).JSON(fiber.Map{"error": "date is required"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid date (use YYYY-MM-DD)"})
	}

	session := &models.PracticeSession{
		ID:          uuid.NewString(),
		DrillID:     drillID,
		UserID:      userID,
		SessionDate: date,
		Notes:       req.Notes,
	}

	switch drill.ScoreType {
	case models.ScoreTypeIndividual:
		if len(req.Scores) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "individual scores are required for this drill type"})
		}
		for _, v := range req.Scores {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return c.Status(400).JSON(fiber.Map{"error": "scores must be numbers"})
			}
		}
		session.Scores = pq.Float64Array(req.Scores)
	case models.ScoreTypeFinal:
		if req.FinalScore == nil {
			return c.Status(400).JSON(fiber.Map{"error": "final_score is required for this drill type"})
		}
		if math.IsNaN(*req.FinalScore) || math.IsInf(*req.FinalScore, 0) {
			return c.Status(400).JSON(fiber.Map{"error": "final_score must be a number"})
		}
		session.FinalScore = req.FinalScore
	}

	if err := s.DB.Create(session).Error; err != nil {
		log.Printf("❌ Failed to insert session for drill %s: %v", drillID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	return c.Status(201).JSON(session)
}

func (s *PracticeService) GetSessions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	drillID := c.Params("id")

	var drill models.PracticeDrill
	if err := s.DB.First(&drill, "id = ? AND user_id = ?", drillID, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "drill not found"})
	}

	var sessions []models.PracticeSession
	err := s.DB.Where("drill_id = ?", drillID).
		Order("session_date DESC").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch sessions"})
	}
	return c.JSON(sessions)
}

func (s *PracticeService) DeleteSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	sessionID := c.Params("id")

	res := s.DB.Where("id = ? AND user_id = ?", sessionID, userID).Delete(&models.PracticeSession{})
	if res.Error != nil {
		log.Printf("❌ Failed to delete session %s: %v", sessionID, res.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "session not found"})
	}
	return c.JSON(fiber.Map{"deleted": sessionID})
}

// sessionScore collapses a session to a single value: the mean of the shot
// scores for individual-scored drills, the final score otherwise.
func sessionScore(session models.PracticeSession) float64 {
	if session.FinalScore != nil {
		return *session.FinalScore
	}
	return stats.WindowMean([]float64(session.Scores))
}

// GetDrillPerformance reports the drill's recent-session average against the
// preceding window, the same rolling-window shape as the dashboard snapshot.
func (s *PracticeService) GetDrillPerformance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	drillID := c.Params("id")

	var drill models.PracticeDrill
	if err := s.DB.First(&drill, "id = ? AND user_id = ?", drillID, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "drill not found"})
	}

	var sessions []models.PracticeSession
	err := s.DB.Where("drill_id = ?", drillID).
		Order("session_date DESC").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch sessions"})
	}

	if len(sessions) == 0 {
		return c.JSON(fiber.Map{
			"drill_id":      drillID,
			"session_count": 0,
			"current":       nil,
			"previous":      nil,
			"change":        nil,
		})
	}

	scores := make([]float64, len(sessions))
	best := sessionScore(sessions[0])
	for i, sess := range sessions {
		scores[i] = sessionScore(sess)
		if scores[i] > best {
			best = scores[i]
		}
	}

	currentEnd := drillSessionWindow
	if currentEnd > len(scores) {
		currentEnd = len(scores)
	}
	currentMean := stats.WindowMean(scores[:currentEnd])
	current := stats.Round1(currentMean)

	resp := fiber.Map{
		"drill_id":      drillID,
		"session_count": len(sessions),
		"best_session":  stats.Round1(best),
		"current":       current,
		"previous":      nil,
		"change":        nil,
	}

	if len(scores) > drillSessionWindow {
		previousEnd := 2 * drillSessionWindow
		if previousEnd > len(scores) {
			previousEnd = len(scores)
		}
		previousMean := stats.WindowMean(scores[drillSessionWindow:previousEnd])
		resp["previous"] = stats.Round1(previousMean)
		resp["change"] = stats.Round1(currentMean - previousMean)
	}

	return c.JSON(resp)
}
