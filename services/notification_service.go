package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golf-performance-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// roundNotification is what clients render in the bell dropdown.
type roundNotification struct {
	RoundID        string    `json:"round_id"`
	Date           time.Time `json:"date"`
	ScoringAverage float64   `json:"scoring_average"`
	PersonalBest   bool      `json:"personal_best"`
}

// StreamNotificationsSSE streams real-time round events for the
// authenticated user: every newly logged round, flagged when it beats the
// user's best score so far.
func (s *NotificationService) StreamNotificationsSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastMaxCreatedAt time.Time

		// Initialize cursor
		var latest models.GolfRound
		if err := s.DB.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			First(&latest).Error; err == nil {
			lastMaxCreatedAt = latest.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for user %s: %v", userID, err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				var newRounds []models.GolfRound

				err := s.DB.
					Where("user_id = ?", userID).
					Where("created_at > ?", lastMaxCreatedAt).
					Order("created_at ASC").
					Find(&newRounds).Error
				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}

				if len(newRounds) == 0 {
					continue
				}

				lastMaxCreatedAt = newRounds[len(newRounds)-1].CreatedAt

				for _, r := range newRounds {
					payload, _ := json.Marshal(roundNotification{
						RoundID:        r.ID,
						Date:           r.Date,
						ScoringAverage: r.ScoringAverage,
						PersonalBest:   s.isPersonalBest(userID, r),
					})

					fmt.Fprintf(w,
						"event: round\ndata: %s\n\n",
						payload,
					)
				}

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}

// isPersonalBest reports whether the round's total strokes beat every round
// logged before it.
func (s *NotificationService) isPersonalBest(userID string, round models.GolfRound) bool {
	var betterOrEqual int64
	err := s.DB.Model(&models.GolfRound{}).
		Where("user_id = ? AND id <> ? AND created_at < ?", userID, round.ID, round.CreatedAt).
		Where("scoring_average <= ?", round.ScoringAverage).
		Count(&betterOrEqual).Error
	if err != nil {
		return false
	}

	var earlier int64
	if err := s.DB.Model(&models.GolfRound{}).
		Where("user_id = ? AND id <> ? AND created_at < ?", userID, round.ID, round.CreatedAt).
		Count(&earlier).Error; err != nil {
		return false
	}

	// the first round ever logged is not a "personal best"
	return earlier > 0 && betterOrEqual == 0
}
