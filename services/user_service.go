package services

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"golf-performance-system/models"
	"golf-performance-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// SearchUsers searches the local GolfUser mirror maintained by the profile
// sync worker.
func (s *UserService) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.GolfUser{}).Limit(limit)
	if query != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	var users []models.GolfUser
	if err := db.Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "search failed", "details": err.Error()})
	}

	// Minimal response shape: external consumers key on ExternalUserID.
	type UserSummary struct {
		ID             string  `json:"id"`
		ExternalUserID string  `json:"external_user_id"`
		Username       string  `json:"username"`
		AvatarURL      *string `json:"avatar_url,omitempty"`
	}

	res := make([]UserSummary, len(users))
	for i, u := range users {
		res[i] = UserSummary{
			ID:             u.ID,
			ExternalUserID: u.ExternalUserID,
			Username:       u.Username,
			AvatarURL:      u.AvatarURL,
		}
	}
	return c.JSON(res)
}

// UploadAvatar stores a new profile picture and points the local mirror at it.
func (s *UserService) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	avatar, err := c.FormFile("avatar")
	if err != nil || avatar.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "avatar file is required"})
	}

	ext := filepath.Ext(avatar.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "users/avatars/" + uuid.NewString() + ext
	url, err := utils.StoreUpload(avatar, key)
	if err != nil {
		log.Printf("❌ Failed to upload avatar for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload avatar"})
	}

	res := s.DB.Model(&models.GolfUser{}).
		Where("external_user_id = ?", userID).
		Update("avatar_url", url)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to store avatar URL"})
	}
	if res.RowsAffected == 0 {
		// Profile not mirrored yet; the sync worker will pick it up later,
		// but the client still gets a usable URL now.
		log.Printf("⚠️ Avatar uploaded for unmirrored user %s", userID)
	}

	return c.JSON(fiber.Map{"avatar_url": url})
}

// SetHomeCourse records the user's preferred course on the local mirror.
func (s *UserService) SetHomeCourse(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	courseID := c.FormValue("course_id")
	if courseID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "course_id is required"})
	}

	var course models.Course
	if err := s.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "course_id not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to resolve course"})
	}

	err := s.DB.Model(&models.GolfUser{}).
		Where("external_user_id = ?", userID).
		Update("home_course_id", courseID).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to store home course"})
	}

	return c.JSON(fiber.Map{"home_course_id": courseID})
}
