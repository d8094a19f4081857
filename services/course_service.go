package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"golf-performance-system/models"
	"golf-performance-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

type CourseService struct {
	DB *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{DB: db}
}

// CreateCourse adds a course with optional rating data and an optional photo.
func (s *CourseService) CreateCourse(c *fiber.Ctx) error {
	// --- Parse form values ---
	name := strings.TrimSpace(c.FormValue("name"))
	parStr := c.FormValue("par")
	courseRatingStr := c.FormValue("course_rating")
	slopeRatingStr := c.FormValue("slope_rating")

	if name == "" || parStr == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name and par are required"})
	}
	// Normalize so "Löngvík" typed on different keyboards slugs and searches
	// the same way.
	name = norm.NFC.String(name)

	par, err := strconv.Atoi(parStr)
	if err != nil || par < 27 || par > 80 {
		return c.Status(400).JSON(fiber.Map{"error": "par must be a plausible integer"})
	}

	// Rating data is optional, but validated when present.
	var courseRating *float64
	if courseRatingStr != "" {
		f, err := strconv.ParseFloat(courseRatingStr, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "course_rating must be a positive number"})
		}
		courseRating = &f
	}

	var slopeRating *int
	if slopeRatingStr != "" {
		n, err := strconv.Atoi(slopeRatingStr)
		if err != nil || n < 55 || n > 155 {
			return c.Status(400).JSON(fiber.Map{"error": "slope_rating must be an integer between 55 and 155"})
		}
		slopeRating = &n
	}

	// --- Handle course photo upload ---
	var photoURL string
	if photo, err := c.FormFile("photo"); err == nil && photo.Size > 0 {
		ext := filepath.Ext(photo.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		key := "courses/photos/" + uuid.NewString() + ext
		url, err := utils.StoreUpload(photo, key)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload course photo"})
		}
		photoURL = url
	}

	course := &models.Course{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         s.uniqueSlug(name),
		Par:          par,
		CourseRating: courseRating,
		SlopeRating:  slopeRating,
		PhotoURL:     photoURL,
	}

	if err := s.DB.Create(course).Error; err != nil {
		log.Printf("❌ Failed to insert course %q: %v", name, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}

	return c.Status(201).JSON(course)
}

// uniqueSlug appends a numeric suffix when two courses share a name.
func (s *CourseService) uniqueSlug(name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := s.DB.Model(&models.Course{}).Where("slug = ?", candidate).Count(&count).Error; err != nil || count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *CourseService) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := s.DB.Order("name ASC").Find(&courses).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch courses"})
	}
	return c.JSON(courses)
}

func (s *CourseService) GetCourseByID(c *fiber.Ctx) error {
	var course models.Course
	err := s.DB.Preload("Scorecard.Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("hole_number ASC")
	}).Preload("Scorecard").First(&course, "id = ?", c.Params("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "course not found"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch course"})
	}
	return c.JSON(course)
}

// DeleteCourse removes the course and its scorecard. Rounds that reference
// it keep their course id; reads fall back to the no-course paths.
func (s *CourseService) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var scorecard models.Scorecard
		if err := tx.First(&scorecard, "course_id = ?", courseID).Error; err == nil {
			if err := tx.Where("scorecard_id = ?", scorecard.ID).Delete(&models.ScorecardHole{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&scorecard).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		res := tx.Where("id = ?", courseID).Delete(&models.Course{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "course not found"})
	}
	if err != nil {
		log.Printf("❌ Failed to delete course %s: %v", courseID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}

	return c.JSON(fiber.Map{"deleted": courseID})
}

type scorecardHoleInput struct {
	HoleNumber int `json:"hole_number"`
	Par        int `json:"par"`
	Handicap   int `json:"handicap"`
}

type scorecardRequest struct {
	Holes []scorecardHoleInput `json:"holes"`
}

func validateScorecardHoles(holes []scorecardHoleInput) error {
	if len(holes) != 18 {
		return fmt.Errorf("a scorecard needs exactly 18 holes, got %d", len(holes))
	}
	seenHole := make(map[int]bool, 18)
	seenHandicap := make(map[int]bool, 18)
	for _, h := range holes {
		if h.HoleNumber < 1 || h.HoleNumber > 18 {
			return fmt.Errorf("hole_number %d out of range 1-18", h.HoleNumber)
		}
		if seenHole[h.HoleNumber] {
			return fmt.Errorf("duplicate hole_number %d", h.HoleNumber)
		}
		seenHole[h.HoleNumber] = true
		if h.Par < 3 || h.Par > 6 {
			return fmt.Errorf("par for hole %d out of range 3-6", h.HoleNumber)
		}
		if h.Handicap < 1 || h.Handicap > 18 {
			return fmt.Errorf("handicap for hole %d out of range 1-18", h.HoleNumber)
		}
		if seenHandicap[h.Handicap] {
			return fmt.Errorf("handicap rank %d assigned twice", h.Handicap)
		}
		seenHandicap[h.Handicap] = true
	}
	return nil
}

// PutScorecard creates or replaces the 18-hole template for a course.
func (s *CourseService) PutScorecard(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var req scorecardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if err := validateScorecardHoles(req.Holes); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var course models.Course
	if err := s.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "course not found"})
	}

	var scorecard models.Scorecard
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&scorecard, "course_id = ?", courseID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			scorecard = models.Scorecard{ID: uuid.NewString(), CourseID: courseID}
			if err := tx.Create(&scorecard).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// Replace wholesale: delete existing holes, insert the new set.
		if err := tx.Where("scorecard_id = ?", scorecard.ID).Delete(&models.ScorecardHole{}).Error; err != nil {
			return err
		}
		for _, h := range req.Holes {
			hole := models.ScorecardHole{
				ID:          uuid.NewString(),
				ScorecardID: scorecard.ID,
				HoleNumber:  h.HoleNumber,
				Par:         h.Par,
				Handicap:    h.Handicap,
			}
			if err := tx.Create(&hole).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to save scorecard for course %s: %v", courseID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to save scorecard"})
	}

	s.DB.Preload("Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("hole_number ASC")
	}).First(&scorecard, "id = ?", scorecard.ID)
	return c.JSON(scorecard)
}

func (s *CourseService) GetScorecard(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var scorecard models.Scorecard
	err := s.DB.Preload("Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("hole_number ASC")
	}).First(&scorecard, "course_id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "no scorecard for course"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch scorecard"})
	}
	return c.JSON(scorecard)
}
