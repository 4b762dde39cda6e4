// Package seed provides database seeding utilities for development and demos.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSwaps    int
	ShouldClean bool
	Preset      *Preset
}

// DemoPassword is the password assigned to every seeded demo account.
const DemoPassword = "SwapDemo123"

var availabilityOptions = []string{
	"Weekday evenings",
	"Weekend mornings",
	"Weekends",
	"Flexible",
	"Monday and Wednesday evenings",
	"Sunday afternoons",
}

// Seeder seeds the database with demo data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seedable data. Table order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{"feedback", "swap_requests", "skills", "skills_wanted", "admin_messages", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// EnsureAdmin creates the administrator account if it does not exist yet.
// Called at startup so a fresh install always has a working admin login.
func EnsureAdmin(db *gorm.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		FirstName:    "Platform",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsPublic:     false,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}
	log.Printf("admin account created: %s", email)
	return admin, nil
}

// Run seeds users, skills, swap requests and feedback.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumSwaps <= 0 {
		opts.NumSwaps = opts.NumUsers * 2
	}

	pool := defaultSkillPool
	if opts.Preset != nil && len(opts.Preset.Skills) > 0 {
		pool = opts.Preset.Skills
	}

	log.Printf("seeding %d users and %d swap requests...", opts.NumUsers, opts.NumSwaps)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers, pool)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}

	swaps, err := s.createSwaps(users, opts.NumSwaps)
	if err != nil {
		return fmt.Errorf("create swaps: %w", err)
	}

	if err := s.createFeedback(swaps); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	if err := s.syncUnreadCounters(users); err != nil {
		return fmt.Errorf("sync counters: %w", err)
	}

	log.Printf("seeding complete: %d users, %d swaps", len(users), len(swaps))
	return nil
}

func (s *Seeder) createUsers(n int, pool []PresetSkill) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			FirstName:    first,
			LastName:     last,
			Email:        fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			PasswordHash: string(hash),
			Location:     gofakeit.City(),
			Availability: availabilityOptions[rand.Intn(len(availabilityOptions))],
			IsPublic:     rand.Intn(10) > 0, // roughly one in ten stays private
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}

		// 1-3 offered, 1-2 wanted skills per user
		for _, ps := range pickSkills(pool, 1+rand.Intn(3)) {
			skill := models.Skill{Name: ps.Name, Category: ps.Category, UserID: user.ID}
			if err := s.db.Create(&skill).Error; err != nil {
				return nil, err
			}
		}
		for _, ps := range pickSkills(pool, 1+rand.Intn(2)) {
			skill := models.SkillWanted{Name: ps.Name, Category: ps.Category, UserID: user.ID}
			if err := s.db.Create(&skill).Error; err != nil {
				return nil, err
			}
		}

		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createSwaps(users []models.User, n int) ([]models.SwapRequest, error) {
	if len(users) < 2 {
		return nil, nil
	}

	swaps := make([]models.SwapRequest, 0, n)
	for i := 0; i < n; i++ {
		a := rand.Intn(len(users))
		b := rand.Intn(len(users))
		if a == b {
			continue
		}

		var offered models.Skill
		if err := s.db.Where("user_id = ?", users[a].ID).First(&offered).Error; err != nil {
			continue
		}
		var wanted models.Skill
		if err := s.db.Where("user_id = ?", users[b].ID).First(&wanted).Error; err != nil {
			continue
		}

		swap := models.SwapRequest{
			RequesterID:  users[a].ID,
			RequestedID:  users[b].ID,
			SkillOffered: offered.Name,
			SkillWanted:  wanted.Name,
			Status:       randomStatus(),
			Message:      gofakeit.Sentence(8),
		}
		if err := s.db.Create(&swap).Error; err != nil {
			// Likely a duplicate pending tuple; skip it.
			continue
		}
		swaps = append(swaps, swap)
	}
	return swaps, nil
}

func (s *Seeder) createFeedback(swaps []models.SwapRequest) error {
	for _, swap := range swaps {
		if swap.Status != models.SwapStatusCompleted {
			continue
		}
		pairs := [][2]uint{
			{swap.RequesterID, swap.RequestedID},
			{swap.RequestedID, swap.RequesterID},
		}
		for _, pair := range pairs {
			if rand.Intn(4) == 0 {
				continue // not everyone leaves a review
			}
			fb := models.Feedback{
				FromUserID:    pair[0],
				ToUserID:      pair[1],
				SwapRequestID: swap.ID,
				Rating:        3 + rand.Intn(3),
				Comment:       gofakeit.Sentence(10),
			}
			if err := s.db.Create(&fb).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// syncUnreadCounters sets each user's unread counter to their count of
// pending received requests so the seeded state is self-consistent.
func (s *Seeder) syncUnreadCounters(users []models.User) error {
	for _, user := range users {
		var count int64
		if err := s.db.Model(&models.SwapRequest{}).
			Where("requested_id = ? AND status = ?", user.ID, models.SwapStatusPending).
			Count(&count).Error; err != nil {
			return err
		}
		if err := s.db.Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("unread_notifications", count).Error; err != nil {
			return err
		}
	}
	return nil
}

func randomStatus() models.SwapStatus {
	r := rand.Intn(100)
	switch {
	case r < 45:
		return models.SwapStatusPending
	case r < 65:
		return models.SwapStatusAccepted
	case r < 85:
		return models.SwapStatusCompleted
	default:
		return models.SwapStatusDeclined
	}
}

func pickSkills(pool []PresetSkill, n int) []PresetSkill {
	if n > len(pool) {
		n = len(pool)
	}
	perm := rand.Perm(len(pool))
	out := make([]PresetSkill, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx])
	}
	return out
}
