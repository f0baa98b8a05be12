// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"meridian/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// place is a location name with known coordinates, so seeded posts get
// realistic geodata without calling the geocoder.
type place struct {
	name     string
	lat, lon float64
}

var places = []place{
	{"Moscow, Russia", 55.7558, 37.6173},
	{"Berlin, Germany", 52.5200, 13.4050},
	{"Lisbon, Portugal", 38.7223, -9.1393},
	{"Tbilisi, Georgia", 41.7151, 44.8271},
	{"Belgrade, Serbia", 44.7866, 20.4489},
	{"Yerevan, Armenia", 40.1792, 44.4991},
	{"Istanbul, Turkey", 41.0082, 28.9784},
	{"Almaty, Kazakhstan", 43.2220, 76.8512},
}

// Seeder populates the database with generated test data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Child tables go first so foreign keys
// never block the wipe.
func (s *Seeder) ClearAll() error {
	tables := []string{"reactions", "comments", "post_images", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user.
// Roughly half the posts carry an image, a third carry a location.
func (s *Seeder) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Text:   gofakeit.Paragraph(1, 3, 8, " "),
		UserID: user.ID,
	}

	if s.rng.Intn(2) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	if s.rng.Intn(3) == 0 {
		p := places[s.rng.Intn(len(places))]
		lat, lon := p.lat, p.lon
		post.LocationName = p.name
		post.Latitude = &lat
		post.Longitude = &lon
	}

	// realistic created_at spread over the last 90 days
	daysBack := s.rng.Intn(90)
	hoursBack := s.rng.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a sample comment by the user on the post.
func (s *Seeder) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Text:   gofakeit.Sentence(s.rng.Intn(12) + 3),
		UserID: user.ID,
		PostID: post.ID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Seed populates the database with users, posts, comments and reactions.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("👤 Created %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("📝 Created %d posts", len(posts))

	comments := 0
	for _, post := range posts {
		for i := s.rng.Intn(5); i > 0; i-- {
			commenter := users[s.rng.Intn(len(users))]
			if _, err := s.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("💬 Created %d comments", comments)

	reactions, err := s.seedReactions(users, posts)
	if err != nil {
		return err
	}
	log.Printf("❤️  Created %d reactions", reactions)

	log.Println("✨ Seeding complete")
	return nil
}

// seedReactions gives each post a random audience. Each user reacts at most
// once per post, matching the store's unique constraint.
func (s *Seeder) seedReactions(users []*models.User, posts []*models.Post) (int, error) {
	total := 0
	for _, post := range posts {
		audience := s.rng.Perm(len(users))
		count := s.rng.Intn(len(users) + 1)
		for _, idx := range audience[:count] {
			kind := models.ReactionLike
			// dislikes are the minority
			if s.rng.Intn(4) == 0 {
				kind = models.ReactionDislike
			}
			reaction := &models.Reaction{
				UserID: users[idx].ID,
				PostID: post.ID,
				Kind:   kind,
			}
			if err := s.db.Create(reaction).Error; err != nil {
				return total, fmt.Errorf("creating reaction: %w", err)
			}
			total++
		}
	}
	return total, nil
}
