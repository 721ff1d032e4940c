package seed

import (
	"fmt"
	"log"
	"math/rand"

	"fieldbook/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data Seed generates.
type Options struct {
	Users int
	Posts int
	Clean bool
}

// DefaultOptions returns a population suitable for local development.
func DefaultOptions() Options {
	return Options{Users: 50, Posts: 200, Clean: true}
}

// Seed populates the database with a connected set of demo data: users with
// posts, comments, likes, map pins, resources, calendar events, and a follow
// graph.
func Seed(db *gorm.DB, opts Options) error {
	if opts.Users < 2 {
		return fmt.Errorf("at least 2 users are required, got %d", opts.Users)
	}

	if opts.Clean {
		if err := ClearAll(db); err != nil {
			return err
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users, err := seedUsers(factory, opts.Users)
	if err != nil {
		return err
	}
	posts, err := seedPosts(factory, users, opts.Posts)
	if err != nil {
		return err
	}
	if err := seedEngagement(factory, users, posts); err != nil {
		return err
	}
	if err := seedMapAndCalendar(factory, users); err != nil {
		return err
	}
	if err := seedFollowGraph(factory, users); err != nil {
		return err
	}

	log.Printf("seeded %d users and %d posts", len(users), len(posts))
	return nil
}

// ClearAll deletes all seedable data, children before parents.
func ClearAll(db *gorm.DB) error {
	tables := []any{
		&models.UserFollow{},
		&models.PostLike{},
		&models.Comment{},
		&models.Pin{},
		&models.Resource{},
		&models.Event{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	return nil
}

func seedUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A known admin login for manual testing.
	admin, err := factory.CreateUser(func(u *models.User) {
		u.Email = "admin@fieldbook.local"
		u.FirstName = "Admin"
		u.LastName = "User"
		u.IsAdmin = true
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 1; i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post, err := factory.CreatePost(users[rand.Intn(len(users))])
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// seedEngagement adds comments, replies, and likes to roughly two thirds of
// the posts.
func seedEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		if rand.Intn(3) == 0 {
			continue
		}

		var parent *models.Comment
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			comment, err := factory.CreateComment(users[rand.Intn(len(users))], post, nil)
			if err != nil {
				return err
			}
			parent = comment
		}
		// Occasionally reply to the last top-level comment.
		if parent != nil && rand.Intn(2) == 0 {
			if _, err := factory.CreateComment(users[rand.Intn(len(users))], post, parent); err != nil {
				return err
			}
		}

		likers := rand.Perm(len(users))[:gofakeit.Number(0, min(5, len(users)))]
		for _, idx := range likers {
			if err := factory.CreateLike(users[idx], post); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedMapAndCalendar(factory *Factory, users []*models.User) error {
	for _, user := range users {
		for i := 0; i < gofakeit.Number(0, 3); i++ {
			if _, err := factory.CreatePin(user); err != nil {
				return err
			}
		}
	}

	// Resources and events come from a smaller set of active contributors.
	contributors := users[:max(1, len(users)/5)]
	for _, user := range contributors {
		for i := 0; i < gofakeit.Number(1, 3); i++ {
			if _, err := factory.CreateResource(user); err != nil {
				return err
			}
		}
		for i := 0; i < gofakeit.Number(1, 2); i++ {
			if _, err := factory.CreateEvent(user); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedFollowGraph gives every user a handful of random follows.
func seedFollowGraph(factory *Factory, users []*models.User) error {
	for _, follower := range users {
		seen := map[uint]bool{follower.ID: true}
		for i := 0; i < gofakeit.Number(1, min(8, len(users)-1)); i++ {
			target := users[rand.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true
			if err := factory.CreateFollow(follower, target); err != nil {
				return err
			}
		}
	}
	return nil
}
