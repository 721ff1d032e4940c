// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"fieldbook/internal/auth"
	"fieldbook/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	// hash is computed once; bcrypt per user would dominate seeding time.
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())
	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}
	return &Factory{db: db, hash: hash}, nil
}

// CreateUser persists a user with generated profile data.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	user := &models.User{
		Email:        strings.ToLower(fmt.Sprintf("%s.%s%d@%s", first, last, gofakeit.Number(1, 9999), gofakeit.DomainName())),
		PhoneNumber:  gofakeit.Phone(),
		PasswordHash: f.hash,
		FirstName:    first,
		LastName:     last,
		DateOfBirth:  gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// CreatePost persists a forum post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:   user.ID,
		Content:  observationSentence(),
		IsActive: true,
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

// CreateComment persists a comment on a post. Pass a parent to create a reply.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   user.ID,
		Content:  gofakeit.Sentence(gofakeit.Number(4, 14)),
		IsActive: true,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// CreateLike records a like edge from the user onto the post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.PostLike{UserID: user.ID, PostID: post.ID}
	if err := f.db.Create(like).Error; err != nil {
		return fmt.Errorf("creating like: %w", err)
	}
	return nil
}

// CreatePin drops a map marker for the user at a random location.
func (f *Factory) CreatePin(user *models.User, overrides ...func(*models.Pin)) (*models.Pin, error) {
	pin := &models.Pin{
		UserID:    user.ID,
		Longitude: gofakeit.Longitude(),
		Latitude:  gofakeit.Latitude(),
		Metadata:  observationSentence(),
		IsActive:  true,
	}
	for _, override := range overrides {
		override(pin)
	}
	if err := f.db.Create(pin).Error; err != nil {
		return nil, fmt.Errorf("creating pin: %w", err)
	}
	return pin, nil
}

// CreateResource persists a community resource with an expiry a few weeks out.
func (f *Factory) CreateResource(user *models.User, overrides ...func(*models.Resource)) (*models.Resource, error) {
	categories := []string{"food", "shelter", "health", "education", "guides", "equipment"}
	resource := &models.Resource{
		UserID:      user.ID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Link:        gofakeit.URL(),
		Category:    categories[rand.Intn(len(categories))],
		EndTime:     time.Now().AddDate(0, 0, gofakeit.Number(7, 60)),
		IsActive:    true,
	}
	for _, override := range overrides {
		override(resource)
	}
	if err := f.db.Create(resource).Error; err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	return resource, nil
}

// CreateEvent persists a calendar event within the next two months.
func (f *Factory) CreateEvent(user *models.User, overrides ...func(*models.Event)) (*models.Event, error) {
	start := time.Now().AddDate(0, 0, gofakeit.Number(-15, 45)).Truncate(time.Hour)
	event := &models.Event{
		UserID:      user.ID,
		Title:       gofakeit.Sentence(3),
		Description: gofakeit.Paragraph(1, 2, 6, " "),
		Location:    gofakeit.City(),
		StartTime:   start,
		EndTime:     start.Add(time.Duration(gofakeit.Number(1, 6)) * time.Hour),
	}
	for _, override := range overrides {
		override(event)
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return event, nil
}

// CreateFollow records a follow edge between two distinct users.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	if follower.ID == following.ID {
		return fmt.Errorf("user %d cannot follow themselves", follower.ID)
	}
	edge := &models.UserFollow{FollowerID: follower.ID, FollowingID: following.ID}
	if err := f.db.Create(edge).Error; err != nil {
		return fmt.Errorf("creating follow: %w", err)
	}
	return nil
}

var observationOpeners = []string{
	"Spotted a %s near the %s this morning.",
	"First %s of the season at the %s!",
	"Anyone else seeing %s activity around the %s lately?",
	"Counted a dozen %s along the %s trail today.",
	"Photo incoming: %s nesting by the %s.",
}

var observationSubjects = []string{
	"great blue heron", "red fox", "monarch butterfly", "barred owl",
	"painted turtle", "pileated woodpecker", "white-tailed deer", "beaver",
}

var observationPlaces = []string{
	"creek", "wetland", "ridge", "old orchard", "boardwalk", "north meadow",
}

func observationSentence() string {
	opener := observationOpeners[rand.Intn(len(observationOpeners))]
	return fmt.Sprintf(opener,
		observationSubjects[rand.Intn(len(observationSubjects))],
		observationPlaces[rand.Intn(len(observationPlaces))])
}
