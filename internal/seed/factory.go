// Package seed provides helpers to create demo data for development and
// testing. Not for production use.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"traveltales/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var countries = []string{
	"Japan", "Italy", "Portugal", "Thailand", "Peru", "Morocco", "Iceland",
	"Vietnam", "Mexico", "Greece", "New Zealand", "Jordan", "Kenya",
	"Argentina", "Croatia", "Indonesia", "Norway", "Colombia", "Georgia",
	"Slovenia",
}

var tagVocabulary = []string{
	"food", "hiking", "budget", "solo-travel", "photography", "beaches",
	"city-break", "road-trip", "wildlife", "culture", "night-market",
	"diving", "temples", "off-season", "family",
}

// Factory builds domain entities and persists them. It is a thin helper
// used by the seed entry point and by tests.
type Factory struct {
	db   *gorm.DB
	rng  *rand.Rand
	opts Options
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Factory{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano())), opts: opts}
}

// CreateUser constructs and persists a sample user. Override functions may
// modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	person := gofakeit.Person()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d",
		person.FirstName, person.LastName, f.rng.Intn(1000)))

	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  f.passwordHash(),
		FirstName: person.FirstName,
		LastName:  person.LastName,
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		Active:    true,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a travel post for the given author,
// with a random country, a realistic created_at spread and one to three tags.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	country := countries[f.rng.Intn(len(countries))]
	title := fmt.Sprintf("%s in %s", gofakeit.HipsterSentence(3), country)
	title = strings.TrimSuffix(title, ".")
	content := gofakeit.Paragraph(3, 4, 12, "\n\n")

	post := &models.Post{
		AuthorID:    author.ID,
		Title:       title,
		Slug:        slug.Make(title) + "-" + uuid.NewString()[:8],
		Content:     content,
		Excerpt:     excerpt(content),
		CountryName: country,
		Active:      true,
		CreatedAt:   f.pastTime(),
	}
	if f.rng.Float32() < 0.6 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", uuid.NewString()[:8])
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}

	tags, err := f.pickTags()
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := f.db.Model(post).Association("Tags").Append(tags); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// CreateComment persists a comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Content:   gofakeit.HipsterSentence(f.rng.Intn(12) + 4),
		Active:    true,
		CreatedAt: f.pastTime(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like edge. Duplicate pairs are skipped silently so
// random meshes do not have to track what they already generated.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{PostID: post.ID, UserID: user.ID, Active: true}
	err := f.db.Create(like).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// CreateFollow persists a directed follow edge, skipping duplicates and
// self-follows.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	if follower.ID == following.ID {
		return nil
	}
	follow := &models.Follow{FollowerID: follower.ID, FollowingID: following.ID, Active: true}
	err := f.db.Create(follow).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func (f *Factory) pickTags() ([]*models.Tag, error) {
	count := f.rng.Intn(3) + 1
	names := map[string]bool{}
	for len(names) < count {
		names[tagVocabulary[f.rng.Intn(len(tagVocabulary))]] = true
	}

	tags := make([]*models.Tag, 0, count)
	for name := range names {
		tag := &models.Tag{Name: name}
		if err := f.db.Where(models.Tag{Name: name}).FirstOrCreate(tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// pastTime spreads timestamps over the last ninety days so sorted feeds look
// plausible out of the box.
func (f *Factory) pastTime() time.Time {
	return time.Now().
		Add(-time.Duration(f.rng.Intn(90)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)
}

// passwordHash returns the shared demo password hash. Bcrypt is slow on
// purpose, so the hash is computed once and reused unless SkipBcrypt asks
// for a throwaway placeholder.
func (f *Factory) passwordHash() string {
	if f.opts.SkipBcrypt {
		return "not-a-real-hash"
	}
	demoHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		if err == nil {
			demoHash = string(hash)
		}
	})
	return demoHash
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

func excerpt(content string) string {
	words := strings.Fields(content)
	var b strings.Builder
	for _, w := range words {
		if b.Len()+len(w)+1 > 100 {
			b.WriteString("...")
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}
