package seed

import (
	"fmt"
	"log"
	"sync"

	"traveltales/internal/models"

	"gorm.io/gorm"
)

// demoPassword is the login password for every seeded account.
const demoPassword = "Traveltales-Demo-1!"

var (
	demoHashOnce sync.Once
	demoHash     string
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt writes placeholder password hashes. Tests use this to
	// avoid paying the bcrypt cost per user.
	SkipBcrypt bool
}

// Seed populates the database with demo users, posts, and an engagement and
// follow mesh between them. All accounts share the same demo password.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 3
	}
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rng.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	if err := seedMesh(factory, users, posts); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

// seedMesh wires likes, comments, and follows between the seeded users so
// popularity ranking and social annotations have something to show.
func seedMesh(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, user := range users {
		followCount := f.rng.Intn(len(users)/2 + 1)
		for i := 0; i < followCount; i++ {
			target := users[f.rng.Intn(len(users))]
			if err := f.CreateFollow(user, target); err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
		}
	}

	for _, post := range posts {
		likeCount := f.rng.Intn(len(users) + 1)
		for i := 0; i < likeCount; i++ {
			if err := f.CreateLike(users[f.rng.Intn(len(users))], post); err != nil {
				return fmt.Errorf("create like: %w", err)
			}
		}

		commentCount := f.rng.Intn(5)
		for i := 0; i < commentCount; i++ {
			if _, err := f.CreateComment(users[f.rng.Intn(len(users))], post); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE comments, likes, follows, post_tags, tags, posts, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, table := range []string{"comments", "likes", "follows", "post_tags", "tags", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
