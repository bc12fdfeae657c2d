// Package seed performs the one-time import of users.csv and posts.csv into
// an empty store.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thereayou/blog-lite/internal/models"
)

const (
	UsersFile = "users.csv"
	PostsFile = "posts.csv"
)

// Store is the part of the data access layer the seeder needs.
type Store interface {
	CountUsers(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	InsertUsers(ctx context.Context, users []models.User) error
	UserIDs(ctx context.Context) (map[uint]struct{}, error)
	InsertPosts(ctx context.Context, posts []models.Post) error
	SyncSequences(ctx context.Context) error
}

type Result struct {
	Skipped      bool // store already had data
	UsersCreated int
	PostsCreated int
	RowsDropped  int
}

type Seeder struct {
	store   Store
	dataDir string
	now     func() time.Time
}

func NewSeeder(store Store, dataDir string) *Seeder {
	return &Seeder{
		store:   store,
		dataDir: dataDir,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Run imports the CSV files unless the store already holds any user or post.
// Users are committed before posts are read, so posts may reference users
// from the same seed. Posts whose author does not exist are dropped.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	userCount, err := s.store.CountUsers(ctx)
	if err != nil {
		return res, fmt.Errorf("count users: %w", err)
	}
	postCount, err := s.store.CountPosts(ctx)
	if err != nil {
		return res, fmt.Errorf("count posts: %w", err)
	}
	if userCount > 0 || postCount > 0 {
		log.Info().
			Int64("users", userCount).
			Int64("posts", postCount).
			Msg("Store already populated, skipping seed")
		res.Skipped = true
		return res, nil
	}

	users, dropped, err := s.readUsers()
	if err != nil {
		return res, err
	}
	res.RowsDropped += dropped
	if len(users) > 0 {
		if err := s.store.InsertUsers(ctx, users); err != nil {
			return res, fmt.Errorf("seed users: %w", err)
		}
		res.UsersCreated = len(users)
	}

	authors, err := s.store.UserIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("load user ids: %w", err)
	}

	posts, dropped, err := s.readPosts(authors)
	if err != nil {
		return res, err
	}
	res.RowsDropped += dropped
	if len(posts) > 0 {
		if err := s.store.InsertPosts(ctx, posts); err != nil {
			return res, fmt.Errorf("seed posts: %w", err)
		}
		res.PostsCreated = len(posts)
	}

	if res.UsersCreated > 0 || res.PostsCreated > 0 {
		if err := s.store.SyncSequences(ctx); err != nil {
			return res, err
		}
	}

	log.Info().
		Str("data_dir", s.dataDir).
		Int("users", res.UsersCreated).
		Int("posts", res.PostsCreated).
		Int("dropped", res.RowsDropped).
		Msg("Seed completed")
	return res, nil
}

func (s *Seeder) readUsers() ([]models.User, int, error) {
	rows, err := readCSV(filepath.Join(s.dataDir, UsersFile))
	if err != nil {
		return nil, 0, err
	}

	users := make([]models.User, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	dropped := 0
	for i, r := range rows {
		user, err := s.userFromRow(r)
		if err == nil {
			if _, dup := seen[user.Email]; dup {
				err = fmt.Errorf("duplicate email %q", user.Email)
			}
		}
		if err != nil {
			log.Warn().Err(err).Str("file", UsersFile).Int("line", i+2).Msg("Skipping seed row")
			dropped++
			continue
		}
		seen[user.Email] = struct{}{}
		users = append(users, user)
	}
	return users, dropped, nil
}

func (s *Seeder) userFromRow(r row) (models.User, error) {
	user := models.User{
		Email:     r.first("email"),
		Username:  r.first("username", "name", "full_name"),
		FirstName: r.optional("first_name"),
		LastName:  r.optional("last_name"),
		IsActive:  r.boolColumn("is_active", true),
		CreatedAt: s.timestamp(r),
	}
	if user.Email == "" {
		return user, errors.New("missing email")
	}
	if user.Username == "" {
		return user, errors.New("missing username")
	}
	if v := r.first("id"); v != "" {
		id, err := parseID(v)
		if err != nil {
			return user, fmt.Errorf("invalid id %q", v)
		}
		user.ID = id
	}
	return user, nil
}

func (s *Seeder) readPosts(authors map[uint]struct{}) ([]models.Post, int, error) {
	rows, err := readCSV(filepath.Join(s.dataDir, PostsFile))
	if err != nil {
		return nil, 0, err
	}

	posts := make([]models.Post, 0, len(rows))
	dropped := 0
	for i, r := range rows {
		post, err := s.postFromRow(r)
		if err == nil {
			if _, ok := authors[post.AuthorID]; !ok {
				err = fmt.Errorf("author %d does not exist", post.AuthorID)
			}
		}
		if err != nil {
			log.Debug().Err(err).Str("file", PostsFile).Int("line", i+2).Msg("Skipping seed row")
			dropped++
			continue
		}
		posts = append(posts, post)
	}
	return posts, dropped, nil
}

func (s *Seeder) postFromRow(r row) (models.Post, error) {
	post := models.Post{
		Title:       r.first("title"),
		Content:     r.first("content", "body"),
		IsPublished: r.boolColumn("is_published", true),
		CreatedAt:   s.timestamp(r),
	}
	if post.Title == "" {
		post.Title = "Untitled"
	}

	author := r.first("author_id", "user_id", "userId")
	if author == "" {
		return post, errors.New("missing author")
	}
	authorID, err := parseID(author)
	if err != nil {
		return post, fmt.Errorf("invalid author id %q", author)
	}
	post.AuthorID = authorID

	if v := r.first("id"); v != "" {
		id, err := parseID(v)
		if err != nil {
			return post, fmt.Errorf("invalid id %q", v)
		}
		post.ID = id
	}
	return post, nil
}

func (s *Seeder) timestamp(r row) time.Time {
	if t, ok := parseTime(r["created_at"]); ok {
		return t
	}
	return s.now()
}

// readCSV returns the records of path keyed by header. A missing file yields no rows.
func readCSV(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().Str("file", path).Msg("Seed file not found, nothing to import")
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		r := make(row, len(header))
		for i, name := range header {
			if i < len(record) {
				r[name] = record[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}
