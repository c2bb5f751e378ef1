// Package testutil spins up the letter API over an in-memory store so
// the desk packages can be tested end to end without PostgreSQL.
package testutil

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"letter_system/internal/client"
	"letter_system/internal/handler"
	"letter_system/internal/model"
	"letter_system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// LetterStore is an in-memory stand-in for the letters table. It keeps
// the repository contract: FindAll orders by creation descending,
// Update/Delete report a missing row as pgx.ErrNoRows.
type LetterStore struct {
	mu      sync.Mutex
	seq     int64
	letters []model.Letter // in creation order
}

// NewLetterStore creates an empty LetterStore
func NewLetterStore() *LetterStore {
	return &LetterStore{}
}

func (s *LetterStore) Create(_ context.Context, l *model.Letter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	l.ID = s.seq
	l.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
	s.letters = append(s.letters, *l)
	return nil
}

func (s *LetterStore) FindByID(_ context.Context, id int64) (*model.Letter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.letters {
		if s.letters[i].ID == id {
			l := s.letters[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (s *LetterStore) FindAll(_ context.Context) ([]model.Letter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Letter, 0, len(s.letters))
	for i := len(s.letters) - 1; i >= 0; i-- {
		out = append(out, s.letters[i])
	}
	return out, nil
}

func (s *LetterStore) Update(_ context.Context, l *model.Letter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.letters {
		if s.letters[i].ID == l.ID {
			updated := *l
			updated.CreatedAt = s.letters[i].CreatedAt
			s.letters[i] = updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *LetterStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.letters {
		if s.letters[i].ID == id {
			s.letters = append(s.letters[:i], s.letters[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// NewLetterAPI serves the real letter handler and service over an
// in-memory store and returns a client pointed at it.
func NewLetterAPI(t *testing.T) (*client.Client, *LetterStore) {
	t.Helper()

	store := NewLetterStore()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.NewLetterHandler(service.NewLetterService(store)).RegisterLetterRoutes(router.Group("/api"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return client.New(srv.URL), store
}

// SeedLetter creates a letter through the API and fails the test on error.
func SeedLetter(t *testing.T, c *client.Client, address, details, subjectNo, letterType string, letterDate model.Date) *model.Letter {
	t.Helper()
	letter, err := c.CreateLetter(context.Background(), model.CreateLetterRequest{
		LetterDate: letterDate,
		Address:    address,
		Details:    details,
		SubjectNo:  subjectNo,
		LetterType: letterType,
	})
	if err != nil {
		t.Fatalf("seed letter: %v", err)
	}
	return letter
}
