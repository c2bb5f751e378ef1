package service

import (
	"context"
	"errors"
	"fmt"

	"letter_system/internal/model"
	"letter_system/internal/repository"

	"github.com/jackc/pgx/v5"
)

var ErrLetterNotFound = errors.New("letter not found")

// LetterService defines operations for letters
type LetterService interface {
	ListLetters(ctx context.Context) ([]model.Letter, error)
	GetLetter(ctx context.Context, id int64) (*model.Letter, error)
	CreateLetter(ctx context.Context, req model.CreateLetterRequest) (*model.Letter, error)
	UpdateLetter(ctx context.Context, id int64, req model.UpdateLetterRequest) error
	DeleteLetter(ctx context.Context, id int64) error
}

type letterService struct {
	repo repository.LetterRepository
}

// NewLetterService creates a new LetterService
func NewLetterService(repo repository.LetterRepository) LetterService {
	return &letterService{repo: repo}
}

// ListLetters returns every letter, most recently created first
func (s *letterService) ListLetters(ctx context.Context) ([]model.Letter, error) {
	letters, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters from repo: %w", err)
	}
	return letters, nil
}

func (s *letterService) GetLetter(ctx context.Context, id int64) (*model.Letter, error) {
	letter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find letter by ID: %w", err)
	}
	if letter == nil {
		return nil, ErrLetterNotFound
	}
	return letter, nil
}

// CreateLetter persists a new letter. sent_date stays NULL until the
// review screen fills it in.
func (s *letterService) CreateLetter(ctx context.Context, req model.CreateLetterRequest) (*model.Letter, error) {
	letterDate := req.LetterDate
	letter := &model.Letter{
		LetterDate: &letterDate,
		Address:    &req.Address,
		Details:    &req.Details,
		SubjectNo:  &req.SubjectNo,
		LetterType: &req.LetterType,
		SentDate:   req.SentDate,
	}

	if err := s.repo.Create(ctx, letter); err != nil {
		return nil, fmt.Errorf("failed to create letter in repo: %w", err)
	}
	return letter, nil
}

// UpdateLetter fully replaces all six mutable fields; omitted fields
// are written as NULL rather than preserved.
func (s *letterService) UpdateLetter(ctx context.Context, id int64, req model.UpdateLetterRequest) error {
	letter := &model.Letter{
		ID:         id,
		LetterDate: req.LetterDate,
		Address:    req.Address,
		Details:    req.Details,
		SubjectNo:  req.SubjectNo,
		LetterType: req.LetterType,
		SentDate:   req.SentDate,
	}

	if err := s.repo.Update(ctx, letter); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLetterNotFound
		}
		return fmt.Errorf("failed to update letter in repo: %w", err)
	}
	return nil
}

func (s *letterService) DeleteLetter(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLetterNotFound
		}
		return fmt.Errorf("failed to delete letter in repo: %w", err)
	}
	return nil
}
