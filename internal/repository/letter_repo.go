package repository

import (
	"context"
	"fmt"
	"time"

	"letter_system/internal/model"

	"github.com/jackc/pgx/v5"
)

// LetterRepository defines operations for letter data.
// Update and Delete report a missing row as pgx.ErrNoRows so the
// service layer can distinguish not-found from store failures.
type LetterRepository interface {
	Create(ctx context.Context, letter *model.Letter) error
	FindByID(ctx context.Context, id int64) (*model.Letter, error)
	FindAll(ctx context.Context) ([]model.Letter, error)
	Update(ctx context.Context, letter *model.Letter) error
	Delete(ctx context.Context, id int64) error
}

type letterRepository struct {
	db DB
}

// NewLetterRepository creates a new LetterRepository
func NewLetterRepository(db DB) LetterRepository {
	return &letterRepository{db: db}
}

// dateArg converts an optional wire date into a nullable query argument.
func dateArg(d *model.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// dateCol converts a nullable DATE column back into an optional wire date.
func dateCol(t *time.Time) *model.Date {
	if t == nil {
		return nil
	}
	d := model.DateOf(*t)
	return &d
}

// Create inserts a new letter and fills in its assigned id and creation timestamp
func (r *letterRepository) Create(ctx context.Context, l *model.Letter) error {
	sql := `INSERT INTO letters (letter_date, address, details, subject_no, letter_type, sent_date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql,
		dateArg(l.LetterDate), l.Address, l.Details, l.SubjectNo, l.LetterType, dateArg(l.SentDate),
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create letter: %w", err)
	}
	return nil
}

func scanLetter(row pgx.Row) (*model.Letter, error) {
	l := &model.Letter{}
	var letterDate, sentDate *time.Time
	err := row.Scan(&l.ID, &letterDate, &l.Address, &l.Details, &l.SubjectNo, &l.LetterType, &sentDate, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.LetterDate = dateCol(letterDate)
	l.SentDate = dateCol(sentDate)
	return l, nil
}

// FindByID retrieves a letter by its ID
func (r *letterRepository) FindByID(ctx context.Context, id int64) (*model.Letter, error) {
	sql := `SELECT id, letter_date, address, details, subject_no, letter_type, sent_date, created_at FROM letters WHERE id = $1`
	l, err := scanLetter(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find letter by ID: %w", err)
	}
	return l, nil
}

// FindAll retrieves every letter, most recently created first
func (r *letterRepository) FindAll(ctx context.Context) ([]model.Letter, error) {
	sql := `SELECT id, letter_date, address, details, subject_no, letter_type, sent_date, created_at FROM letters ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query letters: %w", err)
	}
	defer rows.Close()

	letters := []model.Letter{} // empty table serializes as [], not null
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan letter row: %w", err)
		}
		letters = append(letters, *l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating letter rows: %w", err)
	}
	return letters, nil
}

// Update fully replaces all six mutable fields of a letter
func (r *letterRepository) Update(ctx context.Context, l *model.Letter) error {
	sql := `UPDATE letters SET letter_date = $1, address = $2, details = $3, subject_no = $4, letter_type = $5, sent_date = $6 WHERE id = $7`
	cmdTag, err := r.db.Exec(ctx, sql,
		dateArg(l.LetterDate), l.Address, l.Details, l.SubjectNo, l.LetterType, dateArg(l.SentDate), l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update letter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a letter from the database
func (r *letterRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM letters WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete letter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
