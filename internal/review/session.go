// Package review holds the state behind the clerk review screen: a
// locally editable copy of the letter list with search and a
// sequential, non-atomic Submit All.
package review

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"letter_system/internal/client"
	"letter_system/internal/events"
	"letter_system/internal/model"
)

// Editable columns of the review table.
const (
	FieldLetterDate = "letter_date"
	FieldDetails    = "details"
	FieldSentDate   = "sent_date"
	FieldAddress    = "address"
)

// Session is one clerk's review desk over the fetched letter list
type Session struct {
	api *client.Client
	bus *events.Bus

	mu      sync.Mutex
	letters []model.Letter
}

// NewSession creates an empty Session
func NewSession(api *client.Client, bus *events.Bus) *Session {
	return &Session{api: api, bus: bus}
}

// Load fetches the full letter list into local editable state
func (s *Session) Load(ctx context.Context) error {
	letters, err := s.api.ListLetters(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch letters: %w", err)
	}
	s.mu.Lock()
	s.letters = letters
	s.mu.Unlock()
	return nil
}

// Letters returns the locally held list in fetch order
func (s *Session) Letters() []model.Letter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Letter, len(s.letters))
	copy(out, s.letters)
	return out
}

// SetField edits one cell of the locally held list. Dates take the
// YYYY-MM-DD form of the date inputs; an empty value clears the cell.
func (s *Session) SetField(id int64, field, value string) error {
	var date *model.Date
	switch field {
	case FieldLetterDate, FieldSentDate:
		if value != "" {
			t, err := time.Parse(model.DateLayout, value)
			if err != nil {
				return fmt.Errorf("invalid date %q for %s, use YYYY-MM-DD", value, field)
			}
			date = &model.Date{Time: t}
		}
	case FieldDetails:
		// The review screen offers a fixed status dropdown; an empty
		// value clears the cell.
		if value != "" && !model.ValidStatus(value) {
			return fmt.Errorf("details %q is not a review status", value)
		}
	case FieldAddress:
	default:
		return fmt.Errorf("field %s is not editable", field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.letters {
		if s.letters[i].ID != id {
			continue
		}
		switch field {
		case FieldLetterDate:
			s.letters[i].LetterDate = date
		case FieldSentDate:
			s.letters[i].SentDate = date
		case FieldDetails:
			s.letters[i].Details = strPtrOrNil(value)
		case FieldAddress:
			s.letters[i].Address = strPtrOrNil(value)
		}
		return nil
	}
	return fmt.Errorf("no letter with id %d", id)
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Search filters the locally held list with a case-insensitive
// substring match over subject no, details, letter type and address,
// plus the YYYY-MM-DD prefixes of both date columns. An empty term
// returns everything.
func (s *Session) Search(term string) []model.Letter {
	letters := s.Letters()
	if term == "" {
		return letters
	}
	lower := strings.ToLower(term)

	matched := []model.Letter{}
	for _, l := range letters {
		if matchText(lower, l.SubjectNo, l.Details, l.LetterType, l.Address) ||
			matchDate(lower, l.LetterDate) || matchDate(lower, l.SentDate) {
			matched = append(matched, l)
		}
	}
	return matched
}

func matchText(lower string, fields ...*string) bool {
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), lower) {
			return true
		}
	}
	return false
}

func matchDate(lower string, d *model.Date) bool {
	return d != nil && !d.IsZero() && strings.Contains(d.String(), lower)
}

// SubmitAll sends one full-replace update per held letter, one at a
// time in held order. Updates are not atomic as a batch: the loop stops
// at the first failure and everything already sent stays applied. A
// fully successful pass broadcasts the letters-changed signal.
func (s *Session) SubmitAll(ctx context.Context) error {
	letters := s.Letters()

	for _, l := range letters {
		req := model.UpdateLetterRequest{
			LetterDate: l.LetterDate,
			Address:    l.Address,
			Details:    l.Details,
			SubjectNo:  l.SubjectNo,
			LetterType: l.LetterType,
			SentDate:   l.SentDate,
		}
		if err := s.api.UpdateLetter(ctx, l.ID, req); err != nil {
			return fmt.Errorf("failed to save letter %d (earlier updates stay applied): %w", l.ID, err)
		}
	}

	s.bus.Publish()
	return nil
}
