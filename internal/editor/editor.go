// Package editor holds the state behind the admin intake screen: one
// pending letter form plus the fetched history table.
package editor

import (
	"context"
	"fmt"
	"log"
	"sync"

	"letter_system/internal/client"
	"letter_system/internal/events"
	"letter_system/internal/model"
)

// Editor is the admin intake desk. It listens on the bus so bulk edits
// made on the review desk refresh its history table.
type Editor struct {
	api  *client.Client
	bus  *events.Bus
	stop func()

	mu      sync.Mutex
	form    model.CreateLetterRequest
	letters []model.Letter
}

// New creates an Editor and subscribes it to letter-change signals
func New(api *client.Client, bus *events.Bus) *Editor {
	e := &Editor{api: api, bus: bus}

	ch, cancel := bus.Subscribe()
	e.stop = cancel
	go func() {
		for range ch {
			if err := e.Refresh(context.Background()); err != nil {
				log.Printf("Error refreshing letters after update signal: %v", err)
			}
		}
	}()

	return e
}

// Close unsubscribes the editor from the bus
func (e *Editor) Close() {
	e.stop()
}

// SetForm replaces the pending letter form
func (e *Editor) SetForm(form model.CreateLetterRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = form
}

// Form returns the pending letter form
func (e *Editor) Form() model.CreateLetterRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// Letters returns the last fetched history, most recent first
func (e *Editor) Letters() []model.Letter {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Letter, len(e.letters))
	copy(out, e.letters)
	return out
}

// Refresh refetches the full letter list
func (e *Editor) Refresh(ctx context.Context) error {
	letters, err := e.api.ListLetters(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch letters: %w", err)
	}
	e.mu.Lock()
	e.letters = letters
	e.mu.Unlock()
	return nil
}

// Submit creates a letter from the pending form, clears the form and
// refetches the history. The form is left untouched if creation fails.
// Subject no and letter type come from fixed dropdowns on the intake
// screen, so values off those lists never reach the API.
func (e *Editor) Submit(ctx context.Context) (*model.Letter, error) {
	e.mu.Lock()
	form := e.form
	e.mu.Unlock()

	if !model.ValidSubjectCode(form.SubjectNo) {
		return nil, fmt.Errorf("subject no %q is not on the subject code list", form.SubjectNo)
	}
	if !model.ValidLetterType(form.LetterType) {
		return nil, fmt.Errorf("letter type %q must be %q or %q", form.LetterType, model.LetterTypeRegistered, model.LetterTypeNotRegistered)
	}

	letter, err := e.api.CreateLetter(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to submit letter: %w", err)
	}

	e.mu.Lock()
	e.form = model.CreateLetterRequest{}
	e.mu.Unlock()

	if err := e.Refresh(ctx); err != nil {
		// The letter is saved; only the local table is stale.
		log.Printf("Error refreshing letters after submit: %v", err)
	}
	return letter, nil
}
