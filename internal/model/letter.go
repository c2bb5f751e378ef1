package model

import "time"

const (
	LetterTypeRegistered    = "Registered"
	LetterTypeNotRegistered = "Not Registered"
)

// Workflow labels the review screen offers for the details column.
// The API itself only checks presence, not membership.
const (
	StatusProcessing     = "Processing"
	StatusInvalid        = "Invalid"
	StatusClosed         = "Closed"
	StatusAttachedToFile = "Attached to File"
)

// SubjectCodes is the closed list of administrative classification
// strings a letter can be filed under.
var SubjectCodes = []string{
	"SP/RD/ADM/01",
	"SP/RD/ADM/02",
	"SP/RD/ADM/03",
	"SP/DRD/ACC/01",
	"SP/DRD/ACC/02",
	"SP/DRD/ACC/03",
	"SP/DRD/DEV/01",
	"SP/DRD/DEV/02",
	"SP/DRD/DEV/03",
	"SP/DRD/DEV/04",
	"SP/DRD/DEV/05",
	"SP/DRD/DEV/06",
	"SP/DRD/DEV/07",
	"SP/DRD/DEV/08",
	"SP/DRD/R.DEV/01",
	"SP/DRD/R.DEV/02",
}

// ValidSubjectCode reports whether code is on the closed subject list.
func ValidSubjectCode(code string) bool {
	for _, c := range SubjectCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ValidLetterType reports whether t is one of the two mail types.
func ValidLetterType(t string) bool {
	return t == LetterTypeRegistered || t == LetterTypeNotRegistered
}

// ValidStatus reports whether s is one of the review workflow labels.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusInvalid, StatusClosed, StatusAttachedToFile:
		return true
	}
	return false
}

// Letter represents a tracked incoming letter. Every mutable column may
// be NULL after a replace-update, hence the pointer fields.
type Letter struct {
	ID         int64     `json:"id"`
	LetterDate *Date     `json:"letter_date"`
	Address    *string   `json:"address"`
	Details    *string   `json:"details"`
	SubjectNo  *string   `json:"subject_no"`
	LetterType *string   `json:"letter_type"`
	SentDate   *Date     `json:"sent_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateLetterRequest is used for recording a new letter
type CreateLetterRequest struct {
	LetterDate Date   `json:"letter_date" binding:"required"`
	Address    string `json:"address" binding:"required"`
	Details    string `json:"details" binding:"required"`
	SubjectNo  string `json:"subject_no" binding:"required"`
	LetterType string `json:"letter_type" binding:"required"`
	SentDate   *Date  `json:"sent_date"`
}

// UpdateLetterRequest fully replaces all six mutable fields of a
// letter. Omitted fields are written as NULL, not preserved.
type UpdateLetterRequest struct {
	LetterDate *Date   `json:"letter_date"`
	Address    *string `json:"address"`
	Details    *string `json:"details"`
	SubjectNo  *string `json:"subject_no"`
	LetterType *string `json:"letter_type"`
	SentDate   *Date   `json:"sent_date"`
}
