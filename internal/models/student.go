package models

import (
	"fmt"
	"time"
)

// Status is the enrollment state of a student. The server treats it as an
// open set of string literals, so callers may see values beyond the two
// known ones.
type Status string

const (
	StatusEnrolled    Status = "inscrito"
	StatusNotEnrolled Status = "no inscrito"
)

// Statuses lists the known enrollment states, in display order.
func Statuses() []Status {
	return []Status{StatusEnrolled, StatusNotEnrolled}
}

// Student is a learner record as held by this client. Career references a
// Career.ID; a dangling reference degrades to a placeholder label downstream,
// never an error.
type Student struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SecondName string     `json:"secondName"`
	Status     Status     `json:"status"`
	Career     string     `json:"career"`
	BirthDate  time.Time  `json:"birthDate"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Direction  string     `json:"direction,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// StudentWire is the shape the server sends: identical to Student except the
// birth date travels as a string.
type StudentWire struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SecondName string     `json:"secondName"`
	Status     Status     `json:"status"`
	Career     string     `json:"career"`
	BirthDate  string     `json:"birthDate"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Direction  string     `json:"direction,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Ingest converts the wire record into a Student, parsing the birth date.
func (w StudentWire) Ingest() (Student, error) {
	birthDate, err := parseWireDate(w.BirthDate)
	if err != nil {
		return Student{}, fmt.Errorf("ingest student %s: %w", w.ID, err)
	}
	return Student{
		ID:         w.ID,
		Name:       w.Name,
		SecondName: w.SecondName,
		Status:     w.Status,
		Career:     w.Career,
		BirthDate:  birthDate,
		Email:      w.Email,
		Phone:      w.Phone,
		Direction:  w.Direction,
		CreatedAt:  w.CreatedAt,
	}, nil
}

func parseWireDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse birth date %q: %w", raw, err)
	}
	return t, nil
}
