package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate         = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidClock        = errors.New("invalid time (must be HH:MM 24h)")
	ErrInvalidTimeSlot     = errors.New("invalid time slot (must be morning, afternoon, or evening)")
	ErrNonPositiveDuration = errors.New("end time must be after start time")
	ErrContentTooLong      = errors.New("content is too long (max 500 chars)")
	ErrNotesTooLong        = errors.New("notes are too long (max 2000 chars)")
)

var clockRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"

	DateLayout = "2006-01-02"

	MaxContentLen = 500
	MaxNotesLen   = 2000
)

// Session is one logged, timed activity interval on a given calendar day.
// Date is the bucketing key for all analytics; Duration is authoritative and
// always equals EndTime minus StartTime in minutes.
type Session struct {
	ID        string `json:"id" db:"id"`
	Date      string `json:"date" db:"date"`
	TimeSlot  string `json:"time_slot" db:"time_slot"`
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
	Duration  int    `json:"duration" db:"duration"`
	Content   string `json:"content" db:"content"`
	Notes     string `json:"notes" db:"notes"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ClockMinutes converts an HH:MM string to minutes since midnight.
// Malformed input yields 0; callers validate separately via clockRegex.
func ClockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h := atoi(parts[0])
	m := atoi(parts[1])
	return h*60 + m
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func slotForClock(start string) string {
	mins := ClockMinutes(start)
	switch {
	case mins < 12*60:
		return SlotMorning
	case mins < 18*60:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

func validateSession(date, slot, start, end, content, notes string) (int, string, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return 0, "", ErrInvalidDate
	}
	if !clockRegex.MatchString(start) || !clockRegex.MatchString(end) {
		return 0, "", ErrInvalidClock
	}

	duration := ClockMinutes(end) - ClockMinutes(start)
	if duration <= 0 {
		return 0, "", ErrNonPositiveDuration
	}

	if slot == "" {
		slot = slotForClock(start)
	}
	switch slot {
	case SlotMorning, SlotAfternoon, SlotEvening:
	default:
		return 0, "", ErrInvalidTimeSlot
	}

	if len(strings.TrimSpace(content)) > MaxContentLen {
		return 0, "", ErrContentTooLong
	}
	if len(strings.TrimSpace(notes)) > MaxNotesLen {
		return 0, "", ErrNotesTooLong
	}

	return duration, slot, nil
}

func NewSession(date, slot, start, end, content, notes string) (*Session, error) {
	duration, finalSlot, err := validateSession(date, slot, start, end, content, notes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Session{
		ID:        uuid.NewString(),
		Date:      date,
		TimeSlot:  finalSlot,
		StartTime: start,
		EndTime:   end,
		Duration:  duration,
		Content:   strings.TrimSpace(content),
		Notes:     strings.TrimSpace(notes),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update replaces every mutable field atomically. Duration is recomputed
// from the new clock times; it is never patched directly.
func (s *Session) Update(date, slot, start, end, content, notes string) error {
	duration, finalSlot, err := validateSession(date, slot, start, end, content, notes)
	if err != nil {
		return err
	}

	s.Date = date
	s.TimeSlot = finalSlot
	s.StartTime = start
	s.EndTime = end
	s.Duration = duration
	s.Content = strings.TrimSpace(content)
	s.Notes = strings.TrimSpace(notes)
	s.UpdatedAt = time.Now().UTC()

	return nil
}
