package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// EntryType marks what kind of event an incident entry records.
type EntryType string

const (
	EntryCraving EntryType = "craving"
	EntrySlip    EntryType = "slip"
	EntryNote    EntryType = "note"
)

// Mood is an optional categorical tag on an entry. Empty means absent.
type Mood string

const (
	MoodBored    Mood = "bored"
	MoodStressed Mood = "stressed"
	MoodAnxious  Mood = "anxious"
	MoodOther    Mood = "other"
)

// Profile is the per-user record the metrics engine works on.
// LongestStreak is a high-water mark: it only grows, and only at slip time.
type Profile struct {
	UserID                 uuid.UUID `json:"uid"`
	CreatedAt              time.Time `json:"created_at"`
	LastIncident           time.Time `json:"last_incident"`
	LongestStreak          int       `json:"longest_streak"`
	CostPerWeek            int64     `json:"cost_per_week"`
	ManualSpendAdjustments int64     `json:"manual_spend_adjustments"`
	HabitType              string    `json:"habit_type"`
	OnboardingCompleted    bool      `json:"onboarding_completed"`
}

// Entry is one logged incident. Entries are append-only: created once,
// never mutated or deleted.
type Entry struct {
	EntryID      string    `json:"entry_id"`
	UserID       uuid.UUID `json:"uid"`
	Timestamp    time.Time `json:"timestamp"`
	Type         EntryType `json:"type"`
	Mood         Mood      `json:"mood,omitempty"`
	Handled      bool      `json:"handled"`
	VoiceNoteURL string    `json:"voice_note_url,omitempty"`
	DurationSec  int       `json:"duration_sec,omitempty"`
}

// Summary holds the derived display values for one user.
type Summary struct {
	UserID            uuid.UUID `json:"uid"`
	CurrentStreakDays int       `json:"current_streak_days"`
	LongestStreak     int       `json:"longest_streak"`
	MoneySaved        int64     `json:"money_saved"`
	Elapsed           string    `json:"elapsed"`
	LastIncidentMs    int64     `json:"last_incident_ms"`
	CreatedAtMs       int64     `json:"created_at_ms"`
}
