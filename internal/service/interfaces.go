package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/limbo/breakfree/pkg/entity"
)

type RegisterRequest struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,min=8,max=72"`
}

type UserServiceI interface {
	// Validates credentials, creates the user row and their habit
	// profile. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Verifies the old password and replaces it with a rehashed new one
	ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

// LogIncidentRequest describes one user action on the log screen.
// Voice is optional, DurationSec must be >= 1 when a recording is
// attached (shorter recordings are dropped before logging).
type LogIncidentRequest struct {
	Type        entity.EntryType `validate:"required,oneof=craving slip note"`
	Mood        entity.Mood      `validate:"omitempty,oneof=bored stressed anxious other"`
	Voice       io.Reader        `validate:"-"`
	DurationSec int              `validate:"omitempty,min=1"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type LedgerServiceI interface {
	// Idempotent create-if-absent of the user's habit profile
	EnsureProfile(ctx context.Context, uid uuid.UUID) error
	// Appends one incident entry, uploading the voice note when present.
	// Slips additionally reset the streak through the profile store
	LogIncident(ctx context.Context, uid uuid.UUID, req *LogIncidentRequest) (*entity.Entry, error)
	// Lists entries of uid newest first, voice notes only when voiceOnly
	ListEntries(ctx context.Context, uid uuid.UUID, pagination PaginationOpts, voiceOnly bool) ([]*entity.Entry, error)
	// Derived display values for the home screen
	Summary(ctx context.Context, uid uuid.UUID) (*entity.Summary, error)
	// Replaces the weekly spend estimate, sanitized to a whole
	// non-negative amount
	SetCostPerWeek(ctx context.Context, uid uuid.UUID, amount float64) error
	// Accumulates an "I spent anyway" correction, sanitized likewise
	AddManualSpend(ctx context.Context, uid uuid.UUID, amount float64) error
}

// VoiceUploaderI stores a voice recording and returns a durable URL.
type VoiceUploaderI interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
