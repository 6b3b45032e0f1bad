package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/internal/metrics"
	"github.com/limbo/breakfree/internal/repository"
	"github.com/limbo/breakfree/pkg/entity"
	"github.com/oklog/ulid/v2"
)

// LedgerService is the write side of the incident log plus the derived
// metrics read out of it.
type LedgerService struct {
	profiles repository.ProfilesRepositoryI
	entries  repository.EntriesRepositoryI
	voice    VoiceUploaderI
	now      func() time.Time
}

// NewLedgerService wires the ledger. voiceUploader may be nil, entries
// are then logged without attachments.
func NewLedgerService(profilesRepo repository.ProfilesRepositoryI, entriesRepo repository.EntriesRepositoryI, voiceUploader VoiceUploaderI) *LedgerService {
	if profilesRepo == nil || entriesRepo == nil {
		log.Fatal("on ledger service provided nil repos")
	}
	return &LedgerService{
		profiles: profilesRepo,
		entries:  entriesRepo,
		voice:    voiceUploader,
		now:      time.Now,
	}
}

func (serv *LedgerService) EnsureProfile(ctx context.Context, uid uuid.UUID) error {
	err := serv.profiles.EnsureProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

func (serv *LedgerService) LogIncident(ctx context.Context, uid uuid.UUID, req *LogIncidentRequest) (*entity.Entry, error) {
	err := validate.Struct(*req)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			switch {
			case req.Type != entity.EntryCraving && req.Type != entity.EntrySlip && req.Type != entity.EntryNote:
				return nil, errorvalues.ErrBadEntryType
			case req.Mood != "" && req.Mood != entity.MoodBored && req.Mood != entity.MoodStressed && req.Mood != entity.MoodAnxious && req.Mood != entity.MoodOther:
				return nil, errorvalues.ErrBadMood
			}
			// Type and mood were fine, the only other validated field is
			// the recording duration
			return nil, errorvalues.ErrBadDuration
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}

	entry := &entity.Entry{
		EntryID: ulid.Make().String(),
		UserID:  uid,
		Type:    req.Type,
		Mood:    req.Mood,
		// Only unresolved slips are unhandled, set once and never changed
		Handled:     req.Type != entity.EntrySlip,
		DurationSec: req.DurationSec,
	}

	if req.Voice != nil && req.DurationSec >= 1 {
		objectPath := fmt.Sprintf("voice/%s/%s/%s.m4a", uid, serv.now().UTC().Format("2006-01-02"), entry.EntryID)
		url, err := serv.uploadVoice(ctx, objectPath, req.Voice)
		if err != nil {
			// The attachment is decoupled from the ledger: a failed
			// upload drops the recording, never the entry
			slog.Warn("voice note upload failed, logging entry without attachment",
				slog.String("uid", uid.String()), slog.String("error", err.Error()))
			entry.DurationSec = 0
		} else {
			entry.VoiceNoteURL = url
		}
	}

	// The entry append goes first: a slip must never update the streak
	// record without its logged entry at least attempted
	err = serv.entries.Append(ctx, entry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if req.Type == entity.EntrySlip {
		_, err = serv.profiles.RecordSlip(ctx, uid)
		if err != nil {
			if errors.Is(err, errorvalues.ErrSlipConflict) {
				return nil, err
			}
			return nil, errors.New("repository error: " + err.Error())
		}
	}
	return entry, nil
}

func (serv *LedgerService) uploadVoice(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	if serv.voice == nil {
		return "", errors.New("no voice uploader configured")
	}
	return serv.voice.Upload(ctx, objectPath, "audio/m4a", r)
}

func (serv *LedgerService) ListEntries(ctx context.Context, uid uuid.UUID, pagination PaginationOpts, voiceOnly bool) ([]*entity.Entry, error) {
	var entries []*entity.Entry
	var err error
	if voiceOnly {
		entries, err = serv.entries.GetVoiceNotesByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	} else {
		entries, err = serv.entries.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	}
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return entries, nil
}

func (serv *LedgerService) Summary(ctx context.Context, uid uuid.UUID) (*entity.Summary, error) {
	profile, err := serv.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	now := serv.now()
	// Current streak is always derived live, only the high-water mark
	// persists
	streak := metrics.CurrentStreakDays(&profile.LastIncident, &profile.CreatedAt, now)
	saved := metrics.MoneySaved(metrics.MoneySavedOpts{
		CreatedAt:              &profile.CreatedAt,
		CostPerWeek:            float64(profile.CostPerWeek),
		ManualSpendAdjustments: float64(profile.ManualSpendAdjustments),
		Now:                    now,
	})
	anchor := profile.LastIncident
	if anchor.IsZero() {
		anchor = profile.CreatedAt
	}
	return &entity.Summary{
		UserID:            uid,
		CurrentStreakDays: streak,
		LongestStreak:     profile.LongestStreak,
		MoneySaved:        saved,
		Elapsed:           metrics.FormatElapsed(now.Sub(anchor)),
		LastIncidentMs:    profile.LastIncident.UnixMilli(),
		CreatedAtMs:       profile.CreatedAt.UnixMilli(),
	}, nil
}

func (serv *LedgerService) SetCostPerWeek(ctx context.Context, uid uuid.UUID, amount float64) error {
	err := serv.profiles.SetCostPerWeek(ctx, uid, sanitizeAmount(amount))
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return err
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

func (serv *LedgerService) AddManualSpend(ctx context.Context, uid uuid.UUID, amount float64) error {
	err := serv.profiles.AddManualSpend(ctx, uid, sanitizeAmount(amount))
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return err
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

// sanitizeAmount clamps user input the way the app does: whole
// non-negative currency units.
func sanitizeAmount(amount float64) int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return int64(math.Max(0, math.Round(amount)))
}
