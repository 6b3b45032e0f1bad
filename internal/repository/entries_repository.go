package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/pkg/cleanup"
	"github.com/limbo/breakfree/pkg/entity"
)

type EntriesRepository struct {
	conn PgConnection
}

func NewEntriesRepo(cfg DBConfig) *EntriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for entriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EntriesRepository{
		conn: pool,
	}
}

func NewEntriesRepoWithConn(conn PgConnection) *EntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	return &EntriesRepository{
		conn: conn,
	}
}

func (er *EntriesRepository) Append(ctx context.Context, entry *entity.Entry) error {
	if entry == nil {
		return errors.New("entry is nil")
	}
	row := er.conn.QueryRow(ctx,
		`INSERT INTO entries (entry_id, user_id, ts, type, mood, handled, voice_note_url, duration_sec)
		VALUES ($1, $2, NOW(), $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, 0))
		RETURNING ts;`,
		entry.EntryID,
		entry.UserID,
		string(entry.Type),
		string(entry.Mood),
		entry.Handled,
		entry.VoiceNoteURL,
		entry.DurationSec,
	)
	if err := row.Scan(&entry.Timestamp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("appending entry error: " + err.Error())
	}
	return nil
}

func (er *EntriesRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Entry, error) {
	rows, err := er.conn.Query(ctx,
		`SELECT entry_id, user_id, ts, type, mood, handled, voice_note_url, duration_sec
		FROM entries WHERE user_id = $1 ORDER BY ts DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting entries by uid error: " + err.Error())
	}
	return scanEntries(rows)
}

func (er *EntriesRepository) GetVoiceNotesByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Entry, error) {
	rows, err := er.conn.Query(ctx,
		`SELECT entry_id, user_id, ts, type, mood, handled, voice_note_url, duration_sec
		FROM entries WHERE user_id = $1 AND voice_note_url IS NOT NULL ORDER BY ts DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting voice notes by uid error: " + err.Error())
	}
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*entity.Entry, error) {
	defer rows.Close()
	entries := make([]*entity.Entry, 0)
	for rows.Next() {
		e := entity.Entry{}
		var entryType string
		var mood, voiceNoteURL sql.NullString
		var durationSec sql.NullInt32
		err := rows.Scan(&e.EntryID, &e.UserID, &e.Timestamp, &entryType, &mood, &e.Handled, &voiceNoteURL, &durationSec)
		if err != nil {
			return nil, errors.New("unmarshalling entry error: " + err.Error())
		}
		e.Type = entity.EntryType(entryType)
		e.Mood = entity.Mood(mood.String)
		e.VoiceNoteURL = voiceNoteURL.String
		e.DurationSec = int(durationSec.Int32)
		entries = append(entries, &e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return entries, nil
}
