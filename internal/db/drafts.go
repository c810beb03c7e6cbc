package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// DefaultListLimit is used when ListDrafts is called with a non-positive limit.
	DefaultListLimit = 20
	// MaxListLimit caps ListDrafts.
	MaxListLimit = 100
)

// DraftInput is what SaveDraft stores. A nil ID creates a new draft.
type DraftInput struct {
	ID          *uuid.UUID
	Title       string
	Payload     types.BuilderState
	TemplateKey string
	ATSScore    *float64
}

// resolve fills in the id and title that SaveDraft writes.
func (in *DraftInput) resolve() (uuid.UUID, string) {
	id := uuid.New()
	if in.ID != nil && *in.ID != uuid.Nil {
		id = *in.ID
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = types.DraftTitle(in.Payload)
	}
	return id, title
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// SaveDraft inserts a draft, or replaces the draft with the same id.
func (db *DB) SaveDraft(ctx context.Context, input *DraftInput) (*types.ResumeDraft, error) {
	id, title := input.resolve()

	payload, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft payload: %w", err)
	}

	draft := types.ResumeDraft{
		ID:          id,
		Title:       title,
		Payload:     input.Payload,
		TemplateKey: input.TemplateKey,
		ATSScore:    input.ATSScore,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_drafts (id, title, payload, template_key, ats_score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   title = $2, payload = $3, template_key = $4, ats_score = $5, updated_at = NOW()
		 RETURNING created_at, updated_at`,
		id, title, payload, input.TemplateKey, input.ATSScore,
	).Scan(&draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return &draft, nil
}

// GetDraft retrieves a draft by id. It returns nil when the draft does not exist.
func (db *DB) GetDraft(ctx context.Context, id uuid.UUID) (*types.ResumeDraft, error) {
	var draft types.ResumeDraft
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, payload, template_key, ats_score, created_at, updated_at
		 FROM resume_drafts WHERE id = $1`,
		id,
	).Scan(&draft.ID, &draft.Title, &payload, &draft.TemplateKey, &draft.ATSScore, &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	if err := json.Unmarshal(payload, &draft.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft payload: %w", err)
	}
	return &draft, nil
}

// ListDrafts returns the most recently updated drafts, newest first.
// Payloads are loaded too so a listing can be restored without a second query.
func (db *DB) ListDrafts(ctx context.Context, limit int) ([]types.ResumeDraft, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, payload, template_key, ats_score, created_at, updated_at
		 FROM resume_drafts ORDER BY updated_at DESC LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := []types.ResumeDraft{}
	for rows.Next() {
		var draft types.ResumeDraft
		var payload []byte
		if err := rows.Scan(&draft.ID, &draft.Title, &payload, &draft.TemplateKey, &draft.ATSScore, &draft.CreatedAt, &draft.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		if err := json.Unmarshal(payload, &draft.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal draft %s: %w", draft.ID, err)
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}
	return drafts, nil
}

// DeleteDraft removes a draft. It reports whether a row was deleted.
func (db *DB) DeleteDraft(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resume_drafts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete draft: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
