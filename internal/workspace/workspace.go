// Package workspace holds the live builder document, its active template and
// the last analysis report, and persists every change through a storage.Repository.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/insights"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrNoAnalyzer is returned by Analyze when no analysis service is configured.
var ErrNoAnalyzer = errors.New("no analysis service configured")

// Analyzer scores serialized resume text.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*types.ATSReport, error)
}

// EditFunc derives the next state from the current one.
type EditFunc func(types.BuilderState) (types.BuilderState, error)

// Workspace is safe for concurrent use. Readers always see a complete state.
type Workspace struct {
	repo     storage.Repository
	analyzer Analyzer

	mu          sync.RWMutex
	state       types.BuilderState
	templateKey string
	report      *types.ATSReport
}

// New loads the persisted state and template key. Missing or unreadable
// values fall back to the seed document and the default template.
// analyzer may be nil.
func New(ctx context.Context, repo storage.Repository, analyzer Analyzer) *Workspace {
	w := &Workspace{
		repo:        repo,
		analyzer:    analyzer,
		state:       builder.NewDefaultState(),
		templateKey: templates.DefaultKey,
	}

	state, ok, err := repo.Load(ctx)
	switch {
	case err != nil:
		log.Printf("[workspace] failed to load builder state, using defaults: %v", err)
	case ok:
		w.state = state
	}

	key, ok, err := repo.LoadTemplateKey(ctx)
	switch {
	case err != nil:
		log.Printf("[workspace] failed to load template key, using %s: %v", templates.DefaultKey, err)
	case ok:
		w.templateKey = key
	}

	return w
}

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() types.BuilderState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return builder.Clone(w.state)
}

// TemplateKey returns the active template key.
func (w *Workspace) TemplateKey() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.templateKey
}

// Report returns the last analysis report, or nil. The report must not be modified.
func (w *Workspace) Report() *types.ATSReport {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.report
}

// Replace persists state and makes it current.
func (w *Workspace) Replace(ctx context.Context, state types.BuilderState) error {
	_, err := w.Edit(ctx, func(types.BuilderState) (types.BuilderState, error) {
		return state, nil
	})
	return err
}

// Edit applies fn to the current state, persists the result and makes it
// current. Edits are serialized. When fn or the save fails the current
// state is unchanged.
func (w *Workspace) Edit(ctx context.Context, fn EditFunc) (types.BuilderState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := fn(builder.Clone(w.state))
	if err != nil {
		return builder.Clone(w.state), err
	}
	next = builder.Clone(next)
	if err := next.Validate(); err != nil {
		return builder.Clone(w.state), fmt.Errorf("invalid builder state: %w", err)
	}

	if err := w.repo.Save(ctx, next); err != nil {
		return builder.Clone(w.state), err
	}
	w.state = next
	return builder.Clone(next), nil
}

// ApplyTemplate applies the template's skills and headline and makes it the
// active template. Both values are saved before either is swapped in.
func (w *Workspace) ApplyTemplate(ctx context.Context, key string) (types.BuilderState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := templates.Apply(w.state, key)
	if err != nil {
		return builder.Clone(w.state), err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.repo.Save(gctx, next) })
	g.Go(func() error { return w.repo.SaveTemplateKey(gctx, key) })
	if err := g.Wait(); err != nil {
		return builder.Clone(w.state), err
	}

	w.state = next
	w.templateKey = key
	return builder.Clone(next), nil
}

// Restore replaces the state and template key together, as when a saved draft is loaded.
// An empty key keeps the active template.
func (w *Workspace) Restore(ctx context.Context, state types.BuilderState, key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := builder.Clone(state)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid builder state: %w", err)
	}
	if key == "" {
		key = w.templateKey
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.repo.Save(gctx, next) })
	g.Go(func() error { return w.repo.SaveTemplateKey(gctx, key) })
	if err := g.Wait(); err != nil {
		return err
	}

	w.state = next
	w.templateKey = key
	return nil
}

// Text serializes the current state.
func (w *Workspace) Text() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return builder.ToText(w.state)
}

// Insights derives the local rule-based insights for the current state.
func (w *Workspace) Insights() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return insights.Derive(w.state)
}

// Analyze sends the serialized current state to the analyzer and keeps the report.
func (w *Workspace) Analyze(ctx context.Context) (*types.ATSReport, error) {
	return w.AnalyzeState(ctx, w.Snapshot())
}

// AnalyzeState analyzes state, a snapshot taken by the caller, and keeps the
// report. Edits made while the request is in flight do not change what was
// scored. The lock is not held during the request.
func (w *Workspace) AnalyzeState(ctx context.Context, state types.BuilderState) (*types.ATSReport, error) {
	if w.analyzer == nil {
		return nil, ErrNoAnalyzer
	}

	report, err := w.analyzer.AnalyzeText(ctx, builder.ToText(state))
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.report = report
	w.mu.Unlock()
	return report, nil
}

// Panel builds the assistant panel for the current state and last report.
func (w *Workspace) Panel() insights.Panel {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return insights.Assistant(w.report, w.state)
}
