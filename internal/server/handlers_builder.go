package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/insights"
	"github.com/jonathan/resume-builder/internal/report"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/workspace"
	"golang.org/x/sync/errgroup"
)

const maxBodyBytes = 1 << 20

// StateResponse is the live document and its active template.
type StateResponse struct {
	State       types.BuilderState `json:"state"`
	TemplateKey string             `json:"templateKey"`
}

// TemplatesResponse lists the template catalog.
type TemplatesResponse struct {
	DefaultKey string               `json:"defaultKey"`
	Templates  []templates.Template `json:"templates"`
}

// InsightsResponse carries the local rule output for a state.
type InsightsResponse struct {
	RuleSetVersion string    `json:"ruleSetVersion"`
	Insights       []string  `json:"insights"`
	BulletExamples [2]string `json:"bulletExamples"`
}

// AnalyzeResponse is the result of analyzing the live document.
type AnalyzeResponse struct {
	Report *types.ATSReport   `json:"report"`
	View   report.View        `json:"view"`
	Panel  insights.Panel     `json:"panel"`
	Draft  *types.ResumeDraft `json:"draft,omitempty"`
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// readBody returns the raw request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return data, nil
}

// decodeState reads a full builder state. Well-formed bodies are also checked
// against the builder state schema.
func decodeState(w http.ResponseWriter, r *http.Request) (types.BuilderState, error) {
	data, err := readBody(w, r)
	if err != nil {
		return types.BuilderState{}, err
	}
	return parseState("body", data)
}

// parseState decodes a builder state and checks it against the state schema.
func parseState(field string, data []byte) (types.BuilderState, error) {
	var state types.BuilderState
	if err := json.Unmarshal(data, &state); err != nil {
		return types.BuilderState{}, &ErrValidation{Field: field, Message: err.Error()}
	}
	if err := schemas.ValidateBuilderStateJSON(data); err != nil {
		return types.BuilderState{}, err
	}
	return state, nil
}

func parseIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return index, nil
}

func checkCollection(name string) error {
	switch name {
	case builder.CollectionExperience, builder.CollectionEducation, builder.CollectionProjects:
		return nil
	default:
		return &ErrNotFound{Resource: "collection", ID: name}
	}
}

func (s *Server) stateResponse(w http.ResponseWriter, status int, state types.BuilderState) {
	s.jsonResponse(w, status, StateResponse{State: state, TemplateKey: s.workspace.TemplateKey()})
}

// handleListTemplates returns the template catalog
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		DefaultKey: templates.DefaultKey,
		Templates:  templates.All(),
	})
}

// handleGetState returns the live document
func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	s.stateResponse(w, http.StatusOK, s.workspace.Snapshot())
}

// handleReplaceState replaces the whole document
func (s *Server) handleReplaceState(w http.ResponseWriter, r *http.Request) {
	state, err := decodeState(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.workspace.Replace(r.Context(), state); err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, s.workspace.Snapshot())
}

// handleUpdatePersonal applies a partial update to the personal block
func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	var patch builder.PersonalPatch
	if err := decodeBody(w, r, &patch); err != nil {
		s.failure(w, r, err)
		return
	}
	state, err := s.workspace.Edit(r.Context(), func(st types.BuilderState) (types.BuilderState, error) {
		return builder.UpdatePersonal(st, patch), nil
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, state)
}

// handleSetSkills replaces the skills list
func (s *Server) handleSetSkills(w http.ResponseWriter, r *http.Request) {
	var req types.SkillsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "skills", Message: err.Error()})
		return
	}
	state, err := s.workspace.Edit(r.Context(), func(st types.BuilderState) (types.BuilderState, error) {
		if req.Text != nil {
			return builder.SetSkillsFromText(st, *req.Text), nil
		}
		return builder.SetSkills(st, req.Skills), nil
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, state)
}

// handleAddItem appends a blank item to a collection
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if err := checkCollection(collection); err != nil {
		s.failure(w, r, err)
		return
	}
	state, err := s.workspace.Edit(r.Context(), func(st types.BuilderState) (types.BuilderState, error) {
		switch collection {
		case builder.CollectionExperience:
			return builder.AddExperience(st), nil
		case builder.CollectionEducation:
			return builder.AddEducation(st), nil
		default:
			return builder.AddProject(st), nil
		}
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusCreated, state)
}

// handleUpdateItem applies a partial update to one item of a collection
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if err := checkCollection(collection); err != nil {
		s.failure(w, r, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	var edit workspace.EditFunc
	switch collection {
	case builder.CollectionExperience:
		var patch builder.ExperiencePatch
		err = decodeBody(w, r, &patch)
		edit = func(st types.BuilderState) (types.BuilderState, error) {
			return builder.UpdateExperience(st, index, patch)
		}
	case builder.CollectionEducation:
		var patch builder.EducationPatch
		err = decodeBody(w, r, &patch)
		edit = func(st types.BuilderState) (types.BuilderState, error) {
			return builder.UpdateEducation(st, index, patch)
		}
	default:
		var patch builder.ProjectPatch
		err = decodeBody(w, r, &patch)
		edit = func(st types.BuilderState) (types.BuilderState, error) {
			return builder.UpdateProject(st, index, patch)
		}
	}
	if err != nil {
		s.failure(w, r, err)
		return
	}

	state, err := s.workspace.Edit(r.Context(), edit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, state)
}

// handleRemoveItem removes one item from a collection
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if err := checkCollection(collection); err != nil {
		s.failure(w, r, err)
		return
	}
	index, err := parseIndex(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	state, err := s.workspace.Edit(r.Context(), func(st types.BuilderState) (types.BuilderState, error) {
		switch collection {
		case builder.CollectionExperience:
			return builder.RemoveExperience(st, index)
		case builder.CollectionEducation:
			return builder.RemoveEducation(st, index)
		default:
			return builder.RemoveProject(st, index)
		}
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, state)
}

// handleApplyTemplate applies a catalog template and makes it active
func (s *Server) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.TemplateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "key", Message: err.Error()})
		return
	}
	state, err := s.workspace.ApplyTemplate(r.Context(), req.Key)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, state)
}

// textResponse writes plain text
func (s *Server) textResponse(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, text); err != nil {
		log.Printf("Error writing text response: %v", err)
	}
}

// handleBuilderText returns the canonical text of the live document
func (s *Server) handleBuilderText(w http.ResponseWriter, _ *http.Request) {
	s.textResponse(w, s.workspace.Text())
}

// handleBuilderInsights returns the local insights for the live document
func (s *Server) handleBuilderInsights(w http.ResponseWriter, _ *http.Request) {
	state := s.workspace.Snapshot()
	s.jsonResponse(w, http.StatusOK, InsightsResponse{
		RuleSetVersion: insights.RuleSetVersion,
		Insights:       insights.Derive(state),
		BulletExamples: insights.BulletExamples(state),
	})
}

// handleBuilderAssistant returns the assistant panel for the live document and last report
func (s *Server) handleBuilderAssistant(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.workspace.Panel())
}

// handleAnalyze sends the live document to the analysis service. With
// ?save_draft=true a draft of the same snapshot is saved in parallel and
// then stamped with the resulting score.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	saveDraft, _ := strconv.ParseBool(r.URL.Query().Get("save_draft"))
	if saveDraft && s.drafts == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "drafts"})
		return
	}

	snapshot := s.workspace.Snapshot()
	templateKey := s.workspace.TemplateKey()
	input := &db.DraftInput{
		Title:       strings.TrimSpace(r.URL.Query().Get("title")),
		Payload:     snapshot,
		TemplateKey: templateKey,
	}

	var (
		rep   *types.ATSReport
		draft *types.ResumeDraft
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		rep, err = s.workspace.AnalyzeState(ctx, snapshot)
		return err
	})
	if saveDraft {
		g.Go(func() error {
			var err error
			draft, err = s.drafts.SaveDraft(ctx, input)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.failure(w, r, err)
		return
	}

	if draft != nil {
		score := rep.ATSScore
		input.ID = &draft.ID
		input.Title = draft.Title
		input.ATSScore = &score
		updated, err := s.drafts.SaveDraft(r.Context(), input)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		draft = updated
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Report: rep,
		View:   report.NewView(rep),
		Panel:  insights.Assistant(rep, snapshot),
		Draft:  draft,
	})
}

// handleAnalyzeStream analyzes the live document and streams each stage as a server-sent event
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	snapshot := s.workspace.Snapshot()
	if err := sse.WriteEvent("text", map[string]string{"text": builder.ToText(snapshot)}); err != nil {
		log.Printf("Error writing SSE event: %v", err)
		return
	}

	rep, err := s.workspace.AnalyzeState(r.Context(), snapshot)
	if err != nil {
		log.Printf("Analysis failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	events := []struct {
		name string
		data any
	}{
		{"report", rep},
		{"view", report.NewView(rep)},
		{"panel", insights.Assistant(rep, snapshot)},
	}
	for _, ev := range events {
		if err := sse.WriteEvent(ev.name, ev.data); err != nil {
			log.Printf("Error writing SSE event: %v", err)
			return
		}
	}
	sse.WriteComplete("completed")
}

// handleDeriveText serializes a posted state without touching the live document
func (s *Server) handleDeriveText(w http.ResponseWriter, r *http.Request) {
	state, err := decodeState(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.textResponse(w, builder.ToText(state))
}

// handleDeriveInsights runs the rule set over a posted state
func (s *Server) handleDeriveInsights(w http.ResponseWriter, r *http.Request) {
	state, err := decodeState(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, InsightsResponse{
		RuleSetVersion: insights.RuleSetVersion,
		Insights:       insights.Derive(state),
		BulletExamples: insights.BulletExamples(state),
	})
}

// handleDeriveAssistant builds the assistant panel for a posted state and optional report
func (s *Server) handleDeriveAssistant(w http.ResponseWriter, r *http.Request) {
	var req types.AssistantRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil || string(req.State) == "null" {
		s.failure(w, r, &ErrValidation{Field: "state", Message: "is required"})
		return
	}
	state, err := parseState("state", req.State)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, insights.Assistant(req.Report, state))
}

// handleClassify returns the band and gauge for a score
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "score", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, scoring.NewGauge(*req.Score, req.Breakdown))
}

// handleReportView renders the analyzer page view of a posted report
func (s *Server) handleReportView(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var rep types.ATSReport
	if err := json.Unmarshal(data, &rep); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if err := schemas.ValidateATSReportJSON(data); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report.NewView(&rep))
}
