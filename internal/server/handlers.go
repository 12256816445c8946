package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/cv-ranker/internal/db"
	"github.com/jonathan/cv-ranker/internal/ingestion"
	"github.com/jonathan/cv-ranker/internal/pipeline"
	"github.com/jonathan/cv-ranker/internal/types"
)

const (
	// maxRequestBytes caps the /rank request body
	maxRequestBytes = 32 << 20
	defaultRunLimit = 20
	maxRunLimit     = 100
)

// RankRequest represents the request body for /rank
type RankRequest struct {
	Documents        []RankDocument `json:"documents" validate:"max=1000,dive"`
	HistogramBuckets int            `json:"histogram_buckets,omitempty" validate:"gte=0,lte=100"`
	Label            string         `json:"label,omitempty" validate:"max=200"`
	Save             *bool          `json:"save,omitempty"` // Defaults to true when storage is configured
}

// RankDocument is one résumé in a RankRequest. Either Text carries the plain
// text, or Content carries the base64-encoded file with an optional MediaType.
type RankDocument struct {
	Name      string `json:"name" validate:"required,max=255"`
	Text      string `json:"text,omitempty"`
	Content   string `json:"content,omitempty" validate:"omitempty,base64,excluded_with=Text"`
	MediaType string `json:"media_type,omitempty"`
}

// RunDocumentsResponse is the body of GET /runs/{id}/documents
type RunDocumentsResponse struct {
	RunID     string           `json:"run_id"`
	Documents []db.RunDocument `json:"documents"`
	Count     int              `json:"count"`
}

// handleRank extracts, scores and ranks the posted documents
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	docs, err := s.buildDocuments(r, req.Documents)
	if err != nil {
		s.writeError(w, err)
		return
	}

	_, report, err := pipeline.RankDocuments(r.Context(), s.ranking, docs, req.HistogramBuckets)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.store != nil && (req.Save == nil || *req.Save) {
		runID, err := pipeline.Persist(r.Context(), s.store, req.Label, report.Ranked)
		if err != nil {
			s.log.WithError(err).Warn("failed to persist run")
		} else {
			report.RunID = runID.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// buildDocuments turns request documents into documents, extracting text
// from encoded files. Inline text is cleaned like any uploaded file.
func (s *Server) buildDocuments(r *http.Request, in []RankDocument) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(in))
	for i, d := range in {
		if d.Content == "" {
			doc, _, err := s.loader.LoadBytes(r.Context(), d.Name, ingestion.MediaText, []byte(d.Text))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		data, err := base64.StdEncoding.DecodeString(d.Content)
		if err != nil {
			return nil, &ErrValidation{Field: fmt.Sprintf("documents[%d].content", i), Message: "invalid base64"}
		}

		var mediaType ingestion.MediaType
		if d.MediaType != "" {
			mediaType, err = ingestion.ParseMediaType(d.MediaType)
		} else {
			mediaType, err = ingestion.DetectMediaType(d.Name, data)
		}
		if err != nil {
			return nil, err
		}

		doc, _, err := s.loader.LoadBytes(r.Context(), d.Name, mediaType, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// handleListRuns returns the most recent stored runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStorageDisabled)
		return
	}

	limit := defaultRunLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(parsed, maxRunLimit)
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// handleGetRun returns a stored run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleListRunDocuments returns the documents of a stored run in rank order
func (s *Server) handleListRunDocuments(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	docs, err := s.store.ListRunDocuments(r.Context(), run.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RunDocumentsResponse{
		RunID:     run.ID.String(),
		Documents: docs,
		Count:     len(docs),
	})
}

// handleDeleteRun deletes a stored run and its documents
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStorageDisabled)
		return
	}

	runID, err := parseRunID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	deleted, err := s.store.DeleteRun(r.Context(), runID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !deleted {
		s.writeError(w, &ErrNotFound{Resource: "run", ID: runID.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// lookupRun loads the run named by the {id} path value, writing the error
// response itself when it cannot.
func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*db.Run, bool) {
	if s.store == nil {
		s.writeError(w, ErrStorageDisabled)
		return nil, false
	}

	runID, err := parseRunID(r)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}

	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if run == nil {
		s.writeError(w, &ErrNotFound{Resource: "run", ID: runID.String()})
		return nil, false
	}
	return run, true
}

func parseRunID(r *http.Request) (uuid.UUID, error) {
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid run ID format"}
	}
	return runID, nil
}
