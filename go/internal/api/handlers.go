package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bestball/drafttrack/go/internal/analysis"
	"github.com/bestball/drafttrack/go/internal/draft"
	"github.com/bestball/drafttrack/go/internal/models"
	"github.com/bestball/drafttrack/go/internal/player"
	"github.com/bestball/drafttrack/go/internal/schema"
)

// DraftApp defines what the handlers need from draft ingestion.
type DraftApp interface {
	RecordPick(ctx context.Context, req draft.RecordPickRequest) (*draft.RecordPickResult, error)
}

// PlayerApp defines what the handlers need from projections.
type PlayerApp interface {
	UpsertProjections(ctx context.Context, source models.ProjectionSource, rows []player.ProjectionRow) (int, error)
	Projections(ctx context.Context, source models.ProjectionSource) ([]player.ProjectionView, error)
}

// AnalysisApp defines what the handlers need from the analyzer.
type AnalysisApp interface {
	Exposures(ctx context.Context) (map[string]float64, error)
	CheckDuplication(ctx context.Context, candidateIDs []string) (int, error)
	Stats(ctx context.Context) (analysis.Counts, error)
}

// Handler serves the tracker's JSON API.
type Handler struct {
	drafts   DraftApp
	players  PlayerApp
	analysis AnalysisApp
	db       *sql.DB
}

func NewHandler(drafts DraftApp, players PlayerApp, analysisApp AnalysisApp, db *sql.DB) *Handler {
	return &Handler{
		drafts:   drafts,
		players:  players,
		analysis: analysisApp,
		db:       db,
	}
}

// Register mounts every route on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/projections", h.GetProjections)
	mux.HandleFunc("POST /api/picks", h.SavePick)
	mux.HandleFunc("GET /api/exposures", h.GetExposures)
	mux.HandleFunc("POST /api/check-duplication", h.CheckDuplication)
	mux.HandleFunc("POST /api/upload-etr", h.UploadETR)
	mux.HandleFunc("POST /api/upload-market", h.UploadMarket)
	mux.HandleFunc("GET /api/stats", h.GetStats)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/init-db", h.InitDB)
	mux.HandleFunc("GET /api/debug-db", h.DebugDB)
}

// GetProjections handles GET /api/projections?type=etr|market
func (h *Handler) GetProjections(w http.ResponseWriter, r *http.Request) {
	source := models.ProjectionSource(r.URL.Query().Get("type"))
	if source == "" {
		source = models.SourceETR
	}

	views, err := h.players.Projections(r.Context(), source)
	if err != nil {
		respondError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, views)
}

// SavePick handles POST /api/picks
func (h *Handler) SavePick(w http.ResponseWriter, r *http.Request) {
	var req draft.RecordPickRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := h.drafts.RecordPick(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"pick_number": result.PickNumber,
		"completed":   result.Completed,
	})
}

// GetExposures handles GET /api/exposures
func (h *Handler) GetExposures(w http.ResponseWriter, r *http.Request) {
	exposures, err := h.analysis.Exposures(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, exposures)
}

type checkDuplicationRequest struct {
	Picks []string `json:"picks"`
}

// CheckDuplication handles POST /api/check-duplication
func (h *Handler) CheckDuplication(w http.ResponseWriter, r *http.Request) {
	var req checkDuplicationRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	count, err := h.analysis.CheckDuplication(r.Context(), req.Picks)
	if err != nil {
		respondError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]int{"similarCount": count})
}

type uploadRequest struct {
	Players []player.ProjectionRow `json:"players"`
}

// UploadETR handles POST /api/upload-etr
func (h *Handler) UploadETR(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.SourceETR)
}

// UploadMarket handles POST /api/upload-market
func (h *Handler) UploadMarket(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.SourceMarket)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, source models.ProjectionSource) {
	var req uploadRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	count, err := h.players.UpsertProjections(r.Context(), source, req.Players)
	if err != nil {
		respondError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.analysis.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, counts)
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// InitDB handles POST /api/init-db
func (h *Handler) InitDB(w http.ResponseWriter, r *http.Request) {
	if err := schema.EnsureSchema(r.Context(), h.db); err != nil {
		log.Error().Err(err).Msg("schema init failed")
		ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	JSONResponse(w, http.StatusOK, map[string]any{"success": true, "message": "Database initialized"})
}

// DebugDB handles GET /api/debug-db
func (h *Handler) DebugDB(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]any{
		"database_url_exists": os.Getenv("DATABASE_URL") != "",
	})
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, draft.ErrInvalidInput) || errors.Is(err, player.ErrInvalidInput) {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Error().Err(err).Msg("request failed")
	ErrorResponse(w, http.StatusInternalServerError, err.Error())
}
