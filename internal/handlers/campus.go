package handlers

import (
	"context"
	"fmt"
	"net/http"

	"campus-portal-backend/internal/middleware"
	"campus-portal-backend/internal/models"
	"campus-portal-backend/internal/services"
)

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
}

type issueRepository interface {
	List(ctx context.Context) ([]models.Issue, error)
}

type lostFoundRepository interface {
	List(ctx context.Context) (*models.LostFoundListing, error)
}

type noteRepository interface {
	List(ctx context.Context) ([]models.Note, error)
}

type dashboardRepository interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type realtimeRepository interface {
	Snapshot(ctx context.Context) (*models.RealtimeSnapshot, error)
}

// CampusRepos groups the read-only collections served by CampusHandler.
type CampusRepos struct {
	Rooms     roomRepository
	Issues    issueRepository
	LostFound lostFoundRepository
	Notes     noteRepository
	Dashboard dashboardRepository
	Realtime  realtimeRepository
}

type CampusHandler struct {
	repos    CampusRepos
	campus   *services.CampusService
	maxBytes int64
}

func NewCampusHandler(repos CampusRepos, campus *services.CampusService, uploadMaxBytes int64) *CampusHandler {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = services.DefaultUploadMaxBytes
	}
	return &CampusHandler{repos: repos, campus: campus, maxBytes: uploadMaxBytes}
}

func (h *CampusHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repos.Rooms.List(r.Context())
	if err != nil {
		handleServiceError(w, r, fmt.Errorf("failed to fetch rooms: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *CampusHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.repos.Issues.List(r.Context())
	if err != nil {
		handleServiceError(w, r, fmt.Errorf("failed to fetch issues: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (h *CampusHandler) ListLostFound(w http.ResponseWriter, r *http.Request) {
	listing, err := h.repos.LostFound.List(r.Context())
	if err != nil {
		handleServiceError(w, r, fmt.Errorf("failed to fetch lost and found items: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *CampusHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.repos.Notes.List(r.Context())
	if err != nil {
		handleServiceError(w, r, fmt.Errorf("failed to fetch notes: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *CampusHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repos.Dashboard.Stats(r.Context())
	if err != nil {
		handleServiceError(w, r, fmt.Errorf("failed to fetch dashboard statistics: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *CampusHandler) Realtime(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.repos.Realtime.Snapshot(r.Context())
	if err != nil {
		handleServiceError(w, r, fmt.Errorf("failed to fetch real-time data: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *CampusHandler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIssueRequest
	if _, err := decodePayload(w, r, &req, h.maxBytes); err != nil {
		handleServiceError(w, r, err)
		return
	}

	issue, err := h.campus.CreateIssue(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Issue reported successfully!",
		"issue":   issue,
	})
}

func (h *CampusHandler) ReportItem(w http.ResponseWriter, r *http.Request) {
	var req models.ReportItemRequest
	if _, err := decodePayload(w, r, &req, h.maxBytes); err != nil {
		handleServiceError(w, r, err)
		return
	}

	item, err := h.campus.ReportItem(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": item.Type + " item reported successfully!",
		"item":    item,
	})
}

func (h *CampusHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	files, err := decodePayload(w, r, &req, h.maxBytes, "file")
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var upload *services.Upload
	if header, ok := files["file"]; ok {
		f, err := header.Open()
		if err != nil {
			handleServiceError(w, r, fmt.Errorf("failed to open uploaded file: %w", err))
			return
		}
		defer f.Close()
		upload = &services.Upload{Name: header.Filename, Size: header.Size, Body: f}
	}

	var author *models.NoteAuthor
	if user, ok := middleware.GetUser(r.Context()); ok {
		author = &models.NoteAuthor{Name: user.Name, Email: user.Email}
	}

	note, err := h.campus.CreateNote(r.Context(), req, author, upload)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notes uploaded successfully!",
		"note":    note,
	})
}
