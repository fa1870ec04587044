package services

import (
	"context"
	"strings"
	"time"

	"campus-portal-backend/internal/models"
)

// CampusService synthesizes the records returned by the create endpoints.
// Created records are echoed back and never stored.
type CampusService struct {
	ids     *IDGenerator
	uploads *UploadInspector
	now     func() time.Time
}

func NewCampusService(ids *IDGenerator, uploads *UploadInspector) *CampusService {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	if uploads == nil {
		uploads = NewUploadInspector(0)
	}
	return &CampusService{ids: ids, uploads: uploads, now: time.Now}
}

// DefaultNoteAuthor is used when a note is uploaded without a session.
var DefaultNoteAuthor = models.NoteAuthor{Name: "Current User", Email: "user@site.ac.in"}

func (s *CampusService) CreateIssue(ctx context.Context, req models.CreateIssueRequest) (*models.Issue, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.Location = strings.TrimSpace(req.Location)
	req.UserID = strings.TrimSpace(req.UserID)
	req.Priority = strings.TrimSpace(req.Priority)
	if req.Priority == "" {
		req.Priority = "medium"
	}

	if err := validateInput(req, "Missing required fields"); err != nil {
		return nil, err
	}

	return &models.Issue{
		ID:          s.ids.Next(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Priority:    req.Priority,
		Status:      "pending",
		UserID:      req.UserID,
		CreatedAt:   s.now().UTC(),
	}, nil
}

func (s *CampusService) ReportItem(ctx context.Context, req models.ReportItemRequest) (*models.LostFoundItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.ContactInfo = strings.TrimSpace(req.ContactInfo)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.UserID = strings.TrimSpace(req.UserID)

	if err := validateInput(req, "Missing required fields"); err != nil {
		return nil, err
	}

	return &models.LostFoundItem{
		ID:          s.ids.Next(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    strings.TrimSpace(req.Location),
		ContactInfo: req.ContactInfo,
		Type:        req.Type,
		UserID:      req.UserID,
		CreatedAt:   s.now().UTC(),
	}, nil
}

// CreateNote builds a note record. A nil author falls back to
// DefaultNoteAuthor; a nil upload yields a null fileUrl.
func (s *CampusService) CreateNote(ctx context.Context, req models.CreateNoteRequest, author *models.NoteAuthor, upload *Upload) (*models.Note, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Subject = strings.TrimSpace(req.Subject)
	req.UserID = strings.TrimSpace(req.UserID)

	if err := validateInput(req, "Title, subject, and user ID are required"); err != nil {
		return nil, err
	}

	var file *models.NoteFile
	var fileURL *string
	if upload != nil {
		f, err := s.uploads.Inspect(*upload)
		if err != nil {
			return nil, err
		}
		file = f
		url := "/uploads/" + f.Name
		fileURL = &url
	}

	user := DefaultNoteAuthor
	if author != nil {
		user = *author
	}

	return &models.Note{
		ID:          s.ids.Next(),
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		IsPublic:    req.IsPublic,
		FileURL:     fileURL,
		File:        file,
		UserID:      req.UserID,
		User:        user,
		CreatedAt:   s.now().UTC(),
	}, nil
}
