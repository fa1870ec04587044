package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-portal-backend/internal/models"
	"campus-portal-backend/internal/repository"
)

func fixedNow() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

func newTestCampusService() *CampusService {
	s := NewCampusService(NewIDGenerator(fixedNow), NewUploadInspector(0))
	s.now = fixedNow
	return s
}

func TestCreateIssue_DefaultsAndEcho(t *testing.T) {
	s := newTestCampusService()

	issue, err := s.CreateIssue(context.Background(), models.CreateIssueRequest{
		Title:       "Projector broken",
		Description: "No HDMI signal",
		Category:    "electricity",
		Location:    "Room 204",
		UserID:      "1",
	})
	require.NoError(t, err)

	assert.Equal(t, fixedNow().UnixMilli(), issue.ID)
	assert.Equal(t, "medium", issue.Priority)
	assert.Equal(t, "pending", issue.Status)
	assert.Equal(t, "Room 204", issue.Location)
	assert.Equal(t, fixedNow(), issue.CreatedAt)
}

func TestCreateIssue_DistinctIDsAndNotListed(t *testing.T) {
	s := newTestCampusService()
	repo := repository.NewIssueRepo(fixedNow)
	req := models.CreateIssueRequest{Title: "Leak", Category: "water", Location: "Hostel B", UserID: "2"}

	first, err := s.CreateIssue(context.Background(), req)
	require.NoError(t, err)
	second, err := s.CreateIssue(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	issues, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, issues, 3)
	for _, existing := range issues {
		assert.NotEqual(t, first.ID, existing.ID)
		assert.NotEqual(t, second.ID, existing.ID)
	}
}

func TestCreateIssue_Validation(t *testing.T) {
	s := newTestCampusService()

	tests := []struct {
		name  string
		req   models.CreateIssueRequest
		field string
	}{
		{"missing location", models.CreateIssueRequest{Title: "Leak", Category: "water", UserID: "2"}, "location"},
		{"blank title", models.CreateIssueRequest{Title: "  ", Category: "water", Location: "Lab", UserID: "2"}, "title"},
		{"missing user", models.CreateIssueRequest{Title: "Leak", Category: "water", Location: "Lab"}, "userId"},
		{"bad priority", models.CreateIssueRequest{Title: "Leak", Category: "water", Location: "Lab", UserID: "2", Priority: "urgent"}, "priority"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issue, err := s.CreateIssue(context.Background(), tc.req)
			assert.Nil(t, issue)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestReportItem(t *testing.T) {
	s := newTestCampusService()

	item, err := s.ReportItem(context.Background(), models.ReportItemRequest{
		Title:       "Blue umbrella",
		Category:    "accessories",
		ContactInfo: "9876543210",
		Type:        "Found",
		UserID:      "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "found", item.Type)
	assert.Nil(t, item.ImageURL)
	assert.Empty(t, item.Location)

	_, err = s.ReportItem(context.Background(), models.ReportItemRequest{
		Title: "Wallet", Category: "wallet", ContactInfo: "x", Type: "stolen", UserID: "3",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")
}

func TestCreateNote(t *testing.T) {
	s := newTestCampusService()
	req := models.CreateNoteRequest{Title: "DSA Notes", Subject: "Computer Science", IsPublic: true, UserID: "1"}

	note, err := s.CreateNote(context.Background(), req, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, note.FileURL)
	assert.Nil(t, note.File)
	assert.Equal(t, DefaultNoteAuthor, note.User)
	assert.True(t, note.IsPublic)

	author := &models.NoteAuthor{Name: "Rahul Kumar", Email: "rahul@site.ac.in"}
	up := upload("trees.txt", []byte("binary trees"))
	note, err = s.CreateNote(context.Background(), req, author, &up)
	require.NoError(t, err)
	require.NotNil(t, note.FileURL)
	assert.Equal(t, "/uploads/trees.txt", *note.FileURL)
	assert.Equal(t, "txt", note.File.Kind)
	assert.Equal(t, *author, note.User)

	bad := upload("trees.exe", []byte("MZ"))
	_, err = s.CreateNote(context.Background(), req, nil, &bad)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = s.CreateNote(context.Background(), models.CreateNoteRequest{Title: "x", UserID: "1"}, nil, nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "subject")
}
