package models

import "time"

type Room struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Building    string `json:"building"`
	Floor       int    `json:"floor"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"isAvailable"`
}

type Issue struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // "water" | "electricity" | "internet" | "other" ...
	Location    string    `json:"location"`
	Priority    string    `json:"priority"` // "low" | "medium" | "high"
	Status      string    `json:"status"`   // "pending" | "in-progress" | "resolved"
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateIssueRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Priority    string `json:"priority" validate:"oneof=low medium high"`
	UserID      string `json:"userId" validate:"required"`
}

type LostFoundItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ContactInfo string    `json:"contactInfo"`
	Type        string    `json:"type"` // "lost" | "found"
	ImageURL    *string   `json:"imageUrl"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type LostFoundListing struct {
	Lost  []LostFoundItem `json:"lost"`
	Found []LostFoundItem `json:"found"`
}

type ReportItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Location    string `json:"location"`
	ContactInfo string `json:"contactInfo" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=lost found"`
	UserID      string `json:"userId" validate:"required"`
}

type NoteAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NoteFile describes an uploaded attachment. Only its metadata survives the
// request.
type NoteFile struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Kind  string `json:"kind"` // "pdf" | "txt" | "docx"
	Pages int    `json:"pages,omitempty"`
}

type Note struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	IsPublic    bool       `json:"isPublic"`
	FileURL     *string    `json:"fileUrl"`
	File        *NoteFile  `json:"file,omitempty"`
	UserID      string     `json:"userId"`
	User        NoteAuthor `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CreateNoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject" validate:"required"`
	IsPublic    bool   `json:"isPublic"`
	UserID      string `json:"userId" validate:"required"`
}

// Dashboard

type Institute struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Established string `json:"established"`
	Location    string `json:"location"`
}

type DashboardOverview struct {
	TotalUsers     int `json:"totalUsers"`
	TotalRooms     int `json:"totalRooms"`
	AvailableRooms int `json:"availableRooms"`
	PendingIssues  int `json:"pendingIssues"`
	TodayEvents    int `json:"todayEvents"`
	TotalNotes     int `json:"totalNotes"`
	PublicNotes    int `json:"publicNotes"`
	LostItems      int `json:"lostItems"`
	FoundItems     int `json:"foundItems"`
}

type ActivityItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentActivity struct {
	Issues []ActivityItem `json:"issues"`
}

type DashboardStats struct {
	Institute      Institute         `json:"institute"`
	Overview       DashboardOverview `json:"overview"`
	RecentActivity RecentActivity    `json:"recentActivity"`
}

type RealtimeSnapshot struct {
	ActiveUsers   int       `json:"activeUsers"`
	CanteenCrowd  int       `json:"canteenCrowd"`
	CurrentEvents int       `json:"currentEvents"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
