package repository

import (
	"context"
	"time"

	"campus-portal-backend/internal/models"
)

type IssueRepo struct {
	now Clock
}

func NewIssueRepo(now Clock) *IssueRepo {
	return &IssueRepo{now: now.orDefault()}
}

func (r *IssueRepo) List(ctx context.Context) ([]models.Issue, error) {
	now := r.now()
	return []models.Issue{
		{
			ID:          1,
			Title:       "Water Leak in Room 105",
			Description: "Water leaking from ceiling in Room 105 of Hostel Block A",
			Category:    "water",
			Location:    "Hostel Block A - Room 105",
			Priority:    "high",
			Status:      "pending",
			UserID:      "1",
			CreatedAt:   ago(now, 2*time.Hour),
		},
		{
			ID:          2,
			Title:       "Power Outage in Lab Building",
			Description: "Frequent power fluctuations in Computer Lab Building",
			Category:    "electricity",
			Location:    "CS Building - Lab 3",
			Priority:    "medium",
			Status:      "in-progress",
			UserID:      "2",
			CreatedAt:   ago(now, 4*time.Hour),
		},
		{
			ID:          3,
			Title:       "AC Not Working in Library",
			Description: "Air conditioning not working in library reading hall",
			Category:    "other",
			Location:    "Library - Reading Hall",
			Priority:    "medium",
			Status:      "pending",
			UserID:      "3",
			CreatedAt:   ago(now, 8*time.Hour),
		},
	}, nil
}
