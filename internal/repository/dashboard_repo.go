package repository

import (
	"context"
	"time"

	"campus-portal-backend/internal/models"
)

type DashboardRepo struct {
	now Clock
}

func NewDashboardRepo(now Clock) *DashboardRepo {
	return &DashboardRepo{now: now.orDefault()}
}

func (r *DashboardRepo) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := r.now()
	return &models.DashboardStats{
		Institute: models.Institute{
			Name:        "Siddaganga Institute of Technology",
			Code:        "SIT",
			Established: "1963",
			Location:    "Tumkur, Karnataka, India",
		},
		Overview: models.DashboardOverview{
			TotalUsers:     2847,
			TotalRooms:     156,
			AvailableRooms: 89,
			PendingIssues:  12,
			TodayEvents:    8,
			TotalNotes:     342,
			PublicNotes:    189,
			LostItems:      24,
			FoundItems:     18,
		},
		RecentActivity: models.RecentActivity{
			Issues: []models.ActivityItem{
				{ID: 1, Title: "Water Leak in Room 105", CreatedAt: ago(now, 2*time.Hour)},
				{ID: 2, Title: "Power Outage in Lab Building", CreatedAt: ago(now, 4*time.Hour)},
				{ID: 3, Title: "AC Not Working in Library", CreatedAt: ago(now, 8*time.Hour)},
			},
		},
	}, nil
}
