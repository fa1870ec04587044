package repository

import (
	"context"
	"time"

	"campus-portal-backend/internal/models"
)

type LostFoundRepo struct {
	now Clock
}

func NewLostFoundRepo(now Clock) *LostFoundRepo {
	return &LostFoundRepo{now: now.orDefault()}
}

func (r *LostFoundRepo) List(ctx context.Context) (*models.LostFoundListing, error) {
	now := r.now()
	return &models.LostFoundListing{
		Lost: []models.LostFoundItem{
			{
				ID:          1,
				Title:       "Black Wallet",
				Description: "Lost black leather wallet near library entrance",
				Category:    "IDs",
				Location:    "Library Building",
				ContactInfo: "student@site.ac.in",
				Type:        "lost",
				UserID:      "1",
				CreatedAt:   now.UTC(),
			},
			{
				ID:          2,
				Title:       "Silver Watch",
				Description: "Found silver digital watch in computer lab",
				Category:    "Electronics",
				Location:    "CS Building - Lab 3",
				ContactInfo: "found@site.ac.in",
				Type:        "lost",
				UserID:      "2",
				CreatedAt:   ago(now, 24*time.Hour),
			},
		},
		Found: []models.LostFoundItem{
			{
				ID:          3,
				Title:       "Blue Backpack",
				Description: "Found blue backpack near parking area",
				Category:    "Bags",
				Location:    "Main Parking",
				ContactInfo: "security@site.ac.in",
				Type:        "found",
				UserID:      "3",
				CreatedAt:   ago(now, 12*time.Hour),
			},
			{
				ID:          4,
				Title:       "Student ID Card",
				Description: "Found SITE student ID card in canteen",
				Category:    "IDs",
				Location:    "Canteen Building",
				ContactInfo: "lostfound@site.ac.in",
				Type:        "found",
				UserID:      "4",
				CreatedAt:   ago(now, 6*time.Hour),
			},
		},
	}, nil
}
