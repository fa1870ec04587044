package repository

import (
	"context"
	"time"

	"campus-portal-backend/internal/models"
)

type NoteRepo struct {
	now Clock
}

func NewNoteRepo(now Clock) *NoteRepo {
	return &NoteRepo{now: now.orDefault()}
}

func (r *NoteRepo) List(ctx context.Context) ([]models.Note, error) {
	now := r.now()
	day := 24 * time.Hour
	return []models.Note{
		{
			ID:          1,
			Title:       "Calculus Chapter 5 Notes",
			Description: "Complete notes on integration and differentiation with solved examples",
			Subject:     "Mathematics",
			IsPublic:    true,
			UserID:      "1",
			User:        models.NoteAuthor{Name: "Rahul Kumar", Email: "rahul@site.ac.in"},
			CreatedAt:   ago(now, day),
		},
		{
			ID:          2,
			Title:       "Physics Lab Manual",
			Description: "Comprehensive lab manual for quantum mechanics experiments",
			Subject:     "Physics",
			IsPublic:    true,
			UserID:      "2",
			User:        models.NoteAuthor{Name: "Priya Sharma", Email: "priya@site.ac.in"},
			CreatedAt:   ago(now, 2*day),
		},
		{
			ID:          3,
			Title:       "Data Structures Assignment Solutions",
			Description: "Complete solutions for data structures and algorithms assignments",
			Subject:     "Computer Science",
			IsPublic:    false,
			UserID:      "3",
			User:        models.NoteAuthor{Name: "Amit Patel", Email: "amit@site.ac.in"},
			CreatedAt:   ago(now, 3*day),
		},
		{
			ID:          4,
			Title:       "Digital Electronics Tutorial",
			Description: "Tutorial notes on digital logic circuits and design",
			Subject:     "Electronics",
			IsPublic:    true,
			UserID:      "4",
			User:        models.NoteAuthor{Name: "Sneha Reddy", Email: "sneha@site.ac.in"},
			CreatedAt:   ago(now, 4*day),
		},
	}, nil
}
