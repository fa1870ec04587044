package repository

import (
	"context"

	"campus-portal-backend/internal/models"
)

type RoomRepo struct{}

func NewRoomRepo() *RoomRepo {
	return &RoomRepo{}
}

func (r *RoomRepo) List(ctx context.Context) ([]models.Room, error) {
	return []models.Room{
		{ID: 1, Name: "Computer Lab - Room 201", Type: "Computer Lab", Building: "CS Building", Floor: 2, Capacity: 40, IsAvailable: true},
		{ID: 2, Name: "Study Room A", Type: "Study Room", Building: "Library", Floor: 1, Capacity: 8, IsAvailable: true},
		{ID: 3, Name: "Lecture Hall B", Type: "Lecture Hall", Building: "Main Academic Block", Floor: 3, Capacity: 120, IsAvailable: false},
		{ID: 4, Name: "Physics Lab", Type: "Laboratory", Building: "Science Block", Floor: 2, Capacity: 30, IsAvailable: true},
		{ID: 5, Name: "Tutorial Room 1", Type: "Tutorial Room", Building: "CS Building", Floor: 1, Capacity: 25, IsAvailable: false},
		{ID: 6, Name: "Electronics Lab", Type: "Laboratory", Building: "Science Block", Floor: 3, Capacity: 35, IsAvailable: true},
	}, nil
}
