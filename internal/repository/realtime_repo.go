package repository

import (
	"context"
	"math"
	"math/rand/v2"

	"campus-portal-backend/internal/models"
)

const (
	baseActiveUsers  = 2847
	minActiveUsers   = 2500
	baseCanteenCrowd = 67
	minCanteenCrowd  = 20
	maxCanteenCrowd  = 150
	currentEvents    = 8
)

// RealtimeRepo produces lightly randomized live metrics around fixed
// baselines.
type RealtimeRepo struct {
	now       Clock
	variation func() float64
}

// NewRealtimeRepo uses a uniform variation in [-10, 10) when variation is nil.
func NewRealtimeRepo(now Clock, variation func() float64) *RealtimeRepo {
	if variation == nil {
		variation = func() float64 { return rand.Float64()*20 - 10 }
	}
	return &RealtimeRepo{now: now.orDefault(), variation: variation}
}

func (r *RealtimeRepo) Snapshot(ctx context.Context) (*models.RealtimeSnapshot, error) {
	v := r.variation()

	activeUsers := max(minActiveUsers, baseActiveUsers+int(math.Floor(v)))
	canteenCrowd := min(maxCanteenCrowd, max(minCanteenCrowd, baseCanteenCrowd+int(math.Floor(v*1.5))))

	return &models.RealtimeSnapshot{
		ActiveUsers:   activeUsers,
		CanteenCrowd:  canteenCrowd,
		CurrentEvents: currentEvents,
		LastUpdated:   r.now().UTC(),
	}, nil
}
