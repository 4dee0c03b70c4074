package services

import (
	"context"
	"database/sql"
	"time"
)

// HealthService reports whether the data store answers queries.
type HealthService struct {
	db *sql.DB
}

func NewHealthService(db *sql.DB) *HealthService {
	return &HealthService{db: db}
}

// Check runs a trivial query and returns the database's clock reading.
func (s *HealthService) Check(ctx context.Context) (time.Time, error) {
	var dbTime time.Time
	if err := s.db.QueryRowContext(ctx, `SELECT NOW()`).Scan(&dbTime); err != nil {
		return time.Time{}, err
	}
	return dbTime, nil
}
