package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service reports readiness of the backing stores.
type Service struct {
	DB       Pinger
	Provider string
}

// NewService constructs a health service. A nil db means in-memory storage.
func NewService(db Pinger, provider string) *Service {
	return &Service{DB: db, Provider: provider}
}

// Status is the health payload.
type Status struct {
	OK        bool   `json:"ok"`
	Database  string `json:"database"`
	Inference string `json:"inference"`
}

// Check pings the database when one is configured.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", Inference: s.Provider}
	if st.Inference == "" {
		st.Inference = "none"
	}
	if s.DB == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	st.Database = "up"
	return st
}
