package store

import (
	"intelplatform/internal/logger"
)

// Repositories bundles every repository backed by the shared database handle.
type Repositories struct {
	UserRepository     UserRepository
	IncidentRepository IncidentRepository
	DatasetRepository  DatasetRepository
	TicketRepository   TicketRepository
}

// NewRepositories constructs all repositories over the given database handle.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db, logger),
		IncidentRepository: NewIncidentRepository(db, logger),
		DatasetRepository:  NewDatasetRepository(db, logger),
		TicketRepository:   NewTicketRepository(db, logger),
	}
}
