package workerRepo

import (
	"time"

	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// WorkerRepository defines data access methods for worker profiles.
type WorkerRepository interface {
	Create(worker *models.Worker) error
	GetByID(id string) (*models.Worker, error)
	GetAllWithProjection(projection bson.M) ([]models.Worker, error)
	Update(worker *models.Worker) error
	Delete(id string) error

	// UpdateScore refreshes the cached reliability score fields on the
	// worker document. Best-effort from the caller's point of view.
	UpdateScore(id string, score models.ReliabilityScore, computedAt time.Time) error
}
