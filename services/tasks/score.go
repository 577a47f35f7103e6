package tasks

import (
	"encoding/json"

	"kerjalink/models"

	"github.com/hibiken/asynq"
)

const TypeScoreRecompute = "reliability:recompute"

// Enqueuer is the slice of *asynq.Client the services need. Kept as an
// interface so tests can stub the queue.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewScoreRecomputeTask builds the asynq task that recomputes a worker's
// reliability score in the background.
func NewScoreRecomputeTask(payload models.ScoreRecomputePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeScoreRecompute, b), nil
}
