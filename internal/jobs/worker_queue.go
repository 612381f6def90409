package jobs

import (
	"github.com/vytor/bardspeak/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	renderPool *worker.Pool
	warmer     worker.CertificateWarmer
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(renderPool *worker.Pool, warmer worker.CertificateWarmer) JobQueue {
	return &WorkerQueue{
		renderPool: renderPool,
		warmer:     warmer,
	}
}

func (q *WorkerQueue) EnqueueCertificateRender(userID int64) error {
	return q.renderPool.Submit(&worker.RenderCertificateJob{
		Warmer: q.warmer,
		UserID: userID,
	})
}
