package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/filestore"
)

// ResumeCleanupWorker deletes resumes from the file store off the request path.
type ResumeCleanupWorker struct {
	files  filestore.Store
	logger *zap.Logger
	queue  chan string
	wg     sync.WaitGroup
}

// NewResumeCleanupWorker builds a worker with a bounded queue.
func NewResumeCleanupWorker(files filestore.Store, logger *zap.Logger, queueSize int) *ResumeCleanupWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &ResumeCleanupWorker{files: files, logger: logger, queue: make(chan string, queueSize)}
}

// Register subscribes the worker to events that leave a resume behind.
func (w *ResumeCleanupWorker) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventApplicationDeleted, w.handle)
	dispatcher.Subscribe(events.EventResumeOrphaned, w.handle)
}

// Enqueue schedules a deletion without blocking. A full queue drops the request.
func (w *ResumeCleanupWorker) Enqueue(publicID string) bool {
	if publicID == "" {
		return false
	}
	select {
	case w.queue <- publicID:
		return true
	default:
		w.logger.Warn("resume cleanup queue full; dropping", zap.String("public_id", publicID))
		return false
	}
}

// Start drains the queue until ctx is cancelled.
func (w *ResumeCleanupWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case publicID := <-w.queue:
				w.delete(ctx, publicID)
			}
		}
	}()
}

// Wait blocks until the worker goroutine has exited.
func (w *ResumeCleanupWorker) Wait() {
	w.wg.Wait()
}

func (w *ResumeCleanupWorker) handle(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationPayload)
	if !ok {
		return nil
	}
	w.Enqueue(payload.ResumePublicID)
	return nil
}

func (w *ResumeCleanupWorker) delete(ctx context.Context, publicID string) {
	if err := w.files.Delete(ctx, publicID); err != nil {
		w.logger.Warn("resume cleanup failed", zap.String("public_id", publicID), zap.Error(err))
		return
	}
	w.logger.Debug("resume deleted", zap.String("public_id", publicID))
}
