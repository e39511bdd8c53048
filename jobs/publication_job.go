package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper applies the scheduled publication transitions once.
type Sweeper interface {
	Run(ctx context.Context) (closed, archived int64, err error)
}

// PublicationJob periodically closes expired posts and archives expired stories.
type PublicationJob struct {
	sweeper  Sweeper
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewPublicationJob(sweeper Sweeper, interval time.Duration) *PublicationJob {
	return &PublicationJob{
		sweeper:  sweeper,
		interval: interval,
		timeout:  time.Minute,
		log:      slog.Default().With("job", "publication"),
		done:     make(chan struct{}),
	}
}

// Start runs a sweep immediately and then on every tick until Stop.
func (j *PublicationJob) Start() {
	j.log.Info("publication job started", "interval", j.interval)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.sweep()
		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.done:
				j.log.Info("publication job stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for a running sweep to finish. It is safe to call twice.
func (j *PublicationJob) Stop() {
	j.stopOnce.Do(func() { close(j.done) })
	j.wg.Wait()
}

func (j *PublicationJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, _, err := j.sweeper.Run(ctx); err != nil {
		j.log.Error("publication sweep failed", "error", err)
	}
}
