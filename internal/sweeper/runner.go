package sweeper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultInterval = 5 * time.Minute

// Sweeper — один проход реконсиляции. Возвращает число обработанных
// сущностей.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Runner запускает свиперы по таймеру до отмены контекста. Несколько
// экземпляров (например, в нескольких процессах) могут работать
// одновременно — корректность обеспечивают условные апдейты самих
// свиперов, лидер-элекшн не нужен.
type Runner struct {
	sweepers []Sweeper
	interval time.Duration
	l        *logrus.Entry
}

func NewRunner(l *logrus.Logger, sweepers ...Sweeper) *Runner {
	return &Runner{
		sweepers: sweepers,
		interval: defaultInterval,
		l:        l.WithField("component", "sweeper"),
	}
}

// SetInterval устанавливает период между проходами.
func (r *Runner) SetInterval(interval time.Duration) *Runner {
	if interval > 0 {
		r.interval = interval
	}
	return r
}

// Run блокируется до отмены контекста.
func (r *Runner) Run(ctx context.Context) {
	r.l.WithField("interval", r.interval.String()).Info("Starting")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	now := time.Now().UTC()
	for _, s := range r.sweepers {
		if _, err := s.Sweep(ctx, now); err != nil {
			r.l.WithError(err).Error("sweep error")
		}
	}
}
