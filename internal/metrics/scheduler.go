package metrics

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kisan-be/internal/logger"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Flusher interface {
	Flush(ctx context.Context) (int, error)
}

// NewScheduler registers f on spec. The caller starts and stops the
// returned cron.
func NewScheduler(spec string, f Flusher) (*cron.Cron, error) {
	sched := cron.New(cron.WithParser(cronParser))

	_, err := sched.AddFunc(spec, func() { runFlush(f) })
	if err != nil {
		return nil, err
	}
	return sched, nil
}

func runFlush(f Flusher) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("metrics flush panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := f.Flush(ctx)
	if err != nil {
		logger.L().Error("metrics flush failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.L().Debug("metrics flushed", zap.Int("datums", n))
	}
}
