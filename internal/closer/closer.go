package closer

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/stackrow/warehouse/internal/logger"
)

// Logger is the subset of the process logger the closer needs.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type namedCloser struct {
	name string
	fn   func(ctx context.Context) error
}

type registry struct {
	mu      sync.Mutex
	closers []namedCloser
	log     Logger
}

var global = &registry{log: logger.L()}

func SetLogger(l Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.log = l
}

// AddNamed registers a shutdown hook. Hooks run in LIFO order on CloseAll.
func AddNamed(name string, fn func(ctx context.Context) error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.closers = append(global.closers, namedCloser{name: name, fn: fn})
}

// CloseAll runs every registered hook in reverse registration order,
// collecting errors instead of stopping at the first one.
func CloseAll(ctx context.Context) error {
	global.mu.Lock()
	closers := global.closers
	global.closers = nil
	log := global.log
	global.mu.Unlock()

	var errs error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(ctx); err != nil {
			log.Error(ctx, "closer failed",
				logger.String("name", c.name),
				logger.ErrorF(err),
			)
			errs = multierr.Append(errs, err)
			continue
		}
		log.Info(ctx, "closed", logger.String("name", c.name))
	}

	return errs
}
