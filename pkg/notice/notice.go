package notice

import (
	"log/slog"
	"sync"
)

// Notifier surfaces user-visible messages. It is the toast rail of the
// storefront: every synchronization outcome the user should see goes
// through it, and nothing else does.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Funcs adapts three callbacks to a Notifier. Nil callbacks are ignored.
type Funcs struct {
	OnSuccess func(string)
	OnInfo    func(string)
	OnError   func(string)
}

func (f Funcs) Success(msg string) {
	if f.OnSuccess != nil {
		f.OnSuccess(msg)
	}
}

func (f Funcs) Info(msg string) {
	if f.OnInfo != nil {
		f.OnInfo(msg)
	}
}

func (f Funcs) Error(msg string) {
	if f.OnError != nil {
		f.OnError(msg)
	}
}

// Log routes notices to a logger. Useful as a fallback sink.
func Log(log *slog.Logger) Notifier {
	return Funcs{
		OnSuccess: func(msg string) { log.Info("notice", slog.String("kind", "success"), slog.String("msg", msg)) },
		OnInfo:    func(msg string) { log.Info("notice", slog.String("kind", "info"), slog.String("msg", msg)) },
		OnError:   func(msg string) { log.Warn("notice", slog.String("kind", "error"), slog.String("msg", msg)) },
	}
}

// Recorder collects notices for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	infos     []string
	errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *Recorder) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}

func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}
