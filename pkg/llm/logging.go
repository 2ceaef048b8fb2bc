package llm

import (
	"context"
	"iter"
	"time"

	"lesson-notes-be/internal/pkg/logger"
)

// LoggingProvider records one log line per completed or failed stream.
type LoggingProvider struct {
	inner  LLMProvider
	logger logger.ILogger
}

// WithLogging wraps a provider with structured stream logging.
func WithLogging(p LLMProvider, log logger.ILogger) LLMProvider {
	return &LoggingProvider{inner: p, logger: log}
}

func (l *LoggingProvider) Stream(ctx context.Context, req Request, options ...Option) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		start := time.Now()
		chunks, chars := 0, 0
		stopped := false

		for chunk, err := range l.inner.Stream(ctx, req, options...) {
			if err != nil {
				l.logger.Error("LLM", "Completion stream failed", map[string]interface{}{
					"model":      l.inner.ModelID(),
					"chunks":     chunks,
					"latency_ms": time.Since(start).Milliseconds(),
					"error":      err.Error(),
				})
				yield("", err)
				return
			}
			chunks++
			chars += len(chunk)
			if !yield(chunk, nil) {
				stopped = true
				break
			}
		}

		l.logger.Info("LLM", "Completion stream finished", map[string]interface{}{
			"model":         l.inner.ModelID(),
			"chunks":        chunks,
			"chars":         chars,
			"system_chars":  len(req.System),
			"messages":      len(req.Messages),
			"stopped_early": stopped,
			"latency_ms":    time.Since(start).Milliseconds(),
		})
	}
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
