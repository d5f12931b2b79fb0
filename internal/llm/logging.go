package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider writes one structured log entry per request.
type LoggingProvider struct {
	inner    Provider
	provider string
	log      *zap.Logger
}

// WithLogging wraps p. name is the provider name recorded in each entry.
func WithLogging(p Provider, name string, log *zap.Logger) *LoggingProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: name, log: log.Named("llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	model := l.inner.ModelID()
	fields := []zap.Field{
		zap.String("provider", l.provider),
		zap.String("purpose", PurposeFrom(ctx)),
		zap.Duration("latency", time.Since(start)),
		zap.Bool("success", err == nil),
	}
	if req.Schema != nil {
		fields = append(fields, zap.String("schema", req.Schema.Name))
	}
	if resp != nil {
		model = resp.Model
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if c := LookupCost(model); c != nil {
			fields = append(fields, zap.Float64("cost_usd", c.Cost(resp.Usage)))
		}
	}
	fields = append(fields, zap.String("model", model))

	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Info("llm request", fields...)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
