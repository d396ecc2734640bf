package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	datasetIDKey contextKey = "dataset_id"
	sourceKey    contextKey = "source"
	stepKey      contextKey = "step"
)

// WithRunID annotates context with a detection-run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the detection-run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithDatasetID annotates context with the dataset identifier.
func WithDatasetID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, datasetIDKey, id)
}

// DatasetIDFromContext extracts the dataset identifier if present.
func DatasetIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(datasetIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithSource annotates context with the intake source label.
func WithSource(ctx context.Context, source string) context.Context {
	if source == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFromContext returns the intake source label if present.
func SourceFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sourceKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the pipeline step name.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the pipeline step name if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stepKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
