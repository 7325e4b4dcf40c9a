package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the whole configuration and collects every problem
// rather than stopping at the first.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, validateAnalysis(&c.Analysis)...)
	errs = append(errs, validateRender(&c.Render)...)
	errs = append(errs, validateLogging(&c.Logging)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAnalysis(a *AnalysisConfig) ValidationErrors {
	var errs ValidationErrors
	positive := []struct {
		field string
		value int
	}{
		{"analysis.block_size", a.BlockSize},
		{"analysis.max_shift", a.MaxShift},
		{"analysis.window", a.Window},
		{"analysis.top_k", a.TopK},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, ValidationError{
				Field:   p.field,
				Message: fmt.Sprintf("must be positive, got %d", p.value),
			})
		}
	}
	return errs
}

func validateRender(r *RenderConfig) ValidationErrors {
	var errs ValidationErrors
	if r.GroupWidth <= 0 {
		errs = append(errs, ValidationError{
			Field:   "render.group_width",
			Message: fmt.Sprintf("must be positive, got %d", r.GroupWidth),
		})
	}
	return errs
}

func validateLogging(l *LoggingConfig) ValidationErrors {
	var errs ValidationErrors

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", l.Level),
		})
	}

	switch l.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", l.Format),
		})
	}

	switch l.Output {
	case "stderr", "stdout":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.output",
			Message: fmt.Sprintf("unknown output %q", l.Output),
		})
	}

	return errs
}
