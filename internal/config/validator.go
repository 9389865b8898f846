package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "pacing.settle_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all
// validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Pacing.SettleIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "pacing.settle_interval_ms",
			Value:   c.Pacing.SettleIntervalMs,
			Message: "must not be negative",
		})
	}
	if c.Pacing.SettleIntervalMs > 10_000 {
		errors = append(errors, ValidationError{
			Field:   "pacing.settle_interval_ms",
			Value:   c.Pacing.SettleIntervalMs,
			Message: "must be at most 10000 (10s holds make the timeline feel broken)",
		})
	}

	if c.TUI.MaxAnswerLines < 1 {
		errors = append(errors, ValidationError{
			Field:   "tui.max_answer_lines",
			Value:   c.TUI.MaxAnswerLines,
			Message: "must be at least 1",
		})
	}

	if c.Replay.IntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "replay.interval_ms",
			Value:   c.Replay.IntervalMs,
			Message: "must not be negative",
		})
	}

	if level := strings.ToLower(c.Logging.Level); !slices.Contains(ValidLogLevels(), level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
