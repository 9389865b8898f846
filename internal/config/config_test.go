package config

import (
	"strings"
	"testing"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config must validate cleanly, got: %v", ValidationErrors(errs))
	}
}

func TestConfig_SettleInterval(t *testing.T) {
	cfg := Default()
	if got := cfg.Pacing.SettleInterval().Milliseconds(); got != 900 {
		t.Errorf("Expected default settle interval 900ms, got %dms", got)
	}
}

func TestValidate_NegativeSettleInterval(t *testing.T) {
	cfg := Default()
	cfg.Pacing.SettleIntervalMs = -1

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if errs[0].Field != "pacing.settle_interval_ms" {
		t.Errorf("Expected error on pacing.settle_interval_ms, got %s", errs[0].Field)
	}
}

func TestValidate_ExcessiveSettleInterval(t *testing.T) {
	cfg := Default()
	cfg.Pacing.SettleIntervalMs = 60_000

	if errs := cfg.Validate(); len(errs) != 1 {
		t.Errorf("Expected 1 validation error for 60s settle interval, got %d", len(errs))
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 validation error, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Message, "debug") {
		t.Errorf("Error message should list valid levels, got: %s", errs[0].Message)
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "DEBUG"

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Upper-case log levels should validate, got: %v", ValidationErrors(errs))
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Expected aggregate message, got: %s", msg)
	}
	if !strings.Contains(msg, "a: bad") || !strings.Contains(msg, "b: worse") {
		t.Errorf("Expected both errors listed, got: %s", msg)
	}
}
