package insight

import (
	"context"
	"time"
)

const (
	InsightMissingKeyFallback   = "AI insights unavailable without API Key."
	InsightErrorFallback        = "Could not generate insights at this time."
	BlueprintMissingKeyFallback = "// API Key is missing. Please check your environment configuration."
	BlueprintErrorFallback      = "// Error generating code. Please try again."
	BlueprintPlaceholder        = "// Click 'Generate' to create the project blueprint."
)

// Generator produces free text for a prompt.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Observer records the outcome of each generation call.
type Observer interface {
	ObserveAICall(kind, outcome string)
}

const (
	KindInsight   = "insight"
	KindBlueprint = "blueprint"

	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

type Component struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Latest is the admin insight panel: the most recent text and whether any
// generation is still in flight.
type Latest struct {
	Text        string     `json:"text"`
	Busy        bool       `json:"busy"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}
