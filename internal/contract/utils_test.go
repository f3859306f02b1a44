package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/techdebtgpt/maintsight/schema"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "Severely Degraded", GetPlainLabel(schema.SeverelyDegraded))
	assert.Equal(t, "Degraded", GetPlainLabel(schema.Degraded))
	assert.Equal(t, "Stable", GetPlainLabel(schema.Stable))
	assert.Equal(t, "Improved", GetPlainLabel(schema.Improved))
	assert.Equal(t, "Stable", GetPlainLabel(schema.RiskCategory("unknown")))
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path untouched", "main.go", 20, "main.go"},
		{"exact width untouched", "abcdefghij", 10, "abcdefghij"},
		{"long path keeps tail", "internal/outwriter/output_predictions.go", 20, "...ut_predictions.go"},
		{"width too small to truncate", "internal/server.go", 3, "internal/server.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestShouldIgnore(t *testing.T) {
	excludes := []string{"vendor/", ".min.js", "*.pb.go", "generated"}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"prefix match", "vendor/lib/dep.go", true},
		{"prefix must anchor at start", "src/vendor.go", false},
		{"suffix match", "static/app.min.js", true},
		{"glob on basename", "api/service.pb.go", true},
		{"substring match", "src/generated/types.go", true},
		{"clean source file", "src/parser.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldIgnore(tt.path, excludes))
		})
	}

	assert.False(t, ShouldIgnore("src/parser.go", nil))
	assert.False(t, ShouldIgnore("src/parser.go", []string{"", "  "}))
}
