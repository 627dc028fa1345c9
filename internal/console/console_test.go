// internal/console/console_test.go
package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 VND"},
		{999, "999 VND"},
		{1000, "1.000 VND"},
		{255000, "255.000 VND"},
		{1234567, "1.234.567 VND"},
		{120000.6, "120.001 VND"}, // rounded, prices have no sub-dong part
		{-35000, "-35.000 VND"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatVND(tt.amount))
	}
}

func TestPromptDefaultKeepsCurrentOnEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader("\nHardcover\n"))

	assert.Equal(t, "Paperback", r.PromptDefault("Cover", "Paperback"))
	assert.Equal(t, "Hardcover", r.PromptDefault("Cover", "Paperback"))
}

func TestPromptTrimsWhitespace(t *testing.T) {
	r := NewReader(strings.NewReader("  Abbey Road  \n"))
	assert.Equal(t, "Abbey Road", r.Prompt("Title"))
}

func TestConfirm(t *testing.T) {
	r := NewReader(strings.NewReader("y\nYES\nno\n\n"))
	assert.True(t, r.Confirm("Proceed?"))
	assert.True(t, r.Confirm("Proceed?"))
	assert.False(t, r.Confirm("Proceed?"))
	assert.False(t, r.Confirm("Proceed?"), "default is no")
}
