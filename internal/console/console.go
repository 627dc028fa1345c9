// internal/console/console.go
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Reader wraps stdin line reading for the interactive forms.
type Reader struct {
	in *bufio.Reader
}

// NewReader creates a Reader over r (usually os.Stdin).
func NewReader(r io.Reader) *Reader {
	return &Reader{in: bufio.NewReader(r)}
}

// Prompt prints the label and returns the trimmed line the user typed.
func (r *Reader) Prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, _ := r.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// PromptDefault is Prompt, but an empty answer keeps the shown default.
func (r *Reader) PromptDefault(label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, _ := r.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

// Confirm asks a yes/no question; only "y"/"yes" counts as yes.
func (r *Reader) Confirm(label string) bool {
	answer := strings.ToLower(r.Prompt(label + " (y/N)"))
	return answer == "y" || answer == "yes"
}

// Table renders rows with aligned columns to stdout.
func Table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// FormatVND renders an amount the way the store displays prices, with
// thousand separators and a currency suffix.
func FormatVND(amount float64) string {
	digits := strconv.FormatFloat(amount, 'f', 0, 64)
	negative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := b.String() + " VND"
	if negative {
		out = "-" + out
	}
	return out
}
