package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alpkeskin/gotoon"
	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#5C7A84")
	colorWarn   = lipgloss.Color("#F4D03F")
	colorError  = lipgloss.Color("#E74C3C")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// outputTOON writes v in TOON format.
func outputTOON(w io.Writer, v any) error {
	output, err := gotoon.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode TOON: %w", err)
	}
	_, err = fmt.Fprintln(w, output)
	return err
}

// outputErrorJSON writes err as a JSON object instead of failing the command.
func outputErrorJSON(w io.Writer, err error) error {
	return outputJSON(w, map[string]string{"error": err.Error()})
}

// outputErrorTOON writes err as a TOON object instead of failing the command.
func outputErrorTOON(w io.Writer, err error) error {
	return outputTOON(w, map[string]string{"error": err.Error()})
}

// counterTotal sums every series of the named counter in reg.
func counterTotal(reg prometheus.Gatherer, name string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return 0
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
