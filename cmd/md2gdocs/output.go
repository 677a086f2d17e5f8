package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style
	Dim     lipgloss.Style
}

// newStyles returns colored styles when w is a terminal and plain ones
// otherwise.
func newStyles(w io.Writer) *styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return &styles{
			Title: plain, Label: plain, Value: plain,
			Success: plain, Warning: plain, Failure: plain, Dim: plain,
		}
	}
	return &styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *styles) field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s %s\n", s.Label.Render(fmt.Sprintf("%-10s", label)), s.Value.Render(fmt.Sprint(value)))
}

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes v as indented JSON or as YAML. The Docs types only carry
// JSON tags, so YAML is produced from the JSON form to keep field names
// identical.
func encode(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case formatJSON, "":
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case formatYAML:
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
