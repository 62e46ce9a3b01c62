package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// errOperationFailed marks a failure whose envelope was already printed.
var errOperationFailed = errors.New("operation failed")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(7)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

// report prints env as JSON or through human, and turns a failed envelope
// into errOperationFailed so the process exits non-zero.
func (c *cli) report(cmd *cobra.Command, env any, success bool, errMsg *string, human func(io.Writer)) error {
	switch {
	case c.jsonOut:
		if err := writeJSON(cmd.OutOrStdout(), env); err != nil {
			return err
		}
	case success:
		human(cmd.OutOrStdout())
	default:
		msg := "unknown error"
		if errMsg != nil {
			msg = *errMsg
		}
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("✗ "+msg))
	}
	if !success {
		return errOperationFailed
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
