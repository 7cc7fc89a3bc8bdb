package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/germanamz/garmin-mcp/pkg/app"
	"github.com/germanamz/garmin-mcp/pkg/tools/mcpclient"
	"github.com/germanamz/garmin-mcp/pkg/tools/toolbox"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	nameStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	readOnlyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	writeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	destructiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server registers",
		Long: "List every tool of every feature module. Works offline: no token store is read.\n" +
			"With --url, list the tools a running server publishes instead.",
		Args: cobra.NoArgs,
		RunE: runTools,
	}

	cmd.Flags().Int("width", 120, "maximum line width; longer descriptions are truncated")
	cmd.Flags().String("url", "", "list the tools of the MCP server at this endpoint URL")
	cmd.Flags().Duration("timeout", 30*time.Second, "timeout when listing a running server")

	return cmd
}

func runTools(cmd *cobra.Command, _ []string) error {
	width, _ := cmd.Flags().GetInt("width")
	endpoint, _ := cmd.Flags().GetString("url")

	if endpoint == "" {
		tb, err := app.BuildRegistry(app.Modules(nil))
		if err != nil {
			return err
		}
		renderTools(cmd.OutOrStdout(), tb.Tools(), width)
		return nil
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := mcpclient.Dial(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("connect %s: %w", endpoint, err)
	}
	defer func() { _ = client.Close() }()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return err
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })

	renderTools(cmd.OutOrStdout(), tools, width)
	return nil
}

func access(t toolbox.Tool) (string, lipgloss.Style) {
	switch {
	case t.Destructive:
		return "destructive", destructiveStyle
	case t.ReadOnly:
		return "read-only", readOnlyStyle
	default:
		return "write", writeStyle
	}
}

// renderTools prints an aligned NAME / ACCESS / DESCRIPTION table. Cells are
// padded before styling so escape sequences do not skew the columns.
func renderTools(w io.Writer, tools []toolbox.Tool, width int) {
	nameWidth := runewidth.StringWidth("NAME")
	for _, t := range tools {
		nameWidth = max(nameWidth, runewidth.StringWidth(t.Name))
	}
	const accessWidth = len("destructive")

	fmt.Fprintln(w, headerStyle.Render(strings.Join([]string{
		runewidth.FillRight("NAME", nameWidth),
		runewidth.FillRight("ACCESS", accessWidth),
		"DESCRIPTION",
	}, "  ")))

	descWidth := max(width-nameWidth-accessWidth-4, 20)
	for _, t := range tools {
		label, style := access(t)
		fmt.Fprintf(w, "%s  %s  %s\n",
			nameStyle.Render(runewidth.FillRight(t.Name, nameWidth)),
			style.Render(runewidth.FillRight(label, accessWidth)),
			runewidth.Truncate(t.Description, descWidth, "…"),
		)
	}

	fmt.Fprintf(w, "\n%d tools\n", len(tools))
}
