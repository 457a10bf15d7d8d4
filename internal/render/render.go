// Package render formats workflow results for the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/pdiddy/prompt-workstation/internal/artifacts"
	"github.com/pdiddy/prompt-workstation/internal/models"
	"github.com/pdiddy/prompt-workstation/pkg/types"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiBlue  = "\x1b[34m"
	ansiCyan  = "\x1b[36m"
)

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Rule returns a section header followed by a dashed rule.
func Rule(title string, colorize bool) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		return ansiBlue + line + "\n" + rule + ansiReset
	}
	return line + "\n" + rule
}

func heading(title string, colorize bool) string {
	if colorize {
		return ansiBold + title + ansiReset
	}
	return title
}

// Summary renders one table row per artifact: stage, file, size, and
// whether the content is a stub response.
func Summary(res *types.WorkflowResult) string {
	rows := []struct {
		stage   types.Stage
		file    string
		content string
	}{
		{types.StageKickoff, artifacts.RequirementsFile(res.Project), res.Requirements},
		{types.StageSpec, artifacts.SpecFile(res.Project), res.Spec},
		{types.StageMedia, artifacts.MediaFile(res.Project), res.Media},
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stage", "Artifact", "Bytes", "Stub"})
	for _, r := range rows {
		stub := "no"
		if models.IsStub(r.content) {
			stub = "yes"
		}
		tw.AppendRow(table.Row{string(r.stage), r.file, strconv.Itoa(len(r.content)), stub})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// Report writes the full console report for a completed run: the three
// generated texts, the artifact table, and the output directory.
func Report(w io.Writer, res *types.WorkflowResult, outputDir string, colorize bool) {
	fmt.Fprintln(w, Rule("Workflow complete", colorize))

	fmt.Fprintln(w, heading("Requirement Draft:", colorize))
	fmt.Fprintln(w, res.Requirements)

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Detailed Spec:", colorize))
	fmt.Fprintln(w, res.Spec)

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Media Generation (stub):", colorize))
	fmt.Fprintln(w, res.Media)

	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(res))

	dir := outputDir
	if colorize {
		dir = ansiCyan + dir + ansiReset
	}
	fmt.Fprintf(w, "\nArtifacts saved in %s\n", dir)
}
