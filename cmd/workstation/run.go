// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/prompt-workstation/internal/artifacts"
	"github.com/pdiddy/prompt-workstation/internal/models"
	"github.com/pdiddy/prompt-workstation/internal/render"
	"github.com/pdiddy/prompt-workstation/internal/templates"
	"github.com/pdiddy/prompt-workstation/internal/vcs"
	"github.com/pdiddy/prompt-workstation/internal/workflow"
	"github.com/pdiddy/prompt-workstation/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <project>",
	Short: "Run the full AI-driven workflow for a project",
	Long: `Run gathers requirements for the project, turns them into a detailed
spec, and generates media assets. Each stage writes one artifact:

  <project>_requirements.md
  <project>_spec.md
  <project>_media.txt

Existing artifacts with the same names are overwritten.`,
	Example: "  workstation run darzabi",
	Args:    cobra.ExactArgs(1),
	RunE:    runWorkflow,
}

func init() {
	runCmd.Flags().Bool("json", false, "print the result as JSON instead of the console report")

	rootCmd.AddCommand(runCmd)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	project := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	o, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := !jsonOutput && render.ShouldColorize(out)
	if !jsonOutput {
		fmt.Fprintln(out, render.Rule("Running workflow for "+project, colorize))
	}

	res, err := o.Run(cmd.Context(), project)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, res)
	}
	render.Report(out, res, cfg.OutputDir, colorize)
	return nil
}

// newOrchestrator builds the registry, clients, and store from c.
func newOrchestrator(c types.Config, l *slog.Logger) (*workflow.Orchestrator, error) {
	registry, err := templates.Load(c.TemplatesDir)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: c.Timeout}

	var committer artifacts.Committer
	if c.GitCommit {
		git := vcs.NewGit()
		if git.Available() {
			committer = git
		} else {
			l.Warn("git commit enabled but git is not on PATH, artifacts will not be committed")
		}
	}

	return &workflow.Orchestrator{
		Templates:    registry,
		Requirements: models.NewClaude(c.Claude, client, l),
		Spec:         models.NewOpenAI(c.OpenAI, client, l),
		Media:        models.NewMedia(c.ULM, l),
		Store:        artifacts.New(c.OutputDir, committer, l),
		Logger:       l,
		Options:      c.Generation,
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
