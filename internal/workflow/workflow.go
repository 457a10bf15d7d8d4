// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow runs the three-stage pipeline: requirement gathering,
// spec drafting, and media generation. Stages run strictly in sequence and
// the first failure aborts the run.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/prompt-workstation/internal/artifacts"
	"github.com/pdiddy/prompt-workstation/internal/models"
	"github.com/pdiddy/prompt-workstation/internal/templates"
	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// ErrEmptyProject is returned when Run is called without a project name.
var ErrEmptyProject = errors.New("project name is required")

// ErrInvalidProject is returned when the project name would place artifacts
// outside the output directory.
var ErrInvalidProject = errors.New("project name must not contain path separators or \"..\"")

// StageError reports which stage aborted the run.
type StageError struct {
	Stage types.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Orchestrator wires the template registry, the three model clients, and
// the artifact store. Its fields are read-only during a run, so one
// Orchestrator may serve concurrent runs for different projects.
type Orchestrator struct {
	Templates    *templates.Registry
	Requirements models.Client
	Spec         models.Client
	Media        models.Client
	Store        *artifacts.Store
	Logger       *slog.Logger

	// Options is passed to every model call.
	Options types.Options
}

// MediaPrompt returns the fixed media-generation prompt for project.
func MediaPrompt(project string) string {
	return "Generate assets for " + project
}

// Run executes kickoff, spec generation, and media generation for project
// and returns the three generated texts. The spec text is not fed into the
// media stage.
func (o *Orchestrator) Run(ctx context.Context, project string) (*types.WorkflowResult, error) {
	if strings.TrimSpace(project) == "" {
		return nil, ErrEmptyProject
	}
	if strings.ContainsAny(project, `/\`) || strings.Contains(project, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProject, project)
	}

	runID := uuid.NewString()
	ctx = withLogger(ctx, o.logger().With("project", project, "run_id", runID))
	o.logFrom(ctx).Info("workflow started")

	requirements, err := o.Kickoff(ctx, project)
	if err != nil {
		return nil, err
	}
	spec, err := o.GenerateSpec(ctx, project, requirements)
	if err != nil {
		return nil, err
	}
	media, err := o.GenerateMedia(ctx, project, MediaPrompt(project))
	if err != nil {
		return nil, err
	}

	o.logFrom(ctx).Info("workflow complete")
	return &types.WorkflowResult{
		Project:      project,
		RunID:        runID,
		Requirements: requirements,
		Spec:         spec,
		Media:        media,
	}, nil
}

// Kickoff renders the requirement-gathering template for project, asks the
// requirements model, and saves <project>_requirements.md.
func (o *Orchestrator) Kickoff(ctx context.Context, project string) (string, error) {
	prompt, err := o.Templates.Render(templates.RequirementGathering, map[string]string{"project_name": project})
	if err != nil {
		return "", &StageError{Stage: types.StageKickoff, Err: err}
	}
	return o.runStage(ctx, types.StageKickoff, o.Requirements, types.TextPrompt(prompt), artifacts.RequirementsFile(project))
}

// GenerateSpec sends the spec-writing system prompt together with the
// requirements text to the spec model and saves <project>_spec.md.
func (o *Orchestrator) GenerateSpec(ctx context.Context, project, requirements string) (string, error) {
	system, err := o.Templates.Get(templates.DetailedSpec)
	if err != nil {
		return "", &StageError{Stage: types.StageSpec, Err: err}
	}
	prompt := types.ChatPrompt(
		types.Message{Role: types.RoleSystem, Content: system},
		types.Message{Role: types.RoleUser, Content: requirements},
	)
	return o.runStage(ctx, types.StageSpec, o.Spec, prompt, artifacts.SpecFile(project))
}

// GenerateMedia sends prompt to the media model and saves <project>_media.txt.
func (o *Orchestrator) GenerateMedia(ctx context.Context, project, prompt string) (string, error) {
	return o.runStage(ctx, types.StageMedia, o.Media, types.TextPrompt(prompt), artifacts.MediaFile(project))
}

// runStage makes one model call and persists its output.
func (o *Orchestrator) runStage(ctx context.Context, stage types.Stage, client models.Client, prompt types.Prompt, filename string) (string, error) {
	log := o.logFrom(ctx).With("stage", stage, "model", client.Name())
	log.Info("stage started")

	text, err := client.Generate(ctx, prompt, o.options())
	if err != nil {
		log.Error("stage failed", "error", err)
		return "", &StageError{Stage: stage, Err: err}
	}

	if err := o.Store.Save(ctx, filename, text); err != nil {
		log.Error("stage failed", "error", err)
		return "", &StageError{Stage: stage, Err: err}
	}

	log.Info("stage complete", "artifact", o.Store.Path(filename), "stub", models.IsStub(text))
	return text, nil
}

func (o *Orchestrator) options() types.Options {
	if o.Options == (types.Options{}) {
		return types.DefaultOptions()
	}
	return o.Options
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// logFrom returns the run-scoped logger stored in ctx by Run, falling back
// to the orchestrator's logger when a stage is called directly.
func (o *Orchestrator) logFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return o.logger()
}
