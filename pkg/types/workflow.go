package types

// Stage names one step of the workflow.
type Stage string

const (
	StageKickoff Stage = "kickoff"
	StageSpec    Stage = "spec"
	StageMedia   Stage = "media"
)

// WorkflowResult is the aggregate output of one pipeline run for one project.
type WorkflowResult struct {
	// Project is the codename the workflow ran for.
	Project string `json:"project" yaml:"project"`

	// RunID identifies the run in log output.
	RunID string `json:"run_id" yaml:"run_id"`

	Requirements string `json:"requirements" yaml:"requirements"`
	Spec         string `json:"spec" yaml:"spec"`

	// Media is the media-generation response. The backend is a placeholder,
	// so this is always a stub today.
	Media string `json:"media_stub" yaml:"media_stub"`
}
