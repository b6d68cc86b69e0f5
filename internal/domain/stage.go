package domain

// StageWorkspace is what a stage setup procedure may do to a freshly
// initialized repository: write files and run git. Implemented by the
// sandbox.
type StageWorkspace interface {
	WriteFile(rel, content string) error
	Git(args ...string) error
}

// SetupFunc populates a fresh repository with a stage's starting state.
// It must be deterministic for a given stage id.
type SetupFunc func(ws StageWorkspace) error

// Stage is one immutable trainer exercise
type Stage struct {
	ID        int
	Title     string
	Objective string
	Hint      string
	Solution  string
	Info      string // long-form explanation shown on request
	Setup     SetupFunc
	Validator StageValidator
}
