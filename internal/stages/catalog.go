package stages

import (
	"fmt"

	"gittrainer/internal/domain"
)

// Catalog is the ordered, immutable curriculum of playable stages.
// Stage ids are 1-based and contiguous.
type Catalog struct {
	stages []domain.Stage
}

// NewCatalog builds the built-in twenty-stage curriculum
func NewCatalog() *Catalog {
	stages := make([]domain.Stage, 0, 20)
	stages = append(stages, basicStages()...)
	stages = append(stages, advancedStages()...)
	return &Catalog{stages: stages}
}

// Get returns the stage with the given id
func (c *Catalog) Get(id int) (domain.Stage, error) {
	if id < 1 || id > len(c.stages) {
		return domain.Stage{}, fmt.Errorf("%w: %d", domain.ErrUnknownStage, id)
	}
	return c.stages[id-1], nil
}

// Count returns the number of stages in the curriculum
func (c *Catalog) Count() int {
	return len(c.stages)
}

// All returns the stages in play order. The slice is a copy.
func (c *Catalog) All() []domain.Stage {
	out := make([]domain.Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// commitFile writes a file, stages it, and commits it in one step.
// Most stage setups are sequences of these.
func commitFile(ws domain.StageWorkspace, path, content, message string) error {
	if err := ws.WriteFile(path, content); err != nil {
		return err
	}
	if err := ws.Git("add", path); err != nil {
		return err
	}
	return ws.Git("commit", "-m", message)
}
