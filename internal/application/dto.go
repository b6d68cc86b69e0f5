package application

import "gittrainer/internal/domain"

// StageView is the presentation-facing projection of the stage in play
type StageView struct {
	ID          int
	Title       string
	Objective   string
	Hint        string
	Solution    string
	Info        string
	TotalStages int
}

func stageViewFromDomain(stage domain.Stage, total int) StageView {
	return StageView{
		ID:          stage.ID,
		Title:       stage.Title,
		Objective:   stage.Objective,
		Hint:        stage.Hint,
		Solution:    stage.Solution,
		Info:        stage.Info,
		TotalStages: total,
	}
}
