package cmd

import (
	"fmt"
	"strings"

	"gittrainer/internal/stages"
)

// StagesCmd lists the stage catalog
type StagesCmd struct {
	Full bool `help:"Show objectives and info text as well" short:"f"`
}

// Run executes the stages command
func (s *StagesCmd) Run(cli *CLI) error {
	catalog := stages.NewCatalog()
	fmt.Printf("Stage catalog (%d stages)\n\n", catalog.Count())
	for _, stage := range catalog.All() {
		fmt.Printf("%2d. %s\n", stage.ID, stage.Title)
		if s.Full {
			fmt.Printf("    Objective: %s\n", stage.Objective)
			for _, line := range strings.Split(stage.Info, "\n") {
				fmt.Printf("    %s\n", line)
			}
			fmt.Println()
		}
	}
	return nil
}
