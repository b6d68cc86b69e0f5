package cmd

import (
	"fmt"

	"gittrainer/internal/doctor"
)

// DoctorCmd checks whether the local environment can run the trainer
type DoctorCmd struct{}

// Run executes the doctor command
func (d *DoctorCmd) Run(cli *CLI) error {
	results := doctor.Run()
	fmt.Println(doctor.FormatReport(results))
	if !doctor.Healthy(results) {
		return fmt.Errorf("some environment checks failed")
	}
	return nil
}
