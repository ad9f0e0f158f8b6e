package app

import (
	"io"

	"github.com/uber/bp-engine/src/bpengine/internal/logfilewriter"
	"go.uber.org/fx"
)

const _priorityTrackerOutput = "bpengine-priority-tracker"

type priorityTrackerOutput struct {
	fx.Out

	Writer io.Writer `name:"priorityTrackerOutput"`
}

// newPriorityTrackerOutput gives the anomaly reports their own file, next to the daemon log.
func newPriorityTrackerOutput(p logfilewriter.Params) (priorityTrackerOutput, error) {
	w, err := logfilewriter.SetupOutputWriter(p, _priorityTrackerOutput)
	if err != nil {
		return priorityTrackerOutput{}, err
	}
	return priorityTrackerOutput{Writer: w}, nil
}
