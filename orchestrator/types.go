package orchestrator

import (
	"github.com/speechinformaticslab/vfclust/measures"
	"github.com/speechinformaticslab/vfclust/task"
)

// Result is the scored form of one response file.
type Result struct {
	Source   string // input path
	FileID   string
	Task     task.Task
	Measures *measures.Map
	Labels   []measures.Labeled
}

// Outcome is one batch entry. Exactly one of Result and Err is set.
type Outcome struct {
	Source string
	Result *Result
	Output string // written file, if any
	Err    error
}
