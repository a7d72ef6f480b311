package domain

import (
	"errors"
	"fmt"
)

// ErrProjectNotFound means no *.xcodeproj directory with a project.pbxproj
// exists under any of the searched directories.
var ErrProjectNotFound = errors.New("xcode project file not found")

// Write steps reported by WriteError.
const (
	StepBackup  = "backup"
	StepProject = "project file"
	StepHook    = "hook script"
	StepReport  = "report"
)

// WriteError is a failed write during one step of a run. Earlier successful
// writes are left in place.
type WriteError struct {
	Step string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s %s: %v", e.Step, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
