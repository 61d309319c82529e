package platform

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// TargetState classifies what already exists at a project target path.
type TargetState int

const (
	TargetMissing TargetState = iota
	TargetEmptyDir
	TargetNonEmptyDir
	TargetFile
)

func (s TargetState) String() string {
	switch s {
	case TargetMissing:
		return "missing"
	case TargetEmptyDir:
		return "empty directory"
	case TargetNonEmptyDir:
		return "non-empty directory"
	case TargetFile:
		return "file"
	default:
		return "unknown"
	}
}

// InspectTarget reports the state of path without modifying anything.
func InspectTarget(path string) (TargetState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return TargetMissing, nil
		}
		return TargetMissing, err
	}
	if !info.IsDir() {
		return TargetFile, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return TargetMissing, err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return TargetEmptyDir, nil
		}
		return TargetMissing, err
	}
	return TargetNonEmptyDir, nil
}
