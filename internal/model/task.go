package model

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TaskKind distinguishes image tasks from video tasks.
type TaskKind string

const (
	TaskKindImage TaskKind = "image"
	TaskKindVideo TaskKind = "video"
)

const taskIDPrefix = "task-"

// Task represents a single watermark removal job for one input file.
type Task struct {
	ID         string
	Kind       TaskKind
	InputPath  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewTask creates a pending task for the given input file.
func NewTask(kind TaskKind, inputPath, outputPath string) *Task {
	return &Task{
		ID:         generateTaskID(),
		Kind:       kind,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     TaskStatusPending,
	}
}

// DisplayName returns the input file name without its directory.
func (t *Task) DisplayName() string {
	if t.InputPath == "" {
		return t.ID
	}
	return filepath.Base(t.InputPath)
}

// SetProgress updates Progress and Percent, never moving backwards.
func (t *Task) SetProgress(p float64) {
	if p < t.Progress {
		return
	}
	if p > 1.0 {
		p = 1.0
	}
	t.Progress = p
	t.Percent = int(p * 100)
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(taskIDPrefix+"%d", time.Now().UnixNano())
	}
	return taskIDPrefix + id.String()
}
