package model

import (
	"strings"
	"testing"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskKindImage, "/tmp/in.jpg", "/tmp/processed/in_nowm.jpg")

	if task.Status != TaskStatusPending {
		t.Errorf("new task status = %s, expected %s", task.Status, TaskStatusPending)
	}
	if !strings.HasPrefix(task.ID, "task-") {
		t.Errorf("task ID %q missing prefix", task.ID)
	}
	if task.Kind != TaskKindImage {
		t.Errorf("task kind = %s, expected %s", task.Kind, TaskKindImage)
	}
}

func TestNewTask_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task := NewTask(TaskKindVideo, "a.mp4", "b.mp4")
		if seen[task.ID] {
			t.Fatalf("duplicate task ID %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestTask_DisplayName(t *testing.T) {
	task := NewTask(TaskKindImage, "/some/dir/photo.png", "")
	if task.DisplayName() != "photo.png" {
		t.Errorf("DisplayName() = %s, expected photo.png", task.DisplayName())
	}

	task = NewTask(TaskKindImage, "", "")
	if task.DisplayName() != task.ID {
		t.Errorf("DisplayName() for empty path = %s, expected task ID", task.DisplayName())
	}
}

func TestTask_SetProgress(t *testing.T) {
	task := NewTask(TaskKindVideo, "a.mp4", "b.mp4")

	task.SetProgress(0.5)
	if task.Progress != 0.5 || task.Percent != 50 {
		t.Errorf("SetProgress(0.5): progress=%v percent=%d", task.Progress, task.Percent)
	}

	// Progress never moves backwards.
	task.SetProgress(0.3)
	if task.Progress != 0.5 {
		t.Errorf("progress moved backwards to %v", task.Progress)
	}

	// Progress is capped at 1.0.
	task.SetProgress(1.7)
	if task.Progress != 1.0 || task.Percent != 100 {
		t.Errorf("SetProgress(1.7): progress=%v percent=%d", task.Progress, task.Percent)
	}
}
