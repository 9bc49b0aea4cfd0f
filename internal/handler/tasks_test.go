package handler

import (
	"testing"

	"github.com/mn-works/earnbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStartRows(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Watch intro"},
		{ID: "t2", Title: "Visit site"},
	}

	rows := taskStartRows(tasks, false)
	require.Len(t, rows, 2)
	assert.Equal(t, "task_start_t1", rows[0][0].CallbackData)
	assert.Equal(t, "task_start_t2", rows[1][0].CallbackData)
}

func TestTaskStartRowsHiddenWhileRunning(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Title: "Watch intro"}}

	assert.Nil(t, taskStartRows(tasks, true),
		"no Start buttons while a task is in progress")
}
