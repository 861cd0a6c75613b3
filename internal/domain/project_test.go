package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidProjectStatus(t *testing.T) {
	for _, s := range []string{"planned", "in_progress", "completed", "on_hold", "cancelled"} {
		assert.True(t, ValidProjectStatus(s), s)
	}
	assert.False(t, ValidProjectStatus(""))
	assert.False(t, ValidProjectStatus("done"))
	assert.False(t, ValidProjectStatus("PLANNED"))
}

func TestProjectIsActive(t *testing.T) {
	active := []string{ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusOnHold}
	for _, s := range active {
		p := Project{Status: s}
		assert.True(t, p.IsActive(), s)
	}

	for _, s := range []string{ProjectStatusCompleted, ProjectStatusCancelled} {
		p := Project{Status: s}
		assert.False(t, p.IsActive(), s)
	}
}
