package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vivarium-sim/vivarium/project"
)

func TestParseSnapshotSelection(t *testing.T) {
	assert.Equal(t, project.Latest{}, parseSnapshotSelection(""))
	assert.Equal(t, project.Latest{}, parseSnapshotSelection("latest"))
	assert.Equal(t, project.Name{S: "0002-checkpoint"}, parseSnapshotSelection("0002-checkpoint"))
}
