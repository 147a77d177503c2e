package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/strokefix/internal/domain"
)

func TestRunCmd_Applies(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.On("Apply", mock.Anything, mock.MatchedBy(func(args domain.ApplyArgs) bool {
		return !args.Config.DryRun &&
			args.Config.Parallel == 2 &&
			assert.ObjectsAreEqual([]string{"./app/..."}, args.Config.Roots)
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--parallel", "2", "./app/..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_MultipleRoots(t *testing.T) {
	cmd, mockWorkflow := newTestRootCmd(t, newRunCmd())

	mockWorkflow.On("Apply", mock.Anything, mock.MatchedBy(func(args domain.ApplyArgs) bool {
		return assert.ObjectsAreEqual([]string{"./app", "./components", "./lib"}, args.Config.Roots)
	})).Return(nil)

	cmd.SetArgs([]string{"run", "./app", "./components", "./lib"})
	require.NoError(t, cmd.Execute())
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run [roots...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, runLongDescription, cmd.Long)
}
