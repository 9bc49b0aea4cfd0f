package service

import (
	"testing"

	"github.com/mn-works/earnbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowBeginReplacesActive(t *testing.T) {
	flows := NewFlowStore()

	first := flows.Begin(7, FlowLogin)
	first.Data["email"] = "ali@example.com"

	second := flows.Begin(7, FlowWithdraw)
	active := flows.Active(7)
	require.NotNil(t, active)
	assert.Equal(t, FlowWithdraw, active.Kind)
	assert.Same(t, second, active)
	assert.Empty(t, active.Data, "new flow starts clean")
}

func TestFlowAdvance(t *testing.T) {
	flows := NewFlowStore()
	flows.Begin(7, FlowRegister)

	require.NoError(t, flows.Advance(7, FlowRegister, func(f *Flow) {
		f.Data["username"] = "ali"
	}))
	require.NoError(t, flows.Advance(7, FlowRegister, func(f *Flow) {
		f.Data["email"] = "ali@example.com"
	}))

	active := flows.Active(7)
	assert.Equal(t, 2, active.Step)
	assert.Equal(t, "ali", active.Data["username"])
}

func TestFlowAdvanceKindMismatch(t *testing.T) {
	flows := NewFlowStore()
	flows.Begin(7, FlowLogin)

	err := flows.Advance(7, FlowWithdraw, func(f *Flow) {})
	assert.ErrorIs(t, err, domain.ErrFlowNotActive)

	err = flows.Advance(8, FlowLogin, func(f *Flow) {})
	assert.ErrorIs(t, err, domain.ErrFlowNotActive)
}

func TestFlowEnd(t *testing.T) {
	flows := NewFlowStore()
	flows.Begin(7, FlowLogin)
	flows.End(7)
	assert.Nil(t, flows.Active(7))

	// Ending twice is harmless.
	flows.End(7)
}
