package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every enum variant must have a display descriptor; a new variant without
// one would silently render with a fallback label.

func TestTaskTypeDisplayComplete(t *testing.T) {
	for _, v := range AllTaskTypes {
		d := v.Display()
		assert.NotEmpty(t, d.Label, "task type %q", v)
		assert.NotEmpty(t, d.Emoji, "task type %q", v)
	}
}

func TestTxStatusDisplayComplete(t *testing.T) {
	for _, v := range AllTxStatuses {
		d, ok := txStatusDisplay[v]
		assert.True(t, ok, "tx status %q has no descriptor", v)
		assert.NotEmpty(t, d.Label)
	}
}

func TestTxTypeDisplayComplete(t *testing.T) {
	for _, v := range AllTxTypes {
		d, ok := txTypeDisplay[v]
		assert.True(t, ok, "tx type %q has no descriptor", v)
		assert.NotEmpty(t, d.Label)
	}
}

func TestWithdrawalStatusDisplayComplete(t *testing.T) {
	for _, v := range AllWithdrawalStatuses {
		d, ok := withdrawalStatusDisplay[v]
		assert.True(t, ok, "withdrawal status %q has no descriptor", v)
		assert.NotEmpty(t, d.Label)
	}
}

func TestWithdrawalMethodDisplayComplete(t *testing.T) {
	for _, v := range AllWithdrawalMethods {
		d, ok := withdrawalMethodDisplay[v]
		assert.True(t, ok, "withdrawal method %q has no descriptor", v)
		assert.NotEmpty(t, d.Label)
	}
}

func TestPackageStatusDisplayComplete(t *testing.T) {
	for _, v := range AllPackageStatuses {
		d, ok := packageStatusDisplay[v]
		assert.True(t, ok, "package status %q has no descriptor", v)
		assert.NotEmpty(t, d.Label)
	}
}

func TestUnknownVariantsFallBack(t *testing.T) {
	assert.Equal(t, "Other", TaskType("bogus").Display().Label)
	assert.Equal(t, "bogus", TxStatus("bogus").Display().Label)
}
