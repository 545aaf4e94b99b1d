package webcheck_test

import (
	"testing"

	"github.com/fwojciec/webcheck"
	"github.com/stretchr/testify/assert"
)

func TestSignificantEdits(t *testing.T) {
	t.Parallel()

	edits := []webcheck.Edit{
		{Kind: webcheck.EditUnchanged, Text: "The "},
		{Kind: webcheck.EditDeleted, Text: "cat"},
		{Kind: webcheck.EditInserted, Text: "dog"},
		{Kind: webcheck.EditUnchanged, Text: " sat"},
	}

	got := webcheck.SignificantEdits(edits)

	assert.Equal(t, []webcheck.Edit{
		{Kind: webcheck.EditDeleted, Text: "cat"},
		{Kind: webcheck.EditInserted, Text: "dog"},
	}, got)
	assert.Empty(t, webcheck.SignificantEdits(nil))
}

func TestDiffError(t *testing.T) {
	t.Parallel()

	err := &webcheck.DiffError{Cause: "index out of range"}

	assert.Equal(t, "diff engine failure: index out of range", err.Error())
}
