package progress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/progress"
)

func TestTrackerReportsPercentage(t *testing.T) {
	var got []progress.Update
	r := progress.ReporterFunc(func(u progress.Update) { got = append(got, u) })
	tr := progress.NewTracker(r, 4, "indexing archives")
	tr.Advance(1)
	tr.Advance(1)
	tr.Advance(2)
	require.Len(t, got, 3)
	assert.Equal(t, 25, got[0].Percentage)
	assert.Equal(t, 50, got[1].Percentage)
	assert.Equal(t, 100, got[2].Percentage)
	assert.Equal(t, "indexing archives", got[2].Message)
}

func TestTrackerClampsAt100(t *testing.T) {
	var got []progress.Update
	r := progress.ReporterFunc(func(u progress.Update) { got = append(got, u) })
	tr := progress.NewTracker(r, 2, "")
	tr.Advance(5)
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].Percentage)
}

func TestNilReporterDiscardsSilently(t *testing.T) {
	tr := progress.NewTracker(nil, 1, "")
	assert.NotPanics(t, func() { tr.Advance(1) })
}

func TestWithReporterRoundTrip(t *testing.T) {
	var got progress.Update
	r := progress.ReporterFunc(func(u progress.Update) { got = u })
	ctx := progress.WithReporter(context.Background(), r)
	progress.FromContext(ctx).Report(progress.Update{Percentage: 42})
	assert.Equal(t, 42, got.Percentage)
}

func TestFromContextWithoutReporterReturnsNone(t *testing.T) {
	assert.NotPanics(t, func() {
		progress.FromContext(context.Background()).Report(progress.Update{})
	})
}
