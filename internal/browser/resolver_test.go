package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeResolver(probe func(candidate Candidate) (bool, error)) *Resolver {
	return NewProbeResolver(func(_ context.Context, candidate Candidate, _ string) (bool, error) {
		return probe(candidate)
	})
}

func TestResolve_FirstMatchWins(t *testing.T) {
	var tried []string
	r := newFakeResolver(func(c Candidate) (bool, error) {
		tried = append(tried, c.Description)
		return c.Description == "second", nil
	})

	candidates := []Candidate{
		{Selector: "#a", Description: "first"},
		{Selector: "#b", Description: "second"},
		{Selector: "#c", Description: "third"},
	}

	sel, err := r.Resolve(context.Background(), "widget", candidates)
	require.NoError(t, err)
	assert.Contains(t, sel, "data-dwitest-resolved")
	// The chain stops at the first success
	assert.Equal(t, []string{"first", "second"}, tried)
}

func TestResolve_AllFailReturnsTypedError(t *testing.T) {
	r := newFakeResolver(func(Candidate) (bool, error) {
		return false, nil
	})

	candidates := []Candidate{
		{Selector: "#a", Description: "by id"},
		{Selector: ".b", Description: "by class"},
	}

	_, err := r.Resolve(context.Background(), "dropdown", candidates)
	require.Error(t, err)

	var notResolved *ElementNotResolvedError
	require.ErrorAs(t, err, &notResolved)
	assert.Equal(t, "dropdown", notResolved.Target)
	assert.Len(t, notResolved.Candidates, 2)
	assert.Contains(t, err.Error(), "by id")
	assert.Contains(t, err.Error(), "by class")
}

func TestResolve_ProbeErrorFallsThrough(t *testing.T) {
	r := newFakeResolver(func(c Candidate) (bool, error) {
		if c.Description == "broken" {
			return false, errors.New("evaluate failed")
		}
		return true, nil
	})

	candidates := []Candidate{
		{Selector: "#x", Description: "broken"},
		{Selector: "#y", Description: "working"},
	}

	_, err := r.Resolve(context.Background(), "field", candidates)
	assert.NoError(t, err)
}

func TestResolveWithin_RetriesUntilSuccess(t *testing.T) {
	attempts := 0
	r := newFakeResolver(func(Candidate) (bool, error) {
		attempts++
		return attempts >= 3, nil
	})

	candidates := []Candidate{{Selector: "#late", Description: "renders late"}}

	sel, err := r.ResolveWithin(context.Background(), "late widget", candidates, 5*time.Second)
	require.NoError(t, err)
	assert.NotEmpty(t, sel)
	assert.GreaterOrEqual(t, attempts, 3)
}

func TestResolveWithin_TimeoutReturnsLastError(t *testing.T) {
	r := newFakeResolver(func(Candidate) (bool, error) {
		return false, nil
	})

	candidates := []Candidate{{Selector: "#never", Description: "never renders"}}

	_, err := r.ResolveWithin(context.Background(), "ghost", candidates, 300*time.Millisecond)
	var notResolved *ElementNotResolvedError
	assert.ErrorAs(t, err, &notResolved)
}

func TestFlowError_NamesStep(t *testing.T) {
	cause := errors.New("button missing")
	err := NewFlowError("peer verification", "request", cause)

	assert.Contains(t, err.Error(), "peer verification")
	assert.Contains(t, err.Error(), `"request"`)
	assert.ErrorIs(t, err, cause)
}
