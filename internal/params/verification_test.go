package params

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dwitest/internal/browser"
)

// scriptedOps records executed steps and fails at a configured one.
type scriptedOps struct {
	failAt string
	ran    []string
}

func (s *scriptedOps) step(name string) error {
	s.ran = append(s.ran, name)
	if s.failAt == name {
		return errors.New("simulated UI failure")
	}
	return nil
}

func (s *scriptedOps) RequestVerification(context.Context) error {
	return s.step(StepRequestVerification)
}

func (s *scriptedOps) SelectReviewer(_ context.Context, _ string) error {
	return s.step(StepSelectReviewer)
}

func (s *scriptedOps) Confirm(context.Context) error {
	return s.step(StepConfirm)
}

func (s *scriptedOps) ChooseSameSession(context.Context) error {
	return s.step(StepSameSession)
}

func (s *scriptedOps) Approve(_ context.Context, _ string) error {
	return s.step(StepApprove)
}

var allSteps = []string{
	StepRequestVerification,
	StepSelectReviewer,
	StepConfirm,
	StepSameSession,
	StepApprove,
}

func TestPeerVerification_AllStepsInOrder(t *testing.T) {
	ops := &scriptedOps{}

	err := runPeerVerification(context.Background(), ops, PeerVerifyRequest{
		ReviewerUsername: "reviewer",
		ReviewerPassword: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, allSteps, ops.ran)
}

func TestPeerVerification_FailureAbortsLaterSteps(t *testing.T) {
	for i, failStep := range allSteps {
		t.Run(failStep, func(t *testing.T) {
			ops := &scriptedOps{failAt: failStep}

			err := runPeerVerification(context.Background(), ops, PeerVerifyRequest{})
			require.Error(t, err)

			// The error names exactly the failed step.
			var flowErr *browser.FlowError
			require.ErrorAs(t, err, &flowErr)
			assert.Equal(t, failStep, flowErr.Step)
			assert.Equal(t, "peer verification", flowErr.Flow)

			// Steps after the failed one never ran.
			assert.Equal(t, allSteps[:i+1], ops.ran)
		})
	}
}
