package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/apperrors"
)

func TestOpportunity_Apply(t *testing.T) {
	now := time.Now()
	opp := &Opportunity{Status: OpportunityOpen}

	err := opp.Apply(7, now)
	require.NoError(t, err)
	require.Len(t, opp.Participants, 1)
	assert.Equal(t, ParticipantApplied, opp.Participants[0].Status)
	assert.True(t, opp.HasApplied(7))
}

func TestOpportunity_Apply_Closed(t *testing.T) {
	opp := &Opportunity{Status: OpportunityClosed}

	err := opp.Apply(7, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrOpportunityClosed)
	assert.Empty(t, opp.Participants)
}

func TestOpportunity_Apply_Duplicate(t *testing.T) {
	now := time.Now()
	opp := &Opportunity{Status: OpportunityOpen}
	require.NoError(t, opp.Apply(7, now))

	err := opp.Apply(7, now)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.Len(t, opp.Participants, 1)
}

func TestOpportunity_Apply_CapacityReached(t *testing.T) {
	now := time.Now()
	max := 2
	opp := &Opportunity{Status: OpportunityOpen, MaxParticipants: &max}
	require.NoError(t, opp.Apply(1, now))
	require.NoError(t, opp.Apply(2, now))

	err := opp.Apply(3, now)
	assert.ErrorIs(t, err, apperrors.ErrCapacityReached)
	assert.Len(t, opp.Participants, 2)
}

func TestOpportunity_Apply_ClosedBeforeDuplicate(t *testing.T) {
	// Status is checked before the duplicate check, a past applicant of a
	// closed opportunity gets the closed error.
	now := time.Now()
	opp := &Opportunity{Status: OpportunityOpen}
	require.NoError(t, opp.Apply(7, now))
	opp.Status = OpportunityCompleted

	err := opp.Apply(7, now)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityClosed)
}

func TestOpportunity_FindParticipant(t *testing.T) {
	now := time.Now()
	opp := &Opportunity{Status: OpportunityOpen}
	require.NoError(t, opp.Apply(7, now))

	p := opp.FindParticipant(7)
	require.NotNil(t, p)
	assert.Equal(t, int64(7), p.UserID)
	assert.Nil(t, opp.FindParticipant(8))
}

func TestValidParticipantStatus(t *testing.T) {
	assert.True(t, ValidParticipantStatus("applied"))
	assert.True(t, ValidParticipantStatus("selected"))
	assert.True(t, ValidParticipantStatus("rejected"))
	assert.False(t, ValidParticipantStatus("waitlisted"))
}
