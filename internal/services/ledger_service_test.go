package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"proposal_governance_system/internal/db/models"
	"proposal_governance_system/internal/db/repositories"
	mock_repositories "proposal_governance_system/internal/db/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) (LedgerService, repositories.ProposalRepository, repositories.VoteRepository) {
	t.Helper()
	proposals := repositories.NewMemoryProposalRepository()
	votes := repositories.NewMemoryVoteRepository()
	ledger := NewLedgerService(proposals, votes, nil, zap.NewNop().Sugar())
	return ledger, proposals, votes
}

func storeProposal(t *testing.T, proposals repositories.ProposalRepository, proposal *models.Proposal) *models.Proposal {
	t.Helper()
	created, err := proposals.Create(proposal)
	require.NoError(t, err)
	return created
}

func TestCastVote_RecordsVote(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no"))

	vote, err := ledger.CastVote("proposal-1", "voter-1", "yes", DefaultVoteWeight)

	require.NoError(t, err)
	assert.NotEmpty(t, vote.ID)
	assert.Equal(t, "proposal-1", vote.ProposalID)
	assert.Equal(t, "voter-1", vote.VoterID)
	assert.Equal(t, "yes", vote.Choice)
	assert.Equal(t, 1.0, vote.Weight)
	assert.False(t, vote.VotedAt.IsZero())
}

func TestCastVote_SecondVoteFromSameVoterFails(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no"))

	_, err := ledger.CastVote("proposal-1", "voter-1", "yes", DefaultVoteWeight)
	require.NoError(t, err)

	before, err := ledger.Tally("proposal-1")
	require.NoError(t, err)

	_, err = ledger.CastVote("proposal-1", "voter-1", "no", DefaultVoteWeight)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	after, err := ledger.Tally("proposal-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCastVote_ConcurrentDuplicatesAdmitExactlyOne(t *testing.T) {
	ledger, proposals, votes := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no"))

	const attempts = 16

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.CastVote("proposal-1", "voter-1", "yes", DefaultVoteWeight)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateVote)
		}
	}
	assert.Equal(t, 1, succeeded)

	recorded, err := votes.GetManyByProposal("proposal-1")
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestCastVote_UnknownProposal(t *testing.T) {
	ledger, _, _ := newTestLedger(t)

	_, err := ledger.CastVote("missing", "voter-1", "yes", DefaultVoteWeight)

	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestCastVote_TerminalStatusesRejectVotes(t *testing.T) {
	statuses := []models.ProposalStatus{
		models.ProposalStatusClosed,
		models.ProposalStatusPassed,
		models.ProposalStatusFailed,
		models.ProposalStatusCancelled,
	}

	for _, status := range statuses {
		ledger, proposals, _ := newTestLedger(t)
		proposal := ballotProposal("yes", "no")
		proposal.Status = status
		storeProposal(t, proposals, proposal)

		_, err := ledger.CastVote("proposal-1", "voter-1", "yes", DefaultVoteWeight)
		assert.ErrorIs(t, err, ErrProposalClosed, "status %s", status)
	}
}

func TestCastVote_PastDeadlineRejectsVotes(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	proposal := ballotProposal("yes", "no")
	proposal.VotingEndDate = time.Now().Add(-time.Hour)
	storeProposal(t, proposals, proposal)

	_, err := ledger.CastVote("proposal-1", "voter-1", "yes", DefaultVoteWeight)

	assert.ErrorIs(t, err, ErrProposalClosed)
}

func TestCastVote_InvalidChoice(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no"))

	_, err := ledger.CastVote("proposal-1", "voter-1", "maybe", DefaultVoteWeight)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	_, err = ledger.CastVote("proposal-1", "voter-1", "", DefaultVoteWeight)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestCastVote_ChoiceMatchIsCaseSensitive(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no"))

	_, err := ledger.CastVote("proposal-1", "voter-1", "Yes", DefaultVoteWeight)

	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestCastVote_NonPositiveWeight(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no"))

	_, err := ledger.CastVote("proposal-1", "voter-1", "yes", 0)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "weight", validationErr.Field)
}

func TestCastVote_StorageFailureIsDistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposals := mock_repositories.NewMockProposalRepository(ctrl)
	votes := mock_repositories.NewMockVoteRepository(ctrl)
	ledger := NewLedgerService(proposals, votes, nil, zap.NewNop().Sugar())

	proposals.EXPECT().GetOne("proposal-1").Return(nil, errors.New("connection refused"))

	_, err := ledger.CastVote("proposal-1", "voter-1", "yes", DefaultVoteWeight)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.NotErrorIs(t, err, ErrDuplicateVote)
	assert.NotErrorIs(t, err, ErrProposalClosed)
}

func TestTally_UnknownProposal(t *testing.T) {
	ledger, _, _ := newTestLedger(t)

	_, err := ledger.Tally("missing")

	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestTally_ReflectsRecordedVotes(t *testing.T) {
	ledger, proposals, _ := newTestLedger(t)
	storeProposal(t, proposals, ballotProposal("yes", "no", "abstain"))

	for _, voter := range []string{"voter-1", "voter-2", "voter-3"} {
		_, err := ledger.CastVote("proposal-1", voter, "yes", DefaultVoteWeight)
		require.NoError(t, err)
	}
	_, err := ledger.CastVote("proposal-1", "voter-4", "no", DefaultVoteWeight)
	require.NoError(t, err)

	tally, err := ledger.Tally("proposal-1")

	require.NoError(t, err)
	assert.Equal(t, 4.0, tally.TotalWeight)
	assert.Equal(t, 75.0, tally.Percentage("yes"))
	assert.Equal(t, 0.0, tally.Percentage("abstain"))
}
