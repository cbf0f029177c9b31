package services

import (
	"errors"
	"strings"
	"time"

	"proposal_governance_system/internal/db/models"
	"proposal_governance_system/internal/db/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultVoteWeight = 1.0

type ledgerService struct {
	proposals repositories.ProposalRepository
	votes     repositories.VoteRepository
	resolver  Resolver
	logger    *zap.SugaredLogger
	clock     func() time.Time
}

// LedgerService accepts vote-cast requests and guarantees at most one vote
// per (proposal, voter) pair. Votes are immutable once recorded.
type LedgerService interface {
	CastVote(proposalID, voterID, choice string, weight float64) (*models.Vote, error)
	Tally(proposalID string) (models.Tally, error)
}

// Resolver is consulted after every successful cast. The resolution
// service implements it; pass nil to record votes without auto-resolution.
type Resolver interface {
	Evaluate(proposalID string) (models.ProposalStatus, error)
}

func NewLedgerService(
	proposals repositories.ProposalRepository,
	votes repositories.VoteRepository,
	resolver Resolver,
	logger *zap.SugaredLogger,
) LedgerService {
	return &ledgerService{
		proposals: proposals,
		votes:     votes,
		resolver:  resolver,
		logger:    logger,
		clock:     time.Now,
	}
}

func (s *ledgerService) CastVote(proposalID, voterID, choice string, weight float64) (*models.Vote, error) {
	proposal, err := s.proposals.GetOne(proposalID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProposalNotFound
	}
	if err != nil {
		return nil, storageError("get proposal", err)
	}

	if proposal.Status != models.ProposalStatusActive {
		return nil, ErrProposalClosed
	}
	if !proposal.VotingEndDate.IsZero() && s.clock().After(proposal.VotingEndDate) {
		return nil, ErrProposalClosed
	}

	if strings.TrimSpace(voterID) == "" {
		return nil, &ValidationError{Field: "voterID", Reason: "must not be empty"}
	}
	if choice == "" || !proposal.HasChoice(choice) {
		return nil, ErrInvalidChoice
	}
	if weight <= 0 {
		return nil, &ValidationError{Field: "weight", Reason: "must be greater than zero"}
	}

	vote := &models.Vote{
		ID:         uuid.NewString(),
		ProposalID: proposal.ID,
		VoterID:    voterID,
		Choice:     choice,
		Weight:     weight,
		VotedAt:    s.clock(),
	}

	created, err := s.votes.Create(vote)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, ErrDuplicateVote
	}
	if err != nil {
		return nil, storageError("create vote", err)
	}

	s.logger.Infow("vote recorded",
		"proposal", proposal.ID,
		"voter", voterID,
		"choice", choice,
		"weight", weight,
	)

	if s.resolver != nil {
		if _, err := s.resolver.Evaluate(proposal.ID); err != nil {
			// The vote is already recorded; the caller gets it together
			// with the evaluation failure.
			return created, err
		}
	}

	return created, nil
}

func (s *ledgerService) Tally(proposalID string) (models.Tally, error) {
	proposal, err := s.proposals.GetOne(proposalID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Tally{}, ErrProposalNotFound
	}
	if err != nil {
		return models.Tally{}, storageError("get proposal", err)
	}

	votes, err := s.votes.GetManyByProposal(proposal.ID)
	if err != nil {
		return models.Tally{}, storageError("get votes", err)
	}

	return ComputeTally(proposal, votes), nil
}
