package services

import (
	"errors"
	"time"

	"proposal_governance_system/configs"
	"proposal_governance_system/internal/db/models"
	"proposal_governance_system/internal/db/repositories"

	"go.uber.org/zap"
)

type resolutionService struct {
	proposals repositories.ProposalRepository
	votes     repositories.VoteRepository
	policy    configs.Governance
	logger    *zap.SugaredLogger
	clock     func() time.Time
}

// ResolutionService evaluates the quorum and majority-threshold rules.
// Evaluate runs after each vote cast; SweepExpired is the scheduled
// deadline check. Both share the same transition logic:
//
//   - below quorum: the proposal stays active until the deadline, then
//     fails;
//   - at or above quorum: a strictly leading choice at or above the
//     required majority percentage passes the proposal, at vote time or at
//     the deadline check; otherwise the proposal fails at the deadline;
//   - a tie for the lead never passes.
//
// Passed, failed, closed and cancelled are terminal.
type ResolutionService interface {
	Resolver
	SweepExpired() ([]*models.Proposal, error)
}

func NewResolutionService(
	proposals repositories.ProposalRepository,
	votes repositories.VoteRepository,
	policy configs.Governance,
	logger *zap.SugaredLogger,
) ResolutionService {
	return &resolutionService{
		proposals: proposals,
		votes:     votes,
		policy:    policy,
		logger:    logger,
		clock:     time.Now,
	}
}

func (s *resolutionService) Evaluate(proposalID string) (models.ProposalStatus, error) {
	proposal, err := s.proposals.GetOne(proposalID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", ErrProposalNotFound
	}
	if err != nil {
		return "", storageError("get proposal", err)
	}

	if proposal.Status.IsTerminal() {
		return proposal.Status, ErrAlreadyClosed
	}

	votes, err := s.votes.GetManyByProposal(proposal.ID)
	if err != nil {
		return proposal.Status, storageError("get votes", err)
	}

	tally := ComputeTally(proposal, votes)
	deadlinePassed := !proposal.VotingEndDate.IsZero() && s.clock().After(proposal.VotingEndDate)

	if tally.TotalWeight < s.policy.MinimumQuorum {
		if deadlinePassed {
			return s.transition(proposal, models.ProposalStatusFailed)
		}
		return proposal.Status, nil
	}

	if winner, ok := Winner(proposal, tally); ok {
		if tally.Percentage(winner) >= s.policy.RequiredMajorityPercent {
			return s.transition(proposal, models.ProposalStatusPassed)
		}
	}

	if deadlinePassed {
		return s.transition(proposal, models.ProposalStatusFailed)
	}

	return proposal.Status, nil
}

// SweepExpired evaluates every active proposal whose voting deadline has
// passed and returns the ones that resolved. Evaluation failures are
// logged and do not stop the sweep.
func (s *resolutionService) SweepExpired() ([]*models.Proposal, error) {
	proposals, err := s.proposals.GetManyByStatus(models.ProposalStatusActive)
	if err != nil {
		return nil, storageError("get proposals", err)
	}

	var resolved []*models.Proposal

	for _, proposal := range proposals {
		if proposal.VotingEndDate.IsZero() || s.clock().Before(proposal.VotingEndDate) {
			continue
		}

		status, err := s.Evaluate(proposal.ID)
		if err != nil {
			s.logger.Errorw("failed to evaluate proposal", "proposal", proposal.ID, "error", err)
			continue
		}

		if status.IsTerminal() {
			proposal.Status = status
			resolved = append(resolved, proposal)
		}
	}

	return resolved, nil
}

func (s *resolutionService) transition(proposal *models.Proposal, status models.ProposalStatus) (models.ProposalStatus, error) {
	proposal.Status = status
	proposal.ResolvedAt = s.clock()

	if _, err := s.proposals.Update(proposal); err != nil {
		return models.ProposalStatusActive, storageError("update proposal", err)
	}

	s.logger.Infow("proposal resolved", "proposal", proposal.ID, "status", status)
	return status, nil
}
