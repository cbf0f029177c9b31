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

// TaxonomyAll is the filter sentinel leaving a dimension unconstrained,
// interchangeable with the empty string.
const TaxonomyAll = "all"

type proposalService struct {
	proposals repositories.ProposalRepository
	logger    *zap.SugaredLogger
	clock     func() time.Time
}

type ProposalService interface {
	CreateProposal(authorID, title, description string, choices []string, taxonomy *models.Taxonomy, votingEndDate *time.Time) (*models.Proposal, error)
	FilterProposals(protocol, network, category string) ([]*models.Proposal, error)
	CloseProposal(proposalID string) error
	CancelProposal(proposalID string) error
}

func NewProposalService(proposals repositories.ProposalRepository, logger *zap.SugaredLogger) ProposalService {
	return &proposalService{
		proposals: proposals,
		logger:    logger,
		clock:     time.Now,
	}
}

func (s *proposalService) CreateProposal(
	authorID, title, description string,
	choices []string,
	taxonomy *models.Taxonomy,
	votingEndDate *time.Time,
) (*models.Proposal, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, &ValidationError{Field: "authorID", Reason: "must not be empty"}
	}
	if len(choices) < 2 {
		return nil, &ValidationError{Field: "choices", Reason: "at least two choices are required"}
	}

	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		if choice == "" {
			return nil, &ValidationError{Field: "choices", Reason: "choice labels must not be empty"}
		}
		if _, ok := seen[choice]; ok {
			return nil, &ValidationError{Field: "choices", Reason: "choice labels must be distinct"}
		}
		seen[choice] = struct{}{}
	}

	proposal := &models.Proposal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Choices:     append([]string(nil), choices...),
		CreatedBy:   authorID,
		Status:      models.ProposalStatusActive,
		CreatedAt:   s.clock(),
	}
	if taxonomy != nil {
		proposal.Protocol = taxonomy.Protocol
		proposal.Network = taxonomy.Network
		proposal.Category = taxonomy.Category
	}
	if votingEndDate != nil {
		proposal.VotingEndDate = *votingEndDate
	}

	created, err := s.proposals.Create(proposal)
	if err != nil {
		return nil, storageError("create proposal", err)
	}

	s.logger.Infow("proposal created", "proposal", created.ID, "author", authorID)
	return created, nil
}

func (s *proposalService) FilterProposals(protocol, network, category string) ([]*models.Proposal, error) {
	filter := models.Taxonomy{
		Protocol: normalizeFilter(protocol),
		Network:  normalizeFilter(network),
		Category: normalizeFilter(category),
	}

	proposals, err := s.proposals.GetMany(filter)
	if err != nil {
		return nil, storageError("get proposals", err)
	}

	return proposals, nil
}

func (s *proposalService) CloseProposal(proposalID string) error {
	return s.transition(proposalID, models.ProposalStatusClosed)
}

func (s *proposalService) CancelProposal(proposalID string) error {
	return s.transition(proposalID, models.ProposalStatusCancelled)
}

func (s *proposalService) transition(proposalID string, status models.ProposalStatus) error {
	proposal, err := s.proposals.GetOne(proposalID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProposalNotFound
	}
	if err != nil {
		return storageError("get proposal", err)
	}

	if proposal.Status != models.ProposalStatusActive {
		return ErrAlreadyClosed
	}

	proposal.Status = status
	proposal.ResolvedAt = s.clock()

	if _, err := s.proposals.Update(proposal); err != nil {
		return storageError("update proposal", err)
	}

	s.logger.Infow("proposal transitioned", "proposal", proposal.ID, "status", status)
	return nil
}

func normalizeFilter(value string) string {
	if value == TaxonomyAll {
		return ""
	}
	return value
}
