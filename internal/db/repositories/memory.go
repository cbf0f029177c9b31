package repositories

import (
	"sync"

	"proposal_governance_system/internal/db/models"
)

// In-memory implementations of the repository interfaces. They back the
// service tests and any embedding that runs without a database; the same
// uniqueness guarantees as the SQL schema are provided under the mutex.

type memoryProposalRepository struct {
	mu        sync.RWMutex
	proposals map[string]*models.Proposal
	order     []string
}

func NewMemoryProposalRepository() ProposalRepository {
	return &memoryProposalRepository{
		proposals: make(map[string]*models.Proposal),
	}
}

func (r *memoryProposalRepository) Create(request *models.Proposal) (*models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.proposals[request.ID]; ok {
		return nil, ErrDuplicate
	}

	stored := *request
	r.proposals[request.ID] = &stored
	r.order = append(r.order, request.ID)

	result := stored
	return &result, nil
}

func (r *memoryProposalRepository) Update(request *models.Proposal) (*models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.proposals[request.ID]; !ok {
		return nil, ErrNotFound
	}

	stored := *request
	r.proposals[request.ID] = &stored

	result := stored
	return &result, nil
}

func (r *memoryProposalRepository) GetOne(proposalID string) (*models.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proposal, ok := r.proposals[proposalID]
	if !ok {
		return nil, ErrNotFound
	}

	result := *proposal
	return &result, nil
}

func (r *memoryProposalRepository) GetMany(filter models.Taxonomy) ([]*models.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proposals := make([]*models.Proposal, 0)

	// Most recent first, matching the SQL ordering.
	for i := len(r.order) - 1; i >= 0; i-- {
		proposal := r.proposals[r.order[i]]

		if filter.Protocol != "" && proposal.Protocol != filter.Protocol {
			continue
		}
		if filter.Network != "" && proposal.Network != filter.Network {
			continue
		}
		if filter.Category != "" && proposal.Category != filter.Category {
			continue
		}

		result := *proposal
		proposals = append(proposals, &result)
	}

	return proposals, nil
}

func (r *memoryProposalRepository) GetManyByStatus(status ...models.ProposalStatus) ([]*models.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proposals := make([]*models.Proposal, 0)

	for i := len(r.order) - 1; i >= 0; i-- {
		proposal := r.proposals[r.order[i]]

		for _, s := range status {
			if proposal.Status == s {
				result := *proposal
				proposals = append(proposals, &result)
				break
			}
		}
	}

	return proposals, nil
}

type memoryVoteRepository struct {
	mu    sync.RWMutex
	votes map[string]map[string]*models.Vote
}

func NewMemoryVoteRepository() VoteRepository {
	return &memoryVoteRepository{
		votes: make(map[string]map[string]*models.Vote),
	}
}

func (r *memoryVoteRepository) Create(request *models.Vote) (*models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byVoter, ok := r.votes[request.ProposalID]
	if !ok {
		byVoter = make(map[string]*models.Vote)
		r.votes[request.ProposalID] = byVoter
	}

	if _, ok := byVoter[request.VoterID]; ok {
		return nil, ErrDuplicate
	}

	stored := *request
	byVoter[request.VoterID] = &stored

	result := stored
	return &result, nil
}

func (r *memoryVoteRepository) GetManyByProposal(proposalID string) ([]*models.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	votes := make([]*models.Vote, 0)

	for _, vote := range r.votes[proposalID] {
		result := *vote
		votes = append(votes, &result)
	}

	return votes, nil
}
