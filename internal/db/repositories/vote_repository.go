package repositories

import (
	"proposal_governance_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type voteRepository struct {
	repository
}

type VoteRepository interface {
	Create(request *models.Vote) (*models.Vote, error)
	GetManyByProposal(proposalID string) ([]*models.Vote, error)
}

func NewVoteRepository(db *pg.DB) VoteRepository {
	return &voteRepository{
		repository: repository{
			db: db,
		},
	}
}

// Create inserts the vote. The (proposal_id, voter_id) unique index makes
// the duplicate check and the insert a single atomic unit: of two
// concurrent casts for the same pair, exactly one row lands and the other
// caller gets ErrDuplicate.
func (r *voteRepository) Create(request *models.Vote) (*models.Vote, error) {
	result, err := r.db.Model(request).
		OnConflict("(proposal_id, voter_id) DO NOTHING").
		Insert()
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, ErrDuplicate
	}

	vote := &models.Vote{}

	err = r.db.Model(vote).
		Where("id = ?", request.ID).
		Select()

	return vote, err
}

func (r *voteRepository) GetManyByProposal(proposalID string) ([]*models.Vote, error) {
	votes := make([]*models.Vote, 0)

	err := r.db.Model(&votes).
		Where("proposal_id = ?", proposalID).
		Select()

	return votes, err
}
