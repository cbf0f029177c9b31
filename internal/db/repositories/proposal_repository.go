package repositories

import (
	"errors"

	"proposal_governance_system/internal/db/models"

	"github.com/go-pg/pg/v10"
)

type proposalRepository struct {
	repository
}

type ProposalRepository interface {
	Create(request *models.Proposal) (*models.Proposal, error)
	Update(request *models.Proposal) (*models.Proposal, error)
	GetOne(proposalID string) (*models.Proposal, error)
	GetMany(filter models.Taxonomy) ([]*models.Proposal, error)
	GetManyByStatus(status ...models.ProposalStatus) ([]*models.Proposal, error)
}

func NewProposalRepository(db *pg.DB) ProposalRepository {
	return &proposalRepository{
		repository: repository{
			db: db,
		},
	}
}

func (r *proposalRepository) Create(request *models.Proposal) (*models.Proposal, error) {
	_, err := r.db.Model(request).Insert()
	if err != nil {
		return nil, err
	}

	proposal := &models.Proposal{}

	err = r.db.Model(proposal).
		Relation("Votes").
		Where("id = ?", request.ID).
		Select()

	return proposal, err
}

func (r *proposalRepository) Update(request *models.Proposal) (*models.Proposal, error) {
	_, err := r.db.Model(request).WherePK().Update()
	if err != nil {
		return nil, err
	}

	proposal := &models.Proposal{}

	err = r.db.Model(proposal).
		Relation("Votes").
		Where("id = ?", request.ID).
		Select()

	return proposal, err
}

func (r *proposalRepository) GetOne(proposalID string) (*models.Proposal, error) {
	proposal := &models.Proposal{}

	err := r.db.Model(proposal).
		Relation("Votes").
		Where("id = ?", proposalID).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrNotFound
	}

	return proposal, err
}

func (r *proposalRepository) GetMany(filter models.Taxonomy) ([]*models.Proposal, error) {
	proposals := make([]*models.Proposal, 0)

	query := r.db.Model(&proposals)

	if filter.Protocol != "" {
		query = query.Where("protocol = ?", filter.Protocol)
	}
	if filter.Network != "" {
		query = query.Where("network = ?", filter.Network)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	err := query.
		OrderExpr("created_at DESC").
		Select()

	return proposals, err
}

func (r *proposalRepository) GetManyByStatus(status ...models.ProposalStatus) ([]*models.Proposal, error) {
	proposals := make([]*models.Proposal, 0)

	err := r.db.Model(&proposals).
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			for _, s := range status {
				q = q.WhereOr("status = ?", s)
			}
			return q, nil
		}).
		OrderExpr("created_at DESC").
		Select()

	return proposals, err
}
