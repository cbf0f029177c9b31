package models

import "time"

// Vote is immutable once recorded. At most one vote exists per
// (ProposalID, VoterID) pair; the repositories enforce the constraint.
type Vote struct {
	ID         string    `json:"id" pg:",pk"`
	ProposalID string    `json:"proposal_id" pg:",notnull,unique:proposal_voter"`
	VoterID    string    `json:"voter_id" pg:",notnull,unique:proposal_voter"`
	Choice     string    `json:"choice" pg:",notnull"`
	Weight     float64   `json:"weight" pg:",notnull"`
	VotedAt    time.Time `json:"voted_at" pg:"default:now()"`
}
