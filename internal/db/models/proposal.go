package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ProposalStatus string

func (s ProposalStatus) String() string {
	return string(s)
}

func (s ProposalStatus) CapitalizedString() string {
	return cases.Title(language.English).String(s.String())
}

// IsTerminal reports whether no further status transition is allowed.
func (s ProposalStatus) IsTerminal() bool {
	return s != ProposalStatusActive
}

const (
	ProposalStatusActive    ProposalStatus = "active"
	ProposalStatusClosed    ProposalStatus = "closed"
	ProposalStatusPassed    ProposalStatus = "passed"
	ProposalStatusFailed    ProposalStatus = "failed"
	ProposalStatusCancelled ProposalStatus = "cancelled"
)

// Taxonomy carries classification tags used only for filtering. It has no
// effect on tallying or resolution.
type Taxonomy struct {
	Protocol string `json:"protocol"`
	Network  string `json:"network"`
	Category string `json:"category"`
}

type Proposal struct {
	ID            string         `json:"id" pg:",pk"`
	Title         string         `json:"title" pg:",notnull"`
	Description   string         `json:"description" pg:",notnull"`
	Choices       []string       `json:"choices" pg:",array,notnull"`
	CreatedBy     string         `json:"created_by" pg:",notnull"`
	Status        ProposalStatus `json:"status" pg:"type:ProposalStatus,notnull,default:'active'"`
	Protocol      string         `json:"protocol"`
	Network       string         `json:"network"`
	Category      string         `json:"category"`
	VotingEndDate time.Time      `json:"voting_end_date"`
	CreatedAt     time.Time      `json:"created_at" pg:"default:now()"`
	ResolvedAt    time.Time      `json:"resolved_at"`
	Votes         []Vote         `json:"votes" pg:"rel:has-many"`
}

// HasChoice reports whether label is one of the proposal's declared choices.
// Matching is case-sensitive.
func (p *Proposal) HasChoice(label string) bool {
	for _, choice := range p.Choices {
		if choice == label {
			return true
		}
	}
	return false
}

func (p *Proposal) Taxonomy() Taxonomy {
	return Taxonomy{
		Protocol: p.Protocol,
		Network:  p.Network,
		Category: p.Category,
	}
}
