package services

import "proposal_governance_system/internal/db/models"

// ComputeTally sums vote weights per declared choice. Choices with no
// votes are present in the result with a count of 0. The computation is
// deterministic and order-independent; votes referencing an undeclared
// choice are not counted (the ledger rejects them at cast time).
func ComputeTally(proposal *models.Proposal, votes []*models.Vote) models.Tally {
	counts := make(map[string]float64, len(proposal.Choices))
	for _, choice := range proposal.Choices {
		counts[choice] = 0
	}

	var totalWeight float64

	for _, vote := range votes {
		if _, ok := counts[vote.Choice]; !ok {
			continue
		}
		counts[vote.Choice] += vote.Weight
		totalWeight += vote.Weight
	}

	return models.Tally{
		Counts:      counts,
		TotalWeight: totalWeight,
	}
}

// Winner returns the choice with the strictly greatest count. When two or
// more choices tie for the lead there is no winner and ok is false; a tied
// tally can therefore never pass a proposal.
func Winner(proposal *models.Proposal, tally models.Tally) (winner string, ok bool) {
	var best float64
	tied := false

	for _, choice := range proposal.Choices {
		count := tally.Counts[choice]

		switch {
		case winner == "" || count > best:
			winner = choice
			best = count
			tied = false
		case count == best:
			tied = true
		}
	}

	if winner == "" || tied {
		return "", false
	}
	return winner, true
}
