package models

// Tally is a derived aggregate over a proposal's votes. It is computed on
// demand and never persisted.
type Tally struct {
	Counts      map[string]float64 `json:"counts"`
	TotalWeight float64            `json:"total_weight"`
}

// Percentage returns the share of the total weight held by choice, in
// percent. It is 0 when no weight has been recorded at all.
func (t Tally) Percentage(choice string) float64 {
	if t.TotalWeight == 0 {
		return 0
	}
	return t.Counts[choice] / t.TotalWeight * 100
}
