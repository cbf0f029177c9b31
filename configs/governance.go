package configs

type Governance struct {
	MinimumQuorum           float64 `env:"MINIMUM_QUORUM" envDefault:"10"`
	RequiredMajorityPercent float64 `env:"REQUIRED_MAJORITY_PERCENT" envDefault:"60"`
}
