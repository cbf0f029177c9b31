package configs

type Schedule struct {
	Cron string `env:"RESOLUTION_SWEEP_CRON" envDefault:"0 * * * *"`
}
