package configs

type Logger struct {
	AppName string `env:"LOGGER_APP_NAME" envDefault:"proposal-governance"`
	URL     string `env:"LOKI_URL"`
}
