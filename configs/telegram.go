package configs

type Telegram struct {
	Token              string `env:"TELEGRAM_ANNOUNCEMENT_BOT_TOKEN"`
	AnnouncementChatID int64  `env:"TELEGRAM_ANNOUNCEMENT_CHAT_ID"`
}
