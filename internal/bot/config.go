package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	Token string
	// Long polling timeout in seconds
	UpdateTimeout int
	// Link shown in replies, e.g. the web app review page
	AppURL string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig(token string) BotConfig {
	return BotConfig{
		Token:         token,
		UpdateTimeout: 60,
	}
}
