package config

// Config is the top-level configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Spotify   SpotifyConfig   `mapstructure:"spotify"`
	Lastfm    LastfmConfig    `mapstructure:"lastfm"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig database settings. Driver "memory" selects the in-memory
// store and disables the publish scan.
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// DiscordConfig delivery and identity settings.
type DiscordConfig struct {
	APIBaseURL       string `mapstructure:"api_base_url"`
	GuildID          string `mapstructure:"guild_id"`
	DefaultChannelID uint64 `mapstructure:"default_channel_id"`
	BotUsername      string `mapstructure:"bot_username"`
	BotAvatarURL     string `mapstructure:"bot_avatar_url"`
}

type SpotifyConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AuthURL      string `mapstructure:"auth_url"`
	APIBaseURL   string `mapstructure:"api_base_url"`
}

type LastfmConfig struct {
	APIKey     string `mapstructure:"api_key"`
	APIBaseURL string `mapstructure:"api_base_url"`
}

// SchedulerConfig publish scan settings. Spec is a six-field cron
// expression, one scan per minute by default.
type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}
