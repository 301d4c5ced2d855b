package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix = "STACKBOT"

	defaultMongoDatabase  = "stackbot"
	defaultRedisAddr      = "localhost:6379"
	defaultCharLimit      = 1500
	defaultPromptTimeout  = 120 * time.Second
	defaultConfirmTimeout = 60 * time.Second
	defaultVoteWindow     = 60 * time.Second
	defaultLogLevel       = "info"
)

// Config captures runtime configuration for the bot. Everything comes from
// the environment; the service has no flags.
type Config struct {
	BotToken       string
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CharLimit      int
	PromptTimeout  time.Duration
	ConfirmTimeout time.Duration
	VoteWindow     time.Duration
	LogLevel       string
}

// New returns a viper instance with defaults and env bindings configured.
func New() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on the provided viper
// instance.
func ApplyDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mongo.database", defaultMongoDatabase)
	v.SetDefault("redis.addr", defaultRedisAddr)
	v.SetDefault("redis.db", 0)
	v.SetDefault("capture.char_limit", defaultCharLimit)
	v.SetDefault("capture.prompt_timeout", defaultPromptTimeout)
	v.SetDefault("capture.confirm_timeout", defaultConfirmTimeout)
	v.SetDefault("vote.window", defaultVoteWindow)
	v.SetDefault("log.level", defaultLogLevel)
}

// Load parses runtime configuration from viper.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		BotToken:       v.GetString("bot.token"),
		MongoURI:       v.GetString("mongo.uri"),
		MongoDatabase:  v.GetString("mongo.database"),
		RedisAddr:      v.GetString("redis.addr"),
		RedisPassword:  v.GetString("redis.password"),
		RedisDB:        v.GetInt("redis.db"),
		CharLimit:      v.GetInt("capture.char_limit"),
		PromptTimeout:  v.GetDuration("capture.prompt_timeout"),
		ConfirmTimeout: v.GetDuration("capture.confirm_timeout"),
		VoteWindow:     v.GetDuration("vote.window"),
		LogLevel:       v.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return fmt.Errorf("bot.token is required")
	}
	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.CharLimit <= 0 {
		return fmt.Errorf("capture.char_limit must be positive")
	}
	if c.PromptTimeout <= 0 || c.ConfirmTimeout <= 0 {
		return fmt.Errorf("capture timeouts must be positive")
	}
	if c.VoteWindow <= 0 {
		return fmt.Errorf("vote.window must be positive")
	}
	return nil
}
