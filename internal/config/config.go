package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const selfPlay = "none"

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HumanMark string `yaml:"human-mark" env:"HUMAN_MARK" env-default:"X"`
	Redis     Redis  `yaml:"redis"`
}

type Redis struct {
	Enabled     bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	HistorySize int64  `yaml:"history-size" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// GetHumanMark returns the mark played by the human, or Empty for engine self-play.
func (that *Config) GetHumanMark() (entity.Mark, error) {
	switch strings.ToUpper(that.HumanMark) {
	case string(entity.PlayerX):
		return entity.PlayerX, nil
	case string(entity.PlayerO):
		return entity.PlayerO, nil
	case strings.ToUpper(selfPlay):
		return entity.Empty, nil
	default:
		return entity.Empty, fmt.Errorf("unknown human mark %q, expected X, O or %s", that.HumanMark, selfPlay)
	}
}
