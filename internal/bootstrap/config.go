package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"cubego/internal/domain/board"
	errs "cubego/internal/errors"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	BoardSize        int           `mapstructure:"BOARD_SIZE"`
	MaxBoardSize     int           `mapstructure:"MAX_BOARD_SIZE"`
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	CommandQueueSize int           `mapstructure:"COMMAND_QUEUE_SIZE"`
	EventBufferSize  int           `mapstructure:"EVENT_BUFFER_SIZE"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("BOARD_SIZE", board.DefaultSize)
	v.SetDefault("MAX_BOARD_SIZE", 64)
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("COMMAND_QUEUE_SIZE", 16)
	v.SetDefault("EVENT_BUFFER_SIZE", 4)
	v.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
}

// Setup reads cfgPath (a .env file) on top of the defaults. Environment variables win over
// both. A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(cfgPath)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.BoardSize < 1 {
		return fmt.Errorf("BOARD_SIZE: %w: %d", errs.ErrInvalidSize, c.BoardSize)
	}
	if c.MaxBoardSize < c.BoardSize {
		return fmt.Errorf("MAX_BOARD_SIZE %d is below BOARD_SIZE %d", c.MaxBoardSize, c.BoardSize)
	}
	if c.CommandQueueSize < 1 {
		return fmt.Errorf("COMMAND_QUEUE_SIZE must be positive, got %d", c.CommandQueueSize)
	}
	if c.EventBufferSize < 1 {
		return fmt.Errorf("EVENT_BUFFER_SIZE must be positive, got %d", c.EventBufferSize)
	}
	return nil
}
