package logger

import (
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string
	File       string // empty: stdout only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ConfigFromViper. LOG_LEVEL / LOG_FILE / LOG_MAX_* keys.
func ConfigFromViper() Config {
	return Config{
		Level:      viper.GetString("LOG_LEVEL"),
		File:       viper.GetString("LOG_FILE"),
		MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
		MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
		MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
		Compress:   viper.GetBool("LOG_COMPRESS"),
	}
}

func New() (*zap.Logger, error) {
	return NewFromConfig(ConfigFromViper())
}

// NewFromConfig. json production encoder on stdout, teed into a rotating file when cfg.File is set.
func NewFromConfig(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
