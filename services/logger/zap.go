package logsvc

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/user"
)

type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

// NewZapLogger builds a json (production) or console (development) logger.
func NewZapLogger(format string, debug bool) (*ZapLogger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: zl.Sugar()}, nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(zl *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: zl.Sugar()}
}

func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}

func (l *ZapLogger) With(args ...interface{}) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.With(fields(args)...)}
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugw(msg, fields(args)...) }
func (l *ZapLogger) Info(msg string, args ...interface{})  { l.sugar.Infow(msg, fields(args)...) }
func (l *ZapLogger) Warn(msg string, args ...interface{})  { l.sugar.Warnw(msg, fields(args)...) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorw(msg, fields(args)...) }
func (l *ZapLogger) Fatal(msg string, args ...interface{}) { l.sugar.Fatalw(msg, fields(args)...) }

// fields replaces a bare user.Identity with a "user" key and its id.
func fields(args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	for _, arg := range args {
		if id, ok := arg.(user.Identity); ok {
			out = append(out, "user", id.ID)
			continue
		}
		out = append(out, arg)
	}
	return out
}

// New returns the logger configured by conf: rollbar when a token is set, zap otherwise.
func New(conf *core.Config) (core.Logger, error) {
	if conf.Log.RollbarToken != "" {
		std := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds)
		rl := NewRollbarLogger(std, conf)
		rl.Enable(!conf.TestMode)
		return rl, nil
	}
	return NewZapLogger(conf.Log.Format, conf.Debug)
}

// Nop returns a logger that discards everything.
func Nop() core.Logger {
	return NewZapLoggerFrom(zap.NewNop())
}
