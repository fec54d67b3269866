package providers

import (
	"cft/internal/structures"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

var typeFiles = map[TypeEnum]string{
	TypeApp:  "app.log",
	TypeGet:  "get.log",
	TypePost: "post.log",
}

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type LogProvider struct {
	loggers map[TypeEnum]*zerolog.Logger
	files   []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]*zerolog.Logger)}
	for t, name := range typeFiles {
		file, err := os.OpenFile(
			filepath.Join(conf.Logger.Dir, name),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			os.FileMode(conf.Logger.Mode),
		)
		if err != nil {
			lp.Close()
			return nil, err
		}
		var out io.Writer = file
		if conf.Debug {
			out = io.MultiWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		lp.files = append(lp.files, file)
		logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
		lp.loggers[t] = &logger
	}
	return lp, nil
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Info().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Warn().Msgf(format, args...)
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Error().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
}
