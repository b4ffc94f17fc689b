package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ordishs/gocore"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const callerWidth = 32

// same colours as the gocore logger
var levelColors = map[string]int{
	"debug": colorBlue,
	"info":  colorGreen,
	"warn":  colorYellow,
	"error": colorRed,
	"fatal": colorRed,
	"panic": colorRed,
}

var zerologLevels = map[string]zerolog.Level{
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

var levelNumbers = map[zerolog.Level]int{
	zerolog.DebugLevel: levelDebug,
	zerolog.InfoLevel:  levelInfo,
	zerolog.WarnLevel:  levelWarn,
	zerolog.ErrorLevel: levelError,
	zerolog.FatalLevel: levelFatal,
}

// ZLoggerWrapper is the zerolog backed Logger. With PRETTY_LOGS it writes aligned,
// coloured console lines, otherwise one JSON object per line with a service field.
type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	w       io.Writer
}

func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "dashbook"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	var base zerolog.Logger

	if gocore.Config().GetBool("PRETTY_LOGS", true) {
		base = zerolog.New(consoleWriter(opts.writer, service)).With().
			CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).
			Timestamp().
			Logger()
	} else {
		base = zerolog.New(opts.writer).With().
			CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).
			Timestamp().
			Str("service", service).
			Logger()
	}

	z := &ZLoggerWrapper{Logger: base, service: service, w: opts.writer}
	z.SetLogLevel(opts.logLevel)

	return z
}

func consoleWriter(writer io.Writer, service string) zerolog.ConsoleWriter {
	noColor := true
	if f, ok := writer.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	return zerolog.ConsoleWriter{
		Out:        writer,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
		FormatTimestamp: func(i interface{}) string {
			s, _ := i.(string)
			ts, _ := time.Parse(time.RFC3339, s)

			return ts.Format("15:04:05")
		},
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)

			color, ok := levelColors[name]
			if !ok {
				color = colorWhite
			}

			return "| " + colorize(strings.ToUpper(fmt.Sprintf("%-6s", name)), color, noColor) + "|"
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("| %-6s| %s", service, i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
		FormatCaller: func(i interface{}) string {
			c, _ := i.(string)
			if c == "" {
				return c
			}

			return colorize(fmt.Sprintf("%-*s", callerWidth, shortenCaller(c, callerWidth)), colorBold, noColor)
		},
	}
}

// shortenCaller makes the caller relative to the working directory and keeps as many
// trailing path elements as fit in width.
func shortenCaller(caller string, width int) string {
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, caller); err == nil {
			caller = rel
		}
	}

	parts := strings.Split(caller, "/")
	short := parts[len(parts)-1]

	for i := len(parts) - 2; i >= 0 && len(short)+len(parts[i])+1 <= width; i-- {
		short = parts[i] + "/" + short
	}

	return short
}

func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	// children inherit writer and level unless overridden
	inherited := []Option{
		WithWriter(z.w),
		WithLoggerType("zerolog"),
		WithLevel(z.levelName()),
	}

	return NewZeroLogger(service, append(inherited, options...)...)
}

func (z *ZLoggerWrapper) Duplicate(options ...Option) Logger {
	return z.New(z.service, options...)
}

// SetLogLevel accepts DEBUG, INFO, WARN, ERROR and FATAL in any case, anything else is INFO.
func (z *ZLoggerWrapper) SetLogLevel(logLevel string) {
	level, ok := zerologLevels[strings.ToUpper(logLevel)]
	if !ok {
		level = zerolog.InfoLevel
	}

	z.Logger = z.Logger.Level(level)
}

func (z *ZLoggerWrapper) LogLevel() int {
	if n, ok := levelNumbers[z.Logger.GetLevel()]; ok {
		return n
	}

	return levelInfo
}

func (z *ZLoggerWrapper) levelName() string {
	return strings.ToUpper(z.Logger.GetLevel().String())
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}
