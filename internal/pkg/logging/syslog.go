package logging

import (
	"fmt"
	"log/syslog"
	"strings"

	"github.com/sirupsen/logrus"
)

// SyslogConfig controls forwarding of log entries to the local syslog daemon.
type SyslogConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Tag      string `yaml:"tag"`      // program name, e.g. "OnBoxConfigCopy"
	Facility string `yaml:"facility"` // local0 .. local7, user, daemon
	Prefix   string `yaml:"prefix"`   // mnemonic, rendered as %<prefix>-<severity>-LOG:
}

// SyslogWriter is the subset of *syslog.Writer used by the hook.
type SyslogWriter interface {
	Crit(m string) error
	Err(m string) error
	Warning(m string) error
	Info(m string) error
	Debug(m string) error
}

type syslogDialer func(priority syslog.Priority, tag string) (SyslogWriter, error)

func dialSyslog(priority syslog.Priority, tag string) (SyslogWriter, error) {
	writer, err := syslog.New(priority, tag)
	if err != nil {
		return nil, err
	}
	return writer, nil
}

var facilities = map[string]syslog.Priority{
	"kern":   syslog.LOG_KERN,
	"user":   syslog.LOG_USER,
	"daemon": syslog.LOG_DAEMON,
	"local0": syslog.LOG_LOCAL0,
	"local1": syslog.LOG_LOCAL1,
	"local2": syslog.LOG_LOCAL2,
	"local3": syslog.LOG_LOCAL3,
	"local4": syslog.LOG_LOCAL4,
	"local5": syslog.LOG_LOCAL5,
	"local6": syslog.LOG_LOCAL6,
	"local7": syslog.LOG_LOCAL7,
}

// ParseFacility maps a facility name to its syslog priority bits.
func ParseFacility(name string) (syslog.Priority, error) {
	facility, ok := facilities[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown syslog facility %q", name)
	}
	return facility, nil
}

// SyslogHook sends entries to syslog using the "%Mnemonic-Severity-LOG: message" convention.
type SyslogHook struct {
	writer SyslogWriter
	prefix string
}

// NewSyslogHook connects to the local syslog daemon.
func NewSyslogHook(config SyslogConfig, dial syslogDialer) (*SyslogHook, error) {
	facility, err := ParseFacility(config.Facility)
	if err != nil {
		return nil, err
	}

	writer, err := dial(facility|syslog.LOG_INFO, config.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to syslog: %w", err)
	}

	return &SyslogHook{writer: writer, prefix: config.Prefix}, nil
}

// Levels implements logrus.Hook.
func (h *SyslogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *SyslogHook) Fire(entry *logrus.Entry) error {
	line := fmt.Sprintf("%%%s-%d-LOG: %s%s", h.prefix, severity(entry.Level), entry.Message, formatFields(entry.Data))

	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return h.writer.Crit(line)
	case logrus.ErrorLevel:
		return h.writer.Err(line)
	case logrus.WarnLevel:
		return h.writer.Warning(line)
	case logrus.InfoLevel:
		return h.writer.Info(line)
	default:
		return h.writer.Debug(line)
	}
}

// severity returns the numeric syslog severity for a logrus level.
func severity(level logrus.Level) int {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return 2
	case logrus.ErrorLevel:
		return 3
	case logrus.WarnLevel:
		return 4
	case logrus.InfoLevel:
		return 6
	default:
		return 7
	}
}
