package logrelay

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/metrics"
)

// Publisher receives every relayed line. Publish must not block and must not
// log through the hooked logger.
type Publisher interface {
	Publish(line string)
}

// Hook is a logrus hook that renders each entry as one text line, stores it
// in a Buffer and hands it to a Publisher.
type Hook struct {
	buffer    *Buffer
	publisher Publisher
	formatter logrus.Formatter
	levels    []logrus.Level
}

// NewHook creates a Hook relaying entries at level or more severe.
// publisher may be nil.
func NewHook(buffer *Buffer, publisher Publisher, level logrus.Level) *Hook {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}

	return &Hook{
		buffer:    buffer,
		publisher: publisher,
		formatter: &logrus.TextFormatter{
			DisableColors:    true,
			DisableQuote:     true,
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			QuoteEmptyFields: true,
		},
		levels: levels,
	}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	raw, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	line := strings.TrimRight(string(raw), "\n")

	h.buffer.Push(line)

	if h.publisher != nil {
		h.publisher.Publish(line)
	}

	metrics.LogLinesRelayed.Inc()

	return nil
}
