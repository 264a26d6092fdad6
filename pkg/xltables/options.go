// Package xltables exposes the named tables of a spreadsheet workbook:
// listing them, reading their row labels and resolving row values.
package xltables

import (
	"time"

	"github.com/ukaji3/xltables-go/pkg/xltables/parser"
	"github.com/ukaji3/xltables-go/pkg/xltables/source"
)

// DefaultSource is the capital budgeting workbook served when no source is configured.
const DefaultSource = "https://raw.githubusercontent.com/yaswanth-iitkgp/IRIS_Public_Assignment/main/Data/capbudg.xls"

// DefaultTimeout bounds a single workbook fetch.
const DefaultTimeout = 30 * time.Second

// Logger receives pipeline diagnostics.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Options configures where the workbook comes from and how tables are found.
type Options struct {
	// Source is a URL or file path of the workbook.
	Source string
	// Timeout bounds a single fetch of Source.
	Timeout time.Duration
	// Fetcher, if set, is used instead of Source.
	Fetcher source.Fetcher
	// Locator controls the header search order.
	Locator parser.LocatorParams
	// Logger is optional.
	Logger Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Source:  DefaultSource,
		Timeout: DefaultTimeout,
		Locator: parser.DefaultLocatorParams(),
	}
}

func (o Options) fetcher() (source.Fetcher, error) {
	if o.Fetcher != nil {
		return o.Fetcher, nil
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return source.New(o.Source, timeout)
}

func (o Options) locator() parser.LocatorParams {
	if len(o.Locator.PriorityColumns) == 0 {
		return parser.DefaultLocatorParams()
	}
	return o.Locator
}

func (o Options) debugf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Debug(format, args...)
	}
}

func (o Options) warnf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Warn(format, args...)
	}
}
