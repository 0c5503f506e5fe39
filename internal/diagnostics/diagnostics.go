// Package diagnostics wires the logrus logger used for the generator's
// stderr/stdout diagnostic stream (spec §7: progress to stdout, warnings to
// stdout, fatal errors to stderr, each carrying an optional source line).
//
// Grounded on other_examples/bbredesen-vk-gen__command_type.go, the one
// same-domain (Vulkan registry codegen) file in the retrieval pack that
// reaches for a real logging library (github.com/sirupsen/logrus) rather
// than bare fmt.Fprintln, using WithField to carry structured context.
package diagnostics

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// Log is the package-wide logger. Progress and warnings go to it; the
// driver decides separately whether a given run's diagnostics are fatal.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Counter tallies diagnostics seen during a run, split out so callers (the
// driver, or an embedder) can decide how to treat non-fatal shape errors
// and soft schema warnings without re-parsing log output.
type Counter struct {
	Warnings int
	Shapes   int
	Errors   int
}

// Observe records a diagnostic's kind in the counter and emits it to Log at
// the appropriate level. Fatal diagnostics are still only counted here;
// propagating them to abort the pipeline is the caller's job.
func (c *Counter) Observe(d *specerror.Diagnostic) {
	entry := Log.WithField("kind", string(d.Kind))
	if d.Line > 0 {
		entry = entry.WithField("line", d.Line)
	}
	if d.Path != "" {
		entry = entry.WithField("path", d.Path)
	}

	switch d.Kind {
	case specerror.KindWarning:
		c.Warnings++
		entry.Warn(d.Message)
	case specerror.KindShape:
		c.Shapes++
		entry.Warnf("never encountered a function like %s", d.Message)
	default:
		c.Errors++
		entry.Error(d.Message)
	}
}

// Progress logs a non-diagnostic progress line (stdout, info level), e.g.
// "loaded 4213 commands" or "wrote vulkan.hpp".
func Progress(format string, args ...any) {
	Log.Infof(format, args...)
}
