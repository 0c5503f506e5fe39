// Package driver wires the whole pipeline spec §4.6 describes end to end:
// read the input file, ingest it into a registry.Registry, cross-reference
// validate it, emit C++ text, write the result, and invoke the external
// source formatter.
//
// Grounded on the teacher's cmd/make's command dispatch (one small function
// per stage, a single entrypoint that sequences them and translates any
// failure into a process exit) generalized from the teacher's
// build-orchestration stages (gen/lint/install) to this pipeline's
// read/ingest/validate/emit/write/format stages.
package driver

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/diagnostics"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/emit"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/genconfig"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/ingest"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/xref"
)

// Run executes the full pipeline against the registry document at
// inputPath and writes the generated header to outputPath. It returns the
// diagnostic counter accumulated along the way so a caller can inspect
// shape-error/warning counts, and a non-nil error for anything spec §7
// classifies as fatal.
func Run(inputPath, outputPath string) (*diagnostics.Counter, error) {
	counter := &diagnostics.Counter{}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return counter, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	diagnostics.Progress("ingesting %s", inputPath)
	result, err := ingest.Load(data)
	if err != nil {
		return counter, err
	}
	for _, d := range result.Diagnostics {
		counter.Observe(d)
	}

	diagnostics.Progress("validating cross-references")
	if diags := xref.Validate(result.Registry); len(diags) > 0 {
		for _, d := range diags {
			counter.Observe(d)
		}
		if diags.Fatal() {
			return counter, diags
		}
	}

	diagnostics.Progress("emitting")
	e := emit.New(result.Registry, counter)
	e.EmitAll()

	out := genconfig.Namespace
	header := emit.Prelude(out, genconfig.VersionMacro) + e.String() + emit.PreludeClose(out)
	if license := result.Registry.LicenseHeader; license != "" {
		header = license + "\n" + header
	}

	diagnostics.Progress("writing %s", outputPath)
	if err := os.WriteFile(outputPath, []byte(header), 0o644); err != nil {
		return counter, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	runFormatter(outputPath)

	if counter.Shapes > 0 {
		diagnostics.Progress("%d command(s) skipped with a shape error", counter.Shapes)
	}
	return counter, nil
}

// runFormatter invokes the external source formatter on outputPath.
// Its absence is non-fatal, per spec §6's "External collaborators": a
// warning is emitted and the pipeline otherwise succeeds.
func runFormatter(outputPath string) {
	cmd := exec.Command(genconfig.FormatterBinary, "-i", outputPath)
	if err := cmd.Run(); err != nil {
		diagnostics.Log.Warnf("formatter %q unavailable or failed: %v", genconfig.FormatterBinary, err)
	}
}
