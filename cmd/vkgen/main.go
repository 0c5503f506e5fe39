// Command vkgen reads a Vulkan XML registry document and writes a
// vulkan.hpp-style C++ header, per spec §6's CLI surface: one positional
// input-path argument with a compile-time default, no flags, exit code 0
// on success and -1 on any error with a diagnostic on stderr.
package main

import (
	"fmt"
	"os"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/driver"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/genconfig"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

func main() {
	input := genconfig.DefaultInputPath
	if len(os.Args) > 1 {
		input = os.Args[1]
	}

	counter, err := driver.Run(input, genconfig.DefaultOutputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", diagnosticMessage(err))
		os.Exit(-1)
	}
	if counter.Warnings > 0 || counter.Shapes > 0 {
		fmt.Fprintf(os.Stderr, "%d warning(s), %d shape error(s)\n", counter.Warnings, counter.Shapes)
	}
}

// diagnosticMessage formats err the way spec §7's "user-visible failure
// behavior" requires: a specerror-shaped message passes through as-is (it
// already reads "Spec error on line N: message"), anything else is reported
// as a caught exception.
func diagnosticMessage(err error) string {
	switch err.(type) {
	case *specerror.Diagnostic, specerror.List:
		return err.Error()
	default:
		return "caught exception: " + err.Error()
	}
}
