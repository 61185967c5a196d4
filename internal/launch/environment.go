package launch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
)

// Environment is an isolated execution environment for one resolved
// version pair: the runtime and tool classpaths plus the command used
// to hand control to the tool.
type Environment struct {
	Pair        boot.VersionPair
	RuntimeJars []string
	ToolJars    []string

	javaCommand string
	mainClass   string
}

// Classpath returns the runtime jars followed by the tool jars, joined
// with the platform list separator.
func (e *Environment) Classpath() string {
	jars := make([]string, 0, len(e.RuntimeJars)+len(e.ToolJars))
	jars = append(jars, e.RuntimeJars...)
	jars = append(jars, e.ToolJars...)
	return strings.Join(jars, string(os.PathListSeparator))
}

// Run hands control to the resolved tool and returns its exit code.
// The tool's only required surface is its main class; stdin, stdout and
// stderr are inherited.
func (e *Environment) Run(ctx context.Context, args []string) (int, error) {
	cmdArgs := append([]string{"-cp", e.Classpath(), e.mainClass}, args...)
	cmd := exec.CommandContext(ctx, e.javaCommand, cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
