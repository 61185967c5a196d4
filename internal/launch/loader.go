// Package launch orchestrates the boot cycle: read the declared
// versions, check the environment cache, probe the boot directory,
// fetch whatever is missing and construct the execution environment.
// Retrying with different versions is an explicit loop here, not
// recursion, so repeated prompt failures keep the stack flat.
package launch

import (
	"context"
	"fmt"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
	"github.com/isabella232/sbt-zero-seven/internal/buildprops"
	"github.com/isabella232/sbt-zero-seven/internal/config"
	"github.com/isabella232/sbt-zero-seven/internal/envcache"
	"github.com/isabella232/sbt-zero-seven/internal/locate"
	"github.com/isabella232/sbt-zero-seven/internal/log"
	"github.com/isabella232/sbt-zero-seven/internal/resolve"
	"github.com/isabella232/sbt-zero-seven/internal/ui"
	"github.com/isabella232/sbt-zero-seven/internal/update"
)

// BootError is a fatal launch failure. The process boundary prints its
// message on one line and exits non-zero.
type BootError struct {
	Message string
	Err     error
}

func (e *BootError) Error() string { return e.Message }

func (e *BootError) Unwrap() error { return e.Err }

// Console is the interactive surface the loader needs. ui.Console
// implements it.
type Console interface {
	Ask(question string) string
	Confirm(question string) bool
}

// Updater fetches missing artifacts; *update.Coordinator implements it.
type Updater interface {
	Update(ctx context.Context, pair boot.VersionPair, kinds []boot.Kind) error
}

// Loader drives the boot cycle for one project.
type Loader struct {
	cfg     config.Config
	props   *buildprops.Store
	updater Updater
	console Console
	cache   *envcache.Cache[*Environment]
}

// NewLoader wires a loader for the given configuration, fetching
// through svc and prompting on console.
func NewLoader(cfg config.Config, svc resolve.Service, console Console) *Loader {
	return &Loader{
		cfg: cfg,
		props: &buildprops.Store{
			Path:         cfg.PropertiesPath,
			RuntimeLabel: cfg.RuntimeLabel,
			ToolLabel:    cfg.ToolName,
			Prompt:       console,
		},
		updater: update.NewCoordinator(cfg, svc),
		console: console,
		cache:   envcache.New[*Environment](),
	}
}

// Load returns a ready execution environment for the project's declared
// version pair, fetching missing artifacts and re-prompting for
// alternate versions as needed. Unresolvable dependencies are fatal; a
// post-update probe failure offers a retry with different versions.
func (l *Loader) Load(ctx context.Context) (*Environment, error) {
	pair, err := l.props.Read()
	if err != nil {
		return nil, &BootError{Message: err.Error(), Err: err}
	}

	for {
		if env, ok := l.cache.Get(pair); ok {
			log.Debug("environment cache hit",
				"runtime", pair.RuntimeVersion, "tool", pair.ToolVersion)
			return env, nil
		}

		if missing := locate.Missing(l.cfg, pair); len(missing) > 0 {
			for _, k := range missing {
				ui.Infof("Getting %s ...", l.label(k, pair))
			}
			if err := l.updater.Update(ctx, pair, missing); err != nil {
				// Unresolved dependencies are fatal to the launch; the
				// coordinator has already reported them.
				return nil, &BootError{Message: err.Error(), Err: err}
			}
		}

		// A successful update does not guarantee the probe passes, so
		// every cycle re-verifies both artifacts before building.
		check := update.Success()
		for _, k := range boot.Kinds() {
			if !locate.IsPresent(locate.DirFor(l.cfg, pair, k), locate.ProbesFor(l.cfg, k)) {
				check = check.And(update.Failure(l.label(k, pair), buildprops.KeyFor(k)))
			}
		}

		if !check.Failed() {
			env := l.buildEnvironment(pair)
			l.cache.Put(pair, env)
			return env, nil
		}

		ui.Errorf("%s could not be retrieved.", check.Label())
		if !l.console.Confirm("Select different version(s)?") {
			msg := fmt.Sprintf("%s could not be retrieved", check.Label())
			return nil, &BootError{Message: msg}
		}
		pair, err = l.props.ForcePrompt(check.RetryKeys())
		if err != nil {
			return nil, &BootError{Message: err.Error(), Err: err}
		}
	}
}

func (l *Loader) buildEnvironment(pair boot.VersionPair) *Environment {
	return &Environment{
		Pair:        pair,
		RuntimeJars: locate.Jars(locate.RuntimeDir(l.cfg.BootDir, pair.RuntimeVersion)),
		ToolJars:    locate.Jars(locate.ToolDir(l.cfg.BootDir, pair.RuntimeVersion, l.cfg.ToolName, pair.ToolVersion)),
		javaCommand: l.cfg.JavaCommand,
		mainClass:   l.cfg.ToolMainClass,
	}
}

func (l *Loader) label(k boot.Kind, pair boot.VersionPair) string {
	if k == boot.KindTool {
		return l.cfg.ToolName + " " + pair.ToolVersion
	}
	return l.cfg.RuntimeLabel + " " + pair.RuntimeVersion
}
