// Package update coordinates fetching missing runtime and tool
// artifacts through the external resolution engine. Both artifacts are
// always attempted even when the first fails, so the user sees a single
// combined failure at the end of the cycle.
package update

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
	"github.com/isabella232/sbt-zero-seven/internal/buildprops"
	"github.com/isabella232/sbt-zero-seven/internal/config"
	"github.com/isabella232/sbt-zero-seven/internal/id"
	"github.com/isabella232/sbt-zero-seven/internal/locate"
	"github.com/isabella232/sbt-zero-seven/internal/log"
	"github.com/isabella232/sbt-zero-seven/internal/resolve"
	"github.com/isabella232/sbt-zero-seven/internal/ui"
)

// engineMu serializes calls into the external engine across all update
// cycles: the engine is not safe for concurrent invocation.
var engineMu sync.Mutex

// Error is the fatal outcome of an update cycle: at least one artifact
// could not be resolved or retrieved. It carries the aggregated check
// so the loader knows which properties keys to re-prompt.
type Error struct {
	Check    Check
	Problems []resolve.Problem
	LogPath  string
}

func (e *Error) Error() string {
	if e.LogPath == "" {
		return "Error retrieving required libraries"
	}
	return fmt.Sprintf("Error retrieving required libraries (see %s for the complete log)", e.LogPath)
}

// Coordinator drives the external engine for one project configuration.
type Coordinator struct {
	cfg config.Config
	svc resolve.Service
}

// NewCoordinator returns a Coordinator fetching through svc.
func NewCoordinator(cfg config.Config, svc resolve.Service) *Coordinator {
	return &Coordinator{cfg: cfg, svc: svc}
}

// Update fetches the given artifact kinds for the version pair. The
// full resolution trace is written to update.log regardless of outcome.
// On failure the aggregated problems and the log location are printed
// to the console and an *Error is returned.
func (c *Coordinator) Update(ctx context.Context, pair boot.VersionPair, kinds []boot.Kind) error {
	engineMu.Lock()
	defer engineMu.Unlock()

	lg := log.With("update_id", id.Generate("upd"))

	check := Success()
	var problems []resolve.Problem
	for _, k := range kinds {
		probs, err := c.updateKind(ctx, lg, pair, k)
		if err != nil {
			lg.Error("update failed", "kind", k.String(), "error", err)
			probs = append(probs, resolve.Problem{
				Module:  c.dependencyFor(k, pair),
				Message: err.Error(),
			})
		}
		if len(probs) > 0 {
			check = check.And(Failure(c.label(k, pair), buildprops.KeyFor(k)))
			problems = append(problems, probs...)
		}
	}

	if !check.Failed() {
		return nil
	}

	ui.Errorf("%s could not be retrieved.", check.Label())
	for _, p := range problems {
		ui.Infof("  %s: %s", p.Module, p.Message)
	}
	if path := log.Path(); path != "" {
		ui.Infof("See %s for the complete log.", path)
	}
	return &Error{Check: check, Problems: problems, LogPath: log.Path()}
}

// updateKind resolves and retrieves one artifact. Unresolved
// dependencies come back as problems; an error means the engine itself
// failed, which the caller folds into the same failure accumulation.
func (c *Coordinator) updateKind(ctx context.Context, lg logger, pair boot.VersionPair, k boot.Kind) ([]resolve.Problem, error) {
	dep := c.dependencyFor(k, pair)
	desc := resolve.Descriptor{
		// One synthesized descriptor per kind, under the launcher's own
		// organization, with the artifact as its single dependency.
		Module: resolve.Module{
			Organization: c.cfg.ToolOrganization,
			Name:         "boot-" + k.String(),
			Revision:     pair.VersionOf(k),
		},
		Dependencies: []resolve.Module{dep},
	}

	lg.Debug("resolving", "kind", k.String(), "module", dep.String())
	report, err := c.svc.Resolve(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dep, err)
	}
	if report.HasError() {
		for _, p := range report.Problems {
			lg.Error("unresolved dependency", "module", p.Module.String(), "problem", p.Message)
		}
		return report.Problems, nil
	}

	pattern := c.retrievePattern(k, pair)
	lg.Debug("retrieving", "module", dep.String(), "dest", pattern)
	if err := c.svc.Retrieve(ctx, dep, pattern); err != nil {
		return nil, fmt.Errorf("retrieving %s: %w", dep, err)
	}
	lg.Debug("retrieve complete", "kind", k.String(), "module", dep.String())
	return nil, nil
}

// logger matches the *slog.Logger methods the coordinator uses.
type logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

func (c *Coordinator) dependencyFor(k boot.Kind, pair boot.VersionPair) resolve.Module {
	if k == boot.KindTool {
		return resolve.Module{
			Organization: c.cfg.ToolOrganization,
			Name:         c.cfg.ToolName,
			Revision:     pair.ToolVersion,
		}
	}
	return resolve.Module{
		Organization: c.cfg.RuntimeOrganization,
		Name:         c.cfg.RuntimeModule,
		Revision:     pair.RuntimeVersion,
	}
}

// retrievePattern is the per-kind destination layout: runtime jars land
// flat in the runtime directory, tool jars in the version-qualified
// tool directory.
func (c *Coordinator) retrievePattern(k boot.Kind, pair boot.VersionPair) string {
	if k == boot.KindTool {
		dir := locate.ToolDir(c.cfg.BootDir, pair.RuntimeVersion, c.cfg.ToolName, pair.ToolVersion)
		return filepath.Join(dir, "[artifact]-[revision].[ext]")
	}
	return filepath.Join(locate.RuntimeDir(c.cfg.BootDir, pair.RuntimeVersion), "[artifact].[ext]")
}

func (c *Coordinator) label(k boot.Kind, pair boot.VersionPair) string {
	if k == boot.KindTool {
		return c.cfg.ToolName + " " + pair.ToolVersion
	}
	return c.cfg.RuntimeLabel + " " + pair.RuntimeVersion
}
