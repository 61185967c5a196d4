// Package locate computes the boot directory layout and probes whether
// a materialized artifact looks complete. The probe is a heuristic: it
// checks that a handful of representative class files resolve inside
// the installed jars, not that the installation is binary-compatible.
package locate

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
	"github.com/isabella232/sbt-zero-seven/internal/config"
	"golang.org/x/sync/errgroup"
)

// RuntimeBase returns <bootDir>/<runtimeVersion>, the directory under
// which both the runtime and every tool version built against it live.
// The layout is fixed for compatibility with existing installs.
func RuntimeBase(bootDir, runtimeVersion string) string {
	return filepath.Join(bootDir, runtimeVersion)
}

// RuntimeDir returns the directory holding the runtime jars.
func RuntimeDir(bootDir, runtimeVersion string) string {
	return filepath.Join(RuntimeBase(bootDir, runtimeVersion), "runtime")
}

// ToolDir returns the version-qualified directory holding the tool jars.
func ToolDir(bootDir, runtimeVersion, toolName, toolVersion string) string {
	return filepath.Join(RuntimeBase(bootDir, runtimeVersion), toolName+"-"+toolVersion)
}

// DirFor returns the install directory for one artifact kind.
func DirFor(cfg config.Config, pair boot.VersionPair, k boot.Kind) string {
	if k == boot.KindTool {
		return ToolDir(cfg.BootDir, pair.RuntimeVersion, cfg.ToolName, pair.ToolVersion)
	}
	return RuntimeDir(cfg.BootDir, pair.RuntimeVersion)
}

// ProbesFor returns the probe class set for one artifact kind.
func ProbesFor(cfg config.Config, k boot.Kind) []string {
	if k == boot.KindTool {
		return cfg.ToolProbes
	}
	return cfg.RuntimeProbes
}

// Jars lists the jar files directly inside dir. The listing is
// non-recursive; an unreadable directory yields nil rather than an
// error.
func Jars(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var jars []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jar") {
			continue
		}
		jars = append(jars, filepath.Join(dir, e.Name()))
	}
	return jars
}

// IsPresent reports whether dir holds jars in which every probe class
// resolves. A missing dir is immediately absent. With an empty probe
// set, bare existence of the directory counts as present.
func IsPresent(dir string, probes []string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if len(probes) == 0 {
		return true
	}

	wanted := make(map[string]bool, len(probes))
	for _, p := range probes {
		wanted[classEntry(p)] = false
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(4)
	for _, jar := range Jars(dir) {
		jar := jar
		g.Go(func() error {
			r, err := zip.OpenReader(jar)
			if err != nil {
				// A corrupt or unreadable jar resolves nothing.
				return nil
			}
			defer r.Close()
			for _, f := range r.File {
				mu.Lock()
				if _, ok := wanted[f.Name]; ok {
					wanted[f.Name] = true
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, found := range wanted {
		if !found {
			return false
		}
	}
	return true
}

// NeedsUpdate reports whether the artifact at version in dir must be
// fetched. Snapshot versions are always treated as possibly stale: no
// presence check is made.
func NeedsUpdate(version, dir string, probes []string) bool {
	if boot.IsSnapshot(version) {
		return true
	}
	return !IsPresent(dir, probes)
}

// Missing returns the kinds that need fetching for the given pair, in
// check order. Both kinds are always checked so failures can be
// reported together.
func Missing(cfg config.Config, pair boot.VersionPair) []boot.Kind {
	var missing []boot.Kind
	for _, k := range boot.Kinds() {
		if NeedsUpdate(pair.VersionOf(k), DirFor(cfg, pair, k), ProbesFor(cfg, k)) {
			missing = append(missing, k)
		}
	}
	return missing
}

// classEntry converts a class name to its jar entry path:
// "scala.Predef" -> "scala/Predef.class".
func classEntry(name string) string {
	return strings.ReplaceAll(name, ".", "/") + ".class"
}
