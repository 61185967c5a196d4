// Package boot defines the core value types shared by the launcher:
// the resolved version pair and the artifact kinds it covers.
package boot

import "strings"

// SnapshotSuffix marks a version that may change without a version bump.
// Artifacts at snapshot versions are never assumed cached-valid.
const SnapshotSuffix = "-SNAPSHOT"

// IsSnapshot reports whether version carries the unstable-version marker.
func IsSnapshot(version string) bool {
	return strings.HasSuffix(version, SnapshotSuffix)
}

// Kind identifies which of the two launcher-managed artifacts is meant.
type Kind int

const (
	// KindRuntime is the language runtime (Scala in this launcher).
	KindRuntime Kind = iota
	// KindTool is the build tool itself (sbt).
	KindTool
)

// String returns the lowercase kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindRuntime:
		return "runtime"
	case KindTool:
		return "tool"
	default:
		return "unknown"
	}
}

// Kinds lists both artifact kinds in check order.
func Kinds() []Kind {
	return []Kind{KindRuntime, KindTool}
}

// VersionPair is the declared runtime and tool version for a project.
// It is an immutable value; equality is by field value, so it serves
// directly as a map key.
type VersionPair struct {
	RuntimeVersion string
	ToolVersion    string
}

// VersionOf returns the version for the given kind.
func (p VersionPair) VersionOf(k Kind) string {
	if k == KindTool {
		return p.ToolVersion
	}
	return p.RuntimeVersion
}

// Unstable reports whether either version in the pair is a snapshot.
// Unstable pairs always require re-verification before use.
func (p VersionPair) Unstable() bool {
	return IsSnapshot(p.RuntimeVersion) || IsSnapshot(p.ToolVersion)
}
