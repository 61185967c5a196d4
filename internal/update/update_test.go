package update

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
	"github.com/isabella232/sbt-zero-seven/internal/config"
	"github.com/isabella232/sbt-zero-seven/internal/resolve"
	"github.com/isabella232/sbt-zero-seven/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retrieval struct {
	module  resolve.Module
	pattern string
}

// fakeService is a scripted resolve engine.
type fakeService struct {
	resolved    []resolve.Descriptor
	retrieved   []retrieval
	problems    map[string][]resolve.Problem // keyed by dependency name
	retrieveErr map[string]error             // keyed by dependency name
}

func (f *fakeService) Resolve(ctx context.Context, desc resolve.Descriptor) (resolve.Report, error) {
	f.resolved = append(f.resolved, desc)
	if len(desc.Dependencies) != 1 {
		return resolve.Report{}, errors.New("descriptor must carry exactly one dependency")
	}
	return resolve.Report{Problems: f.problems[desc.Dependencies[0].Name]}, nil
}

func (f *fakeService) Retrieve(ctx context.Context, m resolve.Module, destPattern string) error {
	f.retrieved = append(f.retrieved, retrieval{module: m, pattern: destPattern})
	return f.retrieveErr[m.Name]
}

func quietUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	ui.SetWriter(&buf)
	ui.SetColorEnabled(false)
	t.Cleanup(func() { ui.SetWriter(os.Stderr) })
	return &buf
}

var testPair = boot.VersionPair{RuntimeVersion: "2.7.2", ToolVersion: "0.5.0"}

func TestUpdateBothKinds(t *testing.T) {
	quietUI(t)
	cfg := config.Default(t.TempDir())
	svc := &fakeService{}
	c := NewCoordinator(cfg, svc)

	err := c.Update(context.Background(), testPair, boot.Kinds())
	require.NoError(t, err)

	require.Len(t, svc.resolved, 2)
	// One synthesized descriptor per kind, single dependency each.
	assert.Equal(t, "scala", svc.resolved[0].Dependencies[0].Name)
	assert.Equal(t, "org.scala-lang", svc.resolved[0].Dependencies[0].Organization)
	assert.Equal(t, "2.7.2", svc.resolved[0].Dependencies[0].Revision)
	assert.Equal(t, "sbt", svc.resolved[1].Dependencies[0].Name)
	assert.Equal(t, "0.5.0", svc.resolved[1].Dependencies[0].Revision)

	require.Len(t, svc.retrieved, 2)
	runtimeDir := filepath.Join(cfg.BootDir, "2.7.2", "runtime")
	toolDir := filepath.Join(cfg.BootDir, "2.7.2", "sbt-0.5.0")
	assert.Equal(t, filepath.Join(runtimeDir, "[artifact].[ext]"), svc.retrieved[0].pattern)
	assert.Equal(t, filepath.Join(toolDir, "[artifact]-[revision].[ext]"), svc.retrieved[1].pattern)
}

func TestUpdateSingleKind(t *testing.T) {
	quietUI(t)
	cfg := config.Default(t.TempDir())
	svc := &fakeService{}
	c := NewCoordinator(cfg, svc)

	err := c.Update(context.Background(), testPair, []boot.Kind{boot.KindTool})
	require.NoError(t, err)
	require.Len(t, svc.resolved, 1)
	assert.Equal(t, "sbt", svc.resolved[0].Dependencies[0].Name)
}

func TestUpdateUnresolvedToolIsFatal(t *testing.T) {
	out := quietUI(t)
	cfg := config.Default(t.TempDir())
	svc := &fakeService{problems: map[string][]resolve.Problem{
		"sbt": {{
			Module:  resolve.Module{Organization: "org.scala-tools.sbt", Name: "sbt", Revision: "0.5.0"},
			Message: "not found in any repository",
		}},
	}}
	c := NewCoordinator(cfg, svc)

	err := c.Update(context.Background(), testPair, boot.Kinds())
	require.Error(t, err)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Contains(t, ue.Error(), "Error retrieving required libraries")
	assert.Equal(t, "sbt 0.5.0", ue.Check.Label())
	assert.Equal(t, []string{"sbt.version"}, ue.Check.RetryKeys())

	// The runtime was still attempted and retrieved: no fail-fast.
	require.Len(t, svc.resolved, 2)
	require.Len(t, svc.retrieved, 1)

	assert.Contains(t, out.String(), "sbt 0.5.0 could not be retrieved")
	assert.Contains(t, out.String(), "not found in any repository")
}

func TestUpdateBothUnresolvedCombined(t *testing.T) {
	quietUI(t)
	cfg := config.Default(t.TempDir())
	svc := &fakeService{problems: map[string][]resolve.Problem{
		"scala": {{Message: "no such revision"}},
		"sbt":   {{Message: "no such revision"}},
	}}
	c := NewCoordinator(cfg, svc)

	err := c.Update(context.Background(), testPair, boot.Kinds())
	var ue *Error
	require.True(t, errors.As(err, &ue))

	// One combined message, both retry keys.
	assert.Equal(t, "Scala 2.7.2 and sbt 0.5.0", ue.Check.Label())
	assert.Equal(t, []string{"scala.version", "sbt.version"}, ue.Check.RetryKeys())
	assert.Len(t, ue.Problems, 2)
}

func TestUpdateRetrieveFailureIsUpdateFailure(t *testing.T) {
	quietUI(t)
	cfg := config.Default(t.TempDir())
	svc := &fakeService{retrieveErr: map[string]error{
		"scala": errors.New("disk full"),
	}}
	c := NewCoordinator(cfg, svc)

	err := c.Update(context.Background(), testPair, boot.Kinds())
	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Scala 2.7.2", ue.Check.Label())
	assert.Equal(t, []string{"scala.version"}, ue.Check.RetryKeys())
	require.Len(t, ue.Problems, 1)
	assert.Contains(t, ue.Problems[0].Message, "disk full")
}
