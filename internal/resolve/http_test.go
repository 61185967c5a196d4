package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scala272 = Module{Organization: "org.scala-lang", Name: "scala", Revision: "2.7.2"}

// repoServer serves the given artifact paths with fixed content.
func repoServer(t *testing.T, artifacts map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := artifacts[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestJarURL(t *testing.T) {
	got := jarURL("https://repo1.maven.org/maven2/", scala272)
	assert.Equal(t, "https://repo1.maven.org/maven2/org/scala-lang/scala/2.7.2/scala-2.7.2.jar", got)
}

func TestExpandPattern(t *testing.T) {
	got := expandPattern(filepath.Join("boot", "[artifact]-[revision].[ext]"), scala272)
	assert.Equal(t, filepath.Join("boot", "scala-2.7.2.jar"), got)
}

func TestResolveFound(t *testing.T) {
	srv := repoServer(t, map[string][]byte{
		"/org/scala-lang/scala/2.7.2/scala-2.7.2.jar": []byte("jar"),
	})
	c := NewClient([]string{srv.URL})

	report, err := c.Resolve(context.Background(), Descriptor{Dependencies: []Module{scala272}})
	require.NoError(t, err)
	assert.False(t, report.HasError())
}

func TestResolveMissingReportsProblem(t *testing.T) {
	srv := repoServer(t, nil)
	c := NewClient([]string{srv.URL})

	report, err := c.Resolve(context.Background(), Descriptor{Dependencies: []Module{scala272}})
	require.NoError(t, err)
	require.True(t, report.HasError())
	assert.Equal(t, scala272, report.Problems[0].Module)
	assert.Contains(t, report.Problems[0].Message, "not found in any repository")
}

func TestResolveFallsThroughRepositoryChain(t *testing.T) {
	empty := repoServer(t, nil)
	stocked := repoServer(t, map[string][]byte{
		"/org/scala-lang/scala/2.7.2/scala-2.7.2.jar": []byte("jar"),
	})
	c := NewClient([]string{empty.URL, stocked.URL})

	report, err := c.Resolve(context.Background(), Descriptor{Dependencies: []Module{scala272}})
	require.NoError(t, err)
	assert.False(t, report.HasError())
}

func TestRetrieveWritesDestination(t *testing.T) {
	srv := repoServer(t, map[string][]byte{
		"/org/scala-lang/scala/2.7.2/scala-2.7.2.jar": []byte("jar-bytes"),
	})
	c := NewClient([]string{srv.URL})

	dir := t.TempDir()
	pattern := filepath.Join(dir, "runtime", "[artifact].[ext]")
	require.NoError(t, c.Retrieve(context.Background(), scala272, pattern))

	data, err := os.ReadFile(filepath.Join(dir, "runtime", "scala.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jar-bytes", string(data))
}

func TestRetrieveMissingModule(t *testing.T) {
	srv := repoServer(t, nil)
	c := NewClient([]string{srv.URL})

	err := c.Retrieve(context.Background(), scala272, filepath.Join(t.TempDir(), "[artifact].[ext]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
