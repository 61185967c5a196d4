package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client is the stock resolution engine: it resolves modules against a
// chain of Maven-layout repositories over HTTP. Any other engine can be
// substituted through the Service interface.
type Client struct {
	Repositories []string
	HTTPClient   *http.Client
}

// NewClient returns a Client resolving against the given repository
// base URLs, tried in order.
func NewClient(repositories []string) *Client {
	return &Client{
		Repositories: repositories,
		HTTPClient:   &http.Client{Timeout: 5 * time.Minute},
	}
}

// Resolve checks that every dependency of the descriptor is available
// in at least one repository. Missing modules come back as problems in
// the report, not as an error.
func (c *Client) Resolve(ctx context.Context, desc Descriptor) (Report, error) {
	var report Report
	for _, dep := range desc.Dependencies {
		if _, found, err := c.locate(ctx, dep); err != nil {
			return Report{}, err
		} else if !found {
			report.Problems = append(report.Problems, Problem{
				Module:  dep,
				Message: "not found in any repository",
			})
		}
	}
	return report, nil
}

// Retrieve downloads the module's jar to the destination pattern.
func (c *Client) Retrieve(ctx context.Context, m Module, destPattern string) error {
	url, found, err := c.locate(ctx, m)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s not found in any repository", m)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", m, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", m, resp.Status)
	}

	dest := expandPattern(destPattern, m)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return f.Close()
}

// locate returns the first repository URL holding the module's jar.
func (c *Client) locate(ctx context.Context, m Module) (url string, found bool, err error) {
	for _, repo := range c.Repositories {
		candidate := jarURL(repo, m)
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
		if err != nil {
			return "", false, err
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			// An unreachable repository just falls through to the next
			// one in the chain.
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// jarURL builds the Maven-layout artifact URL for a module.
func jarURL(repo string, m Module) string {
	return strings.TrimSuffix(repo, "/") + "/" +
		strings.ReplaceAll(m.Organization, ".", "/") + "/" +
		m.Name + "/" + m.Revision + "/" + m.Name + "-" + m.Revision + ".jar"
}

// expandPattern substitutes the retrieval placeholders for one module:
// [artifact], [revision] and [ext].
func expandPattern(pattern string, m Module) string {
	r := strings.NewReplacer(
		"[artifact]", m.Name,
		"[revision]", m.Revision,
		"[ext]", "jar",
	)
	return r.Replace(pattern)
}
