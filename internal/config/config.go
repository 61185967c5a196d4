// Package config defines the launcher configuration. The configuration
// is an explicit value threaded through the loader and into environment
// construction; nothing in the launcher reads process-global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OverridesFile is the optional per-project launcher configuration,
// relative to the project directory.
const OverridesFile = "project/launcher.yaml"

// Config carries everything the loader needs: where artifacts live,
// what the managed runtime and tool are called, and how their presence
// is probed.
type Config struct {
	// ProjectDir is the project being launched.
	ProjectDir string `yaml:"-"`

	// BootDir holds materialized runtime and tool versions. Defaults to
	// <ProjectDir>/project/boot.
	BootDir string `yaml:"boot-dir,omitempty"`

	// PropertiesPath is the persisted version-pair file. Defaults to
	// <ProjectDir>/project/build.yaml.
	PropertiesPath string `yaml:"-"`

	// RuntimeLabel names the runtime in user-facing messages ("Scala").
	RuntimeLabel string `yaml:"runtime-label,omitempty"`

	// RuntimeOrganization/RuntimeModule form the dependency coordinates
	// synthesized when the runtime must be fetched.
	RuntimeOrganization string `yaml:"runtime-organization,omitempty"`
	RuntimeModule       string `yaml:"runtime-module,omitempty"`

	// ToolName names the build tool ("sbt"). It is both the user-facing
	// label and the tool directory prefix under the boot layout.
	ToolName string `yaml:"tool-name,omitempty"`

	// ToolOrganization is the organization for the synthesized tool
	// dependency descriptor.
	ToolOrganization string `yaml:"tool-organization,omitempty"`

	// ToolMainClass is the entry point handed the resolved classpath.
	ToolMainClass string `yaml:"tool-main-class,omitempty"`

	// RuntimeProbes/ToolProbes are class names whose resolvability in
	// the installed jars stands in for full installation verification.
	RuntimeProbes []string `yaml:"runtime-probes,omitempty"`
	ToolProbes    []string `yaml:"tool-probes,omitempty"`

	// JavaCommand is the JVM executable used to run the tool.
	JavaCommand string `yaml:"java-command,omitempty"`

	// Repositories are the base URLs the stock resolution engine tries,
	// in order.
	Repositories []string `yaml:"repositories,omitempty"`
}

// Default returns the stock configuration for a project directory.
func Default(projectDir string) Config {
	return Config{
		ProjectDir:          projectDir,
		BootDir:             filepath.Join(projectDir, "project", "boot"),
		PropertiesPath:      filepath.Join(projectDir, "project", "build.yaml"),
		RuntimeLabel:        "Scala",
		RuntimeOrganization: "org.scala-lang",
		RuntimeModule:       "scala",
		ToolName:            "sbt",
		ToolOrganization:    "org.scala-tools.sbt",
		ToolMainClass:       "sbt.Main",
		RuntimeProbes:       []string{"scala.List", "scala.Predef"},
		ToolProbes:          []string{"sbt.Main"},
		JavaCommand:         "java",
		Repositories: []string{
			"https://repo1.maven.org/maven2",
		},
	}
}

// Load returns the configuration for projectDir, applying overrides
// from project/launcher.yaml when the file exists. A missing overrides
// file is not an error; a malformed one is.
func Load(projectDir string) (Config, error) {
	cfg := Default(projectDir)

	path := filepath.Join(projectDir, filepath.FromSlash(OverridesFile))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", OverridesFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", OverridesFile, err)
	}

	// Relative boot-dir overrides are anchored at the project.
	if cfg.BootDir != "" && !filepath.IsAbs(cfg.BootDir) {
		cfg.BootDir = filepath.Join(projectDir, cfg.BootDir)
	}
	return cfg, nil
}
