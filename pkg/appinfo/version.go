// Package appinfo carries the application build informations stamped at
// link time.
package appinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set by the linker, for example:
//
//	go build -ldflags '-X github.com/wuxler/simplestream/pkg/appinfo.version=v1.0.0'
var (
	// version value from regexp capture in gitBranch or gitTag
	version = "dev"
	// buildDate output from `date -u +'%Y-%m-%dT%H:%M:%SZ'`
	buildDate = "1970-01-01T00:00:00Z"
	// gitBranch output from `git rev-parse --symbolic-full-name --verify --quiet --abbrev-ref HEAD`
	gitBranch = ""
	// gitCommit output from `git rev-parse HEAD`
	gitCommit = ""
	// gitTag output from `git describe --exact-match --tags HEAD` (if clean tree state)
	gitTag = ""
	// gitTreeState determined from `git status --porcelain`. either 'clean' or 'dirty'
	gitTreeState = ""
)

// Version describes the application build: the release version, the git
// state it was built from and the toolchain environment.
type Version struct {
	Version string    `json:"version" yaml:"version"`
	Git     GitInfo   `json:"git" yaml:"git"`
	Build   BuildInfo `json:"build" yaml:"build"`
}

// GitInfo is the git state at build time.
type GitInfo struct {
	Branch    string `json:"branch" yaml:"branch"`
	Commit    string `json:"commit" yaml:"commit"`
	Tag       string `json:"tag" yaml:"tag"`
	TreeState string `json:"tree_state" yaml:"tree_state"`
}

// BuildInfo is the toolchain environment at build time.
type BuildInfo struct {
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty" yaml:"go_version,omitempty"`
	Compiler  string `json:"compiler,omitempty" yaml:"compiler,omitempty"`
	OS        string `json:"os,omitempty" yaml:"os,omitempty"`
	Arch      string `json:"arch,omitempty" yaml:"arch,omitempty"`
	Platform  string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// GetVersion assembles the Version of the running application.
func GetVersion() Version {
	return Version{
		Version: version,
		Git: GitInfo{
			Branch:    gitBranch,
			Commit:    gitCommit,
			Tag:       gitTag,
			TreeState: gitTreeState,
		},
		Build: BuildInfo{
			BuildDate: buildDate,
			GoVersion: runtime.Version(),
			Compiler:  runtime.Compiler,
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		},
	}
}

// ShortVersion returns the version with an abbreviated commit when one
// was stamped in.
func ShortVersion() string {
	if len(gitCommit) > 7 {
		return version + "-" + gitCommit[:8]
	}
	return version
}

// NewVersionWriter returns a *VersionWriter rendering v.
func NewVersionWriter(v Version) *VersionWriter {
	return &VersionWriter{
		version: v,
	}
}

// VersionWriter renders a Version in several shapes. Options chain before
// the final Write or Line call.
type VersionWriter struct {
	version Version

	short   bool
	format  string
	appName string
}

// SetShort selects the one-line output for the text format.
func (vw *VersionWriter) SetShort(short bool) *VersionWriter {
	vw.short = short
	return vw
}

// SetFormat selects the output format, one of "text", "json" or "yaml".
func (vw *VersionWriter) SetFormat(format string) *VersionWriter {
	vw.format = format
	return vw
}

// SetAppName names the application in the rendered output.
func (vw *VersionWriter) SetAppName(name string) *VersionWriter {
	vw.appName = name
	return vw
}

// Version returns the wrapped Version.
func (vw VersionWriter) Version() Version {
	return vw.version
}

// Write renders the version into w according to the configured options.
func (vw VersionWriter) Write(w io.Writer) error {
	switch strings.ToLower(vw.format) {
	case "yaml", "yml":
		return yaml.NewEncoder(w).Encode(vw.version)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(vw.version)
	}
	if vw.short {
		_, err := fmt.Fprintln(w, vw.ShortLine())
		return err
	}
	_, err := fmt.Fprint(w, vw.Extended())
	return err
}

// Line returns the one-line version prefixed with the application name
// when one is set.
func (vw VersionWriter) Line() string {
	s := vw.ShortLine()
	if vw.appName != "" {
		s = vw.appName + " " + s
	}
	return s
}

// ShortLine returns the version followed by the commit in parentheses.
func (vw VersionWriter) ShortLine() string {
	v := vw.version
	s := v.Version
	if v.Git.Commit != "" {
		s += " (" + v.Git.Commit + ")"
	}
	return s
}

// Extended returns the multiple lines rendering with the git and build
// sections.
func (vw VersionWriter) Extended() string {
	v := vw.version
	b := &strings.Builder{}
	if vw.appName != "" {
		fmt.Fprintf(b, "%-13s: %s\n", "Application", vw.appName)
	}
	fmt.Fprintf(b, "%-13s: %s\n", "Version", v.Version)

	b.WriteString("[Git]\n")
	for _, row := range []struct{ label, value string }{
		{"Branch", v.Git.Branch},
		{"Commit", v.Git.Commit},
		{"Tag", v.Git.Tag},
		{"TreeState", v.Git.TreeState},
	} {
		fmt.Fprintf(b, "  %-11s: %s\n", row.label, row.value)
	}

	b.WriteString("[Build]\n")
	for _, row := range []struct{ label, value string }{
		{"BuildDate", v.Build.BuildDate},
		{"GoVersion", v.Build.GoVersion},
		{"Compiler", v.Build.Compiler},
		{"Platform", v.Build.Platform},
	} {
		fmt.Fprintf(b, "  %-11s: %s\n", row.label, row.value)
	}
	return b.String()
}
