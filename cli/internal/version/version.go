// Package version carries build metadata injected with -ldflags
package version

import (
	"fmt"
	"runtime"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Set at build time
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Info describes this build
type Info struct {
	Version   *goversion.Version
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string
}

// Get returns the build info. An unparsable Version reads as 0.0.0-dev.
func Get() Info {
	v, err := goversion.NewSemver(Version)
	if err != nil {
		v = goversion.Must(goversion.NewSemver("0.0.0-dev"))
	}
	return Info{
		Version:   v,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("yabx-mysql %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// Details renders one "label: value" line per field
func (i Info) Details() string {
	var b strings.Builder
	for _, kv := range [][2]string{
		{"Version", i.Version.String()},
		{"Commit", i.GitCommit},
		{"Built", i.BuildDate},
		{"Go", i.GoVersion},
		{"Platform", i.Platform},
	} {
		fmt.Fprintf(&b, "%-9s %s\n", kv[0]+":", kv[1])
	}
	return strings.TrimSuffix(b.String(), "\n")
}
