// Package version reports build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/MicroServices-SocialApp/Post-API/pkg/version.Version=v1.2.0"
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info is the build metadata served by the version command and /healthz.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

func Get() Info {
	return Info{Version: Version, CommitHash: CommitHash, BuildDate: BuildDate}
}

func (i Info) String() string {
	return fmt.Sprintf("post-api %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildDate)
}
