package app

// Set at build time:
//
//	go build -ldflags "-X github.com/math-s/yeargoals/internal/app.Version=1.0.0 -X github.com/math-s/yeargoals/internal/app.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion returns the version reported in logs and on /health.
// Commit and build time are appended only when they were stamped.
func BuildVersion() string {
	v := Version
	if Commit != "" {
		v += "+" + Commit
	}
	if BuildTime != "" {
		v += " (" + BuildTime + ")"
	}
	return v
}
