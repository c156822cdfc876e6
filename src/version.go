package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Report build version information for --version, using
 *		the VCS settings the Go toolchain
 *		embeds at build time (revision, commit time, dirty flag).
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Version is set at build time via
// -ldflags "-X 'github.com/kg0call/selcalrx/src.Version=X'".
var Version string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return defaultValue
}

// VersionString formats a human-readable version line for --version.
func VersionString() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		buildInfo = &debug.BuildInfo{}
	}

	buildCommit := getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
	buildTime := getBuildSettingOrDefault(buildInfo, "vcs.time", "UNKNOWN")
	dirtyStr := getBuildSettingOrDefault(buildInfo, "vcs.modified", "INVALID")

	if dirty, err := strconv.ParseBool(dirtyStr); err == nil && dirty {
		buildCommit += "-DIRTY"
	}

	version := Version
	if version == "" {
		version = "!UNKNOWN!"
	}

	return fmt.Sprintf("selcalrx - Version %s (revision %s, built at %s)", version, buildCommit, buildTime)
}
