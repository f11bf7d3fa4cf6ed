package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckMinimumVersion checks if the CLI version satisfies the minimum
// version an analysis configuration requires.
// Returns nil if compatible, error with details if not.
//
// Rules:
//   - If the CLI version is "main" (development build), the check is skipped
//   - An empty minimum means no requirement
//   - Otherwise the CLI version must be greater than or equal to the minimum
func CheckMinimumVersion(cliVersion, minVersion string) error {
	cliVersion = strings.TrimPrefix(cliVersion, "v")
	minVersion = strings.TrimPrefix(minVersion, "v")

	if minVersion == "" || cliVersion == "main" {
		return nil
	}

	cliSemver, err := semver.NewVersion(cliVersion)
	if err != nil {
		return fmt.Errorf("invalid cli version '%s': %w", cliVersion, err)
	}

	minSemver, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid minimum version '%s': %w", minVersion, err)
	}

	if cliSemver.LessThan(minSemver) {
		return fmt.Errorf("cli version %s is older than the required minimum %s",
			cliSemver.String(), minSemver.String())
	}

	return nil
}
