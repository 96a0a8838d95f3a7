package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
)

// CheckConfigCompatibility checks that a config file written for
// configVersion can be read by the analyzer at toolVersion.
//
// Compatibility Rules:
//   - An empty config version is accepted (files written before versioning)
//   - If either version is "main" (development build), the check is skipped
//   - Major and minor versions must match exactly
//   - Patch versions can differ (e.g., 0.3.0 reads files written by 0.3.4)
func CheckConfigCompatibility(toolVersion, configVersion string) error {
	toolVersion = strings.TrimPrefix(toolVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || toolVersion == "main" || configVersion == "main" {
		return nil
	}

	tool, err := semver.NewVersion(toolVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid analyzer version '%s'", toolVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if tool.Major() != config.Major() || tool.Minor() != config.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"config version mismatch: analyzer is %d.%d.x but config was written for %d.%d.x",
			tool.Major(), tool.Minor(), config.Major(), config.Minor())
	}

	return nil
}
