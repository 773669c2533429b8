package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckRequires verifies that the running engine release satisfies the
// catalog file's `requires` constraint (a semver range such as ">= 0.2.0").
// An empty constraint always passes. Development builds ("dev") bypass the
// check so uninstalled working copies can process any catalog.
func (f *File) CheckRequires(engineVersion string) error {
	if f.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(f.Requires)
	if err != nil {
		return fmt.Errorf("catalog %s: invalid requires constraint %q: %w", f.Name, f.Requires, err)
	}

	if engineVersion == "dev" {
		return nil
	}

	v, err := semver.NewVersion(strings.TrimPrefix(engineVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing engine version %q: %w", engineVersion, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("catalog %s requires engine %s, running %s", f.Name, f.Requires, engineVersion)
	}
	return nil
}
