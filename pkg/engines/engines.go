// Package engines derives a node target from the engines field of the
// nearest package.json.
package engines

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/logging"
	"github.com/tidwall/gjson"
)

var log = logging.GetLogger("engines")

// PackageFile is the manifest name searched for.
const PackageFile = "package.json"

// Package is a parsed manifest.
type Package struct {
	Path string
	data []byte
}

// FindPackage walks from start up to the filesystem root and returns the
// first readable, well-formed package.json. Malformed manifests are skipped.
func FindPackage(start string) (*Package, error) {
	return walk(start, PackageFile)
}

// FindModule returns the manifest of the installed module name, searching
// node_modules in start and each of its parents the way node resolves
// packages.
func FindModule(start, name string) (*Package, error) {
	return walk(start, filepath.Join("node_modules", name, PackageFile))
}

func walk(start, rel string) (*Package, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve %s", start)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, rel)
		if data, err := os.ReadFile(candidate); err == nil {
			if gjson.ValidBytes(data) {
				log.Debug().Str("path", candidate).Msg("Found package manifest")
				return &Package{Path: candidate, data: data}, nil
			}
			log.Warn().Str("path", candidate).Msg("Cannot parse package manifest, skipping")
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, errors.Newf(errors.ErrNotFound, "no %s found above %s", rel, start).
				WithDetail("start", start)
		}
		dir = parent
	}
}

// Version returns the manifest's version field.
func (p *Package) Version() (string, bool) {
	v := gjson.GetBytes(p.data, "version")
	if v.Type != gjson.String || strings.TrimSpace(v.String()) == "" {
		return "", false
	}
	return strings.TrimSpace(v.String()), true
}

// Environment picks the build environment the same way the toolchain does:
// BABEL_ENV, then NODE_ENV, then "development".
func Environment(getenv func(string) string) string {
	for _, key := range []string{"BABEL_ENV", "NODE_ENV"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return "development"
}

// NodeConstraint returns the node engine range for env. devEngines wins in
// development when present.
func (p *Package) NodeConstraint(env string) (string, bool) {
	engines := gjson.GetBytes(p.data, "engines")
	if env == "development" {
		if dev := gjson.GetBytes(p.data, "devEngines"); dev.Exists() {
			engines = dev
		}
	}
	node := engines.Get("node")
	if !node.Exists() || node.Type != gjson.String || strings.TrimSpace(node.String()) == "" {
		return "", false
	}
	return strings.TrimSpace(node.String()), true
}

// Lowest reduces a constraint to a single version. "*" and unusable ranges
// yield "", meaning every version is supported. Exact versions are returned
// as written. Ranges yield the lowest candidate satisfying them; candidates
// must be sorted ascending.
func Lowest(constraint string, candidates []string) string {
	if constraint == "*" {
		return ""
	}
	if _, err := semver.StrictNewVersion(strings.TrimPrefix(constraint, "v")); err == nil {
		return strings.TrimPrefix(constraint, "v")
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		log.Warn().Str("constraint", constraint).Err(err).Msg("Ignoring invalid engines range")
		return ""
	}
	for _, candidate := range candidates {
		v, err := semver.NewVersion(candidate)
		if err != nil {
			continue
		}
		if c.Check(v) {
			return candidate
		}
	}
	return ""
}

// NodeVersion finds the package.json above dir and returns the lowest node
// version it allows among the versions the catalog knows about. An empty
// result with a nil error means no node constraint applies.
func NodeVersion(dir, env string, cat *catalog.Catalog, withBuiltIns bool) (string, error) {
	pkg, err := FindPackage(dir)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	constraint, ok := pkg.NodeConstraint(env)
	if !ok {
		return "", nil
	}

	version := Lowest(constraint, cat.EnvironmentVersions("node", withBuiltIns))
	log.Debug().
		Str("package", pkg.Path).
		Str("constraint", constraint).
		Str("node", version).
		Msg("Resolved engines node version")
	return version, nil
}
