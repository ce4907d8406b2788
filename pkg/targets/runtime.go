package targets

import (
	"os/exec"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/engines"
	"github.com/arthur-debert/targetenv/pkg/errors"
)

// RuntimeProvider reports the version of the node runtime on the host.
type RuntimeProvider interface {
	NodeVersion() (string, error)
}

// StaticRuntime reports a fixed version.
type StaticRuntime string

// NodeVersion implements RuntimeProvider.
func (s StaticRuntime) NodeVersion() (string, error) {
	if s == "" {
		return "", errors.New(errors.ErrInvalidTargetVersion, "no current node version configured").
			WithDetail("target", NodeKey)
	}
	return strings.TrimPrefix(string(s), "v"), nil
}

// ExecRuntime asks the node binary on PATH for its version.
type ExecRuntime struct {
	Binary string
}

// NodeVersion implements RuntimeProvider.
func (e ExecRuntime) NodeVersion() (string, error) {
	binary := e.Binary
	if binary == "" {
		binary = "node"
	}

	output, err := exec.Command(binary, "--version").Output()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidTargetVersion, "cannot determine current node version from %s", binary).
			WithDetail("target", NodeKey)
	}
	return strings.TrimPrefix(strings.TrimSpace(string(output)), "v"), nil
}

// ElectronProvider reports the Electron version installed for a project.
type ElectronProvider interface {
	ElectronVersion() (string, error)
}

// StaticElectron reports a fixed version. Empty means not installed.
type StaticElectron string

// ElectronVersion implements ElectronProvider.
func (s StaticElectron) ElectronVersion() (string, error) {
	if s == "" {
		return "", notInstalled()
	}
	return strings.TrimPrefix(string(s), "v"), nil
}

// InstalledElectron reads the version of the electron package under
// node_modules in Dir or its nearest parent. An empty Dir is the working
// directory.
type InstalledElectron struct {
	Dir string
}

// ElectronVersion implements ElectronProvider.
func (i InstalledElectron) ElectronVersion() (string, error) {
	pkg, err := engines.FindModule(i.Dir, ElectronKey)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return "", notInstalled()
		}
		return "", err
	}
	v, ok := pkg.Version()
	if !ok {
		return "", errors.InvalidTarget(ElectronKey, SentinelCurrent, "the installed electron package has no version").
			WithDetail("path", pkg.Path)
	}
	log.Debug().Str("path", pkg.Path).Str("version", v).Msg("Found installed electron")
	return v, nil
}

func notInstalled() *errors.Error {
	return errors.InvalidTarget(ElectronKey, SentinelCurrent, "electron is not installed locally")
}
