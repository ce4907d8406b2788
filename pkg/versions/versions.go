package versions

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/targetenv/pkg/errors"
)

// Semverify converts a raw version value into strict three-part form.
// 2.5 -> 2.5.0; 1 -> 1.0.0; "6.5.2" passes through unchanged. Prerelease
// and build suffixes are rejected.
func Semverify(raw interface{}) (string, error) {
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if v, err := semver.StrictNewVersion(s); err == nil {
			if !isRelease(v) {
				return "", parseError(raw, "prerelease and build suffixes are not supported")
			}
			return s, nil
		}
	}

	text, err := toText(raw)
	if err != nil {
		return "", err
	}

	parts := strings.Split(text, ".")
	if len(parts) > 3 {
		return "", parseError(raw, "too many version components")
	}
	for i, p := range parts {
		if p == "" {
			return "", parseError(raw, "empty version component")
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return "", parseError(raw, "version components must be non-negative integers")
		}
		parts[i] = strconv.FormatUint(n, 10)
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	return strings.Join(parts, "."), nil
}

func toText(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	default:
		return "", parseError(raw, fmt.Sprintf("unsupported version type %T", raw))
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return "", parseError(f, "not a finite non-negative number")
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func parseError(raw interface{}, reason string) *errors.Error {
	return errors.Newf(errors.ErrParse, "cannot parse version %v: %s", raw, reason).
		WithDetail("value", raw)
}

// IsAmbiguousDecimal reports whether raw is a numeric (not string) value with a
// fractional part. Such values lose trailing zeros: 6.10 is read as 6.1.
func IsAmbiguousDecimal(raw interface{}) bool {
	var f float64
	switch v := raw.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return false
	}
	return f != math.Trunc(f)
}

// LowerBound returns the lower end of a hyphenated range such as "10.0-10.2".
func LowerBound(version string) string {
	if i := strings.Index(version, "-"); i > 0 {
		return version[:i]
	}
	return version
}

// Parse parses a canonical three-part version.
func Parse(version string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrParse, "invalid version %q", version)
	}
	if !isRelease(v) {
		return nil, errors.Newf(errors.ErrParse, "invalid version %q: prerelease and build suffixes are not supported", version).
			WithDetail("value", version)
	}
	return v, nil
}

func isRelease(v *semver.Version) bool {
	return v.Prerelease() == "" && v.Metadata() == ""
}

// Compare compares two canonical versions numerically, returning -1, 0 or 1.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Less reports whether a < b. Unparseable input sorts as not-less.
func Less(a, b string) bool {
	c, err := Compare(a, b)
	return err == nil && c < 0
}

// Min returns the lower of two canonical versions. An empty first argument
// means "no value yet" and yields second.
func Min(first, second string) string {
	if first != "" && Less(first, second) {
		return first
	}
	return second
}

// Prettify drops trailing zero components: "6.0.0" -> "6", "6.5.0" -> "6.5".
// Values that are not canonical versions are returned untouched.
func Prettify(version string) string {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return version
	}

	parts := []string{strconv.FormatUint(v.Major(), 10)}
	if v.Minor() != 0 || v.Patch() != 0 {
		parts = append(parts, strconv.FormatUint(v.Minor(), 10))
	}
	if v.Patch() != 0 {
		parts = append(parts, strconv.FormatUint(v.Patch(), 10))
	}
	return strings.Join(parts, ".")
}
