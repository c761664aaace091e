package target

import (
	"strings"

	"github.com/containerd/containerd/platforms"
	ocispecs "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pkg/errors"

	"github.com/buildpacks/dockerphile/internal/style"
)

// Platform is the [os][/arch][/variant] value of a FROM --platform flag.
type Platform struct {
	OS      string
	Arch    string
	Variant string
}

func (p Platform) String() string {
	if p.Arch == "" {
		return p.OS
	}
	return platforms.Format(ocispecs.Platform{OS: p.OS, Architecture: p.Arch, Variant: p.Variant})
}

var knownOS = map[string]bool{
	"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
	"illumos": true, "ios": true, "js": true, "linux": true, "netbsd": true,
	"openbsd": true, "plan9": true, "solaris": true, "wasip1": true, "windows": true,
}

// IsBuildArg reports whether value refers to a build argument such as
// $BUILDPLATFORM, which is only known when the image is built.
func IsBuildArg(value string) bool {
	return strings.Contains(value, "$")
}

// ParsePlatform validates value and normalises it the way the image builder
// does, so "Linux/x86_64" becomes linux/amd64. A lone segment must name an
// operating system; no architecture is filled in for it.
func ParsePlatform(value string) (Platform, error) {
	parts := strings.Split(value, "/")
	if parts[0] == "" {
		return Platform{}, errors.Errorf("invalid platform %s, os must be defined", style.Symbol(value))
	}
	if len(parts) > 3 {
		return Platform{}, errors.Errorf("invalid platform %s, expected [os][/arch][/variant]", style.Symbol(value))
	}

	spec, err := platforms.Parse(value)
	if err != nil {
		return Platform{}, errors.Wrapf(err, "invalid platform %s", style.Symbol(value))
	}

	if len(parts) == 1 {
		name := strings.ToLower(value)
		if !knownOS[name] {
			return Platform{}, errors.Errorf("unknown os %s in platform %s", style.Symbol(value), style.Symbol(value))
		}
		return Platform{OS: name}, nil
	}

	spec = platforms.Normalize(spec)
	if !knownOS[spec.OS] {
		return Platform{}, errors.Errorf("unknown os %s in platform %s", style.Symbol(parts[0]), style.Symbol(value))
	}
	return Platform{OS: spec.OS, Arch: spec.Architecture, Variant: spec.Variant}, nil
}
