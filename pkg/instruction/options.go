package instruction

import "fmt"

// ResourceOptions are the ownership flags shared by ADD and COPY.
type ResourceOptions struct {
	// The --chown and --chmod features are only supported on Dockerfiles
	// used to build Linux containers, and don't work on Windows containers.
	Chown, Chmod string
}

// CopyOptions used by the COPY instruction.
type CopyOptions struct {
	// By default, the COPY instruction copies files from the build context.
	// The COPY --from flag copies files from a build stage, by name or index, instead.
	From string

	ResourceOptions
}

// FromOptions used by the FROM instruction.
type FromOptions struct {
	As       string // build stage name, referenced by later COPY --from
	Platform string // e.g. linux/amd64
}

// RunOptions used by the RUN instruction.
type RunOptions struct {
	Mounts   []string // each rendered as --mount=<spec>
	Network  string
	Security string
}

// HealthcheckOptions used by the HEALTHCHECK instruction. Every field is
// optional and kept as written, e.g. "30s" or "3".
type HealthcheckOptions struct {
	Interval    string
	Timeout     string
	StartPeriod string
	Retries     string
}

type Protocol string

const (
	TCP = Protocol("tcp")
	UDP = Protocol("udp")
)

// PortSpec returns an EXPOSE entry for port. An empty protocol leaves the
// engine default (tcp) implicit.
func PortSpec(port string, protocol Protocol) string {
	if protocol == "" {
		return port
	}
	return fmt.Sprintf("%s/%s", port, protocol)
}
