package instruction

// Kind identifies an instruction variant. The value is the Dockerfile keyword
// the variant renders as.
type Kind string

const (
	KindADD         Kind = "ADD"         // Add local or remote files and directories.
	KindARG         Kind = "ARG"         // Use build-time variables.
	KindCMD         Kind = "CMD"         // Specify default commands.
	KindCOMMENT     Kind = "COMMENT"     // A single comment line, only available when building by hand.
	KindCOPY        Kind = "COPY"        // Copy files and directories.
	KindENTRYPOINT  Kind = "ENTRYPOINT"  // Specify default executable.
	KindENV         Kind = "ENV"         // Set environment variables.
	KindESCAPE      Kind = "ESCAPE"      // The escape parser directive.
	KindEXPOSE      Kind = "EXPOSE"      // Describe which ports your application is listening on.
	KindFROM        Kind = "FROM"        // Create a new build stage from a base image.
	KindHEALTHCHECK Kind = "HEALTHCHECK" // Check a container's health on startup.
	KindLABEL       Kind = "LABEL"       // Add metadata to an image.
	KindONBUILD     Kind = "ONBUILD"     // Specify instructions for when the image is used in a build.
	KindRUN         Kind = "RUN"         // Execute build commands.
	KindSHELL       Kind = "SHELL"       // Set the default shell of an image.
	KindSTOPSIGNAL  Kind = "STOPSIGNAL"  // Specify the system call signal for exiting a container.
	KindUSER        Kind = "USER"        // Set user and group ID.
	KindVOLUME      Kind = "VOLUME"      // Create volume mounts.
	KindWORKDIR     Kind = "WORKDIR"     // Change working directory.
)

// Kinds lists every instruction kind in keyword order.
var Kinds = []Kind{
	KindADD,
	KindARG,
	KindCMD,
	KindCOMMENT,
	KindCOPY,
	KindENTRYPOINT,
	KindENV,
	KindESCAPE,
	KindEXPOSE,
	KindFROM,
	KindHEALTHCHECK,
	KindLABEL,
	KindONBUILD,
	KindRUN,
	KindSHELL,
	KindSTOPSIGNAL,
	KindUSER,
	KindVOLUME,
	KindWORKDIR,
}

func (k Kind) String() string {
	return string(k)
}

// AllowedInOnbuild reports whether an instruction of kind k may be used as an
// ONBUILD trigger.
func AllowedInOnbuild(k Kind) bool {
	switch k {
	case "", KindFROM, KindCOMMENT, KindESCAPE, KindONBUILD:
		return false
	}
	return true
}
