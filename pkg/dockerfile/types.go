package dockerfile

import "github.com/buildpacks/dockerphile/pkg/instruction"

// Builder is the set of append operations supported on a [Document]. Each
// one validates its arguments and appends exactly one instruction.
type Builder interface {
	Add(resources ...string) error                                               // Add local or remote files and directories.
	AddWithOptions(opts instruction.ResourceOptions, resources ...string) error  // Add files with --chown/--chmod.
	Arg(key string) error                                                        // Use build-time variables.
	ArgWithDefault(key, value string) error                                      // Use build-time variables with a default value.
	Cmd(form instruction.Form) error                                             // Specify default commands.
	Comment(text string) error                                                   // Add a single comment line.
	Copy(resources ...string) error                                              // Copy files and directories.
	CopyWithOptions(opts instruction.CopyOptions, resources ...string) error     // Copy files from a stage or with --chown/--chmod.
	Entrypoint(form instruction.Form) error                                      // Specify default executable.
	Env(key, value string) error                                                 // Set environment variables.
	Escape(char rune) error                                                      // Set the line continuation character. Only effective as the first line.
	Expose(ports ...string) error                                                // Describe which ports your application is listening on.
	From(image string) error                                                     // Create a new build stage from a base image.
	FromWithOptions(image string, opts instruction.FromOptions) error            // Create a named or platform specific build stage.
	Healthcheck(opts instruction.HealthcheckOptions, cmd instruction.Form) error // Check a container's health on startup.
	Label(key, value string) error                                               // Add metadata to an image.
	Onbuild(trigger instruction.Instruction) error                               // Specify instructions for when the image is used in a build.
	Run(form instruction.Form) error                                             // Execute build commands.
	RunWithOptions(form instruction.Form, opts instruction.RunOptions) error     // Execute build commands with mounts, network or security options.
	Shell(args ...string) error                                                  // Set the default shell of an image.
	Stopsignal(signal string) error                                              // Specify the system call signal for exiting a container.
	User(user, group string) error                                               // Set user and group ID.
	Volume(paths ...string) error                                                // Create volume mounts.
	Workdir(path string) error                                                   // Change working directory.
}
