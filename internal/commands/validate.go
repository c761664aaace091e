package commands

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/buildpacks/dockerphile/internal/config"
	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/internal/target"
	"github.com/buildpacks/dockerphile/pkg/dockerfile"
	"github.com/buildpacks/dockerphile/pkg/instruction"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

type ValidateFlags struct {
	IgnoreFile string
}

// Validate parses each Dockerfile concurrently and reports the result per file.
func Validate(logger logging.Logger, cfg config.Config) *cobra.Command {
	var flags ValidateFlags

	cmd := &cobra.Command{
		Use:   "validate <dockerfile>...",
		Args:  cobra.MinimumNArgs(1),
		Short: "Check that Dockerfiles parse into valid instructions",
		Long: "Parse every given Dockerfile and report its instruction count or the first invalid instruction.\n\n" +
			"ADD and COPY sources excluded by the build context's .dockerignore are reported as warnings. " +
			"The ignore file is looked up as <dockerfile>.dockerignore, then .dockerignore next to the Dockerfile.",
		Example: "dockerphile validate Dockerfile build/Dockerfile.dev",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			ignoreFile := flags.IgnoreFile
			if ignoreFile == "" {
				ignoreFile = cfg.IgnoreFile
			}

			failed, err := validateAll(cmd.Context(), logger, args, ignoreFile)
			if err != nil {
				return err
			}
			if failed > 0 {
				logger.Errorf("%d of %d Dockerfiles are invalid", failed, len(args))
				return NewSoftError("validation failed")
			}

			logger.Infof("Successfully validated %s", pluralize(len(args), "Dockerfile"))
			return nil
		}),
	}

	cmd.Flags().StringVar(&flags.IgnoreFile, "ignore-file", "", "Path to a .dockerignore used for every Dockerfile")
	AddHelpFlag(cmd, "validate")
	return cmd
}

func validateAll(ctx context.Context, logger logging.Logger, paths []string, ignoreFile string) (int, error) {
	results := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateFile(logging.PrefixedLogger(logger, p), p, ignoreFile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for _, err := range results {
		if err != nil {
			failed++
		}
	}
	return failed, nil
}

func validateFile(logger logging.Logger, dockerfilePath, ignoreFile string) error {
	doc, err := dockerfile.FromSource(dockerfilePath, dockerfile.WithLogger(logger))
	if err != nil {
		logger.Error(err.Error())
		return err
	}

	for _, inst := range doc.Instructions() {
		from, ok := inst.(instruction.FROM)
		if !ok || from.Platform == "" || target.IsBuildArg(from.Platform) {
			continue
		}
		if _, err := target.ParsePlatform(from.Platform); err != nil {
			logger.Warnf("FROM %s: %s", from.BaseImage, err.Error())
		}
	}

	matcher, ignorePath, err := loadIgnoreFile(dockerfilePath, ignoreFile)
	if err != nil {
		logger.Error(err.Error())
		return err
	}
	if matcher != nil {
		for _, inst := range doc.Instructions() {
			for _, src := range ignoredSources(matcher, inst) {
				logger.Warnf("%s source %s is excluded by %s", inst.Kind(), style.Symbol(src), style.Symbol(ignorePath))
			}
		}
	}

	logger.Info(pluralize(doc.Len(), "instruction"))
	return nil
}

// loadIgnoreFile returns nil when no ignore file applies to dockerfilePath.
func loadIgnoreFile(dockerfilePath, ignoreFile string) (*ignore.GitIgnore, string, error) {
	candidates := []string{
		dockerfilePath + ".dockerignore",
		filepath.Join(filepath.Dir(dockerfilePath), ".dockerignore"),
	}
	if ignoreFile != "" {
		candidates = []string{ignoreFile}
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) && ignoreFile == "" {
				continue
			}
			return nil, "", errors.Wrapf(err, "reading ignore file %s", style.Symbol(candidate))
		}

		matcher, err := ignore.CompileIgnoreFile(candidate)
		if err != nil {
			return nil, "", errors.Wrapf(err, "compiling ignore file %s", style.Symbol(candidate))
		}
		return matcher, candidate, nil
	}
	return nil, "", nil
}

// ignoredSources lists the build context sources of an ADD or COPY that the
// matcher excludes. COPY --from and remote ADD sources are not in the context.
func ignoredSources(matcher *ignore.GitIgnore, inst instruction.Instruction) []string {
	var resources []string
	switch i := inst.(type) {
	case instruction.ADD:
		resources = i.Resources
	case instruction.COPY:
		if i.From != "" {
			return nil
		}
		resources = i.Resources
	default:
		return nil
	}

	var out []string
	for _, src := range resources[:len(resources)-1] {
		if strings.Contains(src, "://") {
			continue
		}
		if matcher.MatchesPath(strings.TrimPrefix(path.Clean(filepath.ToSlash(src)), "/")) {
			out = append(out, src)
		}
	}
	return out
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
