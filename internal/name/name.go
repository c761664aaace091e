package name

import (
	"fmt"
	"strings"

	gname "github.com/google/go-containerregistry/pkg/name"

	"github.com/buildpacks/dockerphile/internal/style"
	"github.com/buildpacks/dockerphile/pkg/logging"
)

const scratch = "scratch"

// Reference is a FROM base image split into its registry parts.
type Reference struct {
	Registry   string
	Repository string
	Identifier string // tag or digest
}

// ParseBaseImage resolves image against the default registry. It reports
// false for scratch, for images built from ARG references and for anything
// that is not a valid reference.
func ParseBaseImage(image string) (Reference, bool) {
	if !IsResolvable(image) {
		return Reference{}, false
	}
	ref, err := gname.ParseReference(image, gname.WeakValidation)
	if err != nil {
		return Reference{}, false
	}
	return Reference{
		Registry:   ref.Context().RegistryStr(),
		Repository: ref.Context().RepositoryStr(),
		Identifier: ref.Identifier(),
	}, true
}

// IsResolvable reports whether image can name a registry image at all.
func IsResolvable(image string) bool {
	return image != scratch && !strings.Contains(image, "$")
}

func Validate(image string) error {
	_, err := gname.ParseReference(image, gname.WeakValidation)
	return err
}

// TranslateRegistry rewrites image to pull from the mirror configured for its
// registry. The "*" key mirrors every registry.
func TranslateRegistry(image string, registryMirrors map[string]string, logger logging.Logger) (string, error) {
	if len(registryMirrors) == 0 || !IsResolvable(image) {
		return image, nil
	}

	srcRef, err := gname.ParseReference(image, gname.WeakValidation)
	if err != nil {
		return "", err
	}

	srcContext := srcRef.Context()
	registryMirror, ok := getMirror(srcContext, registryMirrors)
	if !ok {
		return image, nil
	}

	separator := ":"
	if _, isDigest := srcRef.(gname.Digest); isDigest {
		separator = "@"
	}
	refName := fmt.Sprintf("%s/%s%s%s", registryMirror, srcContext.RepositoryStr(), separator, srcRef.Identifier())
	if _, err = gname.ParseReference(refName, gname.WeakValidation); err != nil {
		return "", err
	}

	logger.Debugf("Using mirror %s for %s", style.Symbol(refName), image)
	return refName, nil
}

func getMirror(repo gname.Repository, registryMirrors map[string]string) (string, bool) {
	mirror, ok := registryMirrors["*"]
	if ok {
		return mirror, ok
	}

	mirror, ok = registryMirrors[repo.RegistryStr()]
	return mirror, ok
}
