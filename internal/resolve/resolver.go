package resolve

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

// Lister fetches the published version listing from the release index.
type Lister interface {
	ListVersions(ctx context.Context, includePrerelease bool) ([]string, error)
}

// ConstraintSource supplies an optional project-level version constraint.
// The boolean is false when the project declares none.
type ConstraintSource interface {
	Find() (string, bool)
}

// SelectFunc maps a candidate listing to the user's choice. It blocks on
// human input; failure (no terminal, abort) is a hard error.
type SelectFunc func(ctx context.Context, versions []string) (string, error)

// Config carries the resolver's injected collaborators and request state.
type Config struct {
	// ExplicitVersion, when set, wins outright and is used verbatim.
	ExplicitVersion string
	// IncludePrerelease controls the listing mode for steps that fetch.
	IncludePrerelease bool

	Lister        Lister
	Constraints   ConstraintSource
	SelectVersion SelectFunc
	Logger        *zap.Logger
}

// Resolver decides which version to install. Strategies run in strict
// priority order, short-circuiting on the first one that resolves:
// explicit request, then project constraint, then interactive choice.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver from cfg.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

type strategy func(ctx context.Context, versions []string) (string, bool, error)

// Resolve returns the version to install. The explicit path never touches
// the network; the listing is fetched once and shared by the remaining
// strategies.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.cfg.ExplicitVersion != "" {
		// Trust the caller: no validation against the index.
		r.debug("Using explicitly requested version",
			zap.String("version", r.cfg.ExplicitVersion))
		return r.cfg.ExplicitVersion, nil
	}

	versions, err := r.cfg.Lister.ListVersions(ctx, r.cfg.IncludePrerelease)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", apperrors.New(apperrors.ErrTypeParse, "release index advertised no versions")
	}

	for _, s := range []strategy{r.fromConstraint, r.fromSelection} {
		version, ok, err := s(ctx, versions)
		if err != nil {
			return "", err
		}
		if ok {
			return version, nil
		}
	}

	// fromSelection either resolves or errors, so this is unreachable.
	return "", apperrors.New(apperrors.ErrTypeInteractive, "no resolution strategy produced a version")
}

func (r *Resolver) fromConstraint(_ context.Context, versions []string) (string, bool, error) {
	if r.cfg.Constraints == nil {
		return "", false, nil
	}
	constraint, ok := r.cfg.Constraints.Find()
	if !ok {
		return "", false, nil
	}

	r.debug("Project manifest declares a constraint", zap.String("constraint", constraint))

	version, matched, err := MatchConstraint(constraint, versions)
	if err != nil {
		return "", false, err
	}
	if !matched {
		// Fall through to interactive selection rather than failing.
		r.debug("No listed version satisfies constraint", zap.String("constraint", constraint))
		return "", false, nil
	}
	return version, true, nil
}

func (r *Resolver) fromSelection(ctx context.Context, versions []string) (string, bool, error) {
	version, err := r.cfg.SelectVersion(ctx, versions)
	if err != nil {
		if apperrors.TypeOf(err) != apperrors.ErrTypeUnknown {
			return "", false, err
		}
		return "", false, apperrors.Wrap(apperrors.ErrTypeInteractive, "interactive selection failed", err)
	}
	return version, true, nil
}

func (r *Resolver) debug(msg string, fields ...zap.Field) {
	if r.cfg.Logger != nil {
		r.cfg.Logger.Debug(msg, fields...)
	}
}

// MatchConstraint parses constraint as a semantic-version range and
// returns the first version in listed order that satisfies it. A
// malformed constraint or version entry is a hard parse error; a range
// matching nothing returns (_, false, nil).
func MatchConstraint(constraint string, versions []string) (string, bool, error) {
	rng, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.ErrTypeParse,
			fmt.Sprintf("parsing constraint %q", constraint), err)
	}

	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			return "", false, apperrors.Wrap(apperrors.ErrTypeParse,
				fmt.Sprintf("parsing listed version %q", raw), err)
		}
		if rng.Check(v) {
			return raw, true, nil
		}
	}
	return "", false, nil
}
