package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

// ---------------- mocks ----------------

type mockLister struct {
	versions []string
	err      error
	calls    int
}

func (m *mockLister) ListVersions(_ context.Context, _ bool) ([]string, error) {
	m.calls++
	return m.versions, m.err
}

type mockConstraints struct {
	constraint string
	ok         bool
}

func (m mockConstraints) Find() (string, bool) { return m.constraint, m.ok }

func recordingSelector(choice string, err error) (SelectFunc, *int) {
	calls := new(int)
	return func(_ context.Context, versions []string) (string, error) {
		*calls++
		if err != nil {
			return "", err
		}
		if choice == "" && len(versions) > 0 {
			return versions[0], nil
		}
		return choice, nil
	}, calls
}

// ---------------------------------------

func TestResolver_ExplicitVersionShortCircuits(t *testing.T) {
	lister := &mockLister{versions: []string{"1.3.0"}}
	selector, selectorCalls := recordingSelector("", nil)

	r := NewResolver(Config{
		ExplicitVersion: "0.13.7",
		Lister:          lister,
		Constraints:     mockConstraints{constraint: "1.0.0", ok: true},
		SelectVersion:   selector,
	})

	version, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0.13.7", version)
	require.Zero(t, lister.calls, "explicit path must not fetch the index")
	require.Zero(t, *selectorCalls, "explicit path must not prompt")
}

func TestResolver_ConstraintMatch(t *testing.T) {
	lister := &mockLister{versions: []string{"1.3.0", "1.2.0", "1.1.0", "1.0.0", "0.15.0"}}
	selector, selectorCalls := recordingSelector("", nil)

	r := NewResolver(Config{
		Lister:        lister,
		Constraints:   mockConstraints{constraint: ">= 1.1.0, < 1.3.0", ok: true},
		SelectVersion: selector,
	})

	version, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.2.0", version, "first match in listed order wins")
	require.Zero(t, *selectorCalls)
}

func TestResolver_ExactConstraint(t *testing.T) {
	lister := &mockLister{versions: []string{"1.0.0"}}
	selector, _ := recordingSelector("", nil)

	r := NewResolver(Config{
		Lister:        lister,
		Constraints:   mockConstraints{constraint: "1.0.0", ok: true},
		SelectVersion: selector,
	})

	version, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.0.0", version)
}

func TestResolver_NoConstraintFallsThroughToSelector(t *testing.T) {
	lister := &mockLister{versions: []string{"1.3.0", "1.2.0"}}
	selector, selectorCalls := recordingSelector("1.2.0", nil)

	r := NewResolver(Config{
		Lister:        lister,
		Constraints:   mockConstraints{},
		SelectVersion: selector,
	})

	version, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.2.0", version)
	require.Equal(t, 1, *selectorCalls)
}

func TestResolver_UnmatchedConstraintFallsThroughToSelector(t *testing.T) {
	lister := &mockLister{versions: []string{"1.3.0", "1.2.0"}}
	selector, selectorCalls := recordingSelector("1.3.0", nil)

	r := NewResolver(Config{
		Lister:        lister,
		Constraints:   mockConstraints{constraint: ">= 9.0.0", ok: true},
		SelectVersion: selector,
	})

	version, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.3.0", version)
	require.Equal(t, 1, *selectorCalls)
}

func TestResolver_ListerErrorPropagates(t *testing.T) {
	lister := &mockLister{err: apperrors.New(apperrors.ErrTypeNetwork, "index unreachable")}
	selector, _ := recordingSelector("", nil)

	r := NewResolver(Config{Lister: lister, SelectVersion: selector})

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	require.Equal(t, apperrors.ErrTypeNetwork, apperrors.TypeOf(err))
}

func TestResolver_SelectorAbortIsInteractiveError(t *testing.T) {
	lister := &mockLister{versions: []string{"1.3.0"}}
	selector, _ := recordingSelector("", errors.New("selection aborted"))

	r := NewResolver(Config{Lister: lister, SelectVersion: selector})

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	require.Equal(t, apperrors.ErrTypeInteractive, apperrors.TypeOf(err))
}

func TestMatchConstraint(t *testing.T) {
	listing := []string{"1.3.0", "1.2.0", "1.1.0", "1.0.0", "0.15.0"}

	tests := []struct {
		name            string
		constraint      string
		versions        []string
		expectedVersion string
		expectedMatch   bool
		expectedErrType apperrors.ErrorType
	}{
		{"exact", "1.0.0", listing, "1.0.0", true, apperrors.ErrTypeUnknown},
		{"range_first_listed_wins", ">= 1.1.0, < 1.3.0", listing, "1.2.0", true, apperrors.ErrTypeUnknown},
		{"open_range", ">= 0.15.0", listing, "1.3.0", true, apperrors.ErrTypeUnknown},
		{"no_match", ">= 9.0.0", listing, "", false, apperrors.ErrTypeUnknown},
		{"malformed_constraint", "not-a-range", listing, "", false, apperrors.ErrTypeParse},
		{"malformed_version_entry", ">= 1.0.0", []string{"banana"}, "", false, apperrors.ErrTypeParse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			version, matched, err := MatchConstraint(tc.constraint, tc.versions)

			if tc.expectedErrType != apperrors.ErrTypeUnknown {
				require.Error(t, err)
				require.Equal(t, tc.expectedErrType, apperrors.TypeOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedMatch, matched)
			require.Equal(t, tc.expectedVersion, version)
		})
	}
}
