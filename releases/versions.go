package releases

import (
	"regexp"
	"strings"
)

// The release index is an HTML directory listing; a version is advertised
// as a path segment inside an href, e.g. href="/terraform/1.3.0/". Matching
// is line-oriented and anchored on the closing quote so that incidental
// numbers elsewhere in the document are ignored.
var (
	releaseVersionRE    = regexp.MustCompile(`/(\d+\.\d+\.\d+)/?"`)
	prereleaseVersionRE = regexp.MustCompile(`/(\d+\.\d+\.\d+(?:-[a-zA-Z0-9-]+)?)/?"`)
)

// CaptureVersions extracts advertised version strings from the raw index
// document, in document order, duplicates preserved. At most one version is
// captured per line; lines without a match are skipped. With
// includePrerelease set, suffixed versions such as 1.3.0-rc1 are accepted;
// otherwise any pre-release suffix disqualifies the line.
func CaptureVersions(contents string, includePrerelease bool) []string {
	re := releaseVersionRE
	if includePrerelease {
		re = prereleaseVersionRE
	}

	var versions []string
	for _, line := range strings.Split(contents, "\n") {
		if m := re.FindStringSubmatch(line); m != nil {
			versions = append(versions, m[1])
		}
	}
	return versions
}
