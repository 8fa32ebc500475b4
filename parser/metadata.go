package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	copyRegionBegin = "// COPY_REGION_BEGIN"
	copyRegionEnd   = "// COPY_REGION_END"
)

var (
	sinceRe   = regexp.MustCompile(`@since\s+(\d+)\.(\d+)\.(\d+)`)
	ingroupRe = regexp.MustCompile(`(?m)@ingroup[ \t]+(\S[^\r\n]*)$`)

	fileVersionRe = regexp.MustCompile(
		`#define[ \t]+VERSION_MAJOR[ \t]+(\d+)ULL\s+` +
			`#define[ \t]+VERSION_MINOR[ \t]+(\d+)ULL\s+` +
			`#define[ \t]+VERSION_REVISION[ \t]+(\d+)ULL\b`)
)

// extractVersion reads the @since tag of a doc comment.
func extractVersion(comment string) (Version, error) {
	m := sinceRe.FindStringSubmatch(comment)
	if m == nil {
		return Version{}, ErrMissingVersion
	}
	v, err := versionFromParts(m[1], m[2], m[3])
	if err != nil {
		return Version{}, errors.Wrap(ErrMissingVersion, err.Error())
	}
	return v, nil
}

// extractGroup reads the @ingroup tag of a doc comment.
func extractGroup(comment string) (string, error) {
	m := ingroupRe.FindStringSubmatch(comment)
	if m == nil {
		return "", ErrMissingGroup
	}
	group := strings.TrimSpace(m[1])
	if group == "" {
		return "", ErrMissingGroup
	}
	return group, nil
}

// extractCopyRegions returns the text between every "// COPY_REGION_BEGIN"
// and the next "// COPY_REGION_END", trimmed. An unterminated region ends
// the search.
func extractCopyRegions(content string) []string {
	var regions []string
	for {
		start := strings.Index(content, copyRegionBegin)
		if start < 0 {
			return regions
		}
		content = content[start+len(copyRegionBegin):]
		end := strings.Index(content, copyRegionEnd)
		if end < 0 {
			return regions
		}
		if region := strings.TrimSpace(content[:end]); region != "" {
			regions = append(regions, region)
		}
		content = content[end+len(copyRegionEnd):]
	}
}

// ExtractFileVersion finds the contiguous VERSION_MAJOR, VERSION_MINOR and
// VERSION_REVISION definitions of a header.
func ExtractFileVersion(content string) (Version, error) {
	matches := fileVersionRe.FindAllStringSubmatch(content, -1)
	switch len(matches) {
	case 0:
		return Version{}, ErrMissingFileVersion
	case 1:
	default:
		return Version{}, errors.Wrapf(ErrMissingFileVersion, "defined more than once (%d times)", len(matches))
	}
	m := matches[0]
	v, err := versionFromParts(m[1], m[2], m[3])
	if err != nil {
		return Version{}, errors.Wrap(ErrMissingFileVersion, err.Error())
	}
	return v, nil
}

func versionFromParts(major, minor, revision string) (Version, error) {
	var v Version
	var err error
	if v.Major, err = strconv.Atoi(major); err != nil {
		return Version{}, errors.Wrapf(err, "major %q", major)
	}
	if v.Minor, err = strconv.Atoi(minor); err != nil {
		return Version{}, errors.Wrapf(err, "minor %q", minor)
	}
	if v.Revision, err = strconv.Atoi(revision); err != nil {
		return Version{}, errors.Wrapf(err, "revision %q", revision)
	}
	return v, nil
}
