package parser

import (
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// DefaultCallingConvention is the sentinel expected on the line after the
// return type of every declaration.
const DefaultCallingConvention = "EFIAPI"

type options struct {
	callingConvention string
}

// Option configures Parse.
type Option func(*options)

// WithCallingConvention overrides the calling convention sentinel.
func WithCallingConvention(cc string) Option {
	return func(o *options) {
		o.callingConvention = cc
	}
}

// Parse extracts the file version and every documented declaration from a
// header. Any malformed declaration fails the whole parse.
func Parse(content string, opts ...Option) (*Header, error) {
	o := options{callingConvention: DefaultCallingConvention}
	for _, opt := range opts {
		opt(&o)
	}

	content = normalizeNewlines(content)

	version, err := ExtractFileVersion(content)
	if err != nil {
		return nil, err
	}

	blocks, discards := Scan(content)
	for _, d := range discards {
		log.WithFields(log.Fields{
			"start":  d.StartLine,
			"line":   d.Line,
			"reason": d.Reason,
		}).Debug("discarded incomplete block")
	}

	header := &Header{Version: version, CopyRegions: extractCopyRegions(content)}
	seen := make(map[string]int)

	for _, block := range blocks {
		fn, err := parseDeclaration(block, o.callingConvention)
		if err != nil {
			return nil, err
		}

		if fn.Version, err = extractVersion(fn.Comment); err != nil {
			return nil, declError(fn, err)
		}
		if fn.Group, err = extractGroup(fn.Comment); err != nil {
			return nil, declError(fn, err)
		}

		if line, ok := seen[fn.Name]; ok {
			return nil, declError(fn, errors.Wrapf(ErrDuplicateFunctionName, "first declared at line %d", line))
		}
		seen[fn.Name] = fn.Line

		if fn.Version.Semver().GreaterThan(version.Semver()) {
			log.WithFields(log.Fields{
				"function": fn.Name,
				"since":    fn.Version,
				"file":     version,
			}).Warn("function is newer than the file version")
		}

		log.WithFields(log.Fields{
			"function": fn.Name,
			"since":    fn.Version,
			"group":    fn.Group,
		}).Debug("parsed")

		header.Functions = append(header.Functions, fn)
	}

	if err := checkCount(content, o.callingConvention, header.Functions); err != nil {
		return nil, err
	}

	return header, nil
}

// checkCount compares the number of lines holding only the calling
// convention with the number of parsed functions, which catches declarations
// the scanner dropped.
func checkCount(content, sentinel string, functions []Function) error {
	lines := strings.Split(content, "\n")

	var names []string
	for i, line := range lines {
		if strings.TrimSpace(line) != sentinel {
			continue
		}
		names = append(names, nameAfter(lines[i+1:]))
	}

	if len(names) == len(functions) {
		return nil
	}

	parsed := make(map[string]bool, len(functions))
	for _, fn := range functions {
		parsed[fn.Name] = true
	}

	mismatch := &CountMismatchError{Sentinels: len(names), Parsed: len(functions)}
	for _, name := range names {
		if name != "" && !parsed[name] {
			mismatch.Missing = append(mismatch.Missing, name)
		}
	}
	return mismatch
}

func nameAfter(lines []string) string {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := nameGuessRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
		return ""
	}
	return ""
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
