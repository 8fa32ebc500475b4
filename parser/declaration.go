package parser

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	nameGuessRe  = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*\(`)
)

// parseDeclaration turns one raw block into a Function. Metadata tags are
// not looked at here.
func parseDeclaration(block RawBlock, sentinel string) (Function, error) {
	text := strings.Join(block.Lines, "\n")
	fn := Function{Line: block.StartLine}

	open := strings.Index(text, commentOpen)
	if open < 0 {
		return fn, declError(fn, ErrMissingComment)
	}
	end := strings.Index(text[open+len(commentOpen):], commentClose)
	if end < 0 {
		return fn, declError(fn, ErrMissingComment)
	}
	end += open + len(commentOpen) + len(commentClose)
	fn.Comment = text[open:end]

	lines := strings.Split(text[end:], "\n")

	// the first three non-empty lines are return type, calling convention
	// and "<name> (", everything after that is the parameter block
	var heads []string
	nameAt := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		heads = append(heads, strings.TrimSpace(line))
		if len(heads) == 3 {
			nameAt = i
			break
		}
	}

	if len(heads) > 0 {
		fn.ReturnType = heads[0]
	}
	if len(heads) < 2 || heads[1] != sentinel {
		fn.Name = guessName(lines)
		return fn, declError(fn, ErrMissingCallingConvention)
	}
	fn.CallingConvention = heads[1]

	if len(heads) < 3 {
		return fn, declError(fn, ErrMissingFunctionName)
	}
	parts := strings.Fields(heads[2])
	if len(parts) != 2 || parts[1] != "(" || !identifierRe.MatchString(parts[0]) {
		fn.Name = guessName(lines)
		return fn, declError(fn, errors.Wrapf(ErrMissingFunctionName, "unexpected %q", heads[2]))
	}
	fn.Name = parts[0]
	fn.TypedefName = UpperSnake(fn.Name)

	last := len(lines) - 1
	if nameAt < last {
		fn.Params = append([]string(nil), lines[nameAt+1:last]...)
		fn.Terminator = lines[last]
	}

	if err := validate(fn); err != nil {
		return fn, declError(fn, err)
	}
	return fn, nil
}

func validate(fn Function) error {
	switch {
	case strings.TrimSpace(fn.Comment) == "":
		return errors.Wrap(ErrMalformedDeclaration, "empty comment")
	case fn.ReturnType == "":
		return errors.Wrap(ErrMalformedDeclaration, "empty return type")
	case fn.CallingConvention == "":
		return errors.Wrap(ErrMalformedDeclaration, "empty calling convention")
	case fn.Name == "":
		return errors.Wrap(ErrMalformedDeclaration, "empty function name")
	case strings.TrimSpace(paramText(fn)) == "":
		return errors.Wrap(ErrMalformedDeclaration, "empty parameter list")
	case !isTerminator(fn.Terminator):
		return errors.Wrap(ErrMalformedDeclaration, "missing terminator")
	}
	return nil
}

// paramText is the parameter text of fn, including anything written before
// the ");" on the closing line.
func paramText(fn Function) string {
	last := strings.TrimSuffix(strings.TrimSpace(fn.Terminator), terminator)
	return strings.Join(fn.Params, "") + last
}

func guessName(lines []string) string {
	for _, line := range lines {
		if m := nameGuessRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func declError(fn Function, err error) error {
	return &DeclarationError{Function: fn.Name, Line: fn.Line, Err: err}
}
