package parser

import "strings"

// State is a scanner state.
type State int

const (
	Idle State = iota
	InComment
	InDeclaration
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case InComment:
		return "InComment"
	case InDeclaration:
		return "InDeclaration"
	default:
		return "Unknown"
	}
}

// DiscardReason says why a partial block was dropped.
type DiscardReason string

const (
	DiscardResync DiscardReason = "resync"
	DiscardMacro  DiscardReason = "macro"
	DiscardEOF    DiscardReason = "eof"
)

// Discard records a block abandoned by the scanner. Discards are not errors.
type Discard struct {
	StartLine int
	Line      int
	Reason    DiscardReason
}

const (
	commentOpen  = "/**"
	commentClose = "*/"
	macroMarker  = "#define"
	terminator   = ");"
)

// Scanner splits header text into raw declaration blocks. It is a line
// driven state machine: Feed each line in order, then call Finish.
type Scanner struct {
	state    State
	block    *RawBlock
	blocks   []RawBlock
	discards []Discard
}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan runs a fresh Scanner over content.
func Scan(content string) ([]RawBlock, []Discard) {
	s := NewScanner()
	for i, line := range strings.Split(content, "\n") {
		s.Feed(i+1, line)
	}
	s.Finish()
	return s.Blocks(), s.Discards()
}

func (s *Scanner) State() State { return s.state }

func (s *Scanner) Blocks() []RawBlock { return s.blocks }

func (s *Scanner) Discards() []Discard { return s.discards }

// Feed advances the machine by one source line. lineNo is 1-based.
func (s *Scanner) Feed(lineNo int, line string) {
	if isCommentOpen(line) {
		if s.state != Idle {
			s.discard(lineNo, DiscardResync)
		}
		s.begin(lineNo, line)
		return
	}

	switch s.state {
	case InComment:
		s.comment(line)
	case InDeclaration:
		s.declaration(lineNo, line)
	}
}

// Finish drops a block left open at end of input.
func (s *Scanner) Finish() {
	if s.state != Idle {
		s.discard(0, DiscardEOF)
	}
}

func (s *Scanner) begin(lineNo int, line string) {
	s.block = &RawBlock{StartLine: lineNo, Lines: []string{line}}
	s.state = InComment

	rest := strings.TrimSpace(line)[len(commentOpen):]
	if strings.Contains(rest, commentClose) {
		s.state = InDeclaration
	}
}

func (s *Scanner) comment(line string) {
	s.block.Lines = append(s.block.Lines, line)
	if strings.Contains(line, commentClose) {
		s.state = InDeclaration
	}
}

func (s *Scanner) declaration(lineNo int, line string) {
	if strings.Contains(line, macroMarker) {
		s.discard(lineNo, DiscardMacro)
		return
	}

	s.block.Lines = append(s.block.Lines, line)
	if isTerminator(line) {
		s.blocks = append(s.blocks, *s.block)
		s.reset()
	}
}

func (s *Scanner) discard(lineNo int, reason DiscardReason) {
	if lineNo == 0 {
		lineNo = s.block.StartLine + len(s.block.Lines) - 1
	}
	s.discards = append(s.discards, Discard{
		StartLine: s.block.StartLine,
		Line:      lineNo,
		Reason:    reason,
	})
	s.reset()
}

func (s *Scanner) reset() {
	s.block = nil
	s.state = Idle
}

func isCommentOpen(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentOpen)
}

func isTerminator(line string) bool {
	return strings.HasSuffix(strings.TrimSpace(line), terminator)
}
