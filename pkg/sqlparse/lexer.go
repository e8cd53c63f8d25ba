package sqlparse

// lexer walks the input byte by byte, producing the ordered token stream.
// It never fails: every byte of the input lands in exactly one token, and
// malformed input (an unterminated quote) consumes to end of input.
type lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// Tokenize splits text into an ordered token sequence covering the entire
// input with no gaps or overlaps. It never returns an error.
func Tokenize(text string) []Token {
	l := newLexer(text)
	var tokens []Token

	for l.pos < len(l.input) {
		start := l.pos
		ch := l.ch

		var tok Token
		switch {
		case isSpace(ch):
			for isSpace(l.peekChar()) {
				l.readChar()
			}
			tok = l.emit(start, KindWhitespace)

		case ch == '\'' || ch == '"':
			tok = l.readString(start, ch)

		case ch == '(' || ch == ')' || ch == ',' || ch == ';' || ch == '.':
			tok = l.emit(start, KindPunctuation)

		case ch == '=' || ch == '<' || ch == '>' || ch == '!':
			next := l.peekChar()
			if (ch == '<' && (next == '=' || next == '>')) ||
				(ch == '>' && next == '=') ||
				(ch == '!' && next == '=') {
				l.readChar()
			}
			tok = l.emit(start, KindOperator)

		case isLetter(ch):
			for isLetter(l.peekChar()) || isDigit(l.peekChar()) {
				l.readChar()
			}
			tok = l.emit(start, KindIdentifier)
			if IsReserved(tok.Text) {
				tok.Kind = KindKeyword
			}

		case isDigit(ch):
			tok = l.readNumber(start)

		default:
			// Fallback: single-character punctuation guarantees coverage.
			tok = l.emit(start, KindPunctuation)
		}

		tokens = append(tokens, tok)
		l.readChar()
	}

	return tokens
}

// emit builds a token spanning [start, l.pos] with the current position as
// the last included byte.
func (l *lexer) emit(start int, kind TokenKind) Token {
	end := l.pos + 1
	return Token{
		Text:  l.input[start:end],
		Start: start,
		End:   end,
		Kind:  kind,
	}
}

// readString consumes a quoted literal opened by quote. A backslash escapes
// the next character. The literal runs to the matching unescaped quote or,
// for malformed input, to end of input.
func (l *lexer) readString(start int, quote byte) Token {
	escaped := false
	for l.readPos < len(l.input) {
		l.readChar()
		if !escaped && l.ch == quote {
			break
		}
		escaped = l.ch == '\\' && !escaped
	}
	return l.emit(start, KindLiteral)
}

// readNumber consumes a digit run with at most one decimal point.
func (l *lexer) readNumber(start int) Token {
	hasDot := false
	for {
		next := l.peekChar()
		if isDigit(next) {
			l.readChar()
			continue
		}
		if next == '.' && !hasDot {
			hasDot = true
			l.readChar()
			continue
		}
		break
	}
	return l.emit(start, KindLiteral)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
