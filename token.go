package atlas

import "fmt"

// Token is a flush-sequence marker. Tokens are totally ordered: a plot whose
// last-use token is older than the recorder's next flush token is no longer
// referenced by work the GPU has yet to execute.
type Token uint64

// InvalidToken is the zero token, older than every issued token.
const InvalidToken Token = 0

// Next returns the token that follows t.
func (t Token) Next() Token {
	return t + 1
}

// InInterval reports whether start <= t <= end.
func (t Token) InInterval(start, end Token) bool {
	return t >= start && t <= end
}

// IsValid reports whether t was issued by a tracker.
func (t Token) IsValid() bool {
	return t != InvalidToken
}

// String returns a human-readable form of the token.
func (t Token) String() string {
	if t == InvalidToken {
		return "Token(invalid)"
	}
	return fmt.Sprintf("Token(%d)", uint64(t))
}

// TokenTracker issues draw and flush tokens for one recorder.
//
// Work recorded between two flushes is stamped with NextFlushToken; once
// IssueFlushToken is called that work is considered submitted and the plots
// it touched become evictable.
type TokenTracker struct {
	currentDraw  Token
	currentFlush Token
}

// NextDrawToken returns the token the next IssueDrawToken call will return.
func (tt *TokenTracker) NextDrawToken() Token {
	return tt.currentDraw.Next()
}

// IssueDrawToken advances and returns the draw token.
func (tt *TokenTracker) IssueDrawToken() Token {
	tt.currentDraw++
	return tt.currentDraw
}

// NextFlushToken returns the token stamped on work recorded for the
// pending flush.
func (tt *TokenTracker) NextFlushToken() Token {
	return tt.currentFlush.Next()
}

// IssueFlushToken marks the pending flush as submitted and returns its token.
func (tt *TokenTracker) IssueFlushToken() Token {
	tt.currentFlush++
	return tt.currentFlush
}
