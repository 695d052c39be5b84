package atlas

import "testing"

func TestToken_InInterval(t *testing.T) {
	tests := []struct {
		tok        Token
		start, end Token
		want       bool
	}{
		{5, 1, 10, true},
		{1, 1, 10, true},
		{10, 1, 10, true},
		{0, 1, 10, false},
		{11, 1, 10, false},
		{InvalidToken, InvalidToken, 3, true},
	}

	for _, tt := range tests {
		if got := tt.tok.InInterval(tt.start, tt.end); got != tt.want {
			t.Errorf("%v.InInterval(%v, %v) = %v, want %v", tt.tok, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTokenTracker(t *testing.T) {
	var tt TokenTracker

	if got := tt.NextFlushToken(); got != 1 {
		t.Errorf("NextFlushToken() = %v, want 1", got)
	}
	if got := tt.IssueFlushToken(); got != 1 {
		t.Errorf("IssueFlushToken() = %v, want 1", got)
	}
	if got := tt.NextFlushToken(); got != 2 {
		t.Errorf("NextFlushToken() after issue = %v, want 2", got)
	}

	if got := tt.NextDrawToken(); got != 1 {
		t.Errorf("NextDrawToken() = %v, want 1", got)
	}
	tt.IssueDrawToken()
	tt.IssueDrawToken()
	if got := tt.NextDrawToken(); got != 3 {
		t.Errorf("NextDrawToken() = %v, want 3", got)
	}
	if tt.NextFlushToken() != 2 {
		t.Error("draw tokens advanced the flush token")
	}
}

func TestToken_String(t *testing.T) {
	if got := InvalidToken.String(); got != "Token(invalid)" {
		t.Errorf("InvalidToken.String() = %q", got)
	}
	if got := Token(7).String(); got != "Token(7)" {
		t.Errorf("Token(7).String() = %q", got)
	}
	if InvalidToken.IsValid() || !Token(1).IsValid() {
		t.Error("IsValid() wrong")
	}
}
