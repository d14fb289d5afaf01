package message

import (
	"strings"
	"testing"
)

func TestNewCommitMessage(t *testing.T) {
	tests := []struct {
		name        string
		rawText     string
		wantType    string
		wantScope   string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "simple feat commit",
			rawText:     "feat: add new feature",
			wantType:    "feat",
			wantSubject: "add new feature",
		},
		{
			name:        "feat with scope",
			rawText:     "feat(auth): add google login",
			wantType:    "feat",
			wantScope:   "auth",
			wantSubject: "add google login",
		},
		{
			name:        "breaking marker",
			rawText:     "refactor(api)!: drop v1 routes",
			wantType:    "refactor",
			wantScope:   "api",
			wantSubject: "drop v1 routes",
		},
		{
			name:        "commit with bullet body",
			rawText:     "feat: add feature\n\n- wire handler\n- add tests",
			wantType:    "feat",
			wantSubject: "add feature",
			wantBody:    "- wire handler\n- add tests",
		},
		{
			name:        "unknown type kept as subject",
			rawText:     "update: stuff",
			wantSubject: "update: stuff",
		},
		{
			name:    "empty input",
			rawText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := NewCommitMessage(tt.rawText)
			if cm.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", cm.Type, tt.wantType)
			}
			if cm.Scope != tt.wantScope {
				t.Errorf("Scope = %q, want %q", cm.Scope, tt.wantScope)
			}
			if cm.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", cm.Subject, tt.wantSubject)
			}
			if cm.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", cm.Body, tt.wantBody)
			}
		})
	}
}

func TestCommitMessage_String(t *testing.T) {
	tests := []struct {
		name string
		cm   *CommitMessage
		want string
	}{
		{
			name: "simple message",
			cm:   &CommitMessage{Type: "feat", Subject: "add feature"},
			want: "feat: add feature",
		},
		{
			name: "message with scope",
			cm:   &CommitMessage{Type: "fix", Scope: "auth", Subject: "fix login"},
			want: "fix(auth): fix login",
		},
		{
			name: "message with body",
			cm:   &CommitMessage{Type: "feat", Subject: "add feature", Body: "- detail"},
			want: "feat: add feature\n\n- detail",
		},
		{
			name: "no type",
			cm:   &CommitMessage{Subject: "just a subject"},
			want: "just a subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cm.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommitMessage_ValidateWithWarnings(t *testing.T) {
	sixty := "add a subject that is longer than fifty characters in total"

	tests := []struct {
		name         string
		cm           *CommitMessage
		format       Format
		wantValid    bool
		wantErrors   int
		wantWarnings int
	}{
		{
			name:      "valid short subject",
			cm:        &CommitMessage{Type: "feat", Subject: "add feature"},
			format:    FormatStrictSingleLine,
			wantValid: true,
		},
		{
			name:      "sixty chars fits the strict limit",
			cm:        &CommitMessage{Type: "feat", Subject: sixty},
			format:    FormatStrictSingleLine,
			wantValid: true,
		},
		{
			name:         "sixty chars exceeds the body format limit",
			cm:           &CommitMessage{Type: "feat", Subject: sixty},
			format:       FormatConventionalWithBody,
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:         "over 150 chars in strict",
			cm:           &CommitMessage{Type: "feat", Subject: strings.Repeat("a", 150)},
			format:       FormatStrictSingleLine,
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:         "body under strict format",
			cm:           &CommitMessage{Type: "feat", Subject: "x", Body: "- y"},
			format:       FormatStrictSingleLine,
			wantValid:    true,
			wantWarnings: 1,
		},
		{
			name:      "body allowed",
			cm:        &CommitMessage{Type: "feat", Subject: "x", Body: "- y"},
			format:    FormatConventionalWithBody,
			wantValid: true,
		},
		{
			name:       "missing type and subject",
			cm:         &CommitMessage{},
			format:     FormatStrictSingleLine,
			wantValid:  false,
			wantErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.cm.ValidateWithWarnings(tt.format)
			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", result.IsValid, tt.wantValid)
			}
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("len(Errors) = %d, want %d: %v", len(result.Errors), tt.wantErrors, result.Errors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("len(Warnings) = %d, want %d: %v", len(result.Warnings), tt.wantWarnings, result.Warnings)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if issues := Check("feat(auth): add google login", FormatStrictSingleLine); len(issues) != 0 {
		t.Errorf("Check() = %v, want no issues", issues)
	}

	issues := Check("added some stuff", FormatStrictSingleLine)
	if len(issues) != 1 || !strings.Contains(issues[0], "missing commit type") {
		t.Errorf("Check() = %v, want a single missing type issue", issues)
	}
}

func TestCheck_CommitTypes(t *testing.T) {
	for _, ct := range ValidCommitTypes {
		if issues := Check(ct+": update things", FormatStrictSingleLine); len(issues) != 0 {
			t.Errorf("Check(%q) = %v, want no issues", ct, issues)
		}
	}
	for _, ct := range []string{"feature", "FEAT", "wip"} {
		if issues := Check(ct+": update things", FormatStrictSingleLine); len(issues) == 0 {
			t.Errorf("Check(%q) = no issues, want a missing type issue", ct)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatStrictSingleLine, false},
		{"strict-single-line", FormatStrictSingleLine, false},
		{" Conventional-With-Body ", FormatConventionalWithBody, false},
		{"markdown", FormatStrictSingleLine, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormat_Limits(t *testing.T) {
	if got := FormatStrictSingleLine.MaxSubjectLength(); got != 150 {
		t.Errorf("strict MaxSubjectLength() = %d, want 150", got)
	}
	if got := FormatConventionalWithBody.MaxSubjectLength(); got != 50 {
		t.Errorf("body MaxSubjectLength() = %d, want 50", got)
	}
	if FormatStrictSingleLine.AllowsBody() {
		t.Error("strict format should not allow a body")
	}
	if FormatConventionalWithBody.String() != "conventional-with-body" {
		t.Errorf("String() = %q", FormatConventionalWithBody.String())
	}
}
