package core

import (
	"encoding/json"
	"testing"
)

func TestEntry_ResolvedTitle(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "pref wins over all others",
			entry: Entry{Pref: "Computer science", PrefLabel: "x", Title: "y", Label: "z"},
			want:  "Computer science",
		},
		{
			name:  "prefLabel when pref absent",
			entry: Entry{PrefLabel: "Music", Title: "y", Label: "z"},
			want:  "Music",
		},
		{
			name:  "title when pref and prefLabel absent",
			entry: Entry{Title: "History", Label: "z"},
			want:  "History",
		},
		{
			name:  "label as last resort",
			entry: Entry{Label: "Philosophy"},
			want:  "Philosophy",
		},
		{
			name:  "whitespace-only candidate is skipped",
			entry: Entry{Pref: "   ", Title: "Arts"},
			want:  "Arts",
		},
		{
			name:  "no candidates",
			entry: Entry{ID: "004"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.ResolvedTitle(); got != tt.want {
				t.Errorf("ResolvedTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntry_ResolvedNotation(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "explicit notation",
			entry: Entry{ID: "x1", Notation: "004.5"},
			want:  "004.5",
		},
		{
			name:  "notation is trimmed",
			entry: Entry{ID: "x1", Notation: "  T1:01  "},
			want:  "T1:01",
		},
		{
			name:  "numeric id used when notation absent",
			entry: Entry{ID: "780"},
			want:  "780",
		},
		{
			name:  "non-numeric id is not a notation",
			entry: Entry{ID: "opaque-key"},
			want:  "",
		},
		{
			name:  "empty notation falls back to numeric id",
			entry: Entry{ID: "004", Notation: "   "},
			want:  "004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.ResolvedNotation(); got != tt.want {
				t.Errorf("ResolvedNotation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Text
	}{
		{
			name: "plain string",
			data: `"Computer science"`,
			want: "Computer science",
		},
		{
			name: "language map with en",
			data: `{"en": "Music", "de": "Musik"}`,
			want: "Music",
		},
		{
			name: "language map without en picks first language",
			data: `{"fr": "Musique", "de": "Musik"}`,
			want: "Musik",
		},
		{
			name: "empty map",
			data: `{}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	t.Run("scalar wraps into one-element list", func(t *testing.T) {
		var got StringList
		if err := json.Unmarshal([]byte(`"Class here works on computing"`), &got); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if len(got) != 1 || got[0] != "Class here works on computing" {
			t.Errorf("StringList = %v", got)
		}
	})

	t.Run("list stays a list", func(t *testing.T) {
		var got StringList
		if err := json.Unmarshal([]byte(`["one", "two"]`), &got); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if len(got) != 2 || got[0] != "one" || got[1] != "two" {
			t.Errorf("StringList = %v", got)
		}
	})
}

func TestScope_Texts(t *testing.T) {
	scope := &Scope{
		ClassHere: StringList{"a"},
		Including: StringList{"b", "c"},
		Notes:     StringList{"d"},
		SeeAlso:   StringList{"e"},
	}
	got := scope.Texts()
	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("Texts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Texts()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	var nilScope *Scope
	if texts := nilScope.Texts(); texts != nil {
		t.Errorf("nil scope Texts() = %v, want nil", texts)
	}
}

func TestEntry_UnmarshalFullRecord(t *testing.T) {
	data := `{
		"id": "004",
		"notation": "004",
		"prefLabel": {"en": "Computer science"},
		"scope": {
			"classHere": "Class here works on computing",
			"including": ["programming", "data processing"],
			"seeAlso": "For mathematics, see 510"
		},
		"table": ""
	}`

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if entry.ResolvedTitle() != "Computer science" {
		t.Errorf("ResolvedTitle() = %q", entry.ResolvedTitle())
	}
	if entry.ResolvedNotation() != "004" {
		t.Errorf("ResolvedNotation() = %q", entry.ResolvedNotation())
	}
	if len(entry.Scope.Texts()) != 4 {
		t.Errorf("scope texts = %v", entry.Scope.Texts())
	}
}
