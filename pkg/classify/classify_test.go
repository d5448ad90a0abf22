package classify

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		in       string
		kind     Kind
		language string
		output   string
	}{
		"empty is plain": {
			in:     "",
			kind:   KindPlain,
			output: "",
		},
		"plain sentence": {
			in:     "hello world",
			kind:   KindPlain,
			output: "hello world",
		},
		"heading and list": {
			in:     "# Title\n- item",
			kind:   KindMarkdown,
			output: "# Title\n- item",
		},
		"bold text": {
			in:     "**bold** text",
			kind:   KindMarkdown,
			output: "**bold** text",
		},
		"no-break space after keyword": {
			in:       "const\u00a0x = 1",
			kind:     KindFencedCode,
			language: "javascript",
			output:   "```javascript\nconst\u00a0x = 1\n```",
		},
		"ideographic space after heading": {
			in:     "#\u3000Title",
			kind:   KindMarkdown,
			output: "#\u3000Title",
		},
		"javascript": {
			in:       "const x = 1;\nfunction f() {}",
			kind:     KindFencedCode,
			language: "javascript",
			output:   "```javascript\nconst x = 1;\nfunction f() {}\n```",
		},
		"arrow function": {
			in:       "x => x * 2",
			kind:     KindFencedCode,
			language: "javascript",
			output:   "```javascript\nx => x * 2\n```",
		},
		"typescript interface": {
			in:       "interface User {\n  name: string\n}",
			kind:     KindFencedCode,
			language: "typescript",
			output:   "```typescript\ninterface User {\n  name: string\n}\n```",
		},
		"python": {
			in:       "def foo():\n    return 1",
			kind:     KindFencedCode,
			language: "python",
			output:   "```python\ndef foo():\n    return 1\n```",
		},
		"html": {
			in:       "<div>hello</div>",
			kind:     KindFencedCode,
			language: "html",
			output:   "```html\n<div>hello</div>\n```",
		},
		"sql": {
			in:       "SELECT * FROM users;",
			kind:     KindFencedCode,
			language: "sql",
			output:   "```sql\nSELECT * FROM users;\n```",
		},
		// A brace-only object hits the css pattern before json.
		"object literal": {
			in:       `{"a": 1}`,
			kind:     KindFencedCode,
			language: "css",
			output:   "```css\n{\"a\": 1}\n```",
		},
		"code without a known language": {
			in:     "@Override\npublic void run() {}",
			kind:   KindFencedCode,
			output: "```\n@Override\npublic void run() {}\n```",
		},
		"already fenced": {
			in:       "```go\nfmt.Println(1)\n```",
			kind:     KindFencedCode,
			language: "go",
			output:   "```go\nfmt.Println(1)\n```",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Classify(tc.in)
			if got.Kind != tc.kind {
				t.Errorf("kind = %q, want %q", got.Kind, tc.kind)
			}
			if got.Language != tc.language {
				t.Errorf("language = %q, want %q", got.Language, tc.language)
			}
			if got.Output != tc.output {
				t.Errorf("output = %q, want %q", got.Output, tc.output)
			}
		})
	}
}

func TestClassifyFencedInputIsUnchanged(t *testing.T) {
	inputs := []string{
		"```",
		"``````",
		"```\nplain body\n```",
		"```sql\nSELECT 1;\n```",
		"```not really closed but ends```",
	}
	for _, in := range inputs {
		got := Classify(in)
		if got.Output != in {
			t.Errorf("Classify(%q).Output = %q, want input unchanged", in, got.Output)
		}
		if got.Kind != KindFencedCode {
			t.Errorf("Classify(%q).Kind = %q, want %q", in, got.Kind, KindFencedCode)
		}
	}
}

func TestClassifyCodeIsWrappedAroundOriginal(t *testing.T) {
	inputs := []string{
		"let a = 2",
		"for (i = 0; i < 3; i++) {\n}",
		"  if (ready) go()",
		"import os\nprint(os.name)",
		"private int count;",
		"a {\n  color: red;\n}",
		"SELECT 1;\n",
	}
	for _, in := range inputs {
		got := Classify(in)
		if got.Kind != KindFencedCode {
			t.Fatalf("Classify(%q).Kind = %q, want code", in, got.Kind)
		}
		prefix := "```" + got.Language + "\n"
		if !strings.HasPrefix(got.Output, prefix) {
			t.Errorf("output %q does not start with %q", got.Output, prefix)
		}
		if !strings.HasSuffix(got.Output, "\n```") {
			t.Errorf("output %q does not end with a closing fence line", got.Output)
		}
		body, lang := Unfence(got.Output)
		if body != in {
			t.Errorf("enclosed text = %q, want %q", body, in)
		}
		if lang != got.Language {
			t.Errorf("fence info = %q, want %q", lang, got.Language)
		}
		again := Classify(got.Output)
		if again.Output != got.Output {
			t.Errorf("classifying formatted output changed it: %q", again.Output)
		}
	}
}

func TestDetectLanguagePriority(t *testing.T) {
	if got := DetectLanguage("export type A = { b: string }"); got != "javascript" {
		t.Fatalf("expected javascript to win over typescript, got %q", got)
	}
	if got := DetectLanguage("nothing to see"); got != "" {
		t.Fatalf("expected no language, got %q", got)
	}
	want := []string{"javascript", "typescript", "python", "html", "css", "sql", "json", "markdown"}
	got := Languages()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Languages() = %v, want %v", got, want)
	}
}

func TestFormat(t *testing.T) {
	if got := Format("plain"); got != "plain" {
		t.Fatalf("Format(plain) = %q", got)
	}
	if got := Format("var a = 1"); got != "```javascript\nvar a = 1\n```" {
		t.Fatalf("Format(code) = %q", got)
	}
}
