// Package classify decides whether a text submission is source code, markdown
// or plain text, and wraps code in a fenced block tagged with a best-guess
// language.
package classify

import (
	"regexp"
	"strings"
)

// Kind is the outcome of classifying a submission.
type Kind string

const (
	// KindFencedCode is code, either already fenced or wrapped by Classify.
	KindFencedCode Kind = "fenced-code"
	// KindMarkdown is markdown left as written.
	KindMarkdown Kind = "markdown"
	// KindPlain is anything else, also left as written.
	KindPlain Kind = "plain"
)

const fence = "```"

// Result describes a classified submission.
type Result struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Output   string `json:"output" yaml:"output"`
}

// Classify inspects raw and returns its kind along with the text to store.
// Code is wrapped in a fenced block; everything else is returned unchanged.
func Classify(raw string) Result {
	if IsFenced(raw) {
		return Result{Kind: KindFencedCode, Language: fenceInfo(raw), Output: raw}
	}
	if IsCode(raw) {
		lang := DetectLanguage(raw)
		return Result{Kind: KindFencedCode, Language: lang, Output: Fence(raw, lang)}
	}
	if IsMarkdown(raw) {
		return Result{Kind: KindMarkdown, Output: raw}
	}
	return Result{Kind: KindPlain, Output: raw}
}

// Format is shorthand for Classify(raw).Output.
func Format(raw string) string {
	return Classify(raw).Output
}

// IsFenced reports whether text already starts and ends with a fence.
func IsFenced(text string) bool {
	return strings.HasPrefix(text, fence) && strings.HasSuffix(text, fence)
}

// Fence wraps text in a fenced block annotated with lang.
func Fence(text, lang string) string {
	return fence + lang + "\n" + text + "\n" + fence
}

// Unfence strips the outer fence of a fenced block, returning the body and the
// info string. Text that is not fenced comes back as is.
func Unfence(text string) (body, lang string) {
	if !IsFenced(text) || len(text) < 2*len(fence) {
		return text, ""
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(text, fence), fence)
	first, rest, found := strings.Cut(inner, "\n")
	if !found {
		return inner, ""
	}
	return strings.TrimSuffix(rest, "\n"), strings.TrimSpace(first)
}

func fenceInfo(text string) string {
	first, _, found := strings.Cut(strings.TrimPrefix(text, fence), "\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(first)
}

// IsCode reports whether any code indicator matches text.
func IsCode(text string) bool {
	return anyMatch(codeIndicators, text)
}

// IsMarkdown reports whether any markdown indicator matches text.
func IsMarkdown(text string) bool {
	return anyMatch(markdownIndicators, text)
}

// DetectLanguage returns the first language whose pattern matches text, or ""
// when none does.
func DetectLanguage(text string) string {
	for _, l := range languages {
		if l.re.MatchString(text) {
			return l.tag
		}
	}
	return ""
}

// Languages lists the tags DetectLanguage can return, in priority order.
func Languages() []string {
	tags := make([]string, len(languages))
	for i, l := range languages {
		tags[i] = l.tag
	}
	return tags
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
