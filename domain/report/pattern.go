package report

import (
	"regexp"
	"strings"
)

// The business-pattern analysis arrives as LLM-generated text wrapped in
// XML-ish tags: <summary>...</summary><details>...</details>. Each tagged
// section gets light cleanup before the frontend renders it.

var openTagPattern = regexp.MustCompile(`<([^/>][^>]*)>`)

type taggedSection struct {
	name    string
	content string
}

// extractTaggedSections finds <tag>content</tag> pairs left to right. The
// close tag is matched case-insensitively and non-greedily. Open tags with
// no close tag are skipped.
func extractTaggedSections(text string) []taggedSection {
	var sections []taggedSection
	rest := text
	for {
		loc := openTagPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			return sections
		}
		name := rest[loc[2]:loc[3]]
		after := rest[loc[1]:]

		closeTag := "</" + strings.ToLower(name) + ">"
		closeIdx := strings.Index(strings.ToLower(after), closeTag)
		if closeIdx < 0 {
			rest = rest[loc[1]:]
			continue
		}

		sections = append(sections, taggedSection{
			name:    name,
			content: after[:closeIdx],
		})
		rest = after[closeIdx+len(closeTag):]
	}
}

// splitDashRuns rewrites dash-separated bullet text into "/n"-joined lines,
// the line separator the frontend renderer expects. Empty fragments are
// dropped. Text without dashes is returned untouched, as are any **bold**
// markers inside it.
func splitDashRuns(content string) string {
	if !strings.Contains(content, "-") {
		return content
	}
	parts := strings.Split(content, "-")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "/n")
}

// stripLineMarkers removes "/n" separators and literal backslash-n escapes.
// Applied to the final section, which the frontend shows as one paragraph.
func stripLineMarkers(content string) string {
	content = strings.ReplaceAll(content, "/n", "")
	return strings.ReplaceAll(content, `\n`, "")
}

// NormalizePatternText processes a business-pattern raw analysis into named
// sections: every section but the last gets dash-run splitting, the last
// gets its line markers stripped. Returns ok=false when the text has no
// tagged sections, in which case the caller serves it unchanged.
func NormalizePatternText(text string) (map[string]string, bool) {
	sections := extractTaggedSections(text)
	if len(sections) == 0 {
		return nil, false
	}

	processed := make(map[string]string, len(sections))
	for i, s := range sections {
		if i < len(sections)-1 {
			processed[s.name] = splitDashRuns(s.content)
		} else {
			processed[s.name] = stripLineMarkers(s.content)
		}
	}
	return processed, true
}
