// Package audit finds shell-script build phases that declare no outputs in a
// project.pbxproj and patches synthetic output paths into them.
//
// The file is treated as text. Blocks are located with a regular expression
// rather than a full grammar, which is enough for the object-per-entry layout
// Xcode writes.
package audit

import (
	"regexp"
	"strings"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

var (
	// blockPattern matches `/* Name */ = { ... };`. The body is any run of
	// quoted strings or non-brace characters, so braces inside script text
	// such as ${PODS_ROOT} do not end the block.
	blockPattern = regexp.MustCompile(`/\* ([^*\n]+) \*/ = \{((?:"(?:[^"\\]|\\.)*"|[^{}"])*)\};`)

	shellScriptClause = regexp.MustCompile(`\bshellScript\s*=`)

	// outputPathsClause starts the body or follows a separator, so it also
	// matches one-line blocks and several clauses sharing a line.
	outputPathsClause = regexp.MustCompile(`(?:^|[{;\s])outputPaths\s*=`)
	quotedString      = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// Scan returns one issue per shell-script block whose name contains a risk
// keyword and which has no outputPaths clause, in file order.
func Scan(text string, keywords []string) []domain.Issue {
	var issues []domain.Issue

	for _, m := range blockPattern.FindAllStringSubmatchIndex(text, -1) {
		name := strings.TrimSpace(text[m[2]:m[3]])
		body := text[m[4]:m[5]]

		if !shellScriptClause.MatchString(body) {
			continue
		}
		if !IsRisky(name, keywords) {
			continue
		}
		if HasOutputPaths(body) {
			continue
		}

		issues = append(issues, domain.Issue{
			Type:      domain.IssueMissingOutputPaths,
			PhaseName: name,
			Start:     m[0],
			End:       m[1],
			RawBlock:  text[m[0]:m[1]],
		})
	}

	return issues
}

// IsRisky reports whether name contains any keyword. Matching is case-sensitive.
func IsRisky(name string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// HasOutputPaths reports whether a block body declares an outputPaths clause.
// Quoted values are blanked first so script text mentioning outputPaths does
// not count.
func HasOutputPaths(body string) bool {
	return outputPathsClause.MatchString(quotedString.ReplaceAllLiteralString(body, `""`))
}
