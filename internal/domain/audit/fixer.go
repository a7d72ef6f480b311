package audit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

// ErrBlockNotFound means the issue's block text no longer occurs in the text
// being fixed, usually because it was already patched.
var ErrBlockNotFound = errors.New("build phase block not found")

// MalformedBlockError means a matched block could not be split into a
// header and a standalone shellScript line.
type MalformedBlockError struct {
	PhaseName string
	Reason    string
}

func (e *MalformedBlockError) Error() string {
	return fmt.Sprintf("malformed build phase %q: %s", e.PhaseName, e.Reason)
}

var shellScriptLine = regexp.MustCompile(`^[ \t]*shellScript[ \t]*=`)

var pbxQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Fix inserts an outputPaths clause into the issue's block and returns the
// updated text. Only the first occurrence of the block text is replaced, so
// byte-identical duplicates are patched one issue at a time.
func Fix(text string, issue domain.Issue, rules domain.RuleSet) (string, domain.FixRecord, error) {
	if issue.RawBlock == "" || !strings.Contains(text, issue.RawBlock) {
		return text, domain.FixRecord{}, fmt.Errorf("%q: %w", issue.PhaseName, ErrBlockNotFound)
	}

	outputPath := rules.OutputPathFor(issue.PhaseName)
	patched, err := insertOutputPaths(issue.RawBlock, outputPath)
	if err != nil {
		return text, domain.FixRecord{}, &MalformedBlockError{PhaseName: issue.PhaseName, Reason: err.Error()}
	}

	fixed := strings.Replace(text, issue.RawBlock, patched, 1)
	return fixed, domain.FixRecord{PhaseName: issue.PhaseName, OutputPath: outputPath}, nil
}

// Outcome is the result of fixing a batch of issues. Issues is the batch
// that was attempted.
type Outcome struct {
	Text    string
	Issues  []domain.Issue
	Fixes   []domain.FixRecord
	Skipped []domain.SkippedFix
}

// Changed reports whether any fix was applied.
func (o Outcome) Changed() bool { return len(o.Fixes) > 0 }

// FixAll applies Fix for each issue in order. Issues that cannot be patched
// are recorded as skipped and do not stop the batch.
func FixAll(text string, issues []domain.Issue, rules domain.RuleSet) Outcome {
	out := Outcome{Text: text, Issues: issues}
	for _, issue := range issues {
		fixed, rec, err := Fix(out.Text, issue, rules)
		if err != nil {
			out.Skipped = append(out.Skipped, domain.SkippedFix{PhaseName: issue.PhaseName, Reason: err.Error()})
			continue
		}
		out.Text = fixed
		out.Fixes = append(out.Fixes, rec)
	}
	return out
}

// Patch scans text and fixes everything it finds.
func Patch(text string, keywords []string, rules domain.RuleSet) Outcome {
	return FixAll(text, Scan(text, keywords), rules)
}

// insertOutputPaths adds the clause on new lines right above the first
// shellScript line, using that line's indentation exactly.
func insertOutputPaths(block, outputPath string) (string, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return "", errors.New("block has no body lines")
	}

	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if !shellScriptLine.MatchString(line) {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		step := "    "
		if strings.Contains(indent, "\t") {
			step = "\t"
		}
		cr := ""
		if strings.HasSuffix(line, "\r") {
			cr = "\r"
		}

		clause := []string{
			indent + "outputPaths = (" + cr,
			indent + step + `"` + pbxQuoter.Replace(outputPath) + `",` + cr,
			indent + ");" + cr,
		}

		out := make([]string, 0, len(lines)+len(clause))
		out = append(out, lines[:i]...)
		out = append(out, clause...)
		out = append(out, lines[i:]...)
		return strings.Join(out, "\n"), nil
	}

	return "", errors.New("shellScript clause is not on its own line")
}
