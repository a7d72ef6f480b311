// Package hook renders a Podfile post_install snippet that re-applies the
// output-path fix whenever CocoaPods regenerates the project.
package hook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

const podfileTemplate = `# Xcode build phase output paths auto-fix
# Add this to your Podfile after the target block

post_install do |installer|
  risk_keywords = {{ rubyList .Keywords }}

  installer.pods_project.targets.each do |target|
    target.build_phases.each do |phase|
      next unless phase.is_a?(Xcodeproj::Project::Object::PBXShellScriptBuildPhase)
      name = phase.name.to_s
      next unless phase.output_paths.empty?
      next unless risk_keywords.any? { |k| name.include?(k) }
{{ range $i, $r := .Rules }}
      {{ if eq $i 0 }}if{{ else }}elsif{{ end }} {{ rubyList $r.Contains }}.any? { |k| name.include?(k) }
        phase.output_paths << {{ rubyQuote $r.OutputPath }}
{{- end }}
      else
        phase.output_paths << {{ rubyQuote .Default }}
      end
      puts "Fixed: added output path to '#{name}'"
    end
  end

  installer.pods_project.save
end
`

var tmpl = template.Must(template.New("podfile").Funcs(template.FuncMap{
	"rubyQuote": rubyQuote,
	"rubyList":  rubyList,
}).Parse(podfileTemplate))

type templateData struct {
	Keywords []string
	Rules    []domain.OutputRule
	Default  string
}

// PodfileWriter implements domain.HookWriter.
type PodfileWriter struct{}

func New() *PodfileWriter {
	return &PodfileWriter{}
}

// Render returns the hook text for the given keywords and rule table.
func (w *PodfileWriter) Render(keywords []string, rules domain.RuleSet) (string, error) {
	if len(rules.Rules) == 0 {
		return "", fmt.Errorf("rendering podfile hook: rule table is empty")
	}
	def := rules.Default
	if def == "" {
		def = domain.DefaultOutputPath
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Keywords: keywords, Rules: rules.Rules, Default: def}); err != nil {
		return "", fmt.Errorf("rendering podfile hook: %w", err)
	}
	return buf.String(), nil
}

func (w *PodfileWriter) Write(path string, keywords []string, rules domain.RuleSet) error {
	text, err := w.Render(keywords, rules)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

var rubyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func rubyQuote(s string) string {
	return "'" + rubyEscaper.Replace(s) + "'"
}

func rubyList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = rubyQuote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
