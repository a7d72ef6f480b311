package application_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/backup"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/config"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/history"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/hook"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/locator"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/report"
	"github.com/xcodeaudit/xcodeaudit/internal/application"
)

const rnFixture = "../../testdata/rn-app"

var fixedNow = func() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

// fakeGit stands in for the repository so reports are deterministic.
// Outside a repo every other call fails the test.
type fakeGit struct {
	t     *testing.T
	repo  bool
	hash  string
	dirty bool
	err   error
}

func (g fakeGit) IsGitRepo(string) bool { return g.repo }

func (g fakeGit) CommitHash(string) (string, error) {
	g.mustBeRepo()
	return g.hash, g.err
}

func (g fakeGit) IsDirty(string) (bool, error) {
	g.mustBeRepo()
	return g.dirty, g.err
}

func (g fakeGit) mustBeRepo() {
	if !g.repo && g.t != nil {
		g.t.Errorf("git queried outside a repository")
	}
}

var errNoRepo = errors.New("repository does not exist")

func newAuditService() *application.AuditService {
	return application.NewAuditService(locator.New(), config.New(), backup.NewWithClock(fixedNow), hook.New())
}

func newFullService(git fakeGit) *application.FullService {
	return application.NewFullService(newAuditService(), report.New(), history.New(), git).WithClock(fixedNow)
}

// copyFixture copies the React Native app fixture into a temp dir.
func copyFixture(t *testing.T) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.WalkDir(rnFixture, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(rnFixture, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)
	return dst
}

// writeProject creates <root>/ios/App.xcodeproj/project.pbxproj with content.
func writeProject(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	p := projectPath(root, "App")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return root
}

func projectPath(root, name string) string {
	return filepath.Join(root, "ios", name+".xcodeproj", "project.pbxproj")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const declaredProject = `// !$*UTF8*$!
{
	objects = {
		00DD1BFF1BD5951E006B06BC /* Bundle React Native code and images */ = {
			isa = PBXShellScriptBuildPhase;
			name = "Bundle React Native code and images";
			outputPaths = (
				"$(DERIVED_FILE_DIR)/main.jsbundle",
			);
			shellPath = /bin/sh;
			shellScript = "../node_modules/react-native/scripts/react-native-xcode.sh\n";
		};
	};
}
`

const malformedProject = `// !$*UTF8*$!
{
	objects = {
		AA0000000000000000000001 /* Start Packager */ = {isa = PBXShellScriptBuildPhase; name = "Start Packager"; shellScript = "echo start"; };
		AA0000000000000000000002 /* [CP-User] [RNFB] Core Configuration */ = {
			isa = PBXShellScriptBuildPhase;
			name = "[CP-User] [RNFB] Core Configuration";
			shellPath = /bin/sh;
			shellScript = "echo rnfb\n";
		};
	};
}
`
