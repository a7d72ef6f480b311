package cli_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/inbound/cli"
	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

const fixtureDir = "../../../../testdata/rn-app"

// setupProject copies the React Native fixture into a temp dir and makes it
// the working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	src, err := filepath.Abs(fixtureDir)
	require.NoError(t, err)

	dst := t.TempDir()
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
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

	t.Chdir(dst)
	return dst
}

func pbxprojPath(dir string) string {
	return filepath.Join(dir, "ios", "RNApp.xcodeproj", "project.pbxproj")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanCommand_ListsIssues(t *testing.T) {
	dir := setupProject(t)
	before, err := os.ReadFile(pbxprojPath(dir))
	require.NoError(t, err)

	out, err := run(t, "scan")
	require.NoError(t, err)

	assert.Contains(t, out, "SCANNING FOR ISSUES")
	assert.Contains(t, out, "'Bundle React Native code and images'")
	assert.Contains(t, out, "'[CP-User] [RNFB] Core Configuration'")
	assert.Contains(t, out, "'Start Packager'")
	assert.NotContains(t, out, "Check Pods Manifest.lock")
	assert.Contains(t, out, "Found 3 issues")

	after, err := os.ReadFile(pbxprojPath(dir))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "scan must not modify the project")
	assert.NoFileExists(t, filepath.Join(dir, "xcode-audit-report.json"))
	assert.NoDirExists(t, filepath.Join(dir, ".xcode_backup"))
}

func TestFixCommand_WritesBackupAndHook(t *testing.T) {
	dir := setupProject(t)
	original, err := os.ReadFile(pbxprojPath(dir))
	require.NoError(t, err)

	out, err := run(t, "fix")
	require.NoError(t, err)
	assert.Contains(t, out, "APPLYING FIXES")
	assert.Contains(t, out, "Applied 3 fixes")

	patched, err := os.ReadFile(pbxprojPath(dir))
	require.NoError(t, err)
	assert.Contains(t, string(patched), `"$(DERIVED_FILE_DIR)/main.jsbundle",`)
	assert.Contains(t, string(patched), `"$(DERIVED_FILE_DIR)/rnfb-config-generated",`)
	assert.Contains(t, string(patched), `"$(DERIVED_FILE_DIR)/packager-started",`)

	backups, err := filepath.Glob(filepath.Join(dir, ".xcode_backup", "project.pbxproj.backup.*"))
	require.NoError(t, err)
	require.Len(t, backups, 1)
	saved, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, string(original), string(saved))

	assert.FileExists(t, filepath.Join(dir, "podfile_post_install_hook.rb"))
	assert.NoFileExists(t, filepath.Join(dir, "xcode-audit-report.json"))
}

func TestFixCommand_NoIssuesWritesNothing(t *testing.T) {
	dir := setupProject(t)
	_, err := run(t, "fix")
	require.NoError(t, err)

	out, err := run(t, "fix")
	require.NoError(t, err)
	assert.Contains(t, out, "already compliant")

	backups, err := filepath.Glob(filepath.Join(dir, ".xcode_backup", "*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1, "second fix must not create another backup")
}

func TestVerifyCommand(t *testing.T) {
	setupProject(t)

	out, err := run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Still have 3 issues")

	_, err = run(t, "fix")
	require.NoError(t, err)

	out, err = run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "All build phases have output paths")
}

func TestFullCommand_WritesReport(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, "full")
	require.NoError(t, err)
	assert.Contains(t, out, "AUDIT COMPLETE")

	data, err := os.ReadFile(filepath.Join(dir, "xcode-audit-report.json"))
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &report))
	for _, key := range []string{"run_id", "timestamp", "project_file", "issues_found", "fixes_applied", "verification", "status"} {
		assert.Contains(t, report, key)
	}
	assert.Equal(t, "completed", report["status"])
	assert.Len(t, report["issues_found"], 3)
	assert.Len(t, report["fixes_applied"], 3)

	verification, ok := report["verification"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "passed", verification["status"])
	assert.EqualValues(t, 0, verification["remaining_issues"])
}

func TestRootCommand_DefaultsToFull(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "XCODE BUILD PHASE AUDITOR")
	assert.FileExists(t, filepath.Join(dir, "xcode-audit-report.json"))
}

func TestCommands_MissingProject(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for _, verb := range []string{"scan", "fix", "verify", "full"} {
		t.Run(verb, func(t *testing.T) {
			_, err := run(t, verb)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrProjectNotFound)
		})
	}

	assert.NoFileExists(t, filepath.Join(dir, "xcode-audit-report.json"))
}

func TestRootCommand_UnknownVerb(t *testing.T) {
	setupProject(t)

	_, err := run(t, "deploy")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "xcodeaudit")
}

func TestCommands_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".xcodeaudit.yaml"), []byte("log_level: loud\n"), 0644))

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "xcodeaudit")

	_, err = run(t, "scan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log_level")
}
