package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig lays down a minimal config file pointing every path at the
// test's temp directory.
func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	content := fmt.Sprintf(`[paths]
workspace_dir = %q
log_dir = %q
export_dir = %q

[count]
count_date = "2026-01-28"

[logging]
format = "json"
level = "warn"
`,
		filepath.Join(base, "workspace"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "exports"),
	)

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append(args, "--config", configPath))
	err := root.Execute()
	return buf.String(), err
}

func writeUpload(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create upload: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := append([][]string{{
		"1st Letter of First Name",
		"1st Letter of Last Name",
		"3rd Letter of Last Name",
		"Date of Birth",
		"Sex",
		"Currently Fleeing Domestic/Sexual/Dating Violence",
	}}, rows...)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write upload: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCLI(t, configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(base, "sample.toml")
	out, err = runCLI(t, configPath, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}
}

func TestIngestDetectExportFlow(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	shelter := writeUpload(t, base, "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "No"},
	})
	street := writeUpload(t, base, "street.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "No"},
		{"M", "D", "E", "1992-11-02", "Female", "No"},
	})

	out, err := runCLI(t, configPath, "ingest", shelter, "--source", "ES")
	if err != nil {
		t.Fatalf("ingest ES: %v", err)
	}
	requireContains(t, out, `dataset "ES"`)
	requireContains(t, out, "New England")

	if _, err := runCLI(t, configPath, "ingest", street, "--source", "Unsheltered"); err != nil {
		t.Fatalf("ingest Unsheltered: %v", err)
	}

	out, err = runCLI(t, configPath, "detect")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "Total")

	out, err = runCLI(t, configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "ES")
	requireContains(t, out, "Unsheltered")
	requireContains(t, out, "Runs:")

	exportPath := filepath.Join(base, "annotated.csv")
	out, err = runCLI(t, configPath, "export", exportPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Wrote 3 annotated records")

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	requireContains(t, string(data), "Likely Duplicate")
}

func TestStatusWithEmptyWorkspace(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCLI(t, configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "No datasets stored")
}

func TestDetectWithoutDatasetsFails(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	if _, err := runCLI(t, configPath, "detect"); err == nil {
		t.Fatal("expected detect to fail with no datasets")
	}
}

func TestRemoveDatasetCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	shelter := writeUpload(t, base, "shelter.csv", [][]string{
		{"J", "S", "I", "1980-05-12", "Male", "No"},
	})
	if _, err := runCLI(t, configPath, "ingest", shelter, "--source", "ES"); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	out, err := runCLI(t, configPath, "remove", "ES")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, `Removed dataset "ES"`)

	if _, err := runCLI(t, configPath, "remove", "ES"); err == nil {
		t.Fatal("expected second remove to fail")
	}
}

func TestVersionCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, err := runCLI(t, configPath, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "pitcount ")
}
