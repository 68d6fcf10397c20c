package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	cmd.SetArgs(args)

	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)

	err := cmd.Execute()
	return output.String(), err
}

func TestSeedAndRun(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "catalog.db")
	outDir := filepath.Join(tmp, "exported")

	if _, err := execute(t, "seed", "--db", dbPath); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	output, err := execute(t, "run", "--db", dbPath, "--out", outDir)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}

	// Seeded flagged file carries two labels, so two copies appear.
	for _, path := range []string{
		filepath.Join(outDir, "CryptoArtifacts", "20_wallet.dat"),
		filepath.Join(outDir, "LargeFiles", "20_wallet.dat"),
		filepath.Join(outDir, "KeywordMatches", "10_docs", "docs", "notes.txt"),
		filepath.Join(outDir, "KeywordMatches", "10_docs", "docs", "img", "cat.jpg"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected exported path %s: %v", path, err)
		}
	}

	if !strings.Contains(output, "Overall status: **ok**") {
		t.Errorf("expected ok summary in output:\n%s", output)
	}
}

func TestRunWritesHTMLReport(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "catalog.db")
	outDir := filepath.Join(tmp, "exported")
	reportPath := filepath.Join(tmp, "run.html")

	if _, err := execute(t, "seed", "--db", dbPath); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if output, err := execute(t, "run", "--db", dbPath, "--out", outDir, "--report", reportPath); err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "<h1") {
		t.Errorf("expected HTML report, got: %s", data)
	}
}

func TestRunEmptyCatalogSucceeds(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "empty.db")
	outDir := filepath.Join(tmp, "exported")

	output, err := execute(t, "run", "--db", dbPath, "--out", outDir)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}

	if !strings.Contains(output, "found 0 interesting item(s)") {
		t.Errorf("expected empty hit list log in output:\n%s", output)
	}
}

func TestRunConfigFileProvidesSettings(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "catalog.db")
	outDir := filepath.Join(tmp, "exported")

	if _, err := execute(t, "seed", "--db", dbPath); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	configPath := filepath.Join(tmp, "exhume.yaml")
	config := "db_path: " + dbPath + "\noutput_dir: " + outDir + "\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if output, err := execute(t, "run", "--config", configPath); err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}

	if _, err := os.Stat(filepath.Join(outDir, "CryptoArtifacts", "20_wallet.dat")); err != nil {
		t.Errorf("expected exported file: %v", err)
	}
}

func TestLsListsFlaggedEntries(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "catalog.db")

	if _, err := execute(t, "seed", "--db", dbPath); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	output, err := execute(t, "ls", "--db", dbPath)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}

	for _, want := range []string{"docs", "wallet.dat", "KeywordMatches", "CryptoArtifacts, LargeFiles"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in ls output:\n%s", want, output)
		}
	}
}

func TestLsEmptyCatalog(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	output, err := execute(t, "ls", "--db", dbPath)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}

	if !strings.Contains(output, "No interesting entries flagged.") {
		t.Errorf("unexpected output: %s", output)
	}
}
