package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/hkpcalc/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeFile(t, "config.yaml", "lab_path: lab.yaml\ninsurance: gkv\ntiers:\n  - standard\n  - implant\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.LabPath != "lab.yaml" {
		t.Errorf("LabPath = %q", c.LabPath)
	}
	if len(c.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(c.Tiers))
	}
	if c.Tiers[0] != "standard" || c.Tiers[1] != "different_type" {
		t.Errorf("unexpected tiers: %v", c.Tiers)
	}
	ins, err := c.InsuranceType()
	if err != nil || ins != model.InsuranceStatutory {
		t.Errorf("InsuranceType = %q, %v", ins, err)
	}
}

func TestLoadFromFile_FlagsWin(t *testing.T) {
	path := writeFile(t, "config.yaml", "lab_path: from-file.yaml\noutput: json\n")

	c := Config{LabPath: "from-flag.yaml"}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.LabPath != "from-flag.yaml" {
		t.Errorf("LabPath = %q, want flag value", c.LabPath)
	}
	if c.Output != "json" {
		t.Errorf("Output = %q, want file value", c.Output)
	}
}

func TestLoadFromFile_UnknownTier(t *testing.T) {
	path := writeFile(t, "config.yaml", "tiers:\n  - standard\n  - gold\n")

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestLoadFromFile_EmptyDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "tiers: []\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Tiers) != 3 {
		t.Errorf("expected 3 default tiers, got %d: %v", len(c.Tiers), c.Tiers)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	chart := writeFile(t, "chart.yaml", "teeth: {}\n")

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{ChartPath: chart}, false},
		{"no chart", Config{}, true},
		{"missing chart", Config{ChartPath: "/nonexistent/chart.yaml"}, true},
		{"negative tenure", Config{ChartPath: chart, TenureYears: -1}, true},
		{"bad output", Config{ChartPath: chart, Output: "pdf"}, true},
		{"bad insurance", Config{ChartPath: chart, Insurance: "self-pay"}, true},
		{"private", Config{ChartPath: chart, Insurance: "pkv"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	file := writeFile(t, "charts.parquet", "x")

	if err := (&Config{FilePath: file}).ValidateBatch(); err == nil {
		t.Error("expected DSN error")
	}
	if err := (&Config{FilePath: file, DryRun: true}).ValidateBatch(); err != nil {
		t.Errorf("dry run without DSN: %v", err)
	}
	if err := (&Config{FilePath: file, DSN: "postgres://localhost/x"}).ValidateBatch(); err != nil {
		t.Errorf("ValidateBatch: %v", err)
	}
}
