package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/energiaa/solarproposal/internal/config"
	"github.com/energiaa/solarproposal/internal/engine"
	"go.uber.org/zap"
)

func sampleReport(t *testing.T, conf *config.Configuration) engine.EconomyReport {
	t.Helper()
	profile, err := conf.ResolveProfile(439.85)
	if err != nil {
		t.Fatalf("ResolveProfile() error = %v", err)
	}
	rep, err := engine.BuildReport(
		engine.CustomerInput{
			FullName:      "Ana Paula Moreira",
			Address:       "Avenida Afonso Pena, 2000 - Campo Grande/MS",
			InvoiceAmount: 439.85,
		},
		profile, conf.SurchargeTable(), conf.SolarDiscountRate(),
	)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	return rep
}

func TestWriteArtifactUsesConfiguredDirectory(t *testing.T) {
	conf := config.Default()
	conf.Output.Directory = filepath.Join(t.TempDir(), "artifacts")
	rep := sampleReport(t, conf)

	if err := writeArtifact(zap.NewNop(), rep, conf, "pdf", ""); err != nil {
		t.Fatalf("writeArtifact() error = %v", err)
	}
	path := filepath.Join(conf.Output.Directory, "simulacao_Ana_Paula_Moreira.pdf")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact not written to configured directory: %v", err)
	}
}

func TestWriteArtifactFlagOverridesConfiguredDirectory(t *testing.T) {
	conf := config.Default()
	conf.Output.Directory = filepath.Join(t.TempDir(), "ignored")
	rep := sampleReport(t, conf)

	flagDir := filepath.Join(t.TempDir(), "from-flag")
	if err := writeArtifact(zap.NewNop(), rep, conf, "xlsx", flagDir); err != nil {
		t.Fatalf("writeArtifact() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(flagDir, "simulacao_Ana_Paula_Moreira.xlsx")); err != nil {
		t.Errorf("artifact not written to flag directory: %v", err)
	}
	if _, err := os.Stat(conf.Output.Directory); !os.IsNotExist(err) {
		t.Errorf("configured directory should stay untouched, stat err = %v", err)
	}
}
