// Package artifact manages naming and placement of generated proposal files.
package artifact

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/energiaa/solarproposal/pkg/constants"
)

var (
	reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespace    = regexp.MustCompile(`\s+`)
	underscores   = regexp.MustCompile(`_+`)
)

// SanitizeName turns a customer name into a filesystem-safe slug: reserved
// characters become underscores, whitespace collapses, and the result is
// capped at 50 characters.
func SanitizeName(name string) string {
	slug := reservedChars.ReplaceAllString(strings.TrimSpace(name), "_")
	slug = whitespace.ReplaceAllString(slug, "_")
	slug = underscores.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	if runes := []rune(slug); len(runes) > constants.MaxArtifactSlugLength {
		slug = string(runes[:constants.MaxArtifactSlugLength])
	}
	return slug
}

// ProposalFileName builds the canonical artifact name for a customer, e.g.
// "simulacao_Marcos_da_Silva.pdf".
func ProposalFileName(customerName, ext string) string {
	return fmt.Sprintf("simulacao_%s.%s", SanitizeName(customerName), ext)
}

// UniqueMediaName builds a collision-free name for a served media copy, e.g.
// "proposta_3fa84c1d_20260826_153000.pdf".
func UniqueMediaName(now time.Time, ext string) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// The timestamp alone still disambiguates within a second.
		return fmt.Sprintf("proposta_00000000_%s.%s", now.Format("20060102_150405"), ext)
	}
	return fmt.Sprintf("proposta_%s_%s.%s", hex.EncodeToString(buf), now.Format("20060102_150405"), ext)
}

// Write stores the artifact bytes under dir, creating the directory when
// needed, and returns the full path.
func Write(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return path, nil
}
