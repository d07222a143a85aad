// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperwatch/pkg/types"
)

const reportBaseName = "recsys-llm-industry"

// Save archives the rendered digest and a YAML dump of the industry
// records under dir, named by date. It returns the HTML path.
func Save(dir, html string, industry []*types.PaperRecord, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	date := now.Format("2006-01-02")
	htmlPath := filepath.Join(dir, fmt.Sprintf("%s-%s.html", reportBaseName, date))
	yamlPath := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", reportBaseName, date))

	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", htmlPath, err)
	}

	f, err := os.Create(yamlPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", yamlPath, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(industry); err != nil {
		return "", fmt.Errorf("writing %s: %w", yamlPath, err)
	}

	return htmlPath, nil
}
