package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/gchange/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.Input.Layout = "auto"
	c.NG.Dir = t.TempDir()
	c.NG.Pattern = "NGリスト"
	c.Filter.IndustryMode = "none"
	c.Filter.MinContainLen = 4
	c.Output.Dir = t.TempDir()
	c.Output.TemplateSheet = "入力マスター"
	c.Output.StartRow = 2
	c.Batch.MaxConcurrentFiles = 2
	c.Server.Port = 8080
	c.Log.Level = "info"
	c.Log.Format = "json"
	return c
}

// directoryRows is a map-search export with two businesses.
func directoryRows() []string {
	return []string{
		"株式会社サンプル",
		"製造業",
		"東京都千代田区1-2-3",
		"03-1234-5678",
		"有限会社テスト",
		"レビューなし",
		"運送業 · 大阪府大阪市北区梅田1-1",
		"06-1111-2222",
	}
}

func createTestXLSX(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, l := range lines {
		sheet.AddRow().AddCell().SetString(l)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.Save(path))
	return path
}

func writeNGList(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
