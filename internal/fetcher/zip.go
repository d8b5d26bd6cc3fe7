package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/japanese"
)

// ExtractZIP extracts the files of a ZIP archive whose extension is in
// exts (all files when exts is empty) to destDir and returns their paths
// in archive order. Names written by Japanese Windows archivers are
// Shift_JIS and are decoded. macOS resource forks are skipped.
func ExtractZIP(zipPath, destDir string, exts ...string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var extracted []string
	for _, f := range r.File {
		name := entryName(f)
		if f.FileInfo().IsDir() || skipEntry(name, exts) {
			continue
		}
		p, err := extractZIPEntry(f, name, destDir)
		if err != nil {
			return extracted, err
		}
		extracted = append(extracted, p)
	}

	return extracted, nil
}

// IsZIP reports whether path names a ZIP archive.
func IsZIP(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".zip")
}

func entryName(f *zip.File) string {
	if !f.NonUTF8 {
		return f.Name
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().String(f.Name)
	if err != nil {
		return f.Name
	}
	return decoded
}

func skipEntry(name string, exts []string) bool {
	base := path.Base(name)
	if strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(base, "._") || strings.HasPrefix(base, "~$") {
		return true
	}
	if len(exts) == 0 {
		return false
	}
	ext := path.Ext(base)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return false
		}
	}
	return true
}

// extractZIPEntry writes a single zip.File under destDir.
func extractZIPEntry(f *zip.File, name, destDir string) (string, error) {
	// Sanitize against zip slip
	destPath := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q (zip slip attempt)", name)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "zip: write file")
	}

	return destPath, nil
}
