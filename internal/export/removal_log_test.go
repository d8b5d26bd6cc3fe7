package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gchange/internal/model"
)

func TestWriteRemovalLog(t *testing.T) {
	removals := []model.Removal{
		model.NewRemoval(model.ReasonNGCompany, model.NewRecord("株式会社テスト", "", "", "03-1111-1111"), "テスト", "テスト"),
		model.NewRemoval(model.ReasonPhoneDuplicate, model.NewRecord("B", "", "", "03(1234)5678"), "0312345678", "A"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRemovalLog(&buf, removals))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, removalColumns, rows[0])
	assert.Equal(t, []string{"ng-company", "株式会社テスト", "03-1111-1111", "テスト", "テスト"}, rows[1])
	assert.Equal(t, []string{"phone-duplicate", "B", "03(1234)5678", "0312345678", "A"}, rows[2])
}

func TestWriteRemovalLog_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRemovalLog(&buf, nil))
	assert.Equal(t, utf8BOM+"reason,source_company,source_phone,match_key,ng_hit\n", buf.String())
}

func TestExportRemovalLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "removals.csv")
	require.NoError(t, ExportRemovalLog(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ng_hit")
}

func TestExportRemovalLog_BadPath(t *testing.T) {
	err := ExportRemovalLog(nil, filepath.Join(t.TempDir(), "missing", "removals.csv"))
	assert.Error(t, err)
}
