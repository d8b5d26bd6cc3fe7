package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gchange/internal/model"
)

func column(lines ...string) [][]string {
	grid := make([][]string, len(lines))
	for i, l := range lines {
		grid[i] = []string{l}
	}
	return grid
}

func fields(r model.Record) [4]string {
	return [4]string{r.Company, r.Industry, r.Address, r.Phone}
}

func TestPhoneBlock_SimpleBlock(t *testing.T) {
	grid := column("株式会社サンプル", "製造業", "東京都千代田区1-2-3", "03-1234-5678")

	records, err := NewPhoneBlock().Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, [4]string{"株式会社サンプル", "製造業", "東京都千代田区1-2-3", "03-1234-5678"}, fields(records[0]))
	assert.Equal(t, "0312345678", records[0].PhoneDigits)
}

func TestPhoneBlock_MapExport(t *testing.T) {
	grid := column(
		"株式会社サンプル",
		"4.2(15)",
		"製造業 · 東京都千代田区1-2-3",
		"営業中 · 営業終了: 18:00",
		"03-1234-5678",
		"ウェブサイト",
		"ルート・乗換",
		"有限会社テスト",
		"レビューなし",
		"運送業 · 大阪府大阪市北区梅田1-1",
		"06-1111-2222",
	)

	records, err := NewPhoneBlock().Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, [4]string{"株式会社サンプル", "製造業", "東京都千代田区1-2-3", "03-1234-5678"}, fields(records[0]))
	assert.Equal(t, [4]string{"有限会社テスト", "運送業", "大阪府大阪市北区梅田1-1", "06-1111-2222"}, fields(records[1]))
}

func TestPhoneBlock_ShortBlockFallsBackToTop(t *testing.T) {
	grid := column("株式会社ミニ", "東京都港区芝1-1", "03-5555-6666")

	records, err := NewPhoneBlock().Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, [4]string{"株式会社ミニ", "", "東京都港区芝1-1", "03-5555-6666"}, fields(records[0]))
}

func TestPhoneBlock_FaxLineDoesNotAnchor(t *testing.T) {
	grid := column("株式会社ファクス", "建設業", "東京都新宿区西新宿2-8-1", "TEL 03-1111-2222", "FAX 03-1111-3333")

	records, err := NewPhoneBlock().Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, [4]string{"株式会社ファクス", "建設業", "東京都新宿区西新宿2-8-1", "03-1111-2222"}, fields(records[0]))
}

func TestPhoneBlock_PreservesPhoneText(t *testing.T) {
	grid := column("株式会社ゼンカク", "東京都港区芝1-1", "０３－５５５５－６６６６")

	records, err := NewPhoneBlock().Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "０３－５５５５－６６６６", records[0].Phone)
	assert.Equal(t, "0355556666", records[0].PhoneDigits)
}

func TestPhoneBlock_PhoneOnlySkipped(t *testing.T) {
	records, err := NewPhoneBlock().Segment(column("03-1234-5678"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPhoneBlock_NoPhones(t *testing.T) {
	records, err := NewPhoneBlock().Segment(column("株式会社サンプル", "東京都千代田区1-2-3"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPhoneBlock_CustomRuleOrder(t *testing.T) {
	// Scanning up first picks the nearest plausible line instead of the
	// positional default.
	s := PhoneBlock{
		AddressRules: DefaultAddressRules,
		CompanyRules: []CompanyRule{{Name: "scan-up", Candidates: scanUpCompany}},
	}
	grid := column("株式会社サンプル", "製造業", "東京都千代田区1-2-3", "03-1234-5678")

	records, err := s.Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "製造業", records[0].Company)
}
