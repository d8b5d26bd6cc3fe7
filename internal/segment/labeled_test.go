package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabeled_Segment(t *testing.T) {
	grid := [][]string{
		{"住所", "先頭の住所は無視"},
		{"株式会社ラベル", ""},
		{"住所", "東京都中央区銀座1-1-1"},
		{"電話番号", "03-3333-4444"},
		{"業種", "卸売業"},
		{"資本金", "1000万円"},
		{"FAX", "03-3333-5555"},
		{"有限会社ツギ", ""},
		{"所在地：大阪府堺市堺区1-2", ""},
		{"TEL", "072-111-2222 (代表)"},
		{"住所", "二つ目の住所"},
	}

	records, err := Labeled{}.Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, [4]string{"株式会社ラベル", "卸売業", "東京都中央区銀座1-1-1", "03-3333-4444"}, fields(records[0]))
	assert.Equal(t, [4]string{"有限会社ツギ", "", "大阪府堺市堺区1-2", "072-111-2222"}, fields(records[1]))
}

func TestLabeled_CompanyLabel(t *testing.T) {
	grid := [][]string{
		{"会社名", "株式会社カイシャ"},
		{"電話", "06-1234-5678"},
		{"会社名", "株式会社ベツ"},
	}

	records, err := Labeled{}.Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "株式会社カイシャ", records[0].Company)
	assert.Equal(t, "06-1234-5678", records[0].Phone)
	assert.Equal(t, "株式会社ベツ", records[1].Company)
}

func TestLabeled_PhoneWithoutTokenKeptVerbatim(t *testing.T) {
	grid := [][]string{
		{"株式会社ナシ", ""},
		{"電話", "非公開"},
	}

	records, err := Labeled{}.Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "非公開", records[0].Phone)
	assert.Empty(t, records[0].PhoneDigits)
}

func TestLabeled_ShiftedColumns(t *testing.T) {
	grid := [][]string{
		{"", "株式会社ズレ", ""},
		{"", "住所", "福岡県福岡市中央区1-1"},
	}

	records, err := Labeled{}.Segment(grid)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "福岡県福岡市中央区1-1", records[0].Address)
}

func TestLookupLabel(t *testing.T) {
	assert.Equal(t, fieldPhone, lookupLabel("TEL"))
	assert.Equal(t, fieldPhone, lookupLabel("ＴＥＬ："))
	assert.Equal(t, fieldAddress, lookupLabel("本社所在地"))
	assert.Equal(t, fieldIgnored, lookupLabel("設立年月"))
	assert.Equal(t, fieldNone, lookupLabel("株式会社サンプル"))
}
