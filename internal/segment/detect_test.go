package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		grid [][]string
		want Layout
	}{
		{"template", [][]string{{"", "企業様名称", "業種", "住所", "電話番号"}}, LayoutTemplate},
		{"labeled", [][]string{
			{"株式会社ラベル", ""},
			{"住所", "東京都中央区銀座1-1-1"},
			{"電話番号", "03-3333-4444"},
		}, LayoutLabeled},
		{"labeled single cells", column("株式会社ラベル", "住所：東京都中央区銀座1-1-1", "TEL：03-3333-4444"), LayoutLabeled},
		{"association", associationGrid(), LayoutAssociation},
		{"phone block", column("株式会社サンプル", "4.2(15)", "製造業 · 東京都千代田区1-2-3", "営業中 · 営業終了: 18:00", "03-1234-5678"), LayoutPhoneBlock},
		{"empty", nil, LayoutPhoneBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.grid))
		})
	}
}

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{LayoutAuto, LayoutTemplate, LayoutPhoneBlock, LayoutLabeled, LayoutAssociation} {
		got, err := ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	got, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutAuto, got)

	_, err = ParseLayout("csv")
	assert.Error(t, err)
}

func TestRun_TemplateHeaderWins(t *testing.T) {
	grid := [][]string{
		{"企業様名称", "業種", "住所", "電話番号"},
		{"株式会社テンプレ", "製造業", "東京都港区1-1", "03-1234-0000"},
	}

	records, used, err := Run(grid, LayoutPhoneBlock)
	require.NoError(t, err)
	assert.Equal(t, LayoutTemplate, used)
	require.Len(t, records, 1)
	assert.Equal(t, "株式会社テンプレ", records[0].Company)
}

func TestRun_Auto(t *testing.T) {
	records, used, err := Run(column("株式会社サンプル", "製造業", "東京都千代田区1-2-3", "03-1234-5678"), LayoutAuto)
	require.NoError(t, err)
	assert.Equal(t, LayoutPhoneBlock, used)
	assert.Len(t, records, 1)
}
