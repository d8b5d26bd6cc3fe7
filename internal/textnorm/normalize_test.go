package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize("　　"))
}

func TestNormalize_FullWidth(t *testing.T) {
	assert.Equal(t, "ABC123", Normalize("ＡＢＣ１２３"))
	assert.Equal(t, "(株)テスト", Normalize("（株）テスト"))
	assert.Equal(t, "(株)テスト", Normalize("㈱テスト"))
	assert.Equal(t, "カタカナ", Normalize("ｶﾀｶﾅ"))
}

func TestNormalize_Spaces(t *testing.T) {
	assert.Equal(t, "東京都 千代田区", Normalize("東京都　千代田区"))
	assert.Equal(t, "a b", Normalize("a b"))
	assert.Equal(t, "trim me", Normalize("  trim me \t"))
}

func TestNormalize_Dashes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1−2−3", "1-2-3"},
		{"1—2", "1-2"},
		{"1–2", "1-2"},
		{"1―2", "1-2"},
		{"1‐2", "1-2"},
		{"１－２", "1-2"},
		{"1ー2ー3", "1-2-3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestNormalize_ProlongedMarkKeptInWords(t *testing.T) {
	assert.Equal(t, "部品メーカー", Normalize("部品メーカー"))
	assert.Equal(t, "部品メーカー", Normalize("部品ﾒｰｶｰ"))
}

func TestNormalizeAll(t *testing.T) {
	assert.Equal(t, []string{"A", "", "1-2"}, NormalizeAll([]string{"Ａ", " ", "1—2"}))
}

func TestSplitLastMidDot(t *testing.T) {
	left, right, ok := SplitLastMidDot("4.2(15) · 製造業 · 東京都千代田区1-2-3")
	assert.True(t, ok)
	assert.Equal(t, "4.2(15) · 製造業", left)
	assert.Equal(t, "東京都千代田区1-2-3", right)

	left, right, ok = SplitLastMidDot("製造業")
	assert.False(t, ok)
	assert.Equal(t, "製造業", left)
	assert.Equal(t, "", right)

	_, right, ok = SplitLastMidDot("倉庫・物流")
	assert.True(t, ok)
	assert.Equal(t, "物流", right)
}

func TestSplitMidDots(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitMidDots("a · b⋅c"))
}
