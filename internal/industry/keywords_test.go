package industry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords_Match(t *testing.T) {
	kw := NewKeywords([]string{"物流", "倉庫", ""})
	assert.Equal(t, 2, kw.Len())

	hit, ok := kw.Match("物流")
	assert.True(t, ok)
	assert.Equal(t, "物流", hit)

	hit, ok = kw.Match("冷凍倉庫業")
	assert.True(t, ok)
	assert.Equal(t, "倉庫", hit)

	_, ok = kw.Match("製造業")
	assert.False(t, ok)

	_, ok = kw.Match("")
	assert.False(t, ok)
}

func TestKeywords_NormalizesAndDedupes(t *testing.T) {
	kw := NewKeywords([]string{" 物流 ", "物流", "ＡＢＣ"})
	assert.Equal(t, []string{"物流", "ABC"}, kw.words)

	_, ok := kw.Match("abc商事")
	assert.False(t, ok)
	_, ok = kw.Match("ＡＢＣ商事")
	assert.True(t, ok)
}

func TestDefaultLists(t *testing.T) {
	assert.NotEmpty(t, DefaultBlocklist)
	assert.NotEmpty(t, DefaultHighlight)
	_, ok := NewKeywords(DefaultBlocklist).Match("一般貨物自動車運送事業")
	assert.True(t, ok)
}
