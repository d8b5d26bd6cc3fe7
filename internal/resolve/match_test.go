package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Containment(t *testing.T) {
	m := NewMatcher(DefaultMinContainLen)

	// Equal keys always match.
	assert.True(t, m.Match(CanonicalKey("株式会社テスト"), CanonicalKey("テスト")))
	assert.True(t, m.Match(CanonicalKey("サンプル"), CanonicalKey("株式会社サンプル")))

	// Short keys do not match by containment.
	assert.False(t, m.Match(CanonicalKey("株式会社テスト"), CanonicalKey("テスト商事")))

	// Long enough keys match in either direction.
	assert.True(t, m.Match("サンプル", "サンプル商事"))
	assert.True(t, m.Match("サンプル商事", "サンプル"))
	assert.False(t, m.Match("サンプル", "サンプリング"))
}

func TestMatcher_PureContainment(t *testing.T) {
	m := NewMatcher(0)
	assert.True(t, m.Match("テスト", "テスト商事"))
	assert.True(t, m.Match("テスト商事", "テスト"))
	assert.False(t, m.Match("テスト", "サンプル"))
}

func TestMatcher_EmptyNeverMatches(t *testing.T) {
	m := NewMatcher(0)
	assert.False(t, m.Match("", "テスト"))
	assert.False(t, m.Match("テスト", ""))
	assert.False(t, m.Match("", ""))
}

func TestMatcher_NegativeThreshold(t *testing.T) {
	assert.Equal(t, 0, NewMatcher(-3).MinContainLen)
}

func TestMatcher_MatchAny(t *testing.T) {
	m := NewMatcher(DefaultMinContainLen)
	hit, ok := m.MatchAny("サンプル商事", []string{"テスト", "サンプル"})
	assert.True(t, ok)
	assert.Equal(t, "サンプル", hit)

	_, ok = m.MatchAny("サンプル商事", nil)
	assert.False(t, ok)
}

func TestMatcher_DisplayNames(t *testing.T) {
	m := NewMatcher(DefaultMinContainLen)
	assert.True(t, m.Match(CanonicalKey("株式会社サンプル"), CanonicalKey("サンプル")))
	assert.True(t, m.Match(CanonicalKey("株式会社テスト"), CanonicalKey("テスト")))
	assert.False(t, m.Match(CanonicalKey("株式会社テスト"), CanonicalKey("テスト商事")))
}
