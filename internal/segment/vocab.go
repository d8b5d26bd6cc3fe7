package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sells-group/gchange/internal/industry"
	"github.com/sells-group/gchange/internal/phone"
	"github.com/sells-group/gchange/internal/textnorm"
)

// uiChrome are map-export button labels copied along with the listing.
var uiChrome = map[string]struct{}{
	"ウェブサイト": {}, "ルート・乗換": {}, "ルート": {}, "経路": {}, "ルート検索": {},
	"予約": {}, "共有": {}, "保存": {}, "周辺": {}, "電話": {}, "メニュー": {}, "注文": {},
	"クチコミ": {}, "口コミ": {}, "写真": {}, "概要": {}, "スマートフォンに送信": {},
	"website": {}, "directions": {}, "call": {}, "save": {}, "share": {},
}

// statusPrefixes start opening-status lines.
var statusPrefixes = []string{"営業中", "営業時間外", "閉店", "まもなく", "臨時休業", "休業中", "一時休業", "閉業"}

// hoursWords mark business-hours boilerplate.
var hoursWords = []string{"営業時間", "24時間営業", "営業終了", "営業開始", "定休日", "時間営業", "受付時間"}

var timeOfDayRe = regexp.MustCompile(`\d{1,2}:\d{2}`)

// reviewWords appear in review snippets copied between listings.
var reviewWords = []string{"楽しい", "親切", "人柄", "感じ", "スタッフ", "雰囲気", "交流", "お世話", "ありがとう", "です", "ました", "🙇"}

var (
	// numericOnlyRe matches ratings, counts and bare numbers.
	numericOnlyRe  = regexp.MustCompile(`^[\d\s.,:;()+\-★☆·・⋅•%/]+$`)
	blockNumberRe  = regexp.MustCompile(`\d+-\d+`)
	locationRe     = regexp.MustCompile(`都|道|府|県|市|区|郡|町|村|丁目|番地|番|号|〒`)
	prefectureRe   = regexp.MustCompile(`北海道|東京都|京都府|大阪府|(?:青森|岩手|宮城|秋田|山形|福島|茨城|栃木|群馬|埼玉|千葉|神奈川|新潟|富山|石川|福井|山梨|長野|岐阜|静岡|愛知|三重|滋賀|兵庫|奈良|和歌山|鳥取|島根|岡山|広島|山口|徳島|香川|愛媛|高知|福岡|佐賀|長崎|熊本|大分|宮崎|鹿児島|沖縄)県`)
	municipalityRe = regexp.MustCompile(`\p{Han}{1,5}[市郡]\p{Han}{1,5}[区町村]`)
	latinMarkerRe  = regexp.MustCompile(`(?i)\b(?:co\.,?\s?ltd|inc|corp|ltd|llc|k\.k)\b`)
)

// legalMarkers identify a company (as opposed to a facility) name. Latin
// suffixes are matched by latinMarkerRe as whole words.
var legalMarkers = []string{
	"株式会社", "有限会社", "合同会社", "合資会社", "合名会社", "(株)", "(有)", "(同)",
	"一般社団法人", "一般財団法人", "協同組合",
}

// facilityWords mark branch, warehouse and office lines.
var facilityWords = []string{
	"営業所", "センター", "支店", "支社", "倉庫", "工場", "事業所", "出張所", "営業部", "事務所",
	"デポ", "ターミナル", "店舗", "物流拠点",
}

// isChrome reports whether n (normalized) is a UI label or opening status.
func isChrome(n string) bool {
	if _, ok := uiChrome[strings.ToLower(n)]; ok {
		return true
	}
	for _, p := range statusPrefixes {
		if strings.HasPrefix(n, p) {
			return true
		}
	}
	return false
}

// isBusinessHours reports whether n is an opening-hours line.
func isBusinessHours(n string) bool {
	for _, w := range hoursWords {
		if strings.Contains(n, w) {
			return true
		}
	}
	for _, p := range statusPrefixes {
		if strings.HasPrefix(n, p) {
			return true
		}
	}
	return timeOfDayRe.MatchString(n) && !phone.Contains(n)
}

// isReviewSnippet reports whether n looks like a quoted customer review.
func isReviewSnippet(n string) bool {
	if strings.HasPrefix(n, "\"") || strings.HasPrefix(n, "“") || strings.HasPrefix(n, "「") {
		return true
	}
	for _, w := range reviewWords {
		if strings.Contains(n, w) {
			return true
		}
	}
	return false
}

// isBoilerplate reports lines that never carry record fields.
func isBoilerplate(n string) bool {
	if n == "" {
		return true
	}
	return isChrome(n) || isBusinessHours(n) || isReviewSnippet(n) || industry.StripReviewNoise(n) == ""
}

// LooksLikeAddress reports whether a line reads as a postal address: a
// digit together with a location word or a block number, or a prefecture/
// municipality name on its own. Phone and opening-hours lines never qualify.
func LooksLikeAddress(line string) bool {
	n := textnorm.Normalize(line)
	if n == "" || isBusinessHours(n) || phone.Contains(line) {
		return false
	}
	if strings.Contains(n, "〒") {
		return true
	}
	if hasDigit(n) && (locationRe.MatchString(n) || blockNumberRe.MatchString(n)) {
		return true
	}
	return prefectureRe.MatchString(n) || municipalityRe.MatchString(n)
}

// LooksLikeCompany reports whether a line could be a company name: it has
// at least one CJK or Latin letter and is not UI chrome, a rating, review
// noise, opening hours or a phone line.
func LooksLikeCompany(line string) bool {
	n := textnorm.Normalize(line)
	if n == "" || isChrome(n) || isBusinessHours(n) || isReviewSnippet(n) {
		return false
	}
	if phone.Contains(line) || numericOnlyRe.MatchString(n) {
		return false
	}
	if industry.IsNoReviewsMarker(n) || industry.StripReviewNoise(n) == "" {
		return false
	}
	return hasLetter(n)
}

// hasLegalMarker reports whether a name carries a legal-entity marker.
func hasLegalMarker(name string) bool {
	n := textnorm.Normalize(name)
	for _, m := range legalMarkers {
		if strings.Contains(n, m) {
			return true
		}
	}
	return latinMarkerRe.MatchString(n)
}

// hasFacilityWord reports whether a name is a branch or facility line.
func hasFacilityWord(name string) bool {
	n := textnorm.Normalize(name)
	for _, w := range facilityWords {
		if strings.Contains(n, w) {
			return true
		}
	}
	return false
}

// hasLocationWord reports whether an address fragment names a place.
func hasLocationWord(n string) bool {
	return locationRe.MatchString(n) || prefectureRe.MatchString(n)
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana):
			return true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			return true
		}
	}
	return false
}
