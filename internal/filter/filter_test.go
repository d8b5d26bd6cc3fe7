package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gchange/internal/model"
)

func rec(company, ind, address, phoneText string) model.Record {
	return model.NewRecord(company, ind, address, phoneText)
}

func companies(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Company
	}
	return out
}

func TestApply_NGCompany(t *testing.T) {
	opts := DefaultOptions()
	opts.Exclusions = []model.Exclusion{model.NewExclusion("テスト", "")}

	res := Apply([]model.Record{
		rec("株式会社テスト", "製造業", "東京都", "03-1111-1111"),
		rec("テスト商事", "卸売業", "大阪府", "06-2222-2222"),
	}, opts)

	assert.Equal(t, []string{"テスト商事"}, companies(res.Records))
	require.Len(t, res.Removals, 1)
	assert.Equal(t, model.ReasonNGCompany, res.Removals[0].Reason)
	assert.Equal(t, "株式会社テスト", res.Removals[0].SourceCompany)
	assert.Equal(t, "テスト", res.Removals[0].MatchKey)
	assert.Equal(t, "テスト", res.Removals[0].MatchedAgainst)
}

func TestApply_NGCompanyContainment(t *testing.T) {
	opts := DefaultOptions()
	opts.Exclusions = []model.Exclusion{model.NewExclusion("サンプル物流", "")}

	res := Apply([]model.Record{
		rec("株式会社サンプル物流センター", "倉庫業", "", "03-1111-1111"),
		rec("テスト工業", "", "", "03-2222-2222"),
	}, opts)

	assert.Equal(t, []string{"テスト工業"}, companies(res.Records))
	require.Len(t, res.Removals, 1)
	assert.Equal(t, "サンプル物流", res.Removals[0].MatchedAgainst)
}

func TestApply_NGPhone(t *testing.T) {
	opts := DefaultOptions()
	opts.Exclusions = []model.Exclusion{
		model.NewExclusion("別会社", "０３－１１１１－１１１１"),
		model.NewExclusion("電話なし", ""),
	}

	res := Apply([]model.Record{
		rec("株式会社エー", "", "", "03-1111-1111"),
		rec("株式会社ビー", "", "", ""),
	}, opts)

	assert.Equal(t, []string{"株式会社ビー"}, companies(res.Records))
	require.Len(t, res.Removals, 1)
	assert.Equal(t, model.ReasonNGPhone, res.Removals[0].Reason)
	assert.Equal(t, "0311111111", res.Removals[0].MatchKey)
}

func TestApply_CompanyCheckedBeforePhone(t *testing.T) {
	opts := DefaultOptions()
	opts.Exclusions = []model.Exclusion{model.NewExclusion("株式会社エヌジー", "03-1111-1111")}

	res := Apply([]model.Record{rec("エヌジー", "", "", "03-1111-1111")}, opts)

	assert.Empty(t, res.Records)
	require.Len(t, res.Removals, 1)
	assert.Equal(t, model.ReasonNGCompany, res.Removals[0].Reason)
}

func TestApply_Dedup(t *testing.T) {
	res := Apply([]model.Record{
		rec("A", "", "", "03-1234-5678"),
		rec("B", "", "", "03(1234)5678"),
		rec("C", "", "", "03-9999-0000"),
	}, DefaultOptions())

	assert.Equal(t, []string{"A", "C"}, companies(res.Records))
	require.Len(t, res.Removals, 1)
	assert.Equal(t, model.ReasonPhoneDuplicate, res.Removals[0].Reason)
	assert.Equal(t, "B", res.Removals[0].SourceCompany)
	assert.Equal(t, "0312345678", res.Removals[0].MatchKey)
	assert.Equal(t, "A", res.Removals[0].MatchedAgainst)
}

func TestApply_DedupAfterNG(t *testing.T) {
	opts := DefaultOptions()
	opts.Exclusions = []model.Exclusion{model.NewExclusion("株式会社エヌジー", "")}

	res := Apply([]model.Record{
		rec("株式会社エヌジー", "", "", "03-1234-5678"),
		rec("株式会社ツイン", "", "", "03-1234-5678"),
	}, opts)

	assert.Equal(t, []string{"株式会社ツイン"}, companies(res.Records))
	require.Len(t, res.Removals, 1)
	assert.Equal(t, model.ReasonNGCompany, res.Removals[0].Reason)
}

func TestApply_EmptyPhonesNotDeduplicated(t *testing.T) {
	res := Apply([]model.Record{
		rec("A", "", "東京都", ""),
		rec("B", "", "大阪府", ""),
	}, DefaultOptions())

	assert.Len(t, res.Records, 2)
	assert.Empty(t, res.Removals)
}

func TestApply_EmptyRecordsDropped(t *testing.T) {
	res := Apply([]model.Record{
		rec("", "", "", ""),
		rec("A", "", "", ""),
	}, DefaultOptions())

	assert.Equal(t, []string{"A"}, companies(res.Records))
	require.Len(t, res.Removals, 1)
	assert.Equal(t, model.ReasonEmptyRecord, res.Removals[0].Reason)
}

func TestApply_IndustryExclude(t *testing.T) {
	opts := DefaultOptions()
	opts.IndustryMode = IndustryModeExclude

	res := Apply([]model.Record{
		rec("A", "一般貨物自動車運送業", "", "03-1111-1111"),
		rec("B", "製造業", "", "03-2222-2222"),
		rec("C", "倉庫", "", "03-3333-3333"),
	}, opts)

	assert.Equal(t, []string{"B"}, companies(res.Records))
	assert.Equal(t, 2, res.IndustryRemoved)
	require.Len(t, res.Removals, 2)
	assert.Equal(t, model.ReasonNGIndustry, res.Removals[0].Reason)
	assert.Equal(t, "運送", res.Removals[0].MatchedAgainst)
	assert.Equal(t, "倉庫", res.Removals[1].MatchedAgainst)
}

func TestApply_IndustryHighlight(t *testing.T) {
	opts := DefaultOptions()
	opts.IndustryMode = IndustryModeHighlight

	res := Apply([]model.Record{
		rec("A", "物流センター", "", "03-1111-1111"),
		rec("B", "製造業", "", "03-2222-2222"),
	}, opts)

	require.Len(t, res.Records, 2)
	assert.Empty(t, res.Removals)
	assert.True(t, res.Records[0].Highlight)
	assert.False(t, res.Records[1].Highlight)
}

func TestApply_IndustryNone(t *testing.T) {
	res := Apply([]model.Record{rec("A", "運送業", "", "03-1111-1111")}, DefaultOptions())
	require.Len(t, res.Records, 1)
	assert.False(t, res.Records[0].Highlight)
	assert.Zero(t, res.IndustryRemoved)
}

func TestApply_Sort(t *testing.T) {
	res := Apply([]model.Record{
		rec("Z", "", "", ""),
		rec("B", "", "", "06-1111-1111"),
		rec("A", "", "", ""),
		rec("C", "", "", "03-1111-1111"),
	}, DefaultOptions())

	assert.Equal(t, []string{"C", "B", "A", "Z"}, companies(res.Records))
}

func TestApply_InputUntouched(t *testing.T) {
	in := []model.Record{
		rec("B", "", "", "06-1111-1111"),
		rec("A", "", "", "03-1111-1111"),
	}
	Apply(in, DefaultOptions())
	assert.Equal(t, []string{"B", "A"}, companies(in))
}

func TestParseIndustryMode(t *testing.T) {
	for in, want := range map[string]IndustryMode{
		"":           IndustryModeNone,
		"none":       IndustryModeNone,
		"Exclude":    IndustryModeExclude,
		" highlight": IndustryModeHighlight,
	} {
		got, err := ParseIndustryMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseIndustryMode("物流")
	assert.Error(t, err)
}
