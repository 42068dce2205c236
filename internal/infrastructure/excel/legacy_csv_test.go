package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/taechang/erp-api/internal/domain/entity"
)

func itemFixtures() []*entity.Item {
	return []*entity.Item{
		{
			ItemCode: "RAW-001", ItemName: "냉연강판", Spec: "1.6T",
			ItemCategory: entity.ItemCategoryRawMaterial, Unit: "KG",
			UnitPrice: decimal.NewFromInt(300), ScrapUnitPrice: decimal.NewFromInt(45),
			SafetyStock: decimal.NewFromInt(500), UseYN: "Y",
		},
		{
			ItemCode: "FIN-001", ItemName: "브라켓 어셈블리", Spec: "",
			ItemCategory: entity.ItemCategoryFinished, Unit: "EA",
			UnitPrice: decimal.NewFromInt(2500), UseYN: "Y",
		},
	}
}

const legacyCSVBody = `품목코드,품목명,규격,구분,단위,단가,스크랩단가,안전재고
RAW-001,냉연강판,1.6T,원자재,KG,300,45,500
FIN-001,브라켓 어셈블리,,완제품,EA,2500,0,0
`

func toEUCKR(t *testing.T, s string) []byte {
	t.Helper()
	out, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return out
}

func TestLegacyCSV_ParsesEUCKR(t *testing.T) {
	data := toEUCKR(t, legacyCSVBody)
	require.False(t, bytes.Contains(data, []byte("냉연강판")),
		"fixture must actually be EUC-KR, not UTF-8")

	rows, rowErrs, err := NewLegacyCSV().ParseItems(data)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, "RAW-001", rows[0].ItemCode)
	assert.Equal(t, "냉연강판", rows[0].ItemName, "Korean text must survive the decode")
	assert.Equal(t, entity.ItemCategoryRawMaterial, rows[0].ItemCategory)
	assert.True(t, rows[0].ScrapUnitPrice.Equal(decimal.NewFromInt(45)))
	assert.True(t, rows[0].SafetyStock.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, entity.ItemCategoryFinished, rows[1].ItemCategory)
	assert.True(t, rows[1].UnitPrice.Equal(decimal.NewFromInt(2500)))
}

func TestLegacyCSV_ParsesUTF8Unchanged(t *testing.T) {
	rows, _, err := NewLegacyCSV().ParseItems([]byte(legacyCSVBody))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "냉연강판", rows[0].ItemName)
}

func TestLegacyCSV_HeaderlessFileStillParses(t *testing.T) {
	body := "RAW-002,코일,2.0T,원자재,KG,410,50,100\n"
	rows, _, err := NewLegacyCSV().ParseItems([]byte(body))
	require.NoError(t, err)
	require.Len(t, rows, 1, "a first row that parses as data is data, not a header")
	assert.Equal(t, "RAW-002", rows[0].ItemCode)
}

// A bad row mid-file is reported and skipped; the rows around it survive.
func TestLegacyCSV_BadPriceMidFile(t *testing.T) {
	body := legacyCSVBody + "RAW-003,불량행,,원자재,KG,가격아님,0,0\nRAW-004,정상행,,원자재,KG,120,0,0\n"
	rows, rowErrs, err := NewLegacyCSV().ParseItems([]byte(body))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "RAW-004", rows[2].ItemCode)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 4, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Message, "bad price")
}

func TestLegacyCSV_SkipsBlankAndShortRows(t *testing.T) {
	body := "RAW-001,냉연강판,1.6T,원자재,KG,300,45,500\n,,,\n\nRAW-002,코일,,원자재,KG,410,0,0\n"
	rows, _, err := NewLegacyCSV().ParseItems([]byte(body))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
