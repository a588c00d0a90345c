package schema

// Field is a canonical transaction attribute every parsed source is
// normalized into. Only FieldTime and FieldAmount are mandatory.
type Field string

const (
	FieldTime             Field = "time"
	FieldAmount           Field = "amount"
	FieldDirection        Field = "direction"
	FieldSummary          Field = "summary"
	FieldProduct          Field = "product"
	FieldMerchant         Field = "merchant"
	FieldCounterparty     Field = "counterparty"
	FieldCounterpartyName Field = "counterpartyName"
)

// KnownField reports whether name is a canonical field.
func KnownField(name string) bool {
	switch Field(name) {
	case FieldTime, FieldAmount, FieldDirection, FieldSummary,
		FieldProduct, FieldMerchant, FieldCounterparty, FieldCounterpartyName:
		return true
	}
	return false
}

// Rule pairs a canonical field with the header substrings that identify
// it. Rules are evaluated in slice order; an earlier field wins a
// column that would match several.
type Rule struct {
	Field    Field
	Synonyms []string
}

// DefaultRules covers the column namings seen across bank and
// payment-app exports, highest priority first. Matching is
// case-insensitive substring containment.
func DefaultRules() []Rule {
	return []Rule{
		{FieldTime, []string{"交易时间", "日期", "时间", "transaction time", "date", "time"}},
		{FieldAmount, []string{"金额", "支出金额", "收入/支出", "交易金额", "amount"}},
		{FieldDirection, []string{"收/支", "方向", "direction", "dr/cr"}},
		{FieldSummary, []string{"摘要", "交易详情", "summary", "description", "details"}},
		{FieldProduct, []string{"商品", "商品名称", "product"}},
		{FieldMerchant, []string{"商户", "商户名称", "merchant"}},
		{FieldCounterparty, []string{"交易对方", "交易对象", "counterparty"}},
		{FieldCounterpartyName, []string{"对方户名", "对方名称", "payee"}},
	}
}

// DefaultTimeTokens are the header-row detection tokens indicating a
// date/time column is present.
func DefaultTimeTokens() []string {
	return []string{"时间", "日期", "time", "date"}
}

// DefaultAmountTokens are the header-row detection tokens indicating an
// amount or expenditure column is present.
func DefaultAmountTokens() []string {
	return []string{"金额", "支出", "amount", "expense"}
}
