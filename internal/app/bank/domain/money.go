package domain

import "github.com/shopspring/decimal"

// amount 使用 int64，並定義精度：小數點後 2 位 (cents)
const (
	CurrencyScale = 2
)

// MaxAnnualInterestRate 年利率上限 (百分比)
var MaxAnnualInterestRate = decimal.NewFromInt(100)

// ParseAmount 解析十進位金額字串為 cents
// 超過 2 位小數或超出 int64 範圍視為無效
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Shift(CurrencyScale)
	if !cents.IsInteger() {
		return 0, ErrInvalidAmount
	}
	bi := cents.BigInt()
	if !bi.IsInt64() {
		return 0, ErrInvalidAmount
	}
	return bi.Int64(), nil
}

// FormatAmount 將 cents 轉為固定兩位小數的字串 (如 "512.50")
func FormatAmount(amount int64) string {
	return decimal.New(amount, -CurrencyScale).StringFixed(CurrencyScale)
}

// ParseRate 解析年利率百分比字串
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidInterestRate
	}
	return d, nil
}

// ValidAnnualRate 檢查年利率是否在 [0, MaxAnnualInterestRate] 內
func ValidAnnualRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(MaxAnnualInterestRate)
}

// Interest 計算單期利息: balance * rate / 100
// 結果四捨五入到 cent，全系統唯一的進位規則
func Interest(balance int64, annualRate decimal.Decimal) int64 {
	interest := decimal.New(balance, -CurrencyScale).
		Mul(annualRate.Shift(-2)).
		Round(CurrencyScale)
	return interest.Shift(CurrencyScale).IntPart()
}
