package format

import (
	"fmt"
	"math"
	"strings"
)

// Round1 rounds to one decimal place, halves away from zero.
// 기대수익률/ROE 등 모든 1자리 소수 표기는 이 함수로 통일
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Comma renders an integer with thousands separators (1234567 -> "1,234,567")
func Comma(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%d", v)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",")
}

// Korean number units
const (
	man = 10_000
	eok = 100_000_000
	jo  = 1_000_000_000_000
)

// KoreanAmount renders an amount in 조/억/만 단위, keeping the two largest
// units, e.g. 1_234_500_000_000 -> "1조 2,345억", -52_000_000 -> "-5,200만"
func KoreanAmount(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= jo:
		rest := (v % jo) / eok
		if rest == 0 {
			return fmt.Sprintf("%s%s조", sign, Comma(v/jo))
		}
		return fmt.Sprintf("%s%s조 %s억", sign, Comma(v/jo), Comma(rest))
	case v >= eok:
		rest := (v % eok) / man
		if rest == 0 {
			return fmt.Sprintf("%s%s억", sign, Comma(v/eok))
		}
		return fmt.Sprintf("%s%s억 %s만", sign, Comma(v/eok), Comma(rest))
	case v >= man:
		return fmt.Sprintf("%s%s만", sign, Comma(v/man))
	default:
		return sign + Comma(v)
	}
}
