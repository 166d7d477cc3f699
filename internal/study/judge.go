package study

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// normalizeAnswer は前後の空白を除去し、全角半角と合成差を NFKC で揃えます
func normalizeAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = width.Fold.String(s)
	return norm.NFKC.String(s)
}

// JudgeFillAnswer は穴埋め問題の入力を正解文字列と比較します。
// 全角入力と半角入力、結合文字の表現差は同一視されます。
func JudgeFillAnswer(input, answer string) bool {
	return normalizeAnswer(input) == normalizeAnswer(answer)
}
