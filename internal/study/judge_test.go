package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJudgeFillAnswer(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		answer string
		want   bool
	}{
		{
			name:   "正常系: 完全一致",
			input:  "食べます",
			answer: "食べます",
			want:   true,
		},
		{
			name:   "正常系: 前後の空白は無視する",
			input:  "  食べます　",
			answer: "食べます",
			want:   true,
		},
		{
			name:   "正常系: 半角カナは全角カナと同一視する",
			input:  "ﾀﾍﾞﾏｽ",
			answer: "タベマス",
			want:   true,
		},
		{
			name:   "正常系: 全角英数は半角英数と同一視する",
			input:  "ＪＬＰＴ",
			answer: "JLPT",
			want:   true,
		},
		{
			name:   "正常系: 結合文字の表現差 (NFKC) を吸収する",
			input:  "が", // か + 濁点
			answer: "が",
			want:   true,
		},
		{
			name:   "異常系: 内容が違えば不一致",
			input:  "たべます",
			answer: "のみます",
			want:   false,
		},
		{
			name:   "境界値: 両方空文字は一致",
			input:  "",
			answer: "",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JudgeFillAnswer(tt.input, tt.answer))
		})
	}
}
