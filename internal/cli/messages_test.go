package cli

import (
	"errors"
	"fmt"
	"testing"

	"sales/internal/core"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing branch file", &core.Error{Kind: core.KindMissingFile, Subject: core.Branch, File: "branch.lst"}, "支店定義ファイルが存在しません"},
		{"missing commodity file", &core.Error{Kind: core.KindMissingFile, Subject: core.Commodity, File: "commodity.lst"}, "商品定義ファイルが存在しません"},
		{"invalid branch format", &core.Error{Kind: core.KindInvalidFormat, Subject: core.Branch}, "支店定義ファイルのフォーマットが不正です"},
		{"invalid commodity format", &core.Error{Kind: core.KindInvalidFormat, Subject: core.Commodity}, "商品定義ファイルのフォーマットが不正です"},
		{"non sequential", &core.Error{Kind: core.KindNonSequentialFiles, File: "00000003.rcd"}, "売上ファイル名が連番になっていません"},
		{"record format", &core.Error{Kind: core.KindRecordInvalidFormat, File: "00000001.rcd"}, "00000001.rcdのフォーマットが不正です"},
		{"invalid branch code", &core.Error{Kind: core.KindInvalidCode, Subject: core.Branch, File: "00000002.rcd"}, "00000002.rcdの支店コードが不正です"},
		{"invalid commodity code", &core.Error{Kind: core.KindInvalidCode, Subject: core.Commodity, File: "00000002.rcd"}, "00000002.rcdの支店コードが不正です"},
		{"overflow", &core.Error{Kind: core.KindAmountOverflow, File: "00000009.rcd"}, "合計金額が10桁を超えました"},
		{"unknown kind", &core.Error{Kind: core.KindUnknown}, "予期せぬエラーが発生しました"},
		{"wrapped", fmt.Errorf("run: %w", &core.Error{Kind: core.KindAmountOverflow}), "合計金額が10桁を超えました"},
		{"plain error", errors.New("configuration validation failed"), "予期せぬエラーが発生しました"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
