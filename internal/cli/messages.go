package cli

import (
	"errors"

	"sales/internal/core"
)

const (
	msgUnknownError        = "予期せぬエラーが発生しました"
	msgFileNotExist        = "が存在しません"
	msgFileInvalidFormat   = "のフォーマットが不正です"
	msgFileNotSequential   = "売上ファイル名が連番になっていません"
	msgAmountExceeded      = "合計金額が10桁を超えました"
	msgCodeInvalid         = "の支店コードが不正です"
	labelBranchDefinitions = "支店定義ファイル"
	labelCommodityFile     = "商品定義ファイル"
)

// Message returns the single line shown to the user for err. Errors that do
// not carry a *core.Error map to the unknown-error text.
func Message(err error) string {
	var e *core.Error
	if !errors.As(err, &e) {
		return msgUnknownError
	}

	switch e.Kind {
	case core.KindMissingFile:
		return definitionLabel(e.Subject) + msgFileNotExist
	case core.KindInvalidFormat:
		return definitionLabel(e.Subject) + msgFileInvalidFormat
	case core.KindNonSequentialFiles:
		return msgFileNotSequential
	case core.KindRecordInvalidFormat:
		return e.File + msgFileInvalidFormat
	case core.KindInvalidCode:
		return e.File + msgCodeInvalid
	case core.KindAmountOverflow:
		return msgAmountExceeded
	default:
		return msgUnknownError
	}
}

func definitionLabel(kind core.EntityKind) string {
	if kind == core.Commodity {
		return labelCommodityFile
	}
	return labelBranchDefinitions
}
