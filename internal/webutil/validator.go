// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"username":          "ユーザー名",
	"email":             "メールアドレス",
	"password":          "パスワード",
	"level":             "レベル",
	"type":              "出題形式",
	"kanji":             "漢字",
	"furigana":          "ふりがな",
	"example_sentence":  "例文",
	"answer_in_example": "例文中の答え",
	"meanings":          "意味",
	"word_id":           "単語ID",
	"word_ids":          "単語IDリスト",
	"deck_word_ids":     "デッキの単語IDリスト",
	"completed":         "学習済みフラグ",
	"current_index":     "カーソル位置",
	"accept":            "復習モードの選択",
	"token":             "トークン",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 日本語のロケールとトランスレータを設定
	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// タグごとのメッセージを日本語フィールド名で上書きするヘルパー
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName, fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("email", "{0}は有効なメールアドレス形式ではありません。")
	registerTranslation("min", "{0}は{1}文字以上で入力してください。")
	registerTranslation("max", "{0}は{1}文字以下で入力してください。")
	registerTranslation("gte", "{0}は{1}以上で指定してください。")
}
