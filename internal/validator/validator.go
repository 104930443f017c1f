// Package validator checks request input with ozzo-validation before it
// reaches the use cases.
package validator

import (
	"errors"
	"strings"

	"bookly/internal/domain/model"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var ErrPasswordsDoNotMatch = errors.New("passwords do not match")

const minPasswordLength = 6

// サインアップ
func Signup(firstName, lastName, username, email, password string) error {
	return validation.Errors{
		"first_name": validation.Validate(firstName, validation.Required, validation.Length(1, 25)),
		"last_name":  validation.Validate(lastName, validation.Required, validation.Length(1, 25)),
		"username":   validation.Validate(username, validation.Required, validation.Length(1, 8)),
		"email":      validation.Validate(email, validation.Required, is.Email),
		"password":   validation.Validate(password, validation.Required, validation.Length(minPasswordLength, 0)),
	}.Filter()
}

// ログイン
func Login(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(minPasswordLength, 0)),
	}.Filter()
}

func Email(email string) error {
	return validation.Errors{
		"email": validation.Validate(email, validation.Required, is.Email),
	}.Filter()
}

// 送信先は1件以上、全部メール形式
func Addresses(addresses []string) error {
	return validation.Errors{
		"addresses": validation.Validate(addresses, validation.Required, validation.Each(is.Email)),
	}.Filter()
}

// 新パスワードと確認用が一致するか
func PasswordReset(newPassword, confirm string) error {
	err := validation.Errors{
		"new_password":         validation.Validate(newPassword, validation.Required, validation.Length(minPasswordLength, 0)),
		"confirm_new_password": validation.Validate(confirm, validation.Required, validation.Length(minPasswordLength, 0)),
	}.Filter()
	if err != nil {
		return err
	}
	if newPassword != confirm {
		return ErrPasswordsDoNotMatch
	}
	return nil
}

// 本の作成
func Book(title, author, publisher, language string, pageCount int) error {
	return validation.Errors{
		"title":      validation.Validate(strings.TrimSpace(title), validation.Required, validation.Length(1, 255)),
		"author":     validation.Validate(strings.TrimSpace(author), validation.Required, validation.Length(1, 255)),
		"publisher":  validation.Validate(strings.TrimSpace(publisher), validation.Required, validation.Length(1, 255)),
		"language":   validation.Validate(strings.TrimSpace(language), validation.Required, validation.Length(1, 50)),
		"page_count": validation.Validate(pageCount, validation.Required, validation.Min(1)),
	}.Filter()
}

// 部分更新。渡されたものだけ見る
func BookPatch(title, author, publisher, language *string, pageCount *int) error {
	errs := validation.Errors{}
	if title != nil {
		errs["title"] = validation.Validate(strings.TrimSpace(*title), validation.Required, validation.Length(1, 255))
	}
	if author != nil {
		errs["author"] = validation.Validate(strings.TrimSpace(*author), validation.Required, validation.Length(1, 255))
	}
	if publisher != nil {
		errs["publisher"] = validation.Validate(strings.TrimSpace(*publisher), validation.Required, validation.Length(1, 255))
	}
	if language != nil {
		errs["language"] = validation.Validate(strings.TrimSpace(*language), validation.Required, validation.Length(1, 50))
	}
	if pageCount != nil {
		errs["page_count"] = validation.Validate(*pageCount, validation.Required, validation.Min(1))
	}
	return errs.Filter()
}

func TagName(name string) error {
	return validation.Errors{
		"name": validation.Validate(strings.TrimSpace(name), validation.Required, validation.Length(1, 100)),
	}.Filter()
}

// 評価は1〜5。Min/Maxは0を空として飛ばすのでRequiredを先に置く
func Review(rating int, text string) error {
	return validation.Errors{
		"rating":      validation.Validate(rating, validation.Required, validation.Min(model.MinRating), validation.Max(model.MaxRating)),
		"review_text": validation.Validate(strings.TrimSpace(text), validation.Required),
	}.Filter()
}
