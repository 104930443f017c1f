package repository

import "errors"

var (
	// レコードなし
	ErrNotFound = errors.New("not found")
	// ユーザーが見つかりませんを統一
	ErrUserNotFound = errors.New("user not found")
	// unique制約違反
	ErrDuplicate = errors.New("duplicate key")
)
