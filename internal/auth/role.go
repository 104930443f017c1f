package auth

import "bookly/internal/domain/model"

// RoleCheckerは許可するロールの一覧を持つ
type RoleChecker struct {
	allowed map[model.Role]struct{}
}

func NewRoleChecker(roles ...model.Role) RoleChecker {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return RoleChecker{allowed: allowed}
}

// 認証済みかを先に見る。両方ダメなら未認証のエラーになる
func (rc RoleChecker) Check(user *model.User) error {
	if user == nil {
		return ErrUserNotFound
	}
	if !user.IsVerified {
		return ErrUserUnverified
	}
	if _, ok := rc.allowed[user.Role]; !ok {
		return ErrInsufficientRole
	}
	return nil
}

// Authorizeはその場でRoleCheckerを作って判定する
func Authorize(user *model.User, allowed ...model.Role) error {
	return NewRoleChecker(allowed...).Check(user)
}
