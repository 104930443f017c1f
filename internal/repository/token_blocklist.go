package repository

import "context"

// 失効したaccess tokenのjtiを覚えておく約束。
// 期限（TTL）が来たら自然に消える前提なので削除はない。
type TokenBlocklist interface {
	//jtiを失効済みにする（何度呼んでも同じ）
	Revoke(ctx context.Context, jti string) error
	//失効済みか。発行していないjtiはfalse
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
