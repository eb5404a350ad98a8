package repository

import (
	"context"
	"errors"

	"kommercio/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// unique制約違反（email / username重複）を統一
var ErrDuplicate = errors.New("duplicate")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。email/username重複はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを1件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//トークンのsubjectを解決する。emailとidの両方が一致する行だけを返す。
	FindByEmailAndID(ctx context.Context, email string, userID int64) (*model.User, error)
	//重複チェック（excludeIDは自分自身を除外するため。0なら除外なし）
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	// ユーザー情報の更新（プロフィール・パスワードハッシュ）
	Update(ctx context.Context, user *model.User) error
}
