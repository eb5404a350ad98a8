package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"kommercio/internal/config"
	"kommercio/internal/domain/model"
	"kommercio/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 30 * time.Minute

// refreshtokenの有効期限
const refreshTokenTTL = 7 * 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, email string, username string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type SignupInput struct {
	Email    string
	Username string
	Password string
	Role     string
}

type SignupOutput struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type UpdateProfileInput struct {
	Email    *string
	Username *string
}

type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(cfg config.Config, users repository.UserRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
	}
}

// 会員登録
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateSignup(ctx, in.Email, in.Username, in.Password); err != nil {
		return nil, err
	}

	//role未指定はcustomer
	role := model.Role(in.Role)
	if in.Role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, NewValidationError("invalid role")
	}

	//重複チェック
	taken, err := u.users.ExistsByEmail(ctx, in.Email, 0)
	if err != nil {
		return nil, NewInternalError()
	}
	if taken {
		return nil, NewConflictError("email already registered")
	}

	taken, err = u.users.ExistsByUsername(ctx, in.Username, 0)
	if err != nil {
		return nil, NewInternalError()
	}
	if taken {
		return nil, NewConflictError("username already taken")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError()
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(pwHash),
		Role:         role,
	}

	//保存。同時登録の競合はunique制約で弾かれる
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError("email or username already taken")
		}
		return nil, NewInternalError()
	}

	return &SignupOutput{
		Message: "User created successfully",
		UserID:  user.ID,
	}, nil
}

// ログイン。成功でaccess+refreshのペアを返す。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*TokenPairDTO, error) {
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			//ユーザー不在とPW違いは区別させない
			return nil, NewAuthError("incorrect email or password")
		}
		return nil, NewInternalError()
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewAuthError("incorrect email or password")
	}

	return u.issueTokenPair(user)
}

// refresh tokenから新しいペアを発行する（ローテーション）。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenPairDTO, error) {
	if refreshToken == "" {
		return nil, NewValidationError("refresh token is required")
	}

	email, userID, err := u.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}

	//subjectが現在もユーザーとして存在することを確認
	user, err := u.users.FindByEmailAndID(ctx, email, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewAuthError("user not found")
		}
		return nil, NewInternalError()
	}

	return u.issueTokenPair(user)
}

// Authenticateはaccess tokenを検証し、subjectのユーザーを解決する。
// 認証ミドルウェアから呼ばれる。
func (u *AuthUsecase) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	email, userID, err := u.parseToken(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmailAndID(ctx, email, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewAuthError("user not found")
		}
		return nil, NewInternalError()
	}

	return user, nil
}

// プロフィール更新。更新できるのはemail/usernameだけ（許可リスト方式）。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, user *model.User, in UpdateProfileInput) (*UserDTO, error) {
	changed := false

	if in.Email != nil && *in.Email != "" {
		if !isEmailLike(*in.Email) {
			return nil, NewValidationError("invalid email format")
		}
		taken, err := u.users.ExistsByEmail(ctx, *in.Email, user.ID)
		if err != nil {
			return nil, NewInternalError()
		}
		if taken {
			return nil, NewConflictError("email already registered")
		}
		user.Email = *in.Email
		changed = true
	}

	if in.Username != nil && *in.Username != "" {
		taken, err := u.users.ExistsByUsername(ctx, *in.Username, user.ID)
		if err != nil {
			return nil, NewInternalError()
		}
		if taken {
			return nil, NewConflictError("username already taken")
		}
		user.Username = *in.Username
		changed = true
	}

	if changed {
		if err := u.users.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, NewConflictError("email or username already taken")
			}
			return nil, NewInternalError()
		}
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// パスワード変更。現在のパスワード照合が必須。
func (u *AuthUsecase) UpdatePassword(ctx context.Context, user *model.User, in UpdatePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return NewValidationError("current password and new password are required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return NewValidationError("incorrect current password")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewInternalError()
	}

	user.PasswordHash = string(newHash)
	if err := u.users.Update(ctx, user); err != nil {
		return NewInternalError()
	}

	return nil
}

// access/refresh両方をまとめて発行
func (u *AuthUsecase) issueTokenPair(user *model.User) (*TokenPairDTO, error) {
	access, err := u.signToken(user, accessTokenTTL)
	if err != nil {
		return nil, NewInternalError()
	}

	refresh, err := u.signToken(user, refreshTokenTTL)
	if err != nil {
		return nil, NewInternalError()
	}

	return &TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// jwt発行。claimsはsub=email / user_id / iat / exp。
func (u *AuthUsecase) signToken(user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":     user.Email,
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}

// jwtを検証してsubjectを取り出す
func (u *AuthUsecase) parseToken(raw string) (email string, userID int64, err error) {
	token, parseErr := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.cfg.JWTSecret), nil
	})

	if parseErr != nil {
		if errors.Is(parseErr, jwt.ErrTokenExpired) {
			return "", 0, NewAuthError("token has expired")
		}
		return "", 0, NewAuthError("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, NewAuthError("invalid token")
	}

	email, _ = claims["sub"].(string)
	idFloat, _ := claims["user_id"].(float64)
	if email == "" || idFloat <= 0 {
		return "", 0, NewAuthError("invalid token")
	}

	return email, int64(idFloat), nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     string(u.Role),
	}
}
