package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ferias-hub/backend/internal/dto"
	"ferias-hub/backend/internal/service"
	"ferias-hub/backend/pkg/response"
)

// 上传文件大小上限（员工批量导入）
const maxUploadSize = 5 << 20 // 5MB

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreateUser 创建用户（RH）
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.Created(c, user)
}

// GetUser 用户详情（RH）
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// ListUsers 用户列表（RH）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}

// ListMyTeam 当前经理的直属下属列表（Gestor/RH）
// GET /api/v1/users/my-team
func (h *UserHandler) ListMyTeam(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	users, err := h.userSvc.ListByGestor(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}

// UpdateUser 更新用户（RH）
// PATCH /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// DeleteUser 删除用户（RH）
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportFuncionarios 批量导入员工（RH）
// POST /api/v1/users/import  (multipart/form-data, field: file)
func (h *UserHandler) ImportFuncionarios(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件（字段名 file）")
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.BadRequest(c, 20010, "文件大小超过 5MB 上限")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	rows, err := h.userSvc.ParseImportFile(file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportNoData),
			errors.Is(err, service.ErrImportTooManyRows),
			errors.Is(err, service.ErrImportBadHeader):
			response.BadRequest(c, 20011, err.Error())
		default:
			response.BadRequest(c, 20011, "无法解析 Excel 文件")
		}
		return
	}

	result, err := h.userSvc.ImportFuncionarios(c.Request.Context(), rows, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleUserError 用户模块业务错误 → HTTP 响应映射
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20001, "用户不存在")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 20002, "邮箱已存在")
	case errors.Is(err, service.ErrCPFExists):
		response.Conflict(c, 20003, "CPF 已存在")
	case errors.Is(err, service.ErrUniqueConflito):
		response.Conflict(c, 20004, "邮箱或 CPF 已存在")
	case errors.Is(err, service.ErrGestorRequired):
		response.BadRequest(c, 20005, "普通员工必须指定直属经理")
	case errors.Is(err, service.ErrGestorInvalido):
		response.BadRequest(c, 20006, "直属经理必须是 Gestor 或 RH 角色")
	case errors.Is(err, service.ErrGestorSelf):
		response.BadRequest(c, 20007, "不能将自己设为自己的直属经理")
	case errors.Is(err, service.ErrCredenciaisRequired):
		response.BadRequest(c, 20008, "Gestor/RH 必须提供邮箱与密码")
	case errors.Is(err, service.ErrUserSelfDelete):
		response.BadRequest(c, 20009, "不能删除自己")
	case errors.Is(err, service.ErrSetorNotFound):
		response.BadRequest(c, 21001, "部门不存在")
	case errors.Is(err, service.ErrCargoNotFound):
		response.BadRequest(c, 22001, "岗位不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/user_handler.go
