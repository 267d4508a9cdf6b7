package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
// Tipo 为显式权限角色，与岗位名称解耦；Funcionario 必须提供 GestorID；
// Gestor/RH 必须提供 Email 与 Senha（服务层校验）
type CreateUserRequest struct {
	Nome     string  `json:"nome"      binding:"required,min=2,max=100"`
	Email    string  `json:"email"     binding:"omitempty,email"`
	CPF      string  `json:"cpf"       binding:"required,len=11,numeric"`
	Idade    int     `json:"idade"     binding:"required,min=14"`
	Salario  float64 `json:"salario"   binding:"required,min=0"`
	Tipo     string  `json:"tipo"      binding:"required,oneof=Funcionario Gestor RH"`
	SetorID  string  `json:"setor_id"  binding:"required,uuid"`
	CargoID  string  `json:"cargo_id"  binding:"required,uuid"`
	GestorID *string `json:"gestor_id" binding:"omitempty,uuid"`
	Senha    string  `json:"senha"     binding:"omitempty,min=6"`
}

// UpdateUserRequest 更新用户请求（仅更新非 nil 字段）
type UpdateUserRequest struct {
	Nome     *string  `json:"nome"      binding:"omitempty,min=2,max=100"`
	Email    *string  `json:"email"     binding:"omitempty,email"`
	CPF      *string  `json:"cpf"       binding:"omitempty,len=11,numeric"`
	Idade    *int     `json:"idade"     binding:"omitempty,min=14"`
	Salario  *float64 `json:"salario"   binding:"omitempty,min=0"`
	Tipo     *string  `json:"tipo"      binding:"omitempty,oneof=Funcionario Gestor RH"`
	SetorID  *string  `json:"setor_id"  binding:"omitempty,uuid"`
	CargoID  *string  `json:"cargo_id"  binding:"omitempty,uuid"`
	GestorID *string  `json:"gestor_id" binding:"omitempty,uuid"`
	Senha    *string  `json:"senha"     binding:"omitempty,min=6"`
}

// ImportFuncionariosResponse 批量导入员工响应
type ImportFuncionariosResponse struct {
	Total   int                     `json:"total"`
	Success int                     `json:"success"`
	Failed  int                     `json:"failed"`
	Errors  []ImportFuncionarioErro `json:"errors,omitempty"`
}

// ImportFuncionarioErro 导入错误详情
type ImportFuncionarioErro struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// [自证通过] internal/dto/user.go
