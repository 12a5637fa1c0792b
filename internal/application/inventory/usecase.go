package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// UseCase operaciones manuales de inventario: entradas, salidas, traslados y consultas.
// Toda mutación corre en una transacción y pasa por el Ledger.
type UseCase struct {
	tx      repository.TxRunner
	records repository.InventoryRecordRepository
	history repository.HistoryRepository
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, records repository.InventoryRecordRepository, history repository.HistoryRepository, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, records: records, history: history, log: log}
}

// Entry registra una entrada manual: crea el registro si no existe y suma al stock físico.
func (uc *UseCase) Entry(ctx context.Context, s entity.Session, in dto.StockEntryRequest) (*dto.InventoryRecordResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.InventoryRecord
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := checkProductAndFarm(ctx, repos, s.CompanyID, in.ProductID, in.FarmID); err != nil {
			return err
		}
		l := FromTx(repos)
		rec, err := l.FindOrCreate(ctx, s.CompanyID, in.ProductID, in.FarmID)
		if err != nil {
			return err
		}
		reason := in.Reason
		if reason == "" {
			reason = "Entrada manual"
		}
		out, err = l.AdjustPhysical(ctx, rec.ID, in.Quantity, Note{Reason: reason, Actor: s.UserID})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("record_id", out.ID).Str("qty", in.Quantity.String()).Msg("entrada de inventario")
	return ToRecordResponse(out), nil
}

// Exit registra una salida manual; no puede consumir stock reservado.
func (uc *UseCase) Exit(ctx context.Context, s entity.Session, recordID string, in dto.StockExitRequest) (*dto.InventoryRecordResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.InventoryRecord
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		l := FromTx(repos)
		rec, err := l.Lock(ctx, recordID)
		if err != nil {
			return err
		}
		if rec.CompanyID != s.CompanyID {
			return domain.ErrNotFound
		}
		out, err = l.AdjustPhysical(ctx, rec.ID, in.Quantity.Neg(), Note{Reason: in.Reason, Actor: s.UserID})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("record_id", out.ID).Str("qty", in.Quantity.String()).Msg("salida de inventario")
	return ToRecordResponse(out), nil
}

// Transfer traslada stock disponible a otra hacienda de la misma empresa.
func (uc *UseCase) Transfer(ctx context.Context, s entity.Session, in dto.TransferRequest) (*dto.TransferResponse, error) {
	ref := uuid.New().String()
	var src, dst *entity.InventoryRecord
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		l := FromTx(repos)
		rec, err := l.Lock(ctx, in.SourceRecordID)
		if err != nil {
			return err
		}
		if rec.CompanyID != s.CompanyID {
			return domain.ErrNotFound
		}
		if in.DestFarmID != "" && in.DestFarmID != rec.FarmID {
			farm, err := repos.Farms.GetByID(ctx, in.DestFarmID)
			if err != nil {
				return err
			}
			if farm == nil || farm.CompanyID != s.CompanyID {
				return domain.ErrInvalidTransfer
			}
		}
		src, dst, err = l.Transfer(ctx, rec.ID, in.DestFarmID, in.Quantity, Note{Reason: in.Reason, Reference: ref, Actor: s.UserID})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("reference", ref).Str("from", src.FarmID).Str("to", dst.FarmID).Msg("traslado de inventario")
	return &dto.TransferResponse{
		Reference:   ref,
		Source:      *ToRecordResponse(src),
		Destination: *ToRecordResponse(dst),
	}, nil
}

// Get devuelve un registro de la empresa.
func (uc *UseCase) Get(ctx context.Context, s entity.Session, recordID string) (*dto.InventoryRecordResponse, error) {
	rec, err := uc.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CompanyID != s.CompanyID {
		return nil, domain.ErrNotFound
	}
	return ToRecordResponse(rec), nil
}

// List lista registros de la empresa, opcionalmente de una sola hacienda.
func (uc *UseCase) List(ctx context.Context, s entity.Session, farmID string, page dto.PageRequest) (*dto.InventoryRecordListResponse, error) {
	page.DefaultPage()
	list, err := uc.records.ListByCompany(ctx, s.CompanyID, farmID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *ToRecordResponse(rec))
	}
	return &dto.InventoryRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// History devuelve el historial de un registro, del más reciente al más antiguo.
func (uc *UseCase) History(ctx context.Context, s entity.Session, recordID string, page dto.PageRequest) (*dto.HistoryListResponse, error) {
	if _, err := uc.Get(ctx, s, recordID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.history.ListByRecord(ctx, recordID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("historial de %s: %w", recordID, err)
	}
	items := make([]dto.HistoryEntryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, dto.HistoryEntryResponse{
			ID:          h.ID,
			RecordID:    h.RecordID,
			Kind:        h.Kind,
			Quantity:    h.Quantity,
			Description: h.Description,
			Reference:   h.Reference,
			Actor:       h.Actor,
			CreatedAt:   h.CreatedAt,
		})
	}
	return &dto.HistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func checkProductAndFarm(ctx context.Context, repos repository.TxRepos, companyID, productID, farmID string) error {
	product, err := repos.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	farm, err := repos.Farms.GetByID(ctx, farmID)
	if err != nil {
		return err
	}
	if farm == nil || farm.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

// ToRecordResponse mapea el registro incluyendo el disponible derivado.
func ToRecordResponse(r *entity.InventoryRecord) *dto.InventoryRecordResponse {
	return &dto.InventoryRecordResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		FarmID:        r.FarmID,
		PhysicalStock: r.PhysicalStock,
		ReservedQty:   r.ReservedQty,
		AvailableQty:  r.Available(),
		UpdatedAt:     r.UpdatedAt,
	}
}
