package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

var (
	_ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)
	_ repository.HistoryRepository         = (*HistoryRepo)(nil)
)

// InventoryRecordRepo registros por (producto, hacienda). Los métodos ForUpdate no necesitan
// bloquear: el Store admite un único escritor.
type InventoryRecordRepo struct{ a access }

func (r *InventoryRecordRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	return get(r.a, func(d *data) map[string]entity.InventoryRecord { return d.records }, id)
}

func (r *InventoryRecordRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryRecordRepo) GetByKeyForUpdate(ctx context.Context, productID, farmID string) (*entity.InventoryRecord, error) {
	return r.GetByKey(ctx, productID, farmID)
}

func (r *InventoryRecordRepo) GetByKey(_ context.Context, productID, farmID string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.a.read(func(d *data) error {
		for _, rec := range d.records {
			if rec.ProductID == productID && rec.FarmID == farmID {
				out = &rec
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Create no hace nada si ya existe un registro para el mismo producto y hacienda.
func (r *InventoryRecordRepo) Create(_ context.Context, rec *entity.InventoryRecord) error {
	return r.a.write(func(d *data) error {
		for _, x := range d.records {
			if x.ProductID == rec.ProductID && x.FarmID == rec.FarmID {
				return nil
			}
		}
		d.records[rec.ID] = *rec
		return nil
	})
}

func (r *InventoryRecordRepo) Update(_ context.Context, rec *entity.InventoryRecord) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.records[rec.ID]; !ok {
			return domain.ErrNotFound
		}
		d.records[rec.ID] = *rec
		return nil
	})
}

func (r *InventoryRecordRepo) ListByCompany(_ context.Context, companyID, farmID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	err := r.a.read(func(d *data) error {
		var list []entity.InventoryRecord
		for _, rec := range d.records {
			if rec.CompanyID != companyID || (farmID != "" && rec.FarmID != farmID) {
				continue
			}
			list = append(list, rec)
		}
		slices.SortFunc(list, func(a, b entity.InventoryRecord) int {
			if c := strings.Compare(a.FarmID, b.FarmID); c != 0 {
				return c
			}
			return strings.Compare(a.ProductID, b.ProductID)
		})
		for _, rec := range page(list, limit, offset) {
			out = append(out, &rec)
		}
		return nil
	})
	return out, err
}

// HistoryRepo historial append-only.
type HistoryRepo struct{ a access }

func (r *HistoryRepo) Append(_ context.Context, e *entity.HistoryEntry) error {
	return r.a.write(func(d *data) error {
		d.history = append(d.history, *e)
		return nil
	})
}

// ListByRecord del más reciente al más antiguo.
func (r *HistoryRepo) ListByRecord(_ context.Context, recordID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	err := r.a.read(func(d *data) error {
		var list []entity.HistoryEntry
		for i := len(d.history) - 1; i >= 0; i-- {
			if d.history[i].RecordID == recordID {
				list = append(list, d.history[i])
			}
		}
		for _, e := range page(list, limit, offset) {
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

// ListByReference en orden de registro.
func (r *HistoryRepo) ListByReference(_ context.Context, reference string) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	err := r.a.read(func(d *data) error {
		for _, e := range d.history {
			if e.Reference == reference {
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}
