package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// Note datos que acompañan a cada entrada del historial.
type Note struct {
	Reason    string
	Reference string
	Actor     string
}

// Ledger es la única autoridad sobre stock físico y reservado por (producto, hacienda).
// Debe construirse con repositorios atados a la transacción en curso (TxRepos):
// cada método lee con bloqueo de fila y registra exactamente una entrada de historial por mutación.
type Ledger struct {
	records repository.InventoryRecordRepository
	history repository.HistoryRepository
	now     func() time.Time
}

// NewLedger construye el ledger sobre los repositorios de la transacción.
func NewLedger(records repository.InventoryRecordRepository, history repository.HistoryRepository) *Ledger {
	return &Ledger{records: records, history: history, now: time.Now}
}

// FromTx atajo para construir el ledger dentro de TxRunner.Run.
func FromTx(repos repository.TxRepos) *Ledger {
	return NewLedger(repos.Records, repos.History)
}

// FindOrCreate devuelve (bloqueado) el registro del producto en la hacienda, creándolo con stock cero si no existe.
func (l *Ledger) FindOrCreate(ctx context.Context, companyID, productID, farmID string) (*entity.InventoryRecord, error) {
	if productID == "" || farmID == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := l.records.GetByKeyForUpdate(ctx, productID, farmID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	now := l.now()
	rec = &entity.InventoryRecord{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ProductID:     productID,
		FarmID:        farmID,
		PhysicalStock: decimal.Zero,
		ReservedQty:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	// Otro request pudo crear la misma fila entre la lectura y el insert: releer con bloqueo.
	return l.records.GetByKeyForUpdate(ctx, productID, farmID)
}

// Lock devuelve el registro bloqueado o ErrNotFound.
func (l *Ledger) Lock(ctx context.Context, recordID string) (*entity.InventoryRecord, error) {
	rec, err := l.records.GetForUpdate(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// AdjustPhysical aplica un delta con signo al stock físico (ENTRY o EXIT).
func (l *Ledger) AdjustPhysical(ctx context.Context, recordID string, delta decimal.Decimal, note Note) (*entity.InventoryRecord, error) {
	rec, err := l.Lock(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := l.adjust(ctx, rec, delta, note); err != nil {
		return nil, err
	}
	return rec, nil
}

// Reserve aumenta la reserva; falla con ErrInsufficientStock si supera el disponible.
func (l *Ledger) Reserve(ctx context.Context, recordID string, qty decimal.Decimal, note Note) (*entity.InventoryRecord, error) {
	rec, err := l.Lock(ctx, recordID)
	if err != nil {
		return nil, err
	}
	m, err := inventory.Reserve(rec, qty)
	if err != nil {
		return nil, err
	}
	return rec, l.persist(ctx, rec, m, note)
}

// Release devuelve reserva al disponible (piso en cero).
func (l *Ledger) Release(ctx context.Context, recordID string, qty decimal.Decimal, note Note) (*entity.InventoryRecord, error) {
	rec, err := l.Lock(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return rec, l.persist(ctx, rec, inventory.Release(rec, qty), note)
}

// Consume convierte reserva en salida física (EXIT con delta negativo).
func (l *Ledger) Consume(ctx context.Context, recordID string, qty decimal.Decimal, note Note) (*entity.InventoryRecord, error) {
	rec, err := l.Lock(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return rec, l.persist(ctx, rec, inventory.Consume(rec, qty), note)
}

// Transfer debita el origen y acredita (o crea) el registro del mismo producto en destFarmID.
// Registra una salida en el origen y una entrada en el destino con la misma referencia.
func (l *Ledger) Transfer(ctx context.Context, sourceRecordID, destFarmID string, qty decimal.Decimal, note Note) (src, dst *entity.InventoryRecord, err error) {
	src, err = l.Lock(ctx, sourceRecordID)
	if err != nil {
		return nil, nil, err
	}
	if err := inventory.CanTransfer(src, destFarmID, qty); err != nil {
		return nil, nil, err
	}
	dst, err = l.FindOrCreate(ctx, src.CompanyID, src.ProductID, destFarmID)
	if err != nil {
		return nil, nil, err
	}
	if note.Reference == "" {
		note.Reference = uuid.New().String()
	}
	out := note
	out.Reason = fmt.Sprintf("Transferencia a hacienda %s", destFarmID)
	if note.Reason != "" {
		out.Reason += ": " + note.Reason
	}
	if err := l.adjust(ctx, src, qty.Neg(), out); err != nil {
		return nil, nil, err
	}
	in := note
	in.Reason = fmt.Sprintf("Transferencia desde hacienda %s", src.FarmID)
	if note.Reason != "" {
		in.Reason += ": " + note.Reason
	}
	if err := l.adjust(ctx, dst, qty, in); err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

// ReserveAll reserva todos los requerimientos o ninguno. Con faltantes no modifica nada y
// devuelve la lista de faltantes (reserved=false).
func (l *Ledger) ReserveAll(ctx context.Context, reqs []inventory.Requirement, note Note) (reserved bool, shortages []inventory.Shortage, err error) {
	merged := inventory.MergeRequirements(reqs)
	if len(merged) == 0 {
		return true, nil, nil
	}
	records := make(map[string]*entity.InventoryRecord, len(merged))
	for _, r := range merged {
		rec, err := l.records.GetByKeyForUpdate(ctx, r.ProductID, r.FarmID)
		if err != nil {
			return false, nil, err
		}
		if rec != nil {
			records[inventory.RecordKey(r.ProductID, r.FarmID)] = rec
		}
	}
	if shortages = inventory.Shortages(merged, records); len(shortages) > 0 {
		return false, shortages, nil
	}
	for _, r := range merged {
		rec := records[inventory.RecordKey(r.ProductID, r.FarmID)]
		m, err := inventory.Reserve(rec, r.Qty)
		if err != nil {
			return false, nil, err
		}
		if err := l.persist(ctx, rec, m, note); err != nil {
			return false, nil, err
		}
	}
	return true, nil, nil
}

// ReleaseAll libera la reserva de cada requerimiento. Registros inexistentes se ignoran.
func (l *Ledger) ReleaseAll(ctx context.Context, reqs []inventory.Requirement, note Note) error {
	return l.each(ctx, reqs, func(rec *entity.InventoryRecord, qty decimal.Decimal) error {
		return l.persist(ctx, rec, inventory.Release(rec, qty), note)
	})
}

// ConsumeAll consume la reserva de cada requerimiento.
func (l *Ledger) ConsumeAll(ctx context.Context, reqs []inventory.Requirement, note Note) error {
	return l.each(ctx, reqs, func(rec *entity.InventoryRecord, qty decimal.Decimal) error {
		return l.persist(ctx, rec, inventory.Consume(rec, qty), note)
	})
}

func (l *Ledger) each(ctx context.Context, reqs []inventory.Requirement, fn func(*entity.InventoryRecord, decimal.Decimal) error) error {
	for _, r := range inventory.MergeRequirements(reqs) {
		rec, err := l.records.GetByKeyForUpdate(ctx, r.ProductID, r.FarmID)
		if err != nil {
			return err
		}
		if rec == nil {
			continue
		}
		if err := fn(rec, r.Qty); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) adjust(ctx context.Context, rec *entity.InventoryRecord, delta decimal.Decimal, note Note) error {
	m, err := inventory.AdjustPhysical(rec, delta)
	if err != nil {
		return err
	}
	return l.persist(ctx, rec, m, note)
}

// persist guarda el registro y su entrada de historial. Sin mutación no escribe nada.
func (l *Ledger) persist(ctx context.Context, rec *entity.InventoryRecord, m inventory.Mutation, note Note) error {
	if !m.Changed() {
		return nil
	}
	now := l.now()
	rec.UpdatedAt = now
	if err := l.records.Update(ctx, rec); err != nil {
		return fmt.Errorf("actualizar registro %s: %w", rec.ID, err)
	}
	entry := &entity.HistoryEntry{
		ID:          uuid.New().String(),
		RecordID:    rec.ID,
		CompanyID:   rec.CompanyID,
		ProductID:   rec.ProductID,
		FarmID:      rec.FarmID,
		Kind:        m.Kind,
		Quantity:    m.Delta,
		Description: note.Reason,
		Reference:   note.Reference,
		Actor:       note.Actor,
		CreatedAt:   now,
	}
	if err := l.history.Append(ctx, entry); err != nil {
		return fmt.Errorf("registrar historial de %s: %w", rec.ID, err)
	}
	return nil
}
