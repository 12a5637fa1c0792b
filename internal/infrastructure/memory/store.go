package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
)

// Store almacenamiento en proceso para modo desarrollo y tests.
// Un solo escritor a la vez: cada transacción trabaja sobre una copia del estado que
// reemplaza al estado vigente solo si el callback termina sin error.
type Store struct {
	writer sync.Mutex
	mu     sync.RWMutex
	data   *data
}

type data struct {
	companies      map[string]entity.Company
	modules        map[string]entity.CompanyModule
	users          map[string]entity.User
	products       map[string]entity.Product
	farms          map[string]entity.Farm
	fields         map[string]entity.Field
	crops          map[string]entity.Crop
	machines       map[string]entity.Machine
	operators      map[string]entity.Operator
	records        map[string]entity.InventoryRecord
	history        []entity.HistoryEntry
	serviceOrders  map[string]entity.ServiceOrder
	orderEvents    []entity.ServiceOrderEvent
	purchaseOrders map[string]entity.PurchaseOrder
	sequences      map[string]int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: &data{
		companies:      map[string]entity.Company{},
		modules:        map[string]entity.CompanyModule{},
		users:          map[string]entity.User{},
		products:       map[string]entity.Product{},
		farms:          map[string]entity.Farm{},
		fields:         map[string]entity.Field{},
		crops:          map[string]entity.Crop{},
		machines:       map[string]entity.Machine{},
		operators:      map[string]entity.Operator{},
		records:        map[string]entity.InventoryRecord{},
		serviceOrders:  map[string]entity.ServiceOrder{},
		purchaseOrders: map[string]entity.PurchaseOrder{},
		sequences:      map[string]int{},
	}}
}

// Los valores guardados nunca se modifican en sitio (se copian al escribir y al leer),
// por lo que basta con copiar mapas y slices de primer nivel.
func (d *data) clone() *data {
	return &data{
		companies:      maps.Clone(d.companies),
		modules:        maps.Clone(d.modules),
		users:          maps.Clone(d.users),
		products:       maps.Clone(d.products),
		farms:          maps.Clone(d.farms),
		fields:         maps.Clone(d.fields),
		crops:          maps.Clone(d.crops),
		machines:       maps.Clone(d.machines),
		operators:      maps.Clone(d.operators),
		records:        maps.Clone(d.records),
		history:        slices.Clone(d.history),
		serviceOrders:  maps.Clone(d.serviceOrders),
		orderEvents:    slices.Clone(d.orderEvents),
		purchaseOrders: maps.Clone(d.purchaseOrders),
		sequences:      maps.Clone(d.sequences),
	}
}

// access separa a los repositorios de la estrategia de bloqueo.
type access interface {
	read(fn func(d *data) error) error
	write(fn func(d *data) error) error
}

func (s *Store) read(fn func(d *data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write fuera de transacción: se comporta como una transacción de una sola operación.
func (s *Store) write(fn func(d *data) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()
	return s.commit(fn)
}

func (s *Store) commit(fn func(d *data) error) error {
	s.mu.RLock()
	snap := s.data.clone()
	s.mu.RUnlock()
	if err := fn(snap); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = snap
	s.mu.Unlock()
	return nil
}

// txAccess opera directamente sobre la copia de la transacción en curso.
type txAccess struct{ d *data }

func (t txAccess) read(fn func(d *data) error) error  { return fn(t.d) }
func (t txAccess) write(fn func(d *data) error) error { return fn(t.d) }

// TxRunner implementa repository.TxRunner sobre el Store.
type TxRunner struct {
	store *Store
}

var _ repository.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios sobre una copia del estado; si fn falla la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.writer.Lock()
	defer r.store.writer.Unlock()
	return r.store.commit(func(d *data) error {
		return fn(reposFor(txAccess{d: d}))
	})
}

func reposFor(a access) repository.TxRepos {
	return repository.TxRepos{
		Records:        &InventoryRecordRepo{a: a},
		History:        &HistoryRepo{a: a},
		Products:       &ProductRepo{a: a},
		Farms:          &FarmRepo{a: a},
		Fleet:          &FleetRepo{a: a},
		ServiceOrders:  &ServiceOrderRepo{a: a},
		PurchaseOrders: &PurchaseOrderRepo{a: a},
	}
}

// Repos devuelve los repositorios de lectura/escritura directa (fuera de transacción).
func (s *Store) Repos() repository.TxRepos {
	return reposFor(s)
}

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{a: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{a: s} }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
