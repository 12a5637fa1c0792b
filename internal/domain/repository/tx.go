package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Records        InventoryRecordRepository
	History        HistoryRepository
	Products       ProductRepository
	Farms          FarmRepository
	Fleet          FleetRepository
	ServiceOrders  ServiceOrderRepository
	PurchaseOrders PurchaseOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Garantiza que cada transición de un flujo sea una única unidad de trabajo.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
