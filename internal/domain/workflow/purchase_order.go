package workflow

import (
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
)

// CheckApprove valida PENDING → APPROVED.
func CheckApprove(po *entity.PurchaseOrder) error {
	if po.Status != entity.PurchaseStatusPending {
		return domain.ErrInvalidTransition
	}
	return nil
}

// CheckReceive valida APPROVED → RECEIVED. Recibir dos veces devuelve ErrAlreadyReceived.
func CheckReceive(po *entity.PurchaseOrder) error {
	switch po.Status {
	case entity.PurchaseStatusReceived:
		return domain.ErrAlreadyReceived
	case entity.PurchaseStatusApproved:
		return nil
	}
	return domain.ErrInvalidTransition
}

// CheckCancel valida la cancelación desde PENDING o APPROVED.
func CheckCancel(po *entity.PurchaseOrder) error {
	if po.Status != entity.PurchaseStatusPending && po.Status != entity.PurchaseStatusApproved {
		return domain.ErrInvalidTransition
	}
	return nil
}

// CheckDelete una orden recibida no se borra: su entrada ya está en el historial.
func CheckDelete(po *entity.PurchaseOrder) error {
	if po.Status == entity.PurchaseStatusReceived {
		return domain.ErrConflict
	}
	return nil
}
