package repository

import (
	"context"
	"time"

	"github.com/jhoicas/concretera-erp/internal/domain/entity"
)

// ReceivableRepository puerto para contas a receber.
type ReceivableRepository interface {
	Create(ctx context.Context, r *entity.Receivable) error
	Update(ctx context.Context, r *entity.Receivable) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Receivable, error)
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.Receivable, error)
	GetByDelivery(ctx context.Context, orgID, deliveryID string) (*entity.Receivable, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Receivable, error)
	// MarkOverdue pasa a vencido las pendientes con data_vencimento anterior a asOf. Devuelve cuántas cambió.
	MarkOverdue(ctx context.Context, orgID string, asOf time.Time) (int64, error)
}

// InvoiceRepository puerto para NF-e simuladas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	Update(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, orgID, id string) (*entity.Invoice, error)
	// GetActiveByDelivery devuelve la nota emitida de la entrega, o nil.
	GetActiveByDelivery(ctx context.Context, orgID, deliveryID string) (*entity.Invoice, error)
	// NextNumber reserva el siguiente numero_nota de la organización (secuencial, sin huecos dentro de la tx).
	NextNumber(ctx context.Context, orgID string) (int64, error)
	List(ctx context.Context, orgID string, f ListFilter) ([]*entity.Invoice, error)
}
