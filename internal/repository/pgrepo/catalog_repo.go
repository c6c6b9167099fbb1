package pgrepo

import (
	"context"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/pkg/uow"
)

// CatalogRepository читает каталог платных услуг. Ядро каталог не изменяет.
type CatalogRepository struct {
	conn uow.DBTX
}

func NewCatalogRepository(conn uow.DBTX) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

func (c *CatalogRepository) FindByID(ctx context.Context, serviceID int64) (*domain.PremiumService, error) {
	var service domain.PremiumService
	err := c.conn.QueryRow(ctx, `
		SELECT id, name, credit_cost, duration_days, is_active
		FROM premium_services
		WHERE id = $1`, serviceID).Scan(
		&service.ID,
		&service.Name,
		&service.CreditCost,
		&service.DurationDays,
		&service.IsActive,
	)
	if err != nil {
		return nil, convertErr(err, "finding premium service %d", serviceID)
	}
	return &service, nil
}
