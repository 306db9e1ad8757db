package repos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stackwise/catalog-api/internal/logger"
	"github.com/stackwise/catalog-api/internal/query"
	"github.com/stackwise/catalog-api/internal/types"
)

// versionsCountSelect annotates each service row with the live count of its
// versions. The count is always recomputed, never stored.
const versionsCountSelect = `"services".*, (SELECT COUNT(*) FROM "versions" WHERE "versions"."service_id" = "services"."id" AND "versions"."tenant_id" = "services"."tenant_id") AS versions_count`

type ServiceFindQuery struct {
	TenantID string
	Search   string
	Sort     []query.Order
	Offset   int
	Limit    int
}

type ServiceRepo interface {
	Find(ctx context.Context, tx *gorm.DB, q ServiceFindQuery) (query.Paginated[*types.Service], error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, tenantID string) (*types.Service, error)
	CreateOrReplace(ctx context.Context, tx *gorm.DB, service *types.Service) (*types.Service, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, tenantID string, fields map[string]interface{}) (*types.Service, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID, tenantID string) (bool, error)
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	repoLog := baseLog.With("repo", "ServiceRepo")
	return &serviceRepo{db: db, log: repoLog}
}

// scoped applies the tenant filter and optional case-insensitive search to a
// fresh statement. Every query in this repo goes through it.
func (r *serviceRepo) scoped(tx *gorm.DB, q ServiceFindQuery) *gorm.DB {
	stmt := tx.Model(&types.Service{}).Where(`"services"."tenant_id" = ?`, q.TenantID)
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		stmt = stmt.Where(`LOWER("services"."name") LIKE ? OR LOWER("services"."description") LIKE ?`, pattern, pattern)
	}
	return stmt
}

// Find returns one page of services plus the total number of matching rows
// before pagination. Outside a transaction the page read and the count are
// dispatched concurrently; the two reads are not isolated against concurrent
// writes, so total and data may reflect slightly different moments.
func (r *serviceRepo) Find(ctx context.Context, tx *gorm.DB, q ServiceFindQuery) (query.Paginated[*types.Service], error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	orderBy := `"services"."updated_at" DESC`
	if len(q.Sort) > 0 {
		orderBy = query.OrderClause("services", q.Sort)
	}

	var rows []*types.Service
	var total int64

	fetchRows := func(ctx context.Context) error {
		return r.scoped(transaction.WithContext(ctx), q).
			Select(versionsCountSelect).
			Order(orderBy).
			Offset(q.Offset).
			Limit(q.Limit).
			Find(&rows).Error
	}
	fetchTotal := func(ctx context.Context) error {
		return r.scoped(transaction.WithContext(ctx), q).Count(&total).Error
	}

	if tx != nil {
		// A single transaction handle is not safe for concurrent statements.
		if err := fetchRows(ctx); err != nil {
			return query.Paginated[*types.Service]{}, err
		}
		if err := fetchTotal(ctx); err != nil {
			return query.Paginated[*types.Service]{}, err
		}
		return query.NewPaginated(rows, total), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fetchRows(gctx) })
	g.Go(func() error { return fetchTotal(gctx) })
	if err := g.Wait(); err != nil {
		return query.Paginated[*types.Service]{}, err
	}
	return query.NewPaginated(rows, total), nil
}

func (r *serviceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, tenantID string) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var service types.Service
	err := transaction.WithContext(ctx).
		Model(&types.Service{}).
		Select(versionsCountSelect).
		Where(`"services"."id" = ? AND "services"."tenant_id" = ?`, id, tenantID).
		Take(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// CreateOrReplace inserts the service when its id is unset or absent, and
// fully overwrites name/description when a row with that id already exists
// under the same tenant. Repeated calls with identical input converge on the
// same row. A conflicting id owned by another tenant is left untouched and
// the call reports no row.
func (r *serviceRepo) CreateOrReplace(ctx context.Context, tx *gorm.DB, service *types.Service) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
		if err := transaction.WithContext(ctx).Create(service).Error; err != nil {
			return nil, err
		}
		return r.GetByID(ctx, tx, service.ID, service.TenantID)
	}

	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":        service.Name,
				"description": service.Description,
				"updated_at":  time.Now().UTC(),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: "services", Name: "tenant_id"}, Value: service.TenantID},
			}},
		}).
		Create(service).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, tx, service.ID, service.TenantID)
}

// Update applies only the given fields. A nil result with a nil error means
// no row matched the (id, tenantID) key.
func (r *serviceRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, tenantID string, fields map[string]interface{}) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, tx, id, tenantID)
	}

	result := transaction.WithContext(ctx).
		Model(&types.Service{}).
		Where(`"services"."id" = ? AND "services"."tenant_id" = ?`, id, tenantID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tx, id, tenantID)
}

func (r *serviceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID, tenantID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where(`"services"."id" = ? AND "services"."tenant_id" = ?`, id, tenantID).
		Delete(&types.Service{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
