package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stackwise/catalog-api/internal/logger"
	"github.com/stackwise/catalog-api/internal/query"
	"github.com/stackwise/catalog-api/internal/types"
)

type VersionFindQuery struct {
	ServiceID uuid.UUID
	TenantID  string
	Offset    int
	Limit     int
}

// VersionRepo addresses rows only through the compound key
// (id, service_id, tenant_id). A version id on its own never selects a row.
// Parent existence is the caller's responsibility; the foreign key backstops
// inserts against a vanished service.
type VersionRepo interface {
	Find(ctx context.Context, tx *gorm.DB, q VersionFindQuery) (query.Paginated[*types.Version], error)
	GetByID(ctx context.Context, tx *gorm.DB, id, serviceID uuid.UUID, tenantID string) (*types.Version, error)
	CreateOrReplace(ctx context.Context, tx *gorm.DB, version *types.Version) (*types.Version, error)
	Update(ctx context.Context, tx *gorm.DB, id, serviceID uuid.UUID, tenantID string, fields map[string]interface{}) (*types.Version, error)
	Delete(ctx context.Context, tx *gorm.DB, id, serviceID uuid.UUID, tenantID string) (bool, error)
}

type versionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVersionRepo(db *gorm.DB, baseLog *logger.Logger) VersionRepo {
	repoLog := baseLog.With("repo", "VersionRepo")
	return &versionRepo{db: db, log: repoLog}
}

func (r *versionRepo) Find(ctx context.Context, tx *gorm.DB, q VersionFindQuery) (query.Paginated[*types.Version], error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	scoped := func(stmt *gorm.DB) *gorm.DB {
		return stmt.Model(&types.Version{}).
			Where(`"versions"."service_id" = ? AND "versions"."tenant_id" = ?`, q.ServiceID, q.TenantID)
	}

	var rows []*types.Version
	var total int64

	fetchRows := func(ctx context.Context) error {
		return scoped(transaction.WithContext(ctx)).
			Order(`"versions"."updated_at" DESC`).
			Offset(q.Offset).
			Limit(q.Limit).
			Find(&rows).Error
	}
	fetchTotal := func(ctx context.Context) error {
		return scoped(transaction.WithContext(ctx)).Count(&total).Error
	}

	if tx != nil {
		if err := fetchRows(ctx); err != nil {
			return query.Paginated[*types.Version]{}, err
		}
		if err := fetchTotal(ctx); err != nil {
			return query.Paginated[*types.Version]{}, err
		}
		return query.NewPaginated(rows, total), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fetchRows(gctx) })
	g.Go(func() error { return fetchTotal(gctx) })
	if err := g.Wait(); err != nil {
		return query.Paginated[*types.Version]{}, err
	}
	return query.NewPaginated(rows, total), nil
}

func (r *versionRepo) GetByID(ctx context.Context, tx *gorm.DB, id, serviceID uuid.UUID, tenantID string) (*types.Version, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var version types.Version
	err := transaction.WithContext(ctx).
		Where(`"versions"."id" = ? AND "versions"."service_id" = ? AND "versions"."tenant_id" = ?`, id, serviceID, tenantID).
		Take(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *versionRepo) CreateOrReplace(ctx context.Context, tx *gorm.DB, version *types.Version) (*types.Version, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if version.ID == uuid.Nil {
		version.ID = uuid.New()
		if err := transaction.WithContext(ctx).Create(version).Error; err != nil {
			return nil, err
		}
		return r.GetByID(ctx, tx, version.ID, version.ServiceID, version.TenantID)
	}

	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":        version.Name,
				"description": version.Description,
				"updated_at":  time.Now().UTC(),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: "versions", Name: "tenant_id"}, Value: version.TenantID},
				clause.Eq{Column: clause.Column{Table: "versions", Name: "service_id"}, Value: version.ServiceID},
			}},
		}).
		Create(version).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, tx, version.ID, version.ServiceID, version.TenantID)
}

func (r *versionRepo) Update(ctx context.Context, tx *gorm.DB, id, serviceID uuid.UUID, tenantID string, fields map[string]interface{}) (*types.Version, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, tx, id, serviceID, tenantID)
	}

	result := transaction.WithContext(ctx).
		Model(&types.Version{}).
		Where(`"versions"."id" = ? AND "versions"."service_id" = ? AND "versions"."tenant_id" = ?`, id, serviceID, tenantID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tx, id, serviceID, tenantID)
}

func (r *versionRepo) Delete(ctx context.Context, tx *gorm.DB, id, serviceID uuid.UUID, tenantID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where(`"versions"."id" = ? AND "versions"."service_id" = ? AND "versions"."tenant_id" = ?`, id, serviceID, tenantID).
		Delete(&types.Version{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
