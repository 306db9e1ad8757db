package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stackwise/catalog-api/internal/apierr"
	"github.com/stackwise/catalog-api/internal/logger"
	"github.com/stackwise/catalog-api/internal/query"
	"github.com/stackwise/catalog-api/internal/repos"
	"github.com/stackwise/catalog-api/internal/types"
)

// VersionService layers parent verification on top of VersionRepo: list and
// create resolve the owning service under the caller's tenant first, so no
// version can be attached to a missing or cross-tenant parent. The check and
// the insert are not one transaction; the cascade foreign key turns the rare
// race with a parent delete into an insert error rather than an orphan.
type VersionService interface {
	Create(ctx context.Context, serviceID uuid.UUID, in *types.CreateResourceInput) (*types.Version, error)
	FindAll(ctx context.Context, serviceID uuid.UUID, page query.Pagination) (query.Paginated[*types.Version], error)
	FindOne(ctx context.Context, serviceID, id uuid.UUID) (*types.Version, error)
	CreateOrReplace(ctx context.Context, serviceID, id uuid.UUID, in *types.CreateResourceInput) (*types.Version, error)
	Update(ctx context.Context, serviceID, id uuid.UUID, in *types.UpdateResourceInput) (*types.Version, error)
	Delete(ctx context.Context, serviceID, id uuid.UUID) error
}

type versionService struct {
	db          *gorm.DB
	log         *logger.Logger
	serviceRepo repos.ServiceRepo
	versionRepo repos.VersionRepo
}

func NewVersionService(db *gorm.DB, log *logger.Logger, serviceRepo repos.ServiceRepo, versionRepo repos.VersionRepo) VersionService {
	serviceLog := log.With("service", "VersionService")
	return &versionService{db: db, log: serviceLog, serviceRepo: serviceRepo, versionRepo: versionRepo}
}

func (vs *versionService) resolveParent(ctx context.Context, serviceID uuid.UUID, tenantID string) error {
	service, err := vs.serviceRepo.GetByID(ctx, nil, serviceID, tenantID)
	if err != nil {
		return err
	}
	if service == nil {
		return apierr.NotFound("service")
	}
	return nil
}

func (vs *versionService) Create(ctx context.Context, serviceID uuid.UUID, in *types.CreateResourceInput) (*types.Version, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := vs.resolveParent(ctx, serviceID, tenantID); err != nil {
		return nil, err
	}
	version := &types.Version{
		TenantID:    tenantID,
		ServiceID:   serviceID,
		Name:        in.Name,
		Description: in.Description,
	}
	return vs.versionRepo.CreateOrReplace(ctx, nil, version)
}

func (vs *versionService) FindAll(ctx context.Context, serviceID uuid.UUID, page query.Pagination) (query.Paginated[*types.Version], error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return query.Paginated[*types.Version]{}, err
	}
	if err := vs.resolveParent(ctx, serviceID, tenantID); err != nil {
		return query.Paginated[*types.Version]{}, err
	}
	return vs.versionRepo.Find(ctx, nil, repos.VersionFindQuery{
		ServiceID: serviceID,
		TenantID:  tenantID,
		Offset:    page.Offset,
		Limit:     page.Limit,
	})
}

func (vs *versionService) FindOne(ctx context.Context, serviceID, id uuid.UUID) (*types.Version, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	version, err := vs.versionRepo.GetByID(ctx, nil, id, serviceID, tenantID)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apierr.NotFound("version")
	}
	return version, nil
}

func (vs *versionService) CreateOrReplace(ctx context.Context, serviceID, id uuid.UUID, in *types.CreateResourceInput) (*types.Version, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := vs.resolveParent(ctx, serviceID, tenantID); err != nil {
		return nil, err
	}
	version := &types.Version{
		ID:          id,
		TenantID:    tenantID,
		ServiceID:   serviceID,
		Name:        in.Name,
		Description: in.Description,
	}
	replaced, err := vs.versionRepo.CreateOrReplace(ctx, nil, version)
	if err != nil {
		return nil, err
	}
	if replaced == nil {
		return nil, apierr.NotFound("version")
	}
	return replaced, nil
}

func (vs *versionService) Update(ctx context.Context, serviceID, id uuid.UUID, in *types.UpdateResourceInput) (*types.Version, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	version, err := vs.versionRepo.Update(ctx, nil, id, serviceID, tenantID, in.Fields())
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apierr.NotFound("version")
	}
	return version, nil
}

func (vs *versionService) Delete(ctx context.Context, serviceID, id uuid.UUID) error {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return err
	}
	deleted, err := vs.versionRepo.Delete(ctx, nil, id, serviceID, tenantID)
	if err != nil {
		return err
	}
	if !deleted {
		return apierr.NotFound("version")
	}
	return nil
}
