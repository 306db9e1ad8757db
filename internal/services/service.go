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

// ServiceService applies the business rules above ServiceRepo: the tenant
// always comes from the authenticated identity, and absent rows turn into
// not_found at this boundary.
type ServiceService interface {
	Create(ctx context.Context, in *types.CreateResourceInput) (*types.Service, error)
	FindAll(ctx context.Context, search string, sort []query.Order, page query.Pagination) (query.Paginated[*types.Service], error)
	FindOne(ctx context.Context, id uuid.UUID) (*types.Service, error)
	CreateOrReplace(ctx context.Context, id uuid.UUID, in *types.CreateResourceInput) (*types.Service, error)
	Update(ctx context.Context, id uuid.UUID, in *types.UpdateResourceInput) (*types.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceService struct {
	db          *gorm.DB
	log         *logger.Logger
	serviceRepo repos.ServiceRepo
}

func NewServiceService(db *gorm.DB, log *logger.Logger, serviceRepo repos.ServiceRepo) ServiceService {
	serviceLog := log.With("service", "ServiceService")
	return &serviceService{db: db, log: serviceLog, serviceRepo: serviceRepo}
}

func (ss *serviceService) Create(ctx context.Context, in *types.CreateResourceInput) (*types.Service, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	service := &types.Service{
		TenantID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
	}
	return ss.serviceRepo.CreateOrReplace(ctx, nil, service)
}

func (ss *serviceService) FindAll(ctx context.Context, search string, sort []query.Order, page query.Pagination) (query.Paginated[*types.Service], error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return query.Paginated[*types.Service]{}, err
	}
	return ss.serviceRepo.Find(ctx, nil, repos.ServiceFindQuery{
		TenantID: tenantID,
		Search:   search,
		Sort:     sort,
		Offset:   page.Offset,
		Limit:    page.Limit,
	})
}

func (ss *serviceService) FindOne(ctx context.Context, id uuid.UUID) (*types.Service, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	service, err := ss.serviceRepo.GetByID(ctx, nil, id, tenantID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apierr.NotFound("service")
	}
	return service, nil
}

// CreateOrReplace powers PUT: insert when the id is absent, full overwrite
// when it exists under the caller's tenant. Idempotent by construction. When
// the id is owned by another tenant the foreign row is untouched and the
// caller sees not_found.
func (ss *serviceService) CreateOrReplace(ctx context.Context, id uuid.UUID, in *types.CreateResourceInput) (*types.Service, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	service := &types.Service{
		ID:          id,
		TenantID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
	}
	replaced, err := ss.serviceRepo.CreateOrReplace(ctx, nil, service)
	if err != nil {
		return nil, err
	}
	if replaced == nil {
		return nil, apierr.NotFound("service")
	}
	return replaced, nil
}

func (ss *serviceService) Update(ctx context.Context, id uuid.UUID, in *types.UpdateResourceInput) (*types.Service, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	service, err := ss.serviceRepo.Update(ctx, nil, id, tenantID, in.Fields())
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apierr.NotFound("service")
	}
	return service, nil
}

func (ss *serviceService) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return err
	}
	deleted, err := ss.serviceRepo.Delete(ctx, nil, id, tenantID)
	if err != nil {
		return err
	}
	if !deleted {
		return apierr.NotFound("service")
	}
	return nil
}
