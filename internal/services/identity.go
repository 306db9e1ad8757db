package services

import (
	"context"

	"github.com/stackwise/catalog-api/internal/apierr"
	"github.com/stackwise/catalog-api/internal/requestdata"
)

// tenantFromContext is the single place the catalog derives its tenant scope.
// A missing identity is a contract violation and fails closed; there is no
// default tenant.
func tenantFromContext(ctx context.Context) (string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TenantID == "" {
		return "", apierr.Unauthorized("identity is not set")
	}
	return rd.TenantID, nil
}
