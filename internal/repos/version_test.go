package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/stackwise/catalog-api/internal/types"
)

func mustCreateVersion(t *testing.T, repo VersionRepo, tenantID string, serviceID uuid.UUID, name string) *types.Version {
	t.Helper()
	version, err := repo.CreateOrReplace(context.Background(), nil, &types.Version{
		TenantID:  tenantID,
		ServiceID: serviceID,
		Name:      name,
	})
	if err != nil {
		t.Fatalf("create version %q: %v", name, err)
	}
	return version
}

func TestVersionRepoCompoundKeyScoping(t *testing.T) {
	db := openTestDB(t)
	serviceRepo := NewServiceRepo(db, testLogger())
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	parent := mustCreateService(t, serviceRepo, "tenant_a", "parent", nil)
	other := mustCreateService(t, serviceRepo, "tenant_a", "other", nil)
	version := mustCreateVersion(t, versionRepo, "tenant_a", parent.ID, "v1")

	// Correct compound key resolves.
	got, err := versionRepo.GetByID(ctx, nil, version.ID, parent.ID, "tenant_a")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "v1" {
		t.Fatalf("expected v1, got=%+v", got)
	}

	// The id alone is never sufficient: wrong parent or wrong tenant miss.
	if got, _ := versionRepo.GetByID(ctx, nil, version.ID, other.ID, "tenant_a"); got != nil {
		t.Fatalf("wrong parent must not resolve: %+v", got)
	}
	if got, _ := versionRepo.GetByID(ctx, nil, version.ID, parent.ID, "tenant_b"); got != nil {
		t.Fatalf("wrong tenant must not resolve: %+v", got)
	}
}

func TestVersionRepoFindPaginatesWithTotal(t *testing.T) {
	db := openTestDB(t)
	serviceRepo := NewServiceRepo(db, testLogger())
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	parent := mustCreateService(t, serviceRepo, "tenant_a", "parent", nil)
	for i := 1; i <= 5; i++ {
		mustCreateVersion(t, versionRepo, "tenant_a", parent.ID, fmt.Sprintf("v%d", i))
	}

	page, err := versionRepo.Find(ctx, nil, VersionFindQuery{
		ServiceID: parent.ID,
		TenantID:  "tenant_a",
		Offset:    2,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("page size: want=2 got=%d", len(page.Data))
	}
	if page.Meta.Total != 5 {
		t.Fatalf("total: want=5 got=%d", page.Meta.Total)
	}
}

func TestVersionRepoFindScopesToParent(t *testing.T) {
	db := openTestDB(t)
	serviceRepo := NewServiceRepo(db, testLogger())
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	parent := mustCreateService(t, serviceRepo, "tenant_a", "parent", nil)
	sibling := mustCreateService(t, serviceRepo, "tenant_a", "sibling", nil)
	mustCreateVersion(t, versionRepo, "tenant_a", parent.ID, "mine")
	mustCreateVersion(t, versionRepo, "tenant_a", sibling.ID, "theirs")

	page, err := versionRepo.Find(ctx, nil, VersionFindQuery{
		ServiceID: parent.ID,
		TenantID:  "tenant_a",
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if page.Meta.Total != 1 || len(page.Data) != 1 || page.Data[0].Name != "mine" {
		t.Fatalf("parent scoping: total=%d data=%+v", page.Meta.Total, page.Data)
	}
}

func TestVersionRepoCascadeOnParentDelete(t *testing.T) {
	db := openTestDB(t)
	serviceRepo := NewServiceRepo(db, testLogger())
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	parent := mustCreateService(t, serviceRepo, "tenant_a", "parent", nil)
	version := mustCreateVersion(t, versionRepo, "tenant_a", parent.ID, "v1")

	deleted, err := serviceRepo.Delete(ctx, nil, parent.ID, "tenant_a")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("parent delete should report a removed row")
	}

	got, err := versionRepo.GetByID(ctx, nil, version.ID, parent.ID, "tenant_a")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("version survived the cascade: %+v", got)
	}

	var count int64
	if err := db.Model(&types.Version{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("version rows left behind: %d", count)
	}
}

func TestVersionRepoInsertFailsWithoutParentRow(t *testing.T) {
	db := openTestDB(t)
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	_, err := versionRepo.CreateOrReplace(ctx, nil, &types.Version{
		TenantID:  "tenant_a",
		ServiceID: uuid.New(),
		Name:      "orphan",
	})
	if err == nil {
		t.Fatalf("expected a referential constraint failure")
	}

	var count int64
	if err := db.Model(&types.Version{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("orphan row persisted")
	}
}

func TestVersionRepoUpsertIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	serviceRepo := NewServiceRepo(db, testLogger())
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	parent := mustCreateService(t, serviceRepo, "tenant_a", "parent", nil)
	id := uuid.New()

	for i := 0; i < 2; i++ {
		replaced, err := versionRepo.CreateOrReplace(ctx, nil, &types.Version{
			ID:        id,
			TenantID:  "tenant_a",
			ServiceID: parent.ID,
			Name:      "pinned",
		})
		if err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
		if replaced == nil || replaced.Name != "pinned" {
			t.Fatalf("upsert %d result: %+v", i, replaced)
		}
	}

	var count int64
	if err := db.Model(&types.Version{}).Where("id = ?", id).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("row count: want=1 got=%d", count)
	}
}

func TestVersionRepoUpdateAndDeleteRespectCompoundKey(t *testing.T) {
	db := openTestDB(t)
	serviceRepo := NewServiceRepo(db, testLogger())
	versionRepo := NewVersionRepo(db, testLogger())
	ctx := context.Background()

	parent := mustCreateService(t, serviceRepo, "tenant_a", "parent", nil)
	other := mustCreateService(t, serviceRepo, "tenant_a", "other", nil)
	version := mustCreateVersion(t, versionRepo, "tenant_a", parent.ID, "v1")

	// Mismatched parent: nothing updated, nothing deleted.
	updated, err := versionRepo.Update(ctx, nil, version.ID, other.ID, "tenant_a", map[string]interface{}{"name": "stolen"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Fatalf("update through wrong parent must not resolve")
	}
	deleted, err := versionRepo.Delete(ctx, nil, version.ID, other.ID, "tenant_a")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Fatalf("delete through wrong parent must not remove the row")
	}

	// Matching key works.
	updated, err = versionRepo.Update(ctx, nil, version.ID, parent.ID, "tenant_a", map[string]interface{}{"name": "v2"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == nil || updated.Name != "v2" {
		t.Fatalf("update result: %+v", updated)
	}
	deleted, err = versionRepo.Delete(ctx, nil, version.ID, parent.ID, "tenant_a")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("expected the row to be removed")
	}
}
