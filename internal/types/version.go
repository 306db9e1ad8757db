package types

import (
	"time"

	"github.com/google/uuid"
)

type Version struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    string    `gorm:"type:varchar(64);not null;index;index:idx_versions_service_tenant,priority:2;column:tenant_id" json:"-"`
	Name        string    `gorm:"type:varchar(256);not null;column:name" json:"name"`
	Description *string   `gorm:"type:varchar(1024);column:description" json:"description"`
	ServiceID   uuid.UUID `gorm:"type:uuid;not null;index:idx_versions_service_tenant,priority:1;column:service_id" json:"service_id"`
	Service     *Service  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServiceID;references:ID" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Version) TableName() string { return "versions" }
