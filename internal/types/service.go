package types

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID    string    `gorm:"type:varchar(64);not null;index;column:tenant_id" json:"-"`
	Name        string    `gorm:"type:varchar(256);not null;index;column:name" json:"name"`
	Description *string   `gorm:"type:varchar(1024);column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;index" json:"updated_at"`

	// Live count of versions under this service, selected alongside the row.
	// Never persisted.
	VersionsCount int64 `gorm:"->;-:migration" json:"versions_count"`

	Versions []*Version `gorm:"foreignKey:ServiceID;references:ID" json:"-"`
}

func (Service) TableName() string { return "services" }

// ServiceSortKeys are the columns a services listing may sort on.
var ServiceSortKeys = []string{"updated_at", "created_at", "name"}
