package types

import (
	"strings"

	"github.com/stackwise/catalog-api/internal/apierr"
)

const (
	MaxNameLength        = 256
	MaxDescriptionLength = 1024
)

// CreateResourceInput is the write payload shared by services and versions:
// both carry only a name and an optional description.
type CreateResourceInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateResourceInput is the partial-update payload; nil fields are left
// untouched.
type UpdateResourceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate checks the create payload and returns a bad_request listing every
// failing field, or nil.
func (in *CreateResourceInput) Validate() error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name must not be empty")
	}
	if len(in.Name) > MaxNameLength {
		problems = append(problems, "name must be at most 256 characters")
	}
	if in.Description != nil && len(*in.Description) > MaxDescriptionLength {
		problems = append(problems, "description must be at most 1024 characters")
	}
	if len(problems) > 0 {
		return apierr.BadRequest("%s", strings.Join(problems, "; "))
	}
	return nil
}

func (in *UpdateResourceInput) Validate() error {
	var problems []string
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			problems = append(problems, "name must not be empty")
		}
		if len(*in.Name) > MaxNameLength {
			problems = append(problems, "name must be at most 256 characters")
		}
	}
	if in.Description != nil && len(*in.Description) > MaxDescriptionLength {
		problems = append(problems, "description must be at most 1024 characters")
	}
	if len(problems) > 0 {
		return apierr.BadRequest("%s", strings.Join(problems, "; "))
	}
	return nil
}

// Fields returns the set columns of a partial update, keyed by column name.
func (in *UpdateResourceInput) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	return fields
}
