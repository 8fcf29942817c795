package dto

import (
	"staysync/shared/constant"
	"staysync/shared/model"
	"staysync/shared/timezone"
)

// Metadata is the audit trail rendered on responses, in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.CreatedBy = source.CreatedBy

	if source.ModifiedAt.Equal(source.CreatedAt) && source.ModifiedBy == source.CreatedBy {
		return
	}

	m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = source.ModifiedBy
}
