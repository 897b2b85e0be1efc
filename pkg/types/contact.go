package types

import "time"

type ContactRole string

const (
	ContactRolePatwari   ContactRole = "PATWARI"
	ContactRoleSarpanch  ContactRole = "SARPANCH"
	ContactRoleNumberdar ContactRole = "NUMBERDAR"
	ContactRoleOther     ContactRole = "OTHER"
)

func (r ContactRole) Valid() bool {
	switch r {
	case ContactRolePatwari, ContactRoleSarpanch, ContactRoleNumberdar, ContactRoleOther:
		return true
	}
	return false
}

type Contact struct {
	ID        string      `db:"id" json:"id"`
	VillageID string      `db:"village_id" json:"villageId"`
	Name      string      `db:"name" json:"name"`
	Phone     *string     `db:"phone" json:"phone"`
	Role      ContactRole `db:"role" json:"role"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

type CreateContactInput struct {
	Name  string      `json:"name" validate:"required,max=200"`
	Phone *string     `json:"phone" validate:"omitempty,max=40"`
	Role  ContactRole `json:"role" validate:"omitempty,oneof=PATWARI SARPANCH NUMBERDAR OTHER"`
}

type ContactPatch struct {
	Name  *string      `db:"name" json:"name" validate:"omitempty,min=1,max=200"`
	Phone *string      `db:"phone" json:"phone" validate:"omitempty,max=40"`
	Role  *ContactRole `db:"role" json:"role" validate:"omitempty,oneof=PATWARI SARPANCH NUMBERDAR OTHER"`
}

type ContactFilter struct {
	Role ContactRole `form:"role"`
}
