package types

import "time"

type Village struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	District     *string   `db:"district" json:"district"`
	Description  *string   `db:"description" json:"description"`
	MostEffected bool      `db:"most_effected" json:"mostEffected"`
	NeedsHelp    bool      `db:"needs_help" json:"needsHelp"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	Contacts    []*Contact    `db:"-" json:"contacts"`
	Assignments []*Assignment `db:"-" json:"assignments"`
}

type CreateVillageInput struct {
	Name         string  `json:"name" validate:"required,max=200"`
	District     *string `json:"district"`
	Description  *string `json:"description"`
	MostEffected bool    `json:"mostEffected"`
	NeedsHelp    bool    `json:"needsHelp"`
}

// VillagePatch holds the fields an update may touch. Nil fields are left as-is.
type VillagePatch struct {
	Name         *string `db:"name" json:"name" validate:"omitempty,min=1,max=200"`
	District     *string `db:"district" json:"district"`
	Description  *string `db:"description" json:"description"`
	MostEffected *bool   `db:"most_effected" json:"mostEffected"`
	NeedsHelp    *bool   `db:"needs_help" json:"needsHelp"`
}

type VillageFilter struct {
	Query        string `form:"q"`
	NeedsHelp    *bool  `form:"needsHelp"`
	MostEffected *bool  `form:"mostEffected"`
}

type VillageFlag string

const (
	VillageFlagNeedsHelp    VillageFlag = "needsHelp"
	VillageFlagMostEffected VillageFlag = "mostEffected"
)

// Column maps the flag onto its villages column.
func (f VillageFlag) Column() (string, bool) {
	switch f {
	case VillageFlagNeedsHelp:
		return "needs_help", true
	case VillageFlagMostEffected:
		return "most_effected", true
	}
	return "", false
}

type MarkVillagesInput struct {
	Flag  VillageFlag `json:"flag" validate:"required,oneof=needsHelp mostEffected"`
	Names []string    `json:"names" validate:"required,min=1"`
}

type MarkVillagesResult struct {
	Updated    int64    `json:"updated"`
	NotMatched []string `json:"notMatched"`
}
