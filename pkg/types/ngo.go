package types

import "time"

type NGO struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      *string   `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateNGOInput struct {
	Name string  `json:"name" validate:"required,max=200"`
	Type *string `json:"type" validate:"omitempty,max=60"`
}

type NGOPatch struct {
	Name *string `db:"name" json:"name" validate:"omitempty,min=1,max=200"`
	Type *string `db:"type" json:"type" validate:"omitempty,max=60"`
}

type NGOFilter struct {
	Query string `form:"q"`
}

// SupportType and Scale are seeded reference rows describing the kind and
// size of the help an NGO offers.
type SupportType struct {
	ID        string    `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Scale struct {
	ID        string    `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
