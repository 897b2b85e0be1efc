package types

import "time"

type Event struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Date        *time.Time `db:"event_date" json:"date"`
	Location    *string    `db:"location" json:"location"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	Images []*EventImage `db:"-" json:"images"`
}

type EventImage struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"eventId"`
	Src       string    `db:"src" json:"src"`
	Thumb     *string   `db:"thumb" json:"thumb"`
	Caption   *string   `db:"caption" json:"caption"`
	Order     int       `db:"sort_order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type EventImageInput struct {
	Src     string  `json:"src" validate:"required"`
	Thumb   *string `json:"thumb"`
	Caption *string `json:"caption" validate:"omitempty,max=500"`
	Order   *int    `json:"order"`
}

type CreateEventInput struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description *string            `json:"description"`
	Date        *time.Time         `json:"date"`
	Location    *string            `json:"location" validate:"omitempty,max=200"`
	Images      []*EventImageInput `json:"images" validate:"omitempty,dive"`
}

// EventPatch updates event columns; a non-nil Images replaces the whole
// gallery in the order given.
type EventPatch struct {
	Title       *string            `db:"title" json:"title" validate:"omitempty,min=1,max=200"`
	Description *string            `db:"description" json:"description"`
	Date        *time.Time         `db:"event_date" json:"date"`
	Location    *string            `db:"location" json:"location" validate:"omitempty,max=200"`
	Images      []*EventImageInput `db:"-" json:"images" validate:"omitempty,dive"`
}

type EventFilter struct {
	Query string `form:"q"`
}

// UploadedImage is what the upload endpoint returns for use in an event's
// image list.
type UploadedImage struct {
	Src   string `json:"src"`
	Thumb string `json:"thumb"`
}
