package types

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// NGORequest is an offer from an NGO to support a village, awaiting review.
type NGORequest struct {
	ID            string        `db:"id" json:"id"`
	NGOID         *string       `db:"ngo_id" json:"ngoId"`
	NGOName       *string       `db:"ngo_name" json:"ngoName"`
	NGOType       *string       `db:"ngo_type" json:"ngoType"`
	VillageID     string        `db:"village_id" json:"villageId"`
	SupportTypeID string        `db:"support_type_id" json:"supportTypeId"`
	ScaleID       string        `db:"scale_id" json:"scaleId"`
	ContactPerson string        `db:"contact_person" json:"contactPerson"`
	Designation   *string       `db:"designation" json:"designation"`
	ContactPhone  string        `db:"contact_phone" json:"contactPhone"`
	Remarks       *string       `db:"remarks" json:"remarks"`
	Status        RequestStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`

	NGO         *NGO         `db:"-" json:"ngo,omitempty"`
	Village     *Village     `db:"-" json:"village,omitempty"`
	SupportType *SupportType `db:"-" json:"supportType,omitempty"`
	Scale       *Scale       `db:"-" json:"scale,omitempty"`
}

// CreateRequestInput is the public adoption form. Either NGOID or NGOName
// identifies the NGO; a name without an id creates the NGO first.
type CreateRequestInput struct {
	NGOID         *string `json:"ngoId" validate:"required_without=NGOName"`
	NGOName       *string `json:"ngoName" validate:"required_without=NGOID"`
	NGOType       *string `json:"ngoType" validate:"omitempty,max=60"`
	ContactPerson string  `json:"contactPerson" validate:"required,max=200"`
	Designation   *string `json:"designation" validate:"omitempty,max=200"`
	ContactPhone  string  `json:"contactPhone" validate:"required,max=40"`
	SupportTypeID string  `json:"supportTypeId" validate:"required"`
	ScaleID       string  `json:"scaleId" validate:"required"`
	VillageID     string  `json:"villageId" validate:"required"`
	Remarks       *string `json:"remarks"`
}

type RequestFilter struct {
	Status    RequestStatus `form:"status"`
	VillageID string        `form:"villageId"`
	NGOID     string        `form:"ngoId"`
}

// Assignment records that an NGO supports a village. It is created when a
// request is approved and copies the request's contact details.
type Assignment struct {
	ID            string    `db:"id" json:"id"`
	NGOID         string    `db:"ngo_id" json:"ngoId"`
	VillageID     string    `db:"village_id" json:"villageId"`
	RequestID     *string   `db:"request_id" json:"requestId"`
	ContactPerson *string   `db:"contact_person" json:"contactPerson"`
	Designation   *string   `db:"designation" json:"designation"`
	ContactPhone  *string   `db:"contact_phone" json:"contactPhone"`
	SupportTypeID *string   `db:"support_type_id" json:"supportTypeId"`
	ScaleID       *string   `db:"scale_id" json:"scaleId"`
	Remarks       *string   `db:"remarks" json:"remarks"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	NGO         *NGO         `db:"-" json:"ngo,omitempty"`
	Village     *Village     `db:"-" json:"village,omitempty"`
	SupportType *SupportType `db:"-" json:"supportType,omitempty"`
	Scale       *Scale       `db:"-" json:"scale,omitempty"`
}

// NewAssignmentFromRequest copies the approval-time snapshot of a request.
func NewAssignmentFromRequest(req *NGORequest) *Assignment {
	requestID := req.ID
	supportTypeID := req.SupportTypeID
	scaleID := req.ScaleID
	contactPerson := req.ContactPerson
	contactPhone := req.ContactPhone

	a := &Assignment{
		VillageID:     req.VillageID,
		RequestID:     &requestID,
		ContactPerson: &contactPerson,
		Designation:   req.Designation,
		ContactPhone:  &contactPhone,
		SupportTypeID: &supportTypeID,
		ScaleID:       &scaleID,
		Remarks:       req.Remarks,
	}
	if req.NGOID != nil {
		a.NGOID = *req.NGOID
	}
	return a
}

type ApprovalResult struct {
	Request    *NGORequest
	Assignment *Assignment
}
