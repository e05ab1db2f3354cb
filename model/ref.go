package model

// Ref は一覧系レコードが持つ2つの識別子です。
// ID is the display id (1-based, page-local, reassigned on every full reload).
// RealID is the server-assigned id and the only one sent back to the API.
type Ref struct {
	ID     int    `db:"id" json:"id"`
	RealID string `db:"real_id" json:"realId"`
}

func (r Ref) DisplayID() int { return r.ID }

func (r Ref) Key() string { return r.RealID }

func (r *Ref) SetDisplayID(id int) { r.ID = id }
