package models

import "github.com/uptrace/bun"

// ClassClient is the enrollment join row. The composite primary key makes a
// client's enrollment in a class unique.
type ClassClient struct {
	bun.BaseModel `bun:"table:class_clients,alias:cc"`

	ClassID  int64   `bun:"class_id,pk" json:"classId"`
	Class    *Class  `bun:"rel:belongs-to,join:class_id=id" json:"-"`
	ClientID int64   `bun:"client_id,pk" json:"clientId"`
	Client   *Client `bun:"rel:belongs-to,join:client_id=id" json:"-"`
}
