package console

import (
	"context"
	"strings"

	"ecadmin/apiclient"
	"ecadmin/model"
	"ecadmin/validation"
)

// UserInput は顧客登録フォームです。API は登録と削除のみです。
type UserInput struct {
	FirstName   string `json:"firstName" validate:"notblank"`
	LastName    string `json:"lastName" validate:"notblank"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"notblank"`
	Role        string `json:"role" validate:"omitempty,oneof=Admin User"`
	Password    string `json:"password" validate:"required"`
}

func (c *Console) RegisterUser(ctx context.Context, in UserInput) error {
	if in.Role == "" {
		in.Role = "User"
	}
	if err := validation.Struct(in).Err(); err != nil {
		return err
	}
	in.Email = strings.TrimSpace(in.Email)

	return c.coord.RunE(ctx, "users", c.post(apiclient.PathUsersRegister, in), func(res apiclient.Result) {
		c.store.Users.Add(model.UserRecord{
			Ref:         model.Ref{RealID: c.realIDFrom(res, func(ids model.CreatedID) string { return ids.UserID })},
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			Role:        in.Role,
		})
	})
}

func (c *Console) DeleteUser(ctx context.Context, displayID int) (bool, error) {
	return deleteRecord(ctx, c, c.store.Users, apiclient.PathUsers, displayID)
}
