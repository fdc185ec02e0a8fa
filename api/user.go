package api

import (
	"fmt"

	"fashionhub/common"
)

type Role string

const (
	// SuperAdmin is the platform-wide administrative role.
	SuperAdmin Role = "super_admin"
	// StoreAdmin is the per-store administrative role.
	StoreAdmin Role = "store_admin"
	// Customer is the default shopper role.
	Customer Role = "customer"
)

func (e Role) String() string {
	switch e {
	case SuperAdmin:
		return "super_admin"
	case StoreAdmin:
		return "store_admin"
	case Customer:
		return "customer"
	}
	return "customer"
}

type User struct {
	ID int `json:"id"`

	RowStatus RowStatus `json:"rowStatus"`
	CreatedTs int64     `json:"createdTs"`
	UpdatedTs int64     `json:"updatedTs"`

	// Domain specific fields
	Name           string            `json:"username"`
	Role           Role              `json:"role"`
	Email          string            `json:"email"`
	Nickname       string            `json:"nickname"`
	PasswordHash   string            `json:"-"`
	OpenID         string            `json:"openId"`
	AvatarURL      string            `json:"avatarUrl"`
	PreferenceList []*UserPreference `json:"preferenceList"`
}

type UserFind struct {
	ID        *int       `json:"id"`
	RowStatus *RowStatus `json:"rowStatus"`

	Name     *string `json:"username"`
	Role     *Role
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
	OpenID   *string
}

type UserCreate struct {
	// Domain specific fields
	Name         string `json:"username"`
	Role         Role   `json:"role"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	Password     string `json:"password"`
	PasswordHash string
	OpenID       string
}

func (create UserCreate) Validate() error {
	if len(create.Name) < 3 {
		return fmt.Errorf("username is too short, minimum length is 3")
	}
	if len(create.Name) > 32 {
		return fmt.Errorf("username is too long, maximum length is 32")
	}
	if len(create.Password) < 6 {
		return fmt.Errorf("password is too short, minimum length is 6")
	}
	if len(create.Password) > 512 {
		return fmt.Errorf("password is too long, maximum length is 512")
	}
	if len(create.Nickname) > 64 {
		return fmt.Errorf("nickname is too long, maximum length is 64")
	}
	if create.Email != "" {
		if len(create.Email) > 256 {
			return fmt.Errorf("email is too long, maximum length is 256")
		}
		if !common.ValidateEmail(create.Email) {
			return fmt.Errorf("invalid email format")
		}
	}

	return nil
}

type UserPatch struct {
	ID int `json:"-"`

	RowStatus *RowStatus `json:"rowStatus"`

	// Domain specific fields
	Email        *string `json:"email"`
	Nickname     *string `json:"nickname"`
	Password     *string `json:"password"`
	AvatarURL    *string `json:"avatarUrl"`
	PasswordHash *string
}

func (patch UserPatch) Validate() error {
	if patch.Password != nil && len(*patch.Password) < 6 {
		return fmt.Errorf("password is too short, minimum length is 6")
	}
	if patch.Nickname != nil && len(*patch.Nickname) > 64 {
		return fmt.Errorf("nickname is too long, maximum length is 64")
	}
	if patch.Email != nil && *patch.Email != "" {
		if len(*patch.Email) > 256 {
			return fmt.Errorf("email is too long, maximum length is 256")
		}
		if !common.ValidateEmail(*patch.Email) {
			return fmt.Errorf("invalid email format")
		}
	}

	return nil
}

type SignIn struct {
	Name string `json:"username"`
	Pass string `json:"password"`
}

type SignUp struct {
	Name string `json:"username"`
	Pass string `json:"password"`
	Role Role   `json:"role"`
}
