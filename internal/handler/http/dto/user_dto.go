package dto

import usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,containsuppercase,containslowercase,containsdigit"`
	FirstName string `json:"firstName" binding:"max=50"`
	LastName  string `json:"lastName" binding:"max=50"`
	Country   string `json:"country" binding:"required"`
	City      string `json:"city"`
	Role      string `json:"role" binding:"omitempty,oneof=user seller"`
}

func (r CreateUserRequest) ToInput() usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Country:   r.Country,
		City:      r.City,
		Role:      r.Role,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,max=50"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	Country   *string `json:"country"`
	City      *string `json:"city"`
}

// Updates lists the supplied fields keyed by their stored names.
func (r UpdateUserRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(key string, v *string) {
		if v != nil {
			updates[key] = *v
		}
	}
	set("firstname", r.FirstName)
	set("lastname", r.LastName)
	set("avatar_url", r.AvatarURL)
	set("bio", r.Bio)
	set("country", r.Country)
	set("city", r.City)
	return updates
}
