package mapper

import (
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/model"
	"talk-to-legends-be/pkg/plan"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName,
		Location:     u.Location,
		Bio:          u.Bio,
		Plan:         plan.Parse(u.Plan),

		BillingCustomerId: u.BillingCustomerId,
		SubscriptionId:    u.SubscriptionId,
		PriceId:           u.PriceId,
		CurrentPeriodEnd:  u.CurrentPeriodEnd,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	tier := u.Plan
	if tier == "" {
		tier = plan.Free
	}
	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName,
		Location:     u.Location,
		Bio:          u.Bio,
		Plan:         string(tier),

		BillingCustomerId: u.BillingCustomerId,
		SubscriptionId:    u.SubscriptionId,
		PriceId:           u.PriceId,
		CurrentPeriodEnd:  u.CurrentPeriodEnd,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
