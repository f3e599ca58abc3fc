package service

import "github.com/devffery/task-two/internal/domain"

// UserView is the public representation of a user. The password hash
// never leaves the service layer.
type UserView struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrganizationView is the public representation of an organization.
type OrganizationView struct {
	OrgID       string `json:"orgId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AuthData pairs a freshly issued access token with its user.
type AuthData struct {
	AccessToken string   `json:"accessToken"`
	User        UserView `json:"user"`
}

func newUserView(user domain.User) UserView {
	return UserView{
		UserID:    user.ID.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}

func newOrganizationView(org domain.Organization) OrganizationView {
	return OrganizationView{
		OrgID:       org.ID.String(),
		Name:        org.Name,
		Description: org.Description,
	}
}
