package devapi

import (
	"github.com/portal-prestadores/portal/internal/api"
	"github.com/portal-prestadores/portal/internal/db/models"
)

func toUser(u *models.User) api.User {
	perms := make([]api.Permission, 0, len(u.Group.Permissions))
	for _, p := range u.Group.Permissions {
		perms = append(perms, api.Permission{ID: p.ID, Code: p.Code, Name: p.Name})
	}

	return api.User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Active: u.Active,
		Group: api.Group{
			ID:          u.Group.ID,
			Name:        u.Group.Name,
			Permissions: perms,
		},
	}
}

func toContract(c *models.Contract) api.Contract {
	return api.Contract{
		ID:        c.ID,
		Number:    c.Number,
		Provider:  c.Provider,
		Value:     c.Value,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Status:    c.Status,
	}
}

func toAnnouncement(a *models.Announcement) api.Announcement {
	return api.Announcement{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
	}
}
