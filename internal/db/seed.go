package db

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/portal-prestadores/portal/internal/db/models"
	"github.com/portal-prestadores/portal/internal/permission"
)

// Demo accounts created by Seed. All share DemoPassword.
const (
	AdminEmail    = "admin@portal.local"
	ManagerEmail  = "gestor@portal.local"
	ProviderEmail = "prestador@portal.local"
	DemoPassword  = "changeme"
)

// Seed fills an empty database with the permission catalogue, three groups,
// one demo user per group, contracts and announcements.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count users")
	}

	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		perms := make(map[string]models.Permission, len(permission.All()))

		for _, code := range permission.All() {
			p := models.Permission{Code: code, Name: permission.Name(code)}
			if err := tx.Create(&p).Error; err != nil {
				return errors.Wrapf(err, "create permission %s", code)
			}

			perms[code] = p
		}

		pick := func(codes ...string) []models.Permission {
			out := make([]models.Permission, 0, len(codes))
			for _, c := range codes {
				out = append(out, perms[c])
			}

			return out
		}

		groups := []*models.Group{
			{Name: "Administrador", Permissions: pick(permission.All()...)},
			{Name: "Gestor", Permissions: pick(
				permission.ViewUsers,
				permission.ViewContracts, permission.CreateContract, permission.EditContract,
				permission.ViewFinancials, permission.ViewAllFinancials,
				permission.ViewVacations, permission.ApproveVacation, permission.ViewAllVacations,
				permission.ViewAnnouncements, permission.CreateAnnouncement,
			)},
			{Name: "Prestador", Permissions: pick(
				permission.ViewContracts,
				permission.ViewFinancials,
				permission.RequestVacation, permission.ViewVacations,
				permission.ViewAnnouncements,
			)},
		}

		for _, g := range groups {
			if err := tx.Create(g).Error; err != nil {
				return errors.Wrapf(err, "create group %s", g.Name)
			}
		}

		users := []models.User{
			{Name: "Administrador", Email: AdminEmail, GroupID: groups[0].ID},
			{Name: "Gabriela Gestora", Email: ManagerEmail, GroupID: groups[1].ID},
			{Name: "Paulo Prestador", Email: ProviderEmail, GroupID: groups[2].ID},
		}

		hash := models.HashPassword(DemoPassword)

		for i := range users {
			users[i].Active = true
			users[i].Password = hash

			if err := tx.Create(&users[i]).Error; err != nil {
				return errors.Wrapf(err, "create user %s", users[i].Email)
			}
		}

		start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

		contracts := []models.Contract{
			{Number: "CT-2025-001", Provider: "Paulo Prestador", Value: 12000, StartDate: start, EndDate: start.AddDate(1, 0, 0), Status: "ativo"},
			{Number: "CT-2025-002", Provider: "Clínica Boa Saúde", Value: 48500.5, StartDate: start.AddDate(0, 3, 0), EndDate: start.AddDate(2, 3, 0), Status: "ativo"},
			{Number: "CT-2024-017", Provider: "Laboratório Central", Value: 9800, StartDate: start.AddDate(-1, 0, 0), EndDate: start, Status: "encerrado"},
		}

		if err := tx.Create(&contracts).Error; err != nil {
			return errors.Wrap(err, "create contracts")
		}

		announcements := []models.Announcement{
			{Title: "Bem-vindo ao portal", Body: "Use o menu para acessar contratos e avisos.", Author: "Administrador", PublishedAt: start},
			{Title: "Recesso de fim de ano", Body: "O atendimento será reduzido entre 24/12 e 02/01.", Author: "Gabriela Gestora", PublishedAt: start.AddDate(0, 11, 20)},
		}

		if err := tx.Create(&announcements).Error; err != nil {
			return errors.Wrap(err, "create announcements")
		}

		return nil
	})
}
