package models

import "time"

// Group is a named collection of permissions.
type Group struct {
	ID          int64        `gorm:"primaryKey"`
	Name        string       `gorm:"uniqueIndex;size:100;not null"`
	Permissions []Permission `gorm:"many2many:grupo_permissoes;joinForeignKey:GrupoID;joinReferences:PermissaoID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default table name.
func (Group) TableName() string {
	return "grupos"
}

// PermissionCodes lists the codes of the group's permissions.
func (g *Group) PermissionCodes() []string {
	codes := make([]string, 0, len(g.Permissions))
	for _, p := range g.Permissions {
		codes = append(codes, p.Code)
	}

	return codes
}
