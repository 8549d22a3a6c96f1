package permission

// Permission codes define the closed set of permissions the backend grants to groups.
// Codes are opaque strings compared by exact equality; there is no hierarchy.
const (
	// CreateUser allows registering new portal users.
	CreateUser = "criar_usuario"
	// EditUser allows changing user accounts.
	EditUser = "editar_usuario"
	// DeleteUser allows removing user accounts.
	DeleteUser = "excluir_usuario"
	// ViewUsers allows listing user accounts.
	ViewUsers = "visualizar_usuarios"

	// CreateGroup allows creating permission groups.
	CreateGroup = "criar_grupo"
	// EditGroup allows changing a group and its permissions.
	EditGroup = "editar_grupo"
	// DeleteGroup allows removing groups.
	DeleteGroup = "excluir_grupo"
	// ViewGroups allows listing groups.
	ViewGroups = "visualizar_grupos"

	// CreateContract allows registering provider contracts.
	CreateContract = "criar_contrato"
	// EditContract allows changing provider contracts.
	EditContract = "editar_contrato"
	// DeleteContract allows removing provider contracts.
	DeleteContract = "excluir_contrato"
	// ViewContracts allows listing provider contracts.
	ViewContracts = "visualizar_contratos"

	// CreateFinancial allows registering payroll and financial records.
	CreateFinancial = "criar_financeiro"
	// EditFinancial allows changing financial records.
	EditFinancial = "editar_financeiro"
	// DeleteFinancial allows removing financial records.
	DeleteFinancial = "excluir_financeiro"
	// ViewFinancials allows viewing the principal's own financial records.
	ViewFinancials = "visualizar_financeiros"
	// ViewAllFinancials allows viewing the financial records of every provider.
	ViewAllFinancials = "visualizar_todos_financeiros"

	// RequestVacation allows opening vacation requests.
	RequestVacation = "criar_ferias"
	// ApproveVacation allows approving or rejecting vacation requests.
	ApproveVacation = "aprovar_ferias"
	// ViewVacations allows viewing the principal's own vacation requests.
	ViewVacations = "visualizar_ferias"
	// ViewAllVacations allows viewing the vacation requests of every provider.
	ViewAllVacations = "visualizar_todas_ferias"

	// CreateAnnouncement allows publishing announcements to the feed.
	CreateAnnouncement = "criar_aviso"
	// EditAnnouncement allows changing announcements.
	EditAnnouncement = "editar_aviso"
	// DeleteAnnouncement allows removing announcements.
	DeleteAnnouncement = "excluir_aviso"
	// ViewAnnouncements allows reading the announcement feed.
	ViewAnnouncements = "visualizar_avisos"
)

// names holds the display name of every known code.
var names = map[string]string{ //nolint:gochecknoglobals
	CreateUser:         "Criar usuário",
	EditUser:           "Editar usuário",
	DeleteUser:         "Excluir usuário",
	ViewUsers:          "Visualizar usuários",
	CreateGroup:        "Criar grupo",
	EditGroup:          "Editar grupo",
	DeleteGroup:        "Excluir grupo",
	ViewGroups:         "Visualizar grupos",
	CreateContract:     "Criar contrato",
	EditContract:       "Editar contrato",
	DeleteContract:     "Excluir contrato",
	ViewContracts:      "Visualizar contratos",
	CreateFinancial:    "Criar financeiro",
	EditFinancial:      "Editar financeiro",
	DeleteFinancial:    "Excluir financeiro",
	ViewFinancials:     "Visualizar financeiros",
	ViewAllFinancials:  "Visualizar todos os financeiros",
	RequestVacation:    "Solicitar férias",
	ApproveVacation:    "Aprovar férias",
	ViewVacations:      "Visualizar férias",
	ViewAllVacations:   "Visualizar todas as férias",
	CreateAnnouncement: "Criar aviso",
	EditAnnouncement:   "Editar aviso",
	DeleteAnnouncement: "Excluir aviso",
	ViewAnnouncements:  "Visualizar avisos",
}

// All returns every known permission code in a stable order.
func All() []string {
	return []string{
		CreateUser, EditUser, DeleteUser, ViewUsers,
		CreateGroup, EditGroup, DeleteGroup, ViewGroups,
		CreateContract, EditContract, DeleteContract, ViewContracts,
		CreateFinancial, EditFinancial, DeleteFinancial, ViewFinancials, ViewAllFinancials,
		RequestVacation, ApproveVacation, ViewVacations, ViewAllVacations,
		CreateAnnouncement, EditAnnouncement, DeleteAnnouncement, ViewAnnouncements,
	}
}

// Known reports whether code belongs to the enumeration.
func Known(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the display name of code, or code itself when it is unknown.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}

	return code
}
