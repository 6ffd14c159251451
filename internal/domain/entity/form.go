package entity

// Form represents a protectable module of the portal that CRUD
// permissions attach to
type Form struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	DisplayName string `gorm:"type:varchar(100);not null" json:"display_name"`
}

func (Form) TableName() string {
	return "forms"
}

// Form code constants
const (
	FormCitas           = "CITAS"
	FormUsers           = "USERS"
	FormRoles           = "ROLES"
	FormSedes           = "SEDES"
	FormTiposCita       = "TIPOS_CITA"
	FormHorasDisponible = "HORAS_DISPONIBLES"
	FormPermissions     = "PERMISSIONS"
)

// TabForms maps each UI tab identifier to the form code that backs it.
// A tab is visible when the actor can read its backing form or the tab
// appears in the employee allow-list.
var TabForms = map[string]string{
	"citas":            FormCitas,
	"usuarios":         FormUsers,
	"roles":            FormRoles,
	"sedes":            FormSedes,
	"tipos-cita":       FormTiposCita,
	"horas-disponible": FormHorasDisponible,
	"permisos":         FormPermissions,
}
