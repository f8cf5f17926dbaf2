package entity

import "time"

// ActionType tipo de acción registrada sobre un producto.
type ActionType string

const (
	ActionCreate     ActionType = "CREATE"
	ActionEdit       ActionType = "EDIT"
	ActionDelete     ActionType = "DELETE"
	ActionDeactivate ActionType = "DEACTIVATE"
)

// Label texto legible de la acción.
func (a ActionType) Label() string {
	switch a {
	case ActionCreate:
		return "Создание товара"
	case ActionEdit:
		return "Редактирование товара"
	case ActionDelete:
		return "Удаление товара"
	case ActionDeactivate:
		return "Снятие с продажи"
	}
	return string(a)
}

// FieldChange valor anterior y nuevo de un campo editado.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ActionLog auditoría de acciones de managers sobre productos.
type ActionLog struct {
	ID            string
	UserID        *string
	Username      string // lectura (JOIN)
	ActionType    ActionType
	ProductName   string
	ProductID     *string
	ChangedFields map[string]FieldChange
	Details       string
	Timestamp     time.Time
}
