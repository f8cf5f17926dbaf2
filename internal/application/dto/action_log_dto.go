package dto

import "time"

// FieldChangeDTO valor anterior/nuevo de un campo.
type FieldChangeDTO struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ActionLogResponse entrada de auditoría.
type ActionLogResponse struct {
	ID            string                    `json:"id"`
	UserID        *string                   `json:"user_id,omitempty"`
	Username      string                    `json:"username,omitempty"`
	ActionType    string                    `json:"action_type"`
	ActionLabel   string                    `json:"action_label"`
	ProductName   string                    `json:"product_name"`
	ProductID     *string                   `json:"product_id,omitempty"`
	ChangedFields map[string]FieldChangeDTO `json:"changed_fields,omitempty"`
	Details       string                    `json:"details,omitempty"`
	Timestamp     time.Time                 `json:"timestamp"`
}

// ActionLogListResponse página de auditoría.
type ActionLogListResponse struct {
	Items []ActionLogResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
