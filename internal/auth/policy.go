package auth

import "github.com/safar/go-lounge-pos/internal/models"

type Operation string

const (
	OpCurrentUser      Operation = "current_user"
	OpListMenu         Operation = "list_menu"
	OpAddMenuItem      Operation = "add_menu_item"
	OpListTables       Operation = "list_tables"
	OpCreateTable      Operation = "create_table"
	OpGetTable         Operation = "get_table"
	OpUpdateTable      Operation = "update_table"
	OpAddOrder         Operation = "add_order"
	OpSettleOrder      Operation = "settle_order"
	OpListTransactions Operation = "list_transactions"
	OpRecordOutcome    Operation = "record_outcome"
)

// adminOnly lists operations waiters may not perform. Anything absent is open
// to every authenticated role.
var adminOnly = map[Operation]bool{
	OpAddMenuItem:   true,
	OpRecordOutcome: true,
}

// Authorize is the single access decision for every boundary operation.
func Authorize(id *Identity, op Operation) error {
	if id == nil || id.UserID == "" || !id.Role.Valid() {
		return ErrUnauthenticated
	}

	if adminOnly[op] && id.Role != models.RoleAdmin {
		return ErrForbidden
	}

	return nil
}
