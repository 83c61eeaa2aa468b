package pos

import "github.com/safar/go-lounge-pos/internal/models"

// tableIndex maps table ids and order ids to positions in a loaded tables
// collection, so order lookups do not rescan every table.
type tableIndex struct {
	byTable map[string]int
	byOrder map[string]string
}

func indexTables(tables []models.Table) tableIndex {
	ix := tableIndex{
		byTable: make(map[string]int, len(tables)),
		byOrder: make(map[string]string),
	}
	for i, t := range tables {
		ix.byTable[t.ID] = i
		for _, order := range t.Orders {
			ix.byOrder[order.ID] = t.ID
		}
	}
	return ix
}

func (ix tableIndex) table(id string) (int, bool) {
	i, ok := ix.byTable[id]
	return i, ok
}

// order returns the position of the owning table and of the order inside it.
func (ix tableIndex) order(tables []models.Table, orderID string) (int, int, bool) {
	tableID, ok := ix.byOrder[orderID]
	if !ok {
		return 0, 0, false
	}
	ti, ok := ix.byTable[tableID]
	if !ok {
		return 0, 0, false
	}
	for oi, order := range tables[ti].Orders {
		if order.ID == orderID {
			return ti, oi, true
		}
	}
	return 0, 0, false
}
