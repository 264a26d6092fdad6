package models

// Workbook is an ordered sequence of sheets decoded from one fetch.
type Workbook struct {
	// Name identifies where the workbook was read from.
	Name string `json:"name"`
	// Sheets keeps the workbook's sheet order.
	Sheets []Sheet `json:"sheets"`
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}
