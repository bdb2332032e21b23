package domain

// Sheet names of the exported document, in order.
const (
	SheetTransactions = "Transactions"
	SheetByCategory   = "By Category"
	SheetByUser       = "By User"
	SheetSummary      = "Summary"
)

// Sheet is one named section of a Document.
// Cell values are string, float64, time.Time or nil (empty cell).
type Sheet struct {
	Name   string   `json:"name"`
	Header []string `json:"header"`
	Rows   [][]any  `json:"rows"`
}

// Document is a writer-agnostic, multi-section rendering of a Report.
type Document struct {
	Sheets []Sheet `json:"sheets"`
}

// Sheet returns the section with the given name.
func (d *Document) Sheet(name string) (Sheet, bool) {
	for _, s := range d.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}
