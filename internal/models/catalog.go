package models

// CatalogKind selects one of the named-entity lookup tables.
type CatalogKind string

const (
	CatalogSections CatalogKind = "sections"
	CatalogFaculty  CatalogKind = "faculty"
	CatalogRooms    CatalogKind = "rooms"
)

// Table returns the backing table name, or empty for an unknown kind.
func (k CatalogKind) Table() string {
	switch k {
	case CatalogSections, CatalogFaculty, CatalogRooms:
		return string(k)
	}
	return ""
}

// Valid reports whether the kind names a known catalog.
func (k CatalogKind) Valid() bool {
	return k.Table() != ""
}

// NamedEntity is a catalog row: a section, faculty member or room known to
// the scheduler. Names are unique per catalog.
type NamedEntity struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
