package model

// Company holds every attribute extracted from a company detail page.
// All fields are strings and default to the empty string: absence of
// data is represented as "" rather than a null so that the JSON and CSV
// output schemas stay fixed-width regardless of how sparse a page is.
//
// JSON tags carry the Spanish field names of the directory. They are the
// serialization contract of the produced files (consumed by spreadsheet
// users and downstream tooling), so they must not drift even though the
// Go identifiers are English.
//
// Design decision: We use a flat struct rather than nested sub-structs
// (identity/contact/commercial) because the record is the unit of
// serialization and the flat shape maps 1:1 onto a CSV row.
type Company struct {
	// === Identity ===

	// Name is the registered company name (razón social).
	Name string `json:"razon_social"`

	// TaxID is the Spanish company tax identifier (CIF).
	TaxID string `json:"cif"`

	// LegalForm is the legal form (e.g. "Sociedad Limitada").
	LegalForm string `json:"forma_juridica"`

	// === Classification ===

	// Sector is the broad business sector.
	Sector string `json:"sector"`

	// Activity is the declared business activity.
	Activity string `json:"actividad"`

	// CNAE is the national economic activity classification code.
	CNAE string `json:"cnae"`

	// Status is the registry status (active, dissolved, ...).
	Status string `json:"estado"`

	// === Dates ===

	// IncorporationDate is the date the company was incorporated.
	// Kept as the display string from the page; formats vary by record.
	IncorporationDate string `json:"fecha_constitucion"`

	// CorporatePurpose is the registered corporate purpose (objeto social).
	CorporatePurpose string `json:"objeto_social"`

	// === Contact ===

	// Address is the registered postal address.
	Address string `json:"direccion"`

	// Phone is the published phone number.
	Phone string `json:"telefono"`

	// Email is the published contact email.
	Email string `json:"email"`

	// Website is the company website URL.
	Website string `json:"web"`

	// === Commercial data ===

	// Sales is the reported sales/revenue figure or trend.
	Sales string `json:"ventas"`

	// Employees is the reported employee count.
	Employees string `json:"num_empleados"`

	// Shareholdings lists holdings in other companies.
	Shareholdings string `json:"participaciones"`

	// InternationalOps indicates import/export activity.
	InternationalOps string `json:"operaciones_internacionales"`

	// SectorGroup is the sector group the directory assigns.
	SectorGroup string `json:"grupo_sector"`

	// StockListed indicates whether the company is listed on a stock
	// exchange.
	StockListed string `json:"cotiza_bolsa"`

	// === Provenance ===

	// SourceURL is the detail page the record was extracted from.
	// It is always populated once a record exists and serves as the
	// record's identity key for deduplication and failure reporting.
	SourceURL string `json:"url_ficha"`
}

// CSVColumns is the fixed column order for CSV export.
// The names match the JSON tags above; the order is part of the output
// contract and must not change between runs.
var CSVColumns = []string{
	"razon_social",
	"cif",
	"forma_juridica",
	"sector",
	"actividad",
	"cnae",
	"estado",
	"fecha_constitucion",
	"objeto_social",
	"direccion",
	"telefono",
	"email",
	"web",
	"ventas",
	"num_empleados",
	"participaciones",
	"operaciones_internacionales",
	"grupo_sector",
	"cotiza_bolsa",
	"url_ficha",
}

// NewCompany creates a Company with the source URL set.
// Every other field starts empty and is filled in by extraction.
func NewCompany(sourceURL string) Company {
	return Company{SourceURL: sourceURL}
}

// FromMap builds a Company from a generic string map, ignoring unknown
// keys. This is the inverse of the JSON field mapping and is used when
// re-reading previously exported JSON data.
func FromMap(data map[string]string) Company {
	c := Company{}
	for key, value := range data {
		switch key {
		case "razon_social":
			c.Name = value
		case "cif":
			c.TaxID = value
		case "forma_juridica":
			c.LegalForm = value
		case "sector":
			c.Sector = value
		case "actividad":
			c.Activity = value
		case "cnae":
			c.CNAE = value
		case "estado":
			c.Status = value
		case "fecha_constitucion":
			c.IncorporationDate = value
		case "objeto_social":
			c.CorporatePurpose = value
		case "direccion":
			c.Address = value
		case "telefono":
			c.Phone = value
		case "email":
			c.Email = value
		case "web":
			c.Website = value
		case "ventas":
			c.Sales = value
		case "num_empleados":
			c.Employees = value
		case "participaciones":
			c.Shareholdings = value
		case "operaciones_internacionales":
			c.InternationalOps = value
		case "grupo_sector":
			c.SectorGroup = value
		case "cotiza_bolsa":
			c.StockListed = value
		case "url_ficha":
			c.SourceURL = value
		}
	}
	return c
}

// ToMap converts the company to a map keyed by the serialized field
// names, in no particular order. CSV export combines this with
// CSVColumns to produce rows in the fixed column order.
func (c Company) ToMap() map[string]string {
	return map[string]string{
		"razon_social":                c.Name,
		"cif":                         c.TaxID,
		"forma_juridica":              c.LegalForm,
		"sector":                      c.Sector,
		"actividad":                   c.Activity,
		"cnae":                        c.CNAE,
		"estado":                      c.Status,
		"fecha_constitucion":          c.IncorporationDate,
		"objeto_social":               c.CorporatePurpose,
		"direccion":                   c.Address,
		"telefono":                    c.Phone,
		"email":                       c.Email,
		"web":                         c.Website,
		"ventas":                      c.Sales,
		"num_empleados":               c.Employees,
		"participaciones":             c.Shareholdings,
		"operaciones_internacionales": c.InternationalOps,
		"grupo_sector":                c.SectorGroup,
		"cotiza_bolsa":                c.StockListed,
		"url_ficha":                   c.SourceURL,
	}
}
