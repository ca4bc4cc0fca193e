package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/vicentfs/leadscan/internal/model"
)

// strategy is one way of producing a value for a field.
// It returns "" when it finds nothing usable.
type strategy func(*Extractor, *goquery.Document) string

// label builds the standard strategy: heading-anchored lookup of the
// given label variant.
func label(l string) strategy {
	return func(e *Extractor, doc *goquery.Document) string {
		return e.labelValue(doc, l)
	}
}

// fromTitle is the company-name fallback via the page <title>.
func fromTitle() strategy {
	return func(e *Extractor, doc *goquery.Document) string {
		return e.titleCompanyName(doc)
	}
}

// fromPostalAddress is the address fallback via the schema.org
// annotation.
func fromPostalAddress() strategy {
	return func(e *Extractor, doc *goquery.Document) string {
		return e.postalAddress(doc)
	}
}

// fieldSpec binds a company field to its ordered strategy chain.
type fieldSpec struct {
	assign     func(*model.Company, string)
	strategies []strategy
}

// fieldSpecs is the extraction table: one entry per company attribute,
// strategies in priority order. The label variants are the site's
// markup wording and change only when the site changes; partial labels
// ("Forma jur", "Fecha de constituci") deliberately stop before the
// accented tail so either spelling matches.
//
// Accent-insensitive matching makes separate accented/unaccented
// variants unnecessary; variants listed here differ in wording, not
// accents.
var fieldSpecs = []fieldSpec{
	{
		assign:     func(c *model.Company, v string) { c.Name = v },
		strategies: []strategy{label("Razón social"), fromTitle()},
	},
	{
		assign:     func(c *model.Company, v string) { c.TaxID = v },
		strategies: []strategy{label("CIF")},
	},
	{
		assign:     func(c *model.Company, v string) { c.LegalForm = v },
		strategies: []strategy{label("Forma jur")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Sector = v },
		strategies: []strategy{label("Sector")},
	},
	{
		assign:     func(c *model.Company, v string) { c.IncorporationDate = v },
		strategies: []strategy{label("Fecha de constituci")},
	},
	{
		assign:     func(c *model.Company, v string) { c.CorporatePurpose = v },
		strategies: []strategy{label("Objeto social")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Activity = v },
		strategies: []strategy{label("Actividad CNAE"), label("Actividad")},
	},
	{
		assign:     func(c *model.Company, v string) { c.CNAE = v },
		strategies: []strategy{label("CNAE")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Status = v },
		strategies: []strategy{label("Estado")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Address = v },
		strategies: []strategy{label("Direcci"), fromPostalAddress()},
	},
	{
		assign:     func(c *model.Company, v string) { c.Phone = v },
		strategies: []strategy{label("Teléfono"), label("Tel")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Email = v },
		strategies: []strategy{label("Email"), label("Correo")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Website = v },
		strategies: []strategy{label("Web"), label("Página web")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Sales = v },
		strategies: []strategy{label("ventas"), label("Facturación"), label("Evolución de ventas")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Employees = v },
		strategies: []strategy{label("empleados"), label("Número de empleados")},
	},
	{
		assign:     func(c *model.Company, v string) { c.Shareholdings = v },
		strategies: []strategy{label("Participaciones")},
	},
	{
		assign:     func(c *model.Company, v string) { c.InternationalOps = v },
		strategies: []strategy{label("Operaciones Internacional")},
	},
	{
		assign:     func(c *model.Company, v string) { c.SectorGroup = v },
		strategies: []strategy{label("Grupo Sector")},
	},
	{
		assign:     func(c *model.Company, v string) { c.StockListed = v },
		strategies: []strategy{label("Cotiza")},
	},
}
