package extract

import (
	"reflect"
	"testing"

	"github.com/vicentfs/leadscan/internal/config"
)

func newTestExtractor() *Extractor {
	return New(config.DefaultPlaceholderPhrases())
}

// TestListingURLs tests company URL discovery on listing pages.
func TestListingURLs(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()

	t.Run("reads the machine-readable URL annotation", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div class="cardCompanyBox">
				<meta itemprop="url" content="/foo/bar.html">
				<h3><a href="/ignored.html">Foo Bar SL</a></h3>
			</div>
		</body></html>`

		urls, err := e.ListingURLs(markup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{config.BaseURL + "/foo/bar.html"}
		if !reflect.DeepEqual(urls, want) {
			t.Errorf("got %v, expected %v", urls, want)
		}
	})

	t.Run("falls back to the heading link", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div class="cardCompanyBox">
				<h3><a href="/ACME-SL.html">ACME SL</a></h3>
			</div>
		</body></html>`

		urls, err := e.ListingURLs(markup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{config.BaseURL + "/ACME-SL.html"}
		if !reflect.DeepEqual(urls, want) {
			t.Errorf("got %v, expected %v", urls, want)
		}
	})

	t.Run("ignores heading links without the page suffix", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div class="cardCompanyBox">
				<h3><a href="/Actividad/PESCA/">Category link</a></h3>
			</div>
		</body></html>`

		urls, err := e.ListingURLs(markup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(urls) != 0 {
			t.Errorf("got %v, expected no URLs", urls)
		}
	})

	t.Run("preserves card order and keeps absolute URLs", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div class="cardCompanyBox"><meta itemprop="url" content="https://empresite.eleconomista.es/FIRST.html"></div>
			<div class="cardCompanyBox"><meta itemprop="url" content="/SECOND.html"></div>
			<div class="cardCompanyBox"><h3><a href="/THIRD.html">Third</a></h3></div>
		</body></html>`

		urls, err := e.ListingURLs(markup)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{
			"https://empresite.eleconomista.es/FIRST.html",
			config.BaseURL + "/SECOND.html",
			config.BaseURL + "/THIRD.html",
		}
		if !reflect.DeepEqual(urls, want) {
			t.Errorf("got %v, expected %v", urls, want)
		}
	})

	t.Run("no cards yields an empty list", func(t *testing.T) {
		t.Parallel()

		urls, err := e.ListingURLs("<html><body><p>Nothing here</p></body></html>")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(urls) != 0 {
			t.Errorf("got %v, expected no URLs", urls)
		}
	})
}

// TestResultCount tests total-count extraction from listing pages.
func TestResultCount(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()

	t.Run("reads the results-summary element", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div id="filter-numresultados">Hemos encontrado 65 empresas de pesca</div>
		</body></html>`

		if got := e.ResultCount(markup); got != 65 {
			t.Errorf("got %d, expected 65", got)
		}
	})

	t.Run("single result uses the singular noun", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><div id="filter-numresultados">1 empresa encontrada</div></body></html>`
		if got := e.ResultCount(markup); got != 1 {
			t.Errorf("got %d, expected 1", got)
		}
	})

	t.Run("falls back to the page text", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<p>Hemos encontrado 142 empresas que coinciden con tu búsqueda.</p>
		</body></html>`

		if got := e.ResultCount(markup); got != 142 {
			t.Errorf("got %d, expected 142", got)
		}
	})

	t.Run("returns zero when no pattern matches", func(t *testing.T) {
		t.Parallel()

		if got := e.ResultCount("<html><body><p>Sin resultados</p></body></html>"); got != 0 {
			t.Errorf("got %d, expected 0", got)
		}
	})
}

// companyFixture is a representative detail page exercising the main
// extraction paths: sibling values, text-node values, placeholders,
// and schema.org annotations.
const companyFixture = `<html>
<head><title>NOVANTOLIN PESCA SL - Empresite</title></head>
<body>
	<section>
		<div><h3>Razón social</h3><p>NOVANTOLIN PESCA SL</p></div>
		<div><h3>CIF</h3><p>B36123456</p></div>
		<div><h3>Forma jurídica</h3>Sociedad Limitada</div>
		<div><h3>Fecha de constitución</h3><p>12/03/1998</p></div>
		<div><h3>Objeto social</h3><p>Captura, conservación y venta de pescado</p></div>
		<div><h3>Estado</h3><p>Activa</p></div>
	</section>
	<section>
		<div><h3>Dirección</h3><p>Puerto Pesquero s/n, Vigo</p></div>
		<div><h3>Teléfono</h3><p>Añadir teléfono de NOVANTOLIN</p></div>
		<div><h3>Email</h3><p>No disponible</p></div>
		<div><h3>Web</h3><p>https://www.novantolin.es</p></div>
	</section>
	<section>
		<div><h3>Evolución de ventas</h3><p>1.2M EUR</p></div>
		<div><h3>Número de empleados</h3><p>14</p></div>
	</section>
</body>
</html>`

// TestCompanyRecord tests detail-page extraction.
func TestCompanyRecord(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()
	sourceURL := "https://empresite.eleconomista.es/NOVANTOLIN-PESCA.html"

	company, err := e.CompanyRecord(companyFixture, sourceURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("always sets the source URL", func(t *testing.T) {
		t.Parallel()
		if company.SourceURL != sourceURL {
			t.Errorf("got %q, expected %q", company.SourceURL, sourceURL)
		}
	})

	t.Run("reads sibling element values", func(t *testing.T) {
		t.Parallel()
		if company.Name != "NOVANTOLIN PESCA SL" {
			t.Errorf("got %q, expected NOVANTOLIN PESCA SL", company.Name)
		}
		if company.TaxID != "B36123456" {
			t.Errorf("got %q, expected B36123456", company.TaxID)
		}
		if company.IncorporationDate != "12/03/1998" {
			t.Errorf("got %q, expected 12/03/1998", company.IncorporationDate)
		}
	})

	t.Run("reads text-node values via the parent", func(t *testing.T) {
		t.Parallel()
		if company.LegalForm != "Sociedad Limitada" {
			t.Errorf("got %q, expected Sociedad Limitada", company.LegalForm)
		}
	})

	t.Run("rejects placeholder values", func(t *testing.T) {
		t.Parallel()
		if company.Phone != "" {
			t.Errorf("got %q, expected empty phone (placeholder)", company.Phone)
		}
		if company.Email != "" {
			t.Errorf("got %q, expected empty email (placeholder)", company.Email)
		}
	})

	t.Run("matches later label variants", func(t *testing.T) {
		t.Parallel()
		if company.Sales != "1.2M EUR" {
			t.Errorf("got %q, expected 1.2M EUR", company.Sales)
		}
		if company.Employees != "14" {
			t.Errorf("got %q, expected 14", company.Employees)
		}
	})

	t.Run("re-extraction yields identical output", func(t *testing.T) {
		t.Parallel()
		again, err := e.CompanyRecord(companyFixture, sourceURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != company {
			t.Errorf("extraction not idempotent:\n first:  %+v\n second: %+v", company, again)
		}
	})
}

// TestCompanyRecordFallbacks tests the name and address fallbacks.
func TestCompanyRecordFallbacks(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()

	t.Run("name falls back to the page title", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head><title>ACME CONSTRUCCIONES SA - Empresite</title></head>
			<body><p>Ficha sin encabezados</p></body></html>`

		company, err := e.CompanyRecord(markup, "https://example.com/ACME.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.Name != "ACME CONSTRUCCIONES SA" {
			t.Errorf("got %q, expected ACME CONSTRUCCIONES SA", company.Name)
		}
	})

	t.Run("title without separator yields no name", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head><title>Empresite</title></head><body></body></html>`
		company, err := e.CompanyRecord(markup, "https://example.com/x.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.Name != "" {
			t.Errorf("got %q, expected empty name", company.Name)
		}
	})

	t.Run("address falls back to the postal-address annotation", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<span itemprop="address">Calle Mayor 1, 28013 Madrid</span>
		</body></html>`

		company, err := e.CompanyRecord(markup, "https://example.com/x.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.Address != "Calle Mayor 1, 28013 Madrid" {
			t.Errorf("got %q, expected the annotated address", company.Address)
		}
	})

	t.Run("accent-insensitive label matching", func(t *testing.T) {
		t.Parallel()

		// Unaccented heading spelling, as some record types render it.
		markup := `<html><body>
			<div><h3>Razon Social</h3><p>PESCADOS DEL SUR SL</p></div>
			<div><h3>Telefono</h3><p>953 000 111</p></div>
		</body></html>`

		company, err := e.CompanyRecord(markup, "https://example.com/x.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.Name != "PESCADOS DEL SUR SL" {
			t.Errorf("got %q, expected PESCADOS DEL SUR SL", company.Name)
		}
		if company.Phone != "953 000 111" {
			t.Errorf("got %q, expected 953 000 111", company.Phone)
		}
	})

	t.Run("reads values rendered before the label", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div>Sociedad Anónima<h3>Forma jurídica</h3></div>
			<div><span>Activa</span><h3>Estado</h3><p>Añadir estado</p></div>
		</body></html>`

		company, err := e.CompanyRecord(markup, "https://example.com/x.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.LegalForm != "Sociedad Anónima" {
			t.Errorf("got %q, expected Sociedad Anónima", company.LegalForm)
		}
		if company.Status != "Activa" {
			t.Errorf("got %q, expected Activa", company.Status)
		}
	})

	t.Run("entity-encoded values are decoded and normalized", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
			<div><h3>Objeto social</h3><p>  Compra&nbsp;y   venta de terrenos  </p></div>
		</body></html>`

		company, err := e.CompanyRecord(markup, "https://example.com/x.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.CorporatePurpose != "Compra y venta de terrenos" {
			t.Errorf("got %q, expected normalized text", company.CorporatePurpose)
		}
	})
}

// TestPlaceholderRejection checks that no placeholder phrase ever
// survives into an extracted record.
func TestPlaceholderRejection(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()

	markup := `<html><body>
		<div><h3>Teléfono</h3><p>Añadir teléfono</p></div>
		<div><h3>Email</h3><p>Agregar email de la empresa</p></div>
		<div><h3>Web</h3><p>NO DISPONIBLE</p></div>
		<div><h3>CIF</h3><p>No consta</p></div>
	</body></html>`

	company, err := e.CompanyRecord(markup, "https://example.com/x.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, value := range company.ToMap() {
		if name == "url_ficha" {
			continue
		}
		if value != "" {
			t.Errorf("field %q: got %q, expected placeholders rejected", name, value)
		}
	}
}
