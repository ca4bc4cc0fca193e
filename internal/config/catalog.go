package config

import "strings"

// CatalogEntry pairs a human-facing display name with the uppercase URL
// slug the directory uses for it.
type CatalogEntry struct {
	// Name is the display name shown to users (accented Spanish).
	Name string

	// Slug is the URL segment (uppercase, unaccented, hyphenated).
	Slug string
}

// Provinces lists every province the directory indexes, in display
// order. The slugs strip accents and articles move to the end
// ("Las Palmas" → PALMAS-LAS), following the site's own convention.
var Provinces = []CatalogEntry{
	{"Álava", "ALAVA"},
	{"Albacete", "ALBACETE"},
	{"Alicante", "ALICANTE"},
	{"Almería", "ALMERIA"},
	{"Asturias", "ASTURIAS"},
	{"Ávila", "AVILA"},
	{"Badajoz", "BADAJOZ"},
	{"Baleares", "BALEARES"},
	{"Barcelona", "BARCELONA"},
	{"Burgos", "BURGOS"},
	{"Cáceres", "CACERES"},
	{"Cádiz", "CADIZ"},
	{"Cantabria", "CANTABRIA"},
	{"Castellón", "CASTELLON"},
	{"Ceuta", "CEUTA"},
	{"Ciudad Real", "CIUDAD-REAL"},
	{"Córdoba", "CORDOBA"},
	{"Coruña", "CORUNA"},
	{"Cuenca", "CUENCA"},
	{"Gerona", "GERONA"},
	{"Granada", "GRANADA"},
	{"Guadalajara", "GUADALAJARA"},
	{"Guipúzcoa", "GUIPUZCOA"},
	{"Huelva", "HUELVA"},
	{"Huesca", "HUESCA"},
	{"Jaén", "JAEN"},
	{"León", "LEON"},
	{"Lérida", "LERIDA"},
	{"Lugo", "LUGO"},
	{"Madrid", "MADRID"},
	{"Málaga", "MALAGA"},
	{"Melilla", "MELILLA"},
	{"Murcia", "MURCIA"},
	{"Navarra", "NAVARRA"},
	{"Orense", "ORENSE"},
	{"Palencia", "PALENCIA"},
	{"Palmas (Las)", "PALMAS-LAS"},
	{"Pontevedra", "PONTEVEDRA"},
	{"Rioja (La)", "RIOJA-LA"},
	{"Salamanca", "SALAMANCA"},
	{"Santa Cruz de Tenerife", "SANTA-CRUZ-TENERIFE"},
	{"Segovia", "SEGOVIA"},
	{"Sevilla", "SEVILLA"},
	{"Soria", "SORIA"},
	{"Tarragona", "TARRAGONA"},
	{"Teruel", "TERUEL"},
	{"Toledo", "TOLEDO"},
	{"Valencia", "VALENCIA"},
	{"Valladolid", "VALLADOLID"},
	{"Vizcaya", "VIZCAYA"},
	{"Zamora", "ZAMORA"},
	{"Zaragoza", "ZARAGOZA"},
}

// Activities lists the business activity filters the directory offers,
// in display order.
var Activities = []CatalogEntry{
	{"Agricultura", "AGRICULTURA"},
	{"Alimentación", "ALIMENTACION"},
	{"Banca", "BANCA"},
	{"Construcciones", "CONSTRUCCIONES"},
	{"Educación", "EDUCACION"},
	{"Energéticas", "ENERGETICAS"},
	{"Farmacéutica", "FARMACEUTICA"},
	{"Ganadería", "GANADERIA"},
	{"Hostelería", "HOSTELERIA"},
	{"Inmobiliaria", "INMOBILIARIA"},
	{"Logística", "LOGISTICA"},
	{"Manufactura", "MANUFACTURA"},
	{"Minería", "MINERIA"},
	{"Ocio", "OCIO"},
	{"Pesca", "PESCA"},
	{"Restauración", "RESTAURACION"},
	{"Sanidad", "SANIDAD"},
	{"Seguro", "SEGURO"},
	{"Silvicultura", "SILVICULTURA"},
	{"Telecomunicaciones", "TELECOMUNICACIONES"},
	{"Transporte", "TRANSPORTE"},
	{"Vehículos", "VEHICULOS"},
}

// ResolveProvince maps a province display name or slug to its slug.
// Matching is case-insensitive on both forms; ok is false when the
// value matches nothing in the catalog.
func ResolveProvince(value string) (slug string, ok bool) {
	return resolve(Provinces, value)
}

// ResolveActivity maps an activity display name or slug to its slug.
func ResolveActivity(value string) (slug string, ok bool) {
	return resolve(Activities, value)
}

func resolve(catalog []CatalogEntry, value string) (string, bool) {
	for _, e := range catalog {
		if strings.EqualFold(e.Name, value) || strings.EqualFold(e.Slug, value) {
			return e.Slug, true
		}
	}
	return "", false
}
