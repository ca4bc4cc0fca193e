// Package main provides the entry point for the leadscan CLI.
//
// Leadscan scrapes company data from the Empresite business directory
// (empresite.eleconomista.es) by activity, province, or locality, and
// exports the results as JSON and CSV.
//
// Usage:
//
//	leadscan scan --activity PESCA --province MADRID
//	leadscan export empresas.json
//
// See --help for all available options.
package main

// main is the entry point for leadscan.
func main() {
	Execute()
}
