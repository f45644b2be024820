// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Core packages            → catalog, search, template, session, generator
//
// Services know nothing about HTTP. The same CatalogService backs both the
// JSON API and the promptctl CLI.
//
// THE DEPENDENCY CHAIN:
//
//	main.go creates:  Catalog, DB → session.Manager → Service → Handler
//	At runtime:       Handler calls Service calls Manager calls Repository
//
// Errors come back as apperror values; the handler layer maps them to
// status codes.
package service
