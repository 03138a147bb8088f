// Package api handles incoming HTTP requests for the catalog. Handlers decode
// and validate JSON bodies, call the author, book and user services, and map
// the domain error kinds onto HTTP status codes without inspecting message
// text.
package api
