// Package migrate runs the embedded goose schema migrations of a database
// platform package.
package migrate
