// Package domain contains the core catalog entities (authors, books, users),
// their construction and partial-update rules, and the error kinds shared by
// every service. It is independent of any specific infrastructure or delivery
// mechanism.
package domain
