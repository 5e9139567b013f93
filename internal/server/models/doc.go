// Package models holds the rows the repositories read and write: exams,
// candidates, applications, payments, catalog items and issued documents.
package models
