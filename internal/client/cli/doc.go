// Package cli provides the interactive ExamDesk command-line client.
//
// Candidates list exams, register or buy catalog items through the
// registration wizard, download their hall tickets and invoices, and take
// an exam against a countdown that submits automatically when time runs
// out. After login, administrators manage applications, categories,
// attendance and question papers.
//
// App.Run starts the REPL and blocks until the user exits.
package cli
