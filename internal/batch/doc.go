// Package batch persists write-batch chunks in SQLite.
//
// A chunk's Members column always holds the currently pending subset of
// member paths; each retry round replaces it with a strict subset, so
// inspecting the database at any point shows exactly what remains to be
// written. The store owns only persistence — retry decisions live in the
// retry package and orchestration in the writer package.
package batch
