// Package sidecar defines the caption (.txt) and metadata (.json) sidecar
// formats that travel alongside collection images, plus the title and slug
// derivation rules shared by the stages.
package sidecar
