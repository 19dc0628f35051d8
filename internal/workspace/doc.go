// Package workspace manages the files trimmux leaves behind: numbered .bakN
// backups of originals and the in-place replacement of a source file with a
// freshly produced output. Replacement takes a file lock so two runs cannot
// clobber the same source.
package workspace
