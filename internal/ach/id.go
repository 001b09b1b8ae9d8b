package ach

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// PopulateIDs assigns deterministic ids so that ingesting the same file
// twice yields the same rows. The file id hashes its records (padding
// excluded), each batch id hashes the file id and batch header, and each
// entry id hashes the batch id and entry record.
func PopulateIDs(f *File, records []string) {
	if f.ID == "" {
		f.ID = hash(strings.Join(records, "\n"))
	}
	for _, b := range f.Batches {
		if b.ID == "" {
			b.ID = hash(f.ID + b.Header.raw)
		}
		for _, e := range b.Entries {
			if e.ID == "" {
				e.ID = hash(b.ID + e.raw)
			}
		}
	}
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
