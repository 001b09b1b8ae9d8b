package ach

import "strings"

// MaskOptions selects which fields Mask hides.
type MaskOptions struct {
	AccountNumbers bool
	CorrectedData  bool
}

// Mask replaces sensitive values in f in place, keeping their last four
// characters. Ids are not recomputed, so masking after parsing keeps them
// stable across runs with different options.
func Mask(f *File, opts MaskOptions) {
	if !opts.AccountNumbers && !opts.CorrectedData {
		return
	}
	for _, b := range f.Batches {
		for _, e := range b.Entries {
			if opts.AccountNumbers {
				e.DFIAccountNumber = MaskValue(e.DFIAccountNumber)
			}
			if opts.CorrectedData {
				for i := range e.Addenda {
					if e.Addenda[i].IsCorrection() {
						e.Addenda[i].CorrectedData = MaskValue(e.Addenda[i].CorrectedData)
					}
				}
			}
		}
	}
}

// MaskValue hides all but the last four characters of s.
func MaskValue(s string) string {
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
