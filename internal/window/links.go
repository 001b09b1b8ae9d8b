package window

// Links holds the addresses of the windows adjacent to the active one.
type Links struct {
	Older string
	Newer string
}

// BuildLinks computes the older and newer addresses for w. Each shifts the
// window by its own width so paging never changes the span being searched.
// A non-empty pattern is carried over to both addresses.
func BuildLinks(w Window, pattern string) Links {
	days := w.Days()
	return Links{
		Older: w.Shift(-days).Address(pattern).String(),
		Newer: w.Shift(days).Address(pattern).String(),
	}
}
