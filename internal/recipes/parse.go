package recipes

// LeadingNumber extracts the first run of digits from free-text numeric
// fields like "45 mnt" or "120 kcal". Text with no digits ("- mnt",
// "secukupnya") yields 0, so unparseable values sort first instead of
// failing.
func LeadingNumber(s string) int {
	n := 0
	found := false
	for _, c := range s {
		if c >= '0' && c <= '9' {
			found = true
			n = n*10 + int(c-'0')
		} else if found {
			break
		}
	}
	return n
}
