package user

// Columns are unbounded TEXT, so the cap is enforced here.
const maxFieldLength = 255

func suitableForRestrictions(lengths ...int) bool {
	for _, l := range lengths {
		if l > maxFieldLength {
			return false
		}
	}
	return true
}
