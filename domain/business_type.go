package domain

// BusinessType splits the line-of-business catalog into two closed groups.
type BusinessType string

const (
	BusinessPersonal   BusinessType = "Personal"
	BusinessCommercial BusinessType = "Commercial"
)

// BusinessTypes lists every valid business type in display order.
var BusinessTypes = []BusinessType{BusinessPersonal, BusinessCommercial}

// ParseBusinessType returns the business type named by s. Matching is exact.
func ParseBusinessType(s string) (BusinessType, bool) {
	switch BusinessType(s) {
	case BusinessPersonal, BusinessCommercial:
		return BusinessType(s), true
	default:
		return "", false
	}
}

// Description is the short caption shown under a business type choice.
func (b BusinessType) Description() string {
	switch b {
	case BusinessPersonal:
		return "Individual & Family Coverage"
	case BusinessCommercial:
		return "Business & Commercial Coverage"
	default:
		return ""
	}
}
