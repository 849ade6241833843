package saints

// Saint is one commemoration extracted from the month page.
//
// Name is nil when the day's block carried no underlined name; such entries are
// kept rather than dropped. Image is nil when no picture's alt text matches the name.
type Saint struct {
	Name        *string
	Description string
	Image       *string
}
