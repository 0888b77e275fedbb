package domain

// Zone is a themed area of the park.
type Zone struct {
	ID          string
	Name        string
	Description string
	Color       string
	Attractions int
	Dining      int
	Shops       int
	Features    []string
}
