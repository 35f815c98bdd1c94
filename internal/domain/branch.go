package domain

// GeoCoords is a WGS84 point for the branch map view.
type GeoCoords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Branch is a pickup/dropoff location. Branches are reference data supplied
// by the seed resources; no admin CRUD surface exists for them.
type Branch struct {
	ID      int64         `json:"id"`
	Name    LocalizedText `json:"name"`
	Address LocalizedText `json:"address"`
	Hours   LocalizedText `json:"hours"`
	Phone   string        `json:"phone"`
	Coords  GeoCoords     `json:"coords"`
}

// Offer is a promotional banner. Read-only, same as Branch.
type Offer struct {
	ID          int64         `json:"id"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Image       string        `json:"image"`
}

// SiteContact holds the contact block rendered in the site footer.
type SiteContact struct {
	Address LocalizedText `json:"address"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
}

// SiteSocial holds the social media links. The field set is the union of the
// links observed across site builds.
type SiteSocial struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
	Tiktok    string `json:"tiktok"`
}

// SiteConfig is the singleton site configuration record (no id).
type SiteConfig struct {
	Contact SiteContact `json:"contact"`
	Social  SiteSocial  `json:"social"`
}
