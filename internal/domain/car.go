package domain

// Car categories form a closed set.
const (
	CategoryEconomy = "economy"
	CategorySuv     = "suv"
	CategoryLuxury  = "luxury"
)

// CarCategories lists every valid car category.
var CarCategories = []string{CategoryEconomy, CategorySuv, CategoryLuxury}

// ValidCarCategory reports whether cat is one of the known categories.
func ValidCarCategory(cat string) bool {
	for _, c := range CarCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// CarSpecs holds the bilingual spec strings shown on car cards.
type CarSpecs struct {
	Fuel         LocalizedText `json:"fuel" form:"fuel"`
	Capacity     LocalizedText `json:"capacity" form:"capacity"`
	Transmission LocalizedText `json:"transmission" form:"transmission"`
}

// CarPrice holds rental prices in whole currency units (AED).
type CarPrice struct {
	Daily  float64 `json:"daily" form:"daily"`
	Weekly float64 `json:"weekly" form:"weekly"`
}

// Car is a rental fleet vehicle managed from the admin back office.
type Car struct {
	ID       int64         `json:"id" form:"id"`
	Name     LocalizedText `json:"name" form:"name"`
	Category string        `json:"category" form:"category"`
	Images   []string      `json:"images" form:"images"`
	Specs    CarSpecs      `json:"specs" form:"specs"`
	Price    CarPrice      `json:"price" form:"price"`
}

// CarContent is a bilingual marketing/SEO content block attached to a car.
// Deleting the car does not remove its content blocks; consumers render the
// missing reference as N/A.
type CarContent struct {
	ID      int64         `json:"id" form:"id"`
	CarID   int64         `json:"carId" form:"carId"`
	Title   LocalizedText `json:"title" form:"title"`
	Content LocalizedText `json:"content" form:"content"`
	SeoText LocalizedText `json:"seoText" form:"seoText"`
	Image   string        `json:"image" form:"image"`
}
