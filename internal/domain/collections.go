package domain

// Collection keys. Each key names one durable collection in the store; the
// stored value is the JSON serialization of the collection.
const (
	CollectionCars       = "cars"
	CollectionBranches   = "branches"
	CollectionOffers     = "offers"
	CollectionSiteConfig = "siteConfig"
	CollectionBookings   = "bookings"
	CollectionCustomers  = "customers"
	CollectionCarContent = "carContent"
	CollectionOperators  = "operators"
	CollectionOprLogs    = "oprLogs"
)

// Auxiliary store keys holding single values rather than record sequences.
const (
	KeyLanguage            = "language"
	KeyNotificationMessage = "notificationMessage"
)

// EmptySeedCollections start out as empty sequences; everything else is
// populated from a seed resource on first run.
var EmptySeedCollections = []string{
	CollectionBookings,
	CollectionCustomers,
	CollectionCarContent,
	CollectionOperators,
	CollectionOprLogs,
}
