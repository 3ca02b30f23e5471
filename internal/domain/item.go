package domain

// TimeLayout is the storage format for timestamps. Fixed-width fraction so
// lexicographic order on the column matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	TypeLost  = "lost"
	TypeFound = "found"
)

const (
	StatusActive   = "active"
	StatusClaimed  = "claimed"
	StatusResolved = "resolved"
)

// Categories is the closed set of reportable item categories.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Accessories",
	"Documents",
	"Keys",
	"Bags",
	"Jewelry",
	"Books",
	"Pets",
	"Other",
}

type Item struct {
	ID                  string `db:"id"`
	Title               string `db:"title"`
	Description         string `db:"description"`
	Category            string `db:"category"`
	Type                string `db:"type"`   // lost | found
	Status              string `db:"status"` // active | claimed | resolved
	Location            string `db:"location"`
	DateReported        string `db:"date_reported"`
	DateLostOrFound     string `db:"date_lost_or_found"`
	ImagesJSON          string `db:"images_json"`
	ContactName         string `db:"contact_name"`
	ContactPhone        string `db:"contact_phone"`
	ContactEmail        string `db:"contact_email"`
	VerificationDetails string `db:"verification_details"`
	UserID              string `db:"user_id"`
	ClaimedBy           string `db:"claimed_by"` // empty until claimed
}
