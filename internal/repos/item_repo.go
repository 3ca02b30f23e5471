package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"lostfound/internal/domain"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// ItemFilter holds the optional listing filters; empty fields are skipped.
// All present fields combine with AND.
type ItemFilter struct {
	Type     string
	Category string
	Status   string
	Search   string // substring match on title or description
}

// ItemRow is an item joined with its owner and (when set) claimant.
type ItemRow struct {
	domain.Item
	OwnerName     string `db:"owner_name"`
	OwnerEmail    string `db:"owner_email"`
	OwnerPhone    string `db:"owner_phone"`
	OwnerImage    string `db:"owner_image"`
	ClaimantName  string `db:"claimant_name"`
	ClaimantEmail string `db:"claimant_email"`
}

const itemColumns = `
  i.id, i.title, i.description, i.category, i.type, i.status, i.location,
  i.date_reported, i.date_lost_or_found,
  COALESCE(i.images_json,'')          AS images_json,
  COALESCE(i.contact_name,'')         AS contact_name,
  COALESCE(i.contact_phone,'')        AS contact_phone,
  COALESCE(i.contact_email,'')        AS contact_email,
  COALESCE(i.verification_details,'') AS verification_details,
  i.user_id,
  COALESCE(i.claimed_by,'')           AS claimed_by,
  u.name                              AS owner_name,
  u.email                             AS owner_email,
  COALESCE(u.phone,'')                AS owner_phone,
  COALESCE(u.profile_image,'')        AS owner_image,
  COALESCE(c.name,'')                 AS claimant_name,
  COALESCE(c.email,'')                AS claimant_email`

const itemJoins = `
  FROM items i
  JOIN users u ON u.id = i.user_id
  LEFT JOIN users c ON c.id = i.claimed_by`

func (f ItemFilter) where() (string, []any) {
	where := `1=1`
	args := []any{}
	if f.Type != "" {
		where += ` AND i.type = ?`
		args = append(args, f.Type)
	}
	if f.Category != "" {
		where += ` AND i.category = ?`
		args = append(args, f.Category)
	}
	if f.Status != "" {
		where += ` AND i.status = ?`
		args = append(args, f.Status)
	}
	if f.Search != "" {
		// Wildcards in user input match literally. Note SQLite's LOWER()
		// only folds ASCII, so matching stays case-sensitive for
		// non-ASCII text.
		where += ` AND (LOWER(i.title) LIKE ? ESCAPE '\' OR LOWER(i.description) LIKE ? ESCAPE '\')`
		like := "%" + likeEscaper.Replace(f.Search) + "%"
		args = append(args, like, like)
	}
	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *ItemRepo) Insert(it domain.Item) error {
	_, err := r.db.Exec(`
		INSERT INTO items(
		  id, title, description, category, type, status, location,
		  date_reported, date_lost_or_found, images_json,
		  contact_name, contact_phone, contact_email,
		  verification_details, user_id, claimed_by
		) VALUES(?,?,?,?,?,?,?,?,?,NULLIF(?,''),NULLIF(?,''),NULLIF(?,''),NULLIF(?,''),NULLIF(?,''),?,NULLIF(?,''))
	`, it.ID, it.Title, it.Description, it.Category, it.Type, it.Status, it.Location,
		it.DateReported, it.DateLostOrFound, it.ImagesJSON,
		it.ContactName, it.ContactPhone, it.ContactEmail,
		it.VerificationDetails, it.UserID, it.ClaimedBy)
	return err
}

// Get returns an item with its owner/claimant expanded. sql.ErrNoRows
// passes through for a missing id.
func (r *ItemRepo) Get(id string) (ItemRow, error) {
	var row ItemRow
	err := r.db.Get(&row, `SELECT`+itemColumns+itemJoins+` WHERE i.id = ?`, id)
	return row, err
}

// List returns one page of matching items, most recently reported first.
// Equal timestamps tie-break by id so pagination is reproducible.
func (r *ItemRepo) List(f ItemFilter, limit, offset int) ([]ItemRow, error) {
	where, args := f.where()
	args = append(args, limit, offset)
	var out []ItemRow
	err := r.db.Select(&out, `SELECT`+itemColumns+itemJoins+`
		WHERE `+where+`
		ORDER BY i.date_reported DESC, i.id ASC
		LIMIT ? OFFSET ?`, args...)
	return out, err
}

// Count returns the total number of matching items, ignoring pagination.
func (r *ItemRepo) Count(f ItemFilter) (int, error) {
	where, args := f.where()
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM items i WHERE `+where, args...)
	return n, err
}

func (r *ItemRepo) ListByUser(userID string) ([]ItemRow, error) {
	var out []ItemRow
	err := r.db.Select(&out, `SELECT`+itemColumns+itemJoins+`
		WHERE i.user_id = ?
		ORDER BY i.date_reported DESC, i.id ASC`, userID)
	return out, err
}

// Update writes every mutable column; callers load the row, apply their
// patch, then persist the whole record.
func (r *ItemRepo) Update(it domain.Item) error {
	_, err := r.db.Exec(`
		UPDATE items SET
		  title = ?, description = ?, category = ?, type = ?, status = ?,
		  location = ?, date_lost_or_found = ?, images_json = NULLIF(?,''),
		  contact_name = NULLIF(?,''), contact_phone = NULLIF(?,''), contact_email = NULLIF(?,''),
		  verification_details = NULLIF(?,''), claimed_by = NULLIF(?,'')
		WHERE id = ?
	`, it.Title, it.Description, it.Category, it.Type, it.Status,
		it.Location, it.DateLostOrFound, it.ImagesJSON,
		it.ContactName, it.ContactPhone, it.ContactEmail,
		it.VerificationDetails, it.ClaimedBy, it.ID)
	return err
}

func (r *ItemRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	return err
}

// Claim atomically transitions an active item to claimed. The status guard in
// the WHERE clause makes concurrent claims resolve to at most one winner;
// losers see ok=false and must inspect the row to tell not-found from
// already-claimed.
func (r *ItemRepo) Claim(id, userID string) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE items
		SET status = 'claimed', claimed_by = ?
		WHERE id = ? AND status = 'active'
	`, userID, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
