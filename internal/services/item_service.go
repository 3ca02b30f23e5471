package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lostfound/internal/domain"
	"lostfound/internal/repos"
	"lostfound/internal/validate"
)

// ItemService holds the registry rules: entity validation, query construction,
// ownership checks and the claim transition.
type ItemService struct {
	Items *repos.ItemRepo
}

func NewItemService(items *repos.ItemRepo) *ItemService {
	return &ItemService{Items: items}
}

type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type CreateItemInput struct {
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Category            string       `json:"category"`
	Type                string       `json:"type"`
	Location            string       `json:"location"`
	DateLostOrFound     string       `json:"dateLostOrFound"`
	Images              []string     `json:"images"`
	ContactInfo         *ContactInfo `json:"contactInfo"`
	VerificationDetails string       `json:"verificationDetails"`
}

// ItemPatch is a partial update; nil fields are left untouched. Modelling the
// patch as explicit optional fields keeps unknown fields out of the record.
type ItemPatch struct {
	Title               *string      `json:"title"`
	Description         *string      `json:"description"`
	Category            *string      `json:"category"`
	Type                *string      `json:"type"`
	Status              *string      `json:"status"`
	Location            *string      `json:"location"`
	DateLostOrFound     *string      `json:"dateLostOrFound"`
	Images              *[]string    `json:"images"`
	ContactInfo         *ContactInfo `json:"contactInfo"`
	VerificationDetails *string      `json:"verificationDetails"`
}

type ListFilter struct {
	Type     string
	Category string
	Status   string
	Search   string
	Page     int
	Limit    int
}

type UserRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type ItemView struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Category            string       `json:"category"`
	Type                string       `json:"type"`
	Status              string       `json:"status"`
	Location            string       `json:"location"`
	DateReported        string       `json:"dateReported"`
	DateLostOrFound     string       `json:"dateLostOrFound"`
	Images              []string     `json:"images"`
	ContactInfo         *ContactInfo `json:"contactInfo,omitempty"`
	VerificationDetails string       `json:"verificationDetails,omitempty"`
	User                *UserRef     `json:"user,omitempty"`
	ClaimedBy           *UserRef     `json:"claimedBy,omitempty"`
}

type ListResult struct {
	Items []ItemView `json:"items"`
	Count int        `json:"count"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
}

// Create validates the payload and persists a new active item owned by actor.
func (s *ItemService) Create(actor domain.Actor, in CreateItemInput) (ItemView, error) {
	title, ok := validate.Title(in.Title)
	if !ok {
		return ItemView{}, domain.Validationf("title is required and cannot exceed 100 characters")
	}
	desc, ok := validate.Description(in.Description)
	if !ok {
		return ItemView{}, domain.Validationf("description is required and cannot exceed 1000 characters")
	}
	category, ok := validate.Category(in.Category)
	if !ok {
		return ItemView{}, domain.Validationf("please select a valid category")
	}
	itemType, ok := validate.ItemType(in.Type)
	if !ok {
		return ItemView{}, domain.Validationf("please specify if item is lost or found")
	}
	location, ok := validate.Location(in.Location)
	if !ok {
		return ItemView{}, domain.Validationf("please provide location")
	}
	date, when, ok := validate.Date(in.DateLostOrFound)
	if !ok {
		return ItemView{}, domain.Validationf("please provide the date when the item was lost/found")
	}
	if when.After(time.Now()) {
		return ItemView{}, domain.Validationf("date lost/found cannot be in the future")
	}
	verification, ok := validate.VerificationDetails(in.VerificationDetails)
	if !ok {
		return ItemView{}, domain.Validationf("verification details cannot exceed 500 characters")
	}

	it := domain.Item{
		ID:                  uuid.NewString(),
		Title:               title,
		Description:         desc,
		Category:            category,
		Type:                itemType,
		Status:              domain.StatusActive,
		Location:            location,
		DateReported:        time.Now().UTC().Format(domain.TimeLayout),
		DateLostOrFound:     date,
		ImagesJSON:          encodeImages(in.Images),
		VerificationDetails: verification,
		UserID:              actor.ID,
	}
	if c := in.ContactInfo; c != nil {
		it.ContactName = strings.TrimSpace(c.Name)
		it.ContactPhone = strings.TrimSpace(c.Phone)
		it.ContactEmail = strings.TrimSpace(c.Email)
	}

	if err := s.Items.Insert(it); err != nil {
		return ItemView{}, domain.Unavailable(err)
	}

	row, err := s.Items.Get(it.ID)
	if err != nil {
		return ItemView{}, domain.Unavailable(err)
	}
	// The creator is the owner, so the full record comes back.
	return detailView(row, true), nil
}

// List returns one page of items matching the filter, newest reports first.
// Verification details are never part of list results.
func (s *ItemService) List(f ListFilter) (ListResult, error) {
	filter := repos.ItemFilter{Search: strings.ToLower(strings.TrimSpace(f.Search))}
	if f.Type != "" {
		t, ok := validate.ItemType(f.Type)
		if !ok {
			return ListResult{}, domain.Validationf("invalid type filter")
		}
		filter.Type = t
	}
	if f.Category != "" {
		c, ok := validate.Category(f.Category)
		if !ok {
			return ListResult{}, domain.Validationf("invalid category filter")
		}
		filter.Category = c
	}
	if f.Status != "" {
		st, ok := validate.Status(f.Status)
		if !ok {
			return ListResult{}, domain.Validationf("invalid status filter")
		}
		filter.Status = st
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	total, err := s.Items.Count(filter)
	if err != nil {
		return ListResult{}, domain.Unavailable(err)
	}
	rows, err := s.Items.List(filter, limit, (page-1)*limit)
	if err != nil {
		return ListResult{}, domain.Unavailable(err)
	}

	items := make([]ItemView, 0, len(rows))
	for _, row := range rows {
		items = append(items, listView(row))
	}
	return ListResult{
		Items: items,
		Count: len(items),
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Get returns a single item with owner and claimant expanded. Verification
// details are included only for the owner; for anyone else the field is
// absent from the representation entirely.
func (s *ItemService) Get(id string, actor *domain.Actor) (ItemView, error) {
	row, err := s.Items.Get(id)
	if err != nil {
		return ItemView{}, itemErr(err)
	}
	owner := actor != nil && actor.ID == row.UserID
	return detailView(row, owner), nil
}

// Update applies a partial patch after the owner-or-admin check. Touched
// fields re-validate against the same constraints as Create.
func (s *ItemService) Update(id string, actor domain.Actor, patch ItemPatch) (ItemView, error) {
	row, err := s.Items.Get(id)
	if err != nil {
		return ItemView{}, itemErr(err)
	}
	if row.UserID != actor.ID && !actor.IsAdmin() {
		return ItemView{}, domain.Forbidden("Not authorized to update this item")
	}

	it := row.Item
	if patch.Title != nil {
		v, ok := validate.Title(*patch.Title)
		if !ok {
			return ItemView{}, domain.Validationf("title is required and cannot exceed 100 characters")
		}
		it.Title = v
	}
	if patch.Description != nil {
		v, ok := validate.Description(*patch.Description)
		if !ok {
			return ItemView{}, domain.Validationf("description is required and cannot exceed 1000 characters")
		}
		it.Description = v
	}
	if patch.Category != nil {
		v, ok := validate.Category(*patch.Category)
		if !ok {
			return ItemView{}, domain.Validationf("please select a valid category")
		}
		it.Category = v
	}
	if patch.Type != nil {
		v, ok := validate.ItemType(*patch.Type)
		if !ok {
			return ItemView{}, domain.Validationf("please specify if item is lost or found")
		}
		it.Type = v
	}
	if patch.Status != nil {
		v, ok := validate.Status(*patch.Status)
		if !ok {
			return ItemView{}, domain.Validationf("invalid status")
		}
		if v == domain.StatusClaimed && it.ClaimedBy == "" {
			return ItemView{}, domain.Validationf("cannot mark an item claimed without a claimant")
		}
		if v == domain.StatusActive {
			it.ClaimedBy = ""
		}
		it.Status = v
	}
	if patch.Location != nil {
		v, ok := validate.Location(*patch.Location)
		if !ok {
			return ItemView{}, domain.Validationf("please provide location")
		}
		it.Location = v
	}
	if patch.DateLostOrFound != nil {
		v, when, ok := validate.Date(*patch.DateLostOrFound)
		if !ok {
			return ItemView{}, domain.Validationf("please provide the date when the item was lost/found")
		}
		if when.After(time.Now()) {
			return ItemView{}, domain.Validationf("date lost/found cannot be in the future")
		}
		it.DateLostOrFound = v
	}
	if patch.Images != nil {
		it.ImagesJSON = encodeImages(*patch.Images)
	}
	if patch.ContactInfo != nil {
		it.ContactName = strings.TrimSpace(patch.ContactInfo.Name)
		it.ContactPhone = strings.TrimSpace(patch.ContactInfo.Phone)
		it.ContactEmail = strings.TrimSpace(patch.ContactInfo.Email)
	}
	if patch.VerificationDetails != nil {
		v, ok := validate.VerificationDetails(*patch.VerificationDetails)
		if !ok {
			return ItemView{}, domain.Validationf("verification details cannot exceed 500 characters")
		}
		it.VerificationDetails = v
	}

	if err := s.Items.Update(it); err != nil {
		return ItemView{}, domain.Unavailable(err)
	}
	updated, err := s.Items.Get(id)
	if err != nil {
		return ItemView{}, domain.Unavailable(err)
	}
	return detailView(updated, updated.UserID == actor.ID), nil
}

// Delete permanently removes an item after the owner-or-admin check.
func (s *ItemService) Delete(id string, actor domain.Actor) error {
	row, err := s.Items.Get(id)
	if err != nil {
		return itemErr(err)
	}
	if row.UserID != actor.ID && !actor.IsAdmin() {
		return domain.Forbidden("Not authorized to delete this item")
	}
	if err := s.Items.Delete(id); err != nil {
		return domain.Unavailable(err)
	}
	return nil
}

// Mine returns every item owned by the actor, newest reports first.
func (s *ItemService) Mine(actor domain.Actor) ([]ItemView, error) {
	rows, err := s.Items.ListByUser(actor.ID)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	items := make([]ItemView, 0, len(rows))
	for _, row := range rows {
		items = append(items, detailView(row, true))
	}
	return items, nil
}

// Claim transitions an active item to claimed by the actor. The transition is
// a conditional update in storage, so under concurrent claims at most one
// caller wins; the rest observe the item as no longer available. An owner
// claiming their own item is not prevented.
func (s *ItemService) Claim(id string, actor domain.Actor) (ItemView, error) {
	ok, err := s.Items.Claim(id, actor.ID)
	if err != nil {
		return ItemView{}, domain.Unavailable(err)
	}
	if !ok {
		if _, err := s.Items.Get(id); err != nil {
			return ItemView{}, itemErr(err)
		}
		return ItemView{}, domain.InvalidState("This item is no longer available")
	}
	row, err := s.Items.Get(id)
	if err != nil {
		return ItemView{}, domain.Unavailable(err)
	}
	return detailView(row, row.UserID == actor.ID), nil
}

// itemErr maps storage errors on single-item lookups.
func itemErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("Item not found")
	}
	return domain.Unavailable(err)
}

func encodeImages(images []string) string {
	if len(images) == 0 {
		return ""
	}
	b, _ := json.Marshal(images)
	return string(b)
}

func decodeImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}

func contactOf(it domain.Item) *ContactInfo {
	if it.ContactName == "" && it.ContactPhone == "" && it.ContactEmail == "" {
		return nil
	}
	return &ContactInfo{Name: it.ContactName, Phone: it.ContactPhone, Email: it.ContactEmail}
}

func baseView(row repos.ItemRow) ItemView {
	return ItemView{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		Category:        row.Category,
		Type:            row.Type,
		Status:          row.Status,
		Location:        row.Location,
		DateReported:    row.DateReported,
		DateLostOrFound: row.DateLostOrFound,
		Images:          decodeImages(row.ImagesJSON),
		ContactInfo:     contactOf(row.Item),
	}
}

// listView is the compact representation used by list results: owner reference
// only, never verification details.
func listView(row repos.ItemRow) ItemView {
	v := baseView(row)
	v.User = &UserRef{ID: row.UserID, Name: row.OwnerName, Email: row.OwnerEmail}
	return v
}

// detailView expands owner and claimant. Verification details only appear when
// the requester owns the item.
func detailView(row repos.ItemRow, owner bool) ItemView {
	v := baseView(row)
	v.User = &UserRef{
		ID:           row.UserID,
		Name:         row.OwnerName,
		Email:        row.OwnerEmail,
		Phone:        row.OwnerPhone,
		ProfileImage: row.OwnerImage,
	}
	if row.ClaimedBy != "" {
		v.ClaimedBy = &UserRef{ID: row.ClaimedBy, Name: row.ClaimantName, Email: row.ClaimantEmail}
	}
	if owner {
		v.VerificationDetails = row.VerificationDetails
	}
	return v
}
