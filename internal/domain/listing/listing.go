package listing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderBoys  Gender = "boys"
	GenderGirls Gender = "girls"
)

func (g Gender) IsValid() bool {
	return g == GenderBoys || g == GenderGirls
}

type Condition string

const (
	ConditionNewOrAsNew   Condition = "newOrAsNew"
	ConditionExcellent    Condition = "excellent"
	ConditionSlightlyWorn Condition = "slightlyWorn"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionNewOrAsNew, ConditionExcellent, ConditionSlightlyWorn:
		return true
	}
	return false
}

// SchoolYears is the fixed set of year-range labels a listing may use.
var SchoolYears = []string{
	"Nursery",
	"Reception",
	"Years 1-2",
	"Years 3-4",
	"Years 5-6",
	"Years 7-8",
	"Years 9-11",
	"Sixth Form",
}

func IsValidSchoolYear(label string) bool {
	for _, y := range SchoolYears {
		if y == label {
			return true
		}
	}
	return false
}

// CoatJumperSize labels for coats and jumpers.
const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

// SizeMeasurements holds the optional per-type measurements. Nil means
// unspecified; a set field on an inapplicable item type is a validation error.
type SizeMeasurements struct {
	WaistSize      *float64 `json:"waistSize,omitempty" bson:"waist_size,omitempty"`
	InsideLeg      *float64 `json:"insideLeg,omitempty" bson:"inside_leg,omitempty"`
	ChestSize      *float64 `json:"chestSize,omitempty" bson:"chest_size,omitempty"`
	CollarSize     *float64 `json:"collarSize,omitempty" bson:"collar_size,omitempty"`
	SleeveLength   *float64 `json:"sleeveLength,omitempty" bson:"sleeve_length,omitempty"`
	CoatJumperSize *string  `json:"coatJumperSize,omitempty" bson:"coat_jumper_size,omitempty"`
	ShoeSize       *float64 `json:"shoeSize,omitempty" bson:"shoe_size,omitempty"`
}

func (m SizeMeasurements) setFields() map[SizeField]bool {
	set := make(map[SizeField]bool)
	if m.WaistSize != nil {
		set[FieldWaistSize] = true
	}
	if m.InsideLeg != nil {
		set[FieldInsideLeg] = true
	}
	if m.ChestSize != nil {
		set[FieldChestSize] = true
	}
	if m.CollarSize != nil {
		set[FieldCollarSize] = true
	}
	if m.SleeveLength != nil {
		set[FieldSleeveLength] = true
	}
	if m.CoatJumperSize != nil {
		set[FieldCoatJumperSize] = true
	}
	if m.ShoeSize != nil {
		set[FieldShoeSize] = true
	}
	return set
}

// MaxPhotos caps the photo sequence per listing; at least one is required.
const MaxPhotos = 5

// Listing is a single for-sale uniform item post. Seller and ID never change
// once assigned; deactivation is the only delete.
type Listing struct {
	ID               string           `json:"id" bson:"_id"`
	Seller           string           `json:"seller" bson:"seller"`
	Title            string           `json:"title" bson:"title"`
	Description      string           `json:"description" bson:"description"`
	SchoolNames      []string         `json:"schoolNames" bson:"school_names"`
	Gender           Gender           `json:"gender" bson:"gender"`
	SchoolYear       string           `json:"schoolYear" bson:"school_year"`
	ItemType         ItemType         `json:"itemType" bson:"item_type"`
	Condition        Condition        `json:"condition" bson:"condition"`
	PricePence       int64            `json:"pricePence" bson:"price_pence"`
	Photos           []string         `json:"photos" bson:"photos"`
	SizeMeasurements SizeMeasurements `json:"sizeMeasurements" bson:"size_measurements"`
	CreatedAt        time.Time        `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updated_at"`
	IsActive         bool             `json:"isActive" bson:"is_active"`
}

// NewListingID generates the client-visible listing identifier.
func NewListingID(now time.Time) string {
	return fmt.Sprintf("listing-%d-%s", now.UnixNano(), uuid.NewString()[:8])
}

// Draft carries the user-entered fields of a listing before validation.
type Draft struct {
	Title            string
	Description      string
	SchoolNames      []string
	Gender           Gender
	SchoolYear       string
	ItemType         ItemType
	Condition        Condition
	PricePence       int64
	Photos           []string
	SizeMeasurements SizeMeasurements
}

// Validate checks the draft against the submission contract and, when it
// passes, returns the Listing ready for persistence with id, timestamps and
// active flag assigned. Terms acceptance is checked by the usecase, not here.
func (d Draft) Validate(seller string, now time.Time) (*Listing, ValidationErrors) {
	var errs ValidationErrors

	if seller == "" {
		errs.add("seller", "a signed-in seller is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		errs.add("title", "title is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		errs.add("description", "description is required")
	}

	schools := make([]string, 0, len(d.SchoolNames))
	seen := make(map[string]bool)
	for _, s := range d.SchoolNames {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		schools = append(schools, s)
	}
	if len(schools) == 0 {
		errs.add("schoolNames", "at least one school name is required")
	}

	if !d.Gender.IsValid() {
		errs.add("gender", "gender must be boys or girls")
	}
	if !IsValidSchoolYear(d.SchoolYear) {
		errs.add("schoolYear", "unknown school year")
	}
	if err := d.ItemType.Validate(); err != nil {
		if ve, ok := err.(ValidationErrors); ok {
			errs = append(errs, ve...)
		} else {
			errs.add("itemType", err.Error())
		}
	}
	if !d.Condition.IsValid() {
		errs.add("condition", "unknown condition")
	}
	if d.PricePence <= 0 {
		errs.add("price", "price must be greater than zero")
	}
	if len(d.Photos) == 0 {
		errs.add("photos", "at least one photo is required")
	} else if len(d.Photos) > MaxPhotos {
		errs.add("photos", fmt.Sprintf("no more than %d photos are allowed", MaxPhotos))
	}

	errs = append(errs, d.validateMeasurements()...)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Listing{
		ID:               NewListingID(now),
		Seller:           seller,
		Title:            strings.TrimSpace(d.Title),
		Description:      strings.TrimSpace(d.Description),
		SchoolNames:      schools,
		Gender:           d.Gender,
		SchoolYear:       d.SchoolYear,
		ItemType:         d.ItemType,
		Condition:        d.Condition,
		PricePence:       d.PricePence,
		Photos:           d.Photos,
		SizeMeasurements: d.SizeMeasurements,
		CreatedAt:        now,
		UpdatedAt:        now,
		IsActive:         true,
	}, nil
}

// validateMeasurements enforces the strict policy: only fields applicable to
// the chosen item type may be set, and set values must make sense.
func (d Draft) validateMeasurements() ValidationErrors {
	var errs ValidationErrors
	if !d.ItemType.Kind.IsValid() {
		return nil // already reported on itemType
	}
	for field := range d.SizeMeasurements.setFields() {
		if !d.ItemType.allows(field) {
			errs.add("sizeMeasurements."+string(field),
				fmt.Sprintf("not applicable to item type %q", d.ItemType.Kind))
		}
	}
	if m := d.SizeMeasurements.CoatJumperSize; m != nil && d.ItemType.allows(FieldCoatJumperSize) {
		switch *m {
		case SizeSmall, SizeMedium, SizeLarge:
		default:
			errs.add("sizeMeasurements.coatJumperSize", "must be Small, Medium or Large")
		}
	}
	if s := d.SizeMeasurements.ShoeSize; s != nil && d.ItemType.allows(FieldShoeSize) {
		if *s <= 0 || math.Mod(*s*2, 1) != 0 {
			errs.add("sizeMeasurements.shoeSize", "must be a positive whole or half size")
		}
	}
	return errs
}

// priceRetention is the fraction of retail price a second-hand item of each
// type typically resells for. Structured garments hold value best.
var priceRetention = map[ItemTypeKind]float64{
	KindBlazers:      0.45,
	KindCoat:         0.45,
	KindJackets:      0.40,
	KindJumper:       0.35,
	KindTrousers:     0.30,
	KindSkirts:       0.30,
	KindShirts:       0.25,
	KindTies:         0.25,
	KindSportsShorts: 0.25,
	KindSportsShirts: 0.25,
	KindShoes:        0.30,
	KindOther:        0.30,
}

// SuggestPrice proposes an asking price in pence from the item's original
// retail price, rounded down to a 25p step with a £1 floor.
func SuggestPrice(retailPence int64, kind ItemTypeKind) (int64, error) {
	if retailPence <= 0 {
		return 0, ValidationErrors{{Field: "retailPrice", Message: "retail price must be greater than zero"}}
	}
	retention, ok := priceRetention[kind]
	if !ok {
		return 0, ValidationErrors{{Field: "itemType", Message: "unknown item type"}}
	}
	suggested := int64(float64(retailPence) * retention)
	suggested -= suggested % 25
	if suggested < 100 {
		suggested = 100
	}
	return suggested, nil
}
