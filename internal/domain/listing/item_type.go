package listing

import "strings"

// ItemTypeKind is the discriminant of the item-type union. Every kind except
// KindOther is payload-free.
type ItemTypeKind string

const (
	KindTrousers     ItemTypeKind = "trousers"
	KindJackets      ItemTypeKind = "jackets"
	KindBlazers      ItemTypeKind = "blazers"
	KindShirts       ItemTypeKind = "shirts"
	KindSkirts       ItemTypeKind = "skirts"
	KindTies         ItemTypeKind = "ties"
	KindSportsShorts ItemTypeKind = "sportsShorts"
	KindSportsShirts ItemTypeKind = "sportsShirts"
	KindCoat         ItemTypeKind = "coat"
	KindJumper       ItemTypeKind = "jumper"
	KindShoes        ItemTypeKind = "shoes"
	KindOther        ItemTypeKind = "other"
)

// AllItemTypeKinds lists every valid discriminant, in display order.
var AllItemTypeKinds = []ItemTypeKind{
	KindTrousers, KindJackets, KindBlazers, KindShirts, KindSkirts, KindTies,
	KindSportsShorts, KindSportsShirts, KindCoat, KindJumper, KindShoes, KindOther,
}

func (k ItemTypeKind) IsValid() bool {
	switch k {
	case KindTrousers, KindJackets, KindBlazers, KindShirts, KindSkirts, KindTies,
		KindSportsShorts, KindSportsShirts, KindCoat, KindJumper, KindShoes, KindOther:
		return true
	}
	return false
}

// ItemType is the tagged union over the twelve item variants. Other carries
// the free-text description and must be empty for every other kind.
type ItemType struct {
	Kind  ItemTypeKind `json:"kind" bson:"kind"`
	Other string       `json:"other,omitempty" bson:"other,omitempty"`
}

// NewItemType builds a payload-free variant.
func NewItemType(kind ItemTypeKind) ItemType {
	return ItemType{Kind: kind}
}

// NewOtherItemType builds the "other" variant with its required description.
func NewOtherItemType(text string) ItemType {
	return ItemType{Kind: KindOther, Other: strings.TrimSpace(text)}
}

// Validate enforces the union invariant: "other" requires non-empty trimmed
// text, every other kind must not carry one.
func (t ItemType) Validate() error {
	var errs ValidationErrors
	if !t.Kind.IsValid() {
		errs.add("itemType", "unknown item type")
		return errs
	}
	if t.Kind == KindOther {
		if strings.TrimSpace(t.Other) == "" {
			errs.add("itemType.other", "description is required for other items")
		}
	} else if t.Other != "" {
		errs.add("itemType.other", "only 'other' items carry a description")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SizeField identifies one of the optional measurement fields.
type SizeField string

const (
	FieldWaistSize      SizeField = "waistSize"
	FieldInsideLeg      SizeField = "insideLeg"
	FieldChestSize      SizeField = "chestSize"
	FieldCollarSize     SizeField = "collarSize"
	FieldSleeveLength   SizeField = "sleeveLength"
	FieldCoatJumperSize SizeField = "coatJumperSize"
	FieldShoeSize       SizeField = "shoeSize"
)

// ApplicableSizeFields returns the measurement fields that may be set for the
// variant. Ties and "other" items carry no measurements.
func (t ItemType) ApplicableSizeFields() []SizeField {
	switch t.Kind {
	case KindTrousers:
		return []SizeField{FieldWaistSize, FieldInsideLeg}
	case KindSkirts, KindSportsShorts:
		return []SizeField{FieldWaistSize}
	case KindJackets, KindBlazers, KindSportsShirts:
		return []SizeField{FieldChestSize}
	case KindShirts:
		return []SizeField{FieldCollarSize, FieldSleeveLength}
	case KindCoat, KindJumper:
		return []SizeField{FieldCoatJumperSize}
	case KindShoes:
		return []SizeField{FieldShoeSize}
	default:
		return nil
	}
}

func (t ItemType) allows(f SizeField) bool {
	for _, a := range t.ApplicableSizeFields() {
		if a == f {
			return true
		}
	}
	return false
}
