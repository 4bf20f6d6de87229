// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

/*
Package view is the aggregation engine that reconstructs nested, ordered,
deduplicated show documents from the adjacency store.

Architecture:

  - Hierarchy resolution: sur/sub chains, two tiers for productions and
    materials, one for venues (hierarchy.go).
  - Credit collation: flat credit edges grouped into ordered named groups
    with company/member expansion (credits.go).
  - Role resolution: cast-role text matched against a material's character
    catalogue (roles.go).
  - Nomination aggregation: award → ceremony → category → nomination trees
    with recipient disambiguation (nominations.go).
  - Composition: one method per entity kind assembling the above
    (composer_*.go), with perspective splitting driven by the bucket table
    in perspective.go.

Every ordering in the output is re-derived from stored position properties;
edge insertion order is never trusted.
*/
package view

// Ref is the minimal entity shape used in listings and as a leaf in nested
// documents.
type Ref struct {
	Model string `json:"model"`
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
}

// # Hierarchy Links

// VenueLink is a venue with its single tier of ancestry.
type VenueLink struct {
	Model    string `json:"model"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	SurVenue *Ref   `json:"surVenue,omitempty"`
}

// ProductionLink is a production shown in context: in descendant lists,
// nomination slots, and the production buckets of other entities' views.
type ProductionLink struct {
	Model     string `json:"model"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	Venue *VenueLink `json:"venue,omitempty"`

	SurProduction  *ProductionLink  `json:"surProduction,omitempty"`
	SubProductions []ProductionLink `json:"subProductions,omitempty"`
}

// MaterialLink is a material shown in context.
type MaterialLink struct {
	Model  string `json:"model"`
	UUID   string `json:"uuid"`
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
	Year   int    `json:"year,omitempty"`

	// WritingCredits is populated where a material is embedded in another
	// document (a production's material, a nomination slot) so the byline
	// can be displayed without a second request.
	WritingCredits []CreditGroup `json:"writingCredits,omitempty"`

	SurMaterial  *MaterialLink  `json:"surMaterial,omitempty"`
	SubMaterials []MaterialLink `json:"subMaterials,omitempty"`
}

// # Credits

// CreditGroup is one named, ordered credit attribution.
//
// A group with zero resolved entities is never emitted.
type CreditGroup struct {
	Name     string         `json:"name"`
	Entities []CreditEntity `json:"entities"`
}

// CreditEntity is one credited entity: a person, a company (always carrying
// a members list, possibly empty), or a source material.
type CreditEntity struct {
	Model string `json:"model"`
	UUID  string `json:"uuid"`
	Name  string `json:"name"`

	// Format/Year are set when the credited entity is a material.
	Format string `json:"format,omitempty"`
	Year   int    `json:"year,omitempty"`

	// Members is non-nil exactly when the entity is a company: an empty
	// list means "no members recorded", a missing key means "not a company".
	Members *[]Ref `json:"members,omitempty"`
}

// # Cast

// CastMember is one performer with their ordered roles.
type CastMember struct {
	Model string `json:"model"`
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
}

// Role is a performed role, resolved against the material's character
// catalogue when possible. Unresolved roles carry no model/uuid.
type Role struct {
	Model       string `json:"model,omitempty"`
	UUID        string `json:"uuid,omitempty"`
	Name        string `json:"name"`
	Qualifier   string `json:"qualifier,omitempty"`
	IsAlternate bool   `json:"isAlternate,omitempty"`
}

// # Characters

// CharacterGroup is one ordered group of character depictions in a material.
type CharacterGroup struct {
	Name       string               `json:"name,omitempty"`
	Characters []CharacterDepiction `json:"characters"`
}

// CharacterDepiction is one depiction of a character within a group.
type CharacterDepiction struct {
	Model     string `json:"model"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Qualifier string `json:"qualifier,omitempty"`
}

// # Reviews

// Review links a production to a publication and critic.
type Review struct {
	URL         string `json:"url"`
	Date        string `json:"date,omitempty"`
	Publication *Ref   `json:"publication,omitempty"`
	Critic      *Ref   `json:"critic,omitempty"`
}

// # Awards

// AwardBlock groups the nominations visible from one subject under an award.
type AwardBlock struct {
	Model      string          `json:"model"`
	UUID       string          `json:"uuid"`
	Name       string          `json:"name"`
	Ceremonies []CeremonyBlock `json:"ceremonies"`
}

// CeremonyBlock is one ceremony of an award.
type CeremonyBlock struct {
	Model      string          `json:"model"`
	UUID       string          `json:"uuid"`
	Name       string          `json:"name"`
	Categories []CategoryBlock `json:"categories"`
}

// CategoryBlock is one ordered category with its nominations.
type CategoryBlock struct {
	Name        string       `json:"name"`
	Nominations []Nomination `json:"nominations"`
}

// Nomination is one nomination as seen from a subject's perspective.
//
// When the nomination targets a hierarchical relative of the subject rather
// than the subject itself, the relative appears in a recipient field and is
// suppressed from the plain slot lists.
type Nomination struct {
	IsWinner bool   `json:"isWinner"`
	Type     string `json:"type"`

	Entities []CreditEntity `json:"entities"`

	Productions   []ProductionLink `json:"productions,omitempty"`
	CoProductions []ProductionLink `json:"coProductions,omitempty"`
	Materials     []MaterialLink   `json:"materials,omitempty"`
	CoMaterials   []MaterialLink   `json:"coMaterials,omitempty"`

	RecipientProduction *ProductionLink `json:"recipientProduction,omitempty"`
	RecipientMaterial   *MaterialLink   `json:"recipientMaterial,omitempty"`
}

// # Show Documents

// ProductionShow is the aggregated document for one production.
type ProductionShow struct {
	Model     string `json:"model"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	PressDate string `json:"pressDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	Material *MaterialLink `json:"material"`
	Venue    *VenueLink    `json:"venue"`
	Season   *Ref          `json:"season"`
	Festival *Ref          `json:"festival"`

	SurProduction  *ProductionLink  `json:"surProduction"`
	SubProductions []ProductionLink `json:"subProductions"`

	ProducerCredits []CreditGroup `json:"producerCredits"`
	Cast            []CastMember  `json:"cast"`
	CreativeCredits []CreditGroup `json:"creativeCredits"`
	CrewCredits     []CreditGroup `json:"crewCredits"`

	Reviews []Review     `json:"reviews"`
	Awards  []AwardBlock `json:"awards"`
}

// MaterialShow is the aggregated document for one material.
type MaterialShow struct {
	Model          string `json:"model"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`
	Format         string `json:"format,omitempty"`
	Year           int    `json:"year,omitempty"`

	WritingCredits []CreditGroup `json:"writingCredits"`

	OriginalVersionMaterial    *MaterialLink  `json:"originalVersionMaterial"`
	SubsequentVersionMaterials []MaterialLink `json:"subsequentVersionMaterials"`
	SourcingMaterials          []MaterialLink `json:"sourcingMaterials"`

	CharacterGroups []CharacterGroup `json:"characterGroups"`

	SurMaterial  *MaterialLink  `json:"surMaterial"`
	SubMaterials []MaterialLink `json:"subMaterials"`

	Productions []ProductionLink `json:"productions"`
	Awards      []AwardBlock     `json:"awards"`
}

// ProductionCredit is a production bucket entry on a person/company view,
// carrying the credit context that put it there.
type ProductionCredit struct {
	ProductionLink

	CreditName      string        `json:"creditName,omitempty"`
	CreditedCompany *CreditEntity `json:"creditedCompany,omitempty"`
	CreditedMembers []Ref         `json:"creditedMembers,omitempty"`
	Roles           []Role        `json:"roles,omitempty"`
}

// MaterialCredit is a material bucket entry on a person/company view.
type MaterialCredit struct {
	MaterialLink

	CreditName      string        `json:"creditName,omitempty"`
	CreditedCompany *CreditEntity `json:"creditedCompany,omitempty"`
	CreditedMembers []Ref         `json:"creditedMembers,omitempty"`
}

// CreditableShow is the aggregated document for a person or company. The
// two kinds share every bucket; companies simply never populate Cast roles.
type CreditableShow struct {
	Model          string `json:"model"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`

	Materials                  []MaterialCredit `json:"materials"`
	SubsequentVersionMaterials []MaterialCredit `json:"subsequentVersionMaterials"`
	SourcingMaterials          []MaterialCredit `json:"sourcingMaterials"`
	RightsGrantorMaterials     []MaterialCredit `json:"rightsGrantorMaterials"`

	Productions         []ProductionCredit `json:"productions"`
	ProducerProductions []ProductionCredit `json:"producerProductions"`
	CreativeProductions []ProductionCredit `json:"creativeProductions"`
	CrewProductions     []ProductionCredit `json:"crewProductions"`
	ReviewedProductions []ProductionCredit `json:"reviewedProductions"`

	Awards []AwardBlock `json:"awards"`
}

// CharacterMaterial is a material entry on a character view with that
// character's depictions in it.
type CharacterMaterial struct {
	MaterialLink
	Depictions []CharacterDepictionVariant `json:"depictions"`
}

// CharacterDepictionVariant is one depiction of the character, possibly
// under a variant display name or qualifier.
type CharacterDepictionVariant struct {
	DisplayName string `json:"displayName,omitempty"`
	Qualifier   string `json:"qualifier,omitempty"`
	Group       string `json:"group,omitempty"`
}

// CharacterProduction is a production entry on a character view with the
// performers who portrayed the character.
type CharacterProduction struct {
	ProductionLink
	Performers []Performer `json:"performers"`
}

// Performer is one performance of the character in one production.
type Performer struct {
	Model       string `json:"model"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	RoleName    string `json:"roleName"`
	Qualifier   string `json:"qualifier,omitempty"`
	IsAlternate bool   `json:"isAlternate,omitempty"`
	OtherRoles  []Role `json:"otherRoles"`
}

// CharacterShow is the aggregated document for one character.
type CharacterShow struct {
	Model          string `json:"model"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`

	Materials   []CharacterMaterial   `json:"materials"`
	Productions []CharacterProduction `json:"productions"`
}

// VenueShow is the aggregated document for one venue.
type VenueShow struct {
	Model          string `json:"model"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`

	SurVenue  *Ref  `json:"surVenue"`
	SubVenues []Ref `json:"subVenues"`

	Productions []ProductionLink `json:"productions"`
}

// AwardCeremonyShow is the aggregated document for one ceremony: the full
// category/nomination tree with no subject perspective applied.
type AwardCeremonyShow struct {
	Model string `json:"model"`
	UUID  string `json:"uuid"`
	Name  string `json:"name"`

	Award *Ref `json:"award"`

	Categories []CategoryBlock `json:"categories"`
}

// AwardShow is the aggregated document for one award.
type AwardShow struct {
	Model          string `json:"model"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`

	Ceremonies []Ref `json:"ceremonies"`
}

// GroupingShow is the aggregated document for a season or festival.
type GroupingShow struct {
	Model          string `json:"model"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`

	Productions []ProductionLink `json:"productions"`
}
