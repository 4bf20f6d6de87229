// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package graph

// Property keys shared between the write model (which stores them) and the
// view resolvers (which read them). Keys live on edges unless noted.

// Ordering positions. A missing or malformed position sorts last.
const (
	PropPosition           = "position"
	PropCreditPosition     = "creditPosition"
	PropEntityPosition     = "entityPosition"
	PropGroupPosition      = "groupPosition"
	PropNominationPosition = "nominationPosition"
	PropProductionPosition = "productionPosition"
	PropMaterialPosition   = "materialPosition"
)

// Credit attributes.
const (
	PropCreditLabel     = "creditLabel"
	PropCreditCategory  = "category"
	PropCreditKind      = "creditKind"
	PropCreditedCompany = "creditedCompanyUuid"
	PropRoles           = "roles"
)

// Character depiction attributes.
const (
	PropGroupName   = "groupName"
	PropDisplayName = "displayName"
	PropQualifier   = "qualifier"
)

// Review attributes. A review is stored as a pair of edges sharing one
// position: production → publication (company) and production → critic
// (person).
const (
	PropURL  = "url"
	PropDate = "date"
)

// Nomination attributes.
const (
	PropIsWinner   = "isWinner"
	PropCustomType = "customType"
)

// Node props (kind-specific scalar fields).
const (
	PropSubtitle  = "subtitle"
	PropStartDate = "startDate"
	PropPressDate = "pressDate"
	PropEndDate   = "endDate"
	PropFormat    = "format"
	PropYear      = "year"
)

// Role sub-keys within a cast edge's roles list.
const (
	RoleKeyName                    = "name"
	RoleKeyCharacterName           = "characterName"
	RoleKeyCharacterDifferentiator = "characterDifferentiator"
	RoleKeyQualifier               = "qualifier"
	RoleKeyIsAlternate             = "isAlternate"
)

// Team credit categories (PropCreditCategory values).
const (
	CreditCategoryProducer = "producer"
	CreditCategoryCreative = "creative"
	CreditCategoryCrew     = "crew"
)

// Writing credit kinds (PropCreditKind values). A direct authorship credit
// carries CreditKindWriting; materials credited as adapted sources carry
// CreditKindSource; rights holders credited "by arrangement with" carry
// CreditKindRightsGrantor.
const (
	CreditKindWriting       = "writing"
	CreditKindSource        = "source"
	CreditKindRightsGrantor = "rightsGrantor"
)
