// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import "github.com/tamsinleach/dramatis/internal/graph"

// creditableBucket names one list on a person/company document. Routing is
// table-driven so the person and company composers stay one code path: the
// same relation always lands in the same bucket regardless of subject kind.
type creditableBucket string

const (
	bucketMaterials                  creditableBucket = "materials"
	bucketSubsequentVersionMaterials creditableBucket = "subsequentVersionMaterials"
	bucketSourcingMaterials          creditableBucket = "sourcingMaterials"
	bucketRightsGrantorMaterials     creditableBucket = "rightsGrantorMaterials"

	bucketCastProductions     creditableBucket = "productions"
	bucketProducerProductions creditableBucket = "producerProductions"
	bucketCreativeProductions creditableBucket = "creativeProductions"
	bucketCrewProductions     creditableBucket = "crewProductions"
	bucketReviewedProductions creditableBucket = "reviewedProductions"
)

// writingKindBuckets routes a writing-credit kind to its material bucket.
// Credits stored before kinds were recorded carry an empty kind and count
// as authorship.
var writingKindBuckets = map[string]creditableBucket{
	"":                            bucketMaterials,
	graph.CreditKindWriting:       bucketMaterials,
	graph.CreditKindSource:        bucketSourcingMaterials,
	graph.CreditKindRightsGrantor: bucketRightsGrantorMaterials,
}

// teamCategoryBuckets routes a team-credit category to its production bucket.
var teamCategoryBuckets = map[string]creditableBucket{
	graph.CreditCategoryProducer: bucketProducerProductions,
	graph.CreditCategoryCreative: bucketCreativeProductions,
	graph.CreditCategoryCrew:     bucketCrewProductions,
}

func (show *CreditableShow) addMaterial(bucket creditableBucket, entry MaterialCredit) {
	switch bucket {
	case bucketMaterials:
		show.Materials = append(show.Materials, entry)
	case bucketSubsequentVersionMaterials:
		show.SubsequentVersionMaterials = append(show.SubsequentVersionMaterials, entry)
	case bucketSourcingMaterials:
		show.SourcingMaterials = append(show.SourcingMaterials, entry)
	case bucketRightsGrantorMaterials:
		show.RightsGrantorMaterials = append(show.RightsGrantorMaterials, entry)
	}
}

func (show *CreditableShow) addProduction(bucket creditableBucket, entry ProductionCredit) {
	switch bucket {
	case bucketCastProductions:
		show.Productions = append(show.Productions, entry)
	case bucketProducerProductions:
		show.ProducerProductions = append(show.ProducerProductions, entry)
	case bucketCreativeProductions:
		show.CreativeProductions = append(show.CreativeProductions, entry)
	case bucketCrewProductions:
		show.CrewProductions = append(show.CrewProductions, entry)
	case bucketReviewedProductions:
		show.ReviewedProductions = append(show.ReviewedProductions, entry)
	}
}
