package matcher

import (
	"strings"

	"github.com/linklens/linklens/internal/domain"
	"github.com/linklens/linklens/internal/model"
)

// MaxMatchedLinks caps how many domain-matching links one analysis reports.
// Pages with sitewide footers can carry hundreds of links to the same
// domain; 30 bounds the output while keeping every realistic audit case.
const MaxMatchedLinks = 30

// Outcome is the result of matching a page's links against a task.
type Outcome struct {
	// Status classifies the match.
	Status model.MatchStatus

	// MatchedLinks are the links whose registrable domain equals the
	// target's, in document order, capped at MaxMatchedLinks.
	MatchedLinks []model.LinkRecord

	// ActualAnchorText is the text of the qualifying link when Status is
	// MatchStatusAnchorMismatch.
	ActualAnchorText string
}

// Match compares extracted links against the target registrable domain and,
// when expectedPath is non-empty, classifies the first qualifying link.
//
// targetRegistrable must already be normalized via domain.Registrable; the
// caller owns the InvalidDomain failure mode. Links whose own domain cannot
// be normalized simply do not match.
func Match(links []model.LinkRecord, targetRegistrable, expectedPath, expectedAnchor string) Outcome {
	matched := make([]model.LinkRecord, 0)
	for _, link := range links {
		reg, err := domain.Registrable(link.AbsoluteHref)
		if err != nil || !strings.EqualFold(reg, targetRegistrable) {
			continue
		}
		link.TargetDomainMatch = true
		matched = append(matched, link)
		if len(matched) == MaxMatchedLinks {
			break
		}
	}

	if expectedPath == "" {
		if len(matched) == 0 {
			return Outcome{Status: model.MatchStatusNotFound}
		}
		return Outcome{Status: model.MatchStatusMatched, MatchedLinks: matched}
	}

	// Only the first link containing the expected path participates in
	// classification; every domain match is still reported.
	for _, link := range matched {
		if !strings.Contains(link.AbsoluteHref, expectedPath) {
			continue
		}

		if expectedAnchor == "" {
			return Outcome{Status: model.MatchStatusMatched, MatchedLinks: matched}
		}
		if link.AnchorText == strings.TrimSpace(expectedAnchor) {
			return Outcome{Status: model.MatchStatusMatched, MatchedLinks: matched}
		}
		return Outcome{
			Status:           model.MatchStatusAnchorMismatch,
			MatchedLinks:     matched,
			ActualAnchorText: link.AnchorText,
		}
	}

	return Outcome{Status: model.MatchStatusNotFound, MatchedLinks: matched}
}
