// internal/scoring/community.go
package scoring

import (
	"fmt"
	"sort"
	"time"

	"civic-relevance-workers/internal/models"
)

type Member struct {
	Profile   *models.Profile         `json:"-"`
	ProfileID string                  `json:"profileId"`
	Name      string                  `json:"name"`
	Relevance *models.RelevanceResult `json:"relevance"`
}

type MicroCommunity struct {
	IssueTitle string   `json:"issueTitle"`
	Threshold  float64  `json:"threshold"`
	Members    []Member `json:"members"`
	Count      int      `json:"count"`
	Total      int      `json:"total"`
}

// Summary renders membership as "count/total".
func (c *MicroCommunity) Summary() string {
	return fmt.Sprintf("%d/%d", c.Count, c.Total)
}

// BuildMicroCommunity scores every profile against the issue and keeps the
// included ones in profile order.
func BuildMicroCommunity(profiles []*models.Profile, is *models.Issue, threshold float64) (*MicroCommunity, error) {
	if err := ValidateIssue(is); err != nil {
		return nil, err
	}
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	c := &MicroCommunity{
		IssueTitle: is.Title,
		Threshold:  threshold,
		Members:    []Member{},
		Total:      len(profiles),
	}
	for _, p := range profiles {
		res, err := ScoreRelevance(p, is, threshold)
		if err != nil {
			return nil, err
		}
		if !res.Included {
			continue
		}
		c.Members = append(c.Members, Member{Profile: p, ProfileID: p.ID, Name: p.Name, Relevance: res})
	}
	c.Count = len(c.Members)
	return c, nil
}

// Snapshot freezes the community into the document that is indexed and
// announced.
func (c *MicroCommunity) Snapshot(id string, issueIndex int, category string, at time.Time) models.CommunitySnapshot {
	members := make([]models.SnapshotMember, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, models.SnapshotMember{
			ProfileID:    m.ProfileID,
			Name:         m.Name,
			Total:        m.Relevance.Total,
			TotalDisplay: m.Relevance.TotalDisplay,
		})
	}
	return models.CommunitySnapshot{
		SnapshotID: id,
		IssueIndex: issueIndex,
		IssueTitle: c.IssueTitle,
		Category:   category,
		Threshold:  c.Threshold,
		Count:      c.Count,
		Total:      c.Total,
		Summary:    c.Summary(),
		Members:    members,
		CreatedAt:  at.UTC(),
	}
}

type RankedExpert struct {
	Profile        *models.Profile         `json:"-"`
	ProfileID      string                  `json:"profileId"`
	Name           string                  `json:"name"`
	Relevance      float64                 `json:"relevance"`
	RelevanceLabel string                  `json:"relevanceDisplay"`
	Expertise      *models.ExpertiseResult `json:"expertise"`
}

// RankExperts filters to relevant profiles and orders them by expertise total,
// highest first. Ties keep profile order.
func RankExperts(profiles []*models.Profile, is *models.Issue, threshold float64) ([]RankedExpert, error) {
	community, err := BuildMicroCommunity(profiles, is, threshold)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedExpert, 0, community.Count)
	for _, m := range community.Members {
		ranked = append(ranked, RankedExpert{
			Profile:        m.Profile,
			ProfileID:      m.ProfileID,
			Name:           m.Name,
			Relevance:      m.Relevance.Total,
			RelevanceLabel: m.Relevance.TotalDisplay,
			Expertise:      ScoreExpertise(m.Profile, is),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Expertise.Total > ranked[j].Expertise.Total
	})
	return ranked, nil
}

// EmptyRankingMessage is shown when no profile clears the threshold.
func EmptyRankingMessage(threshold float64) string {
	return fmt.Sprintf("No relevant members found above threshold (%v).", threshold)
}
