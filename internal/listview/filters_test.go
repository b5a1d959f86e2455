package listview

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
)

var campaignAccessor = Accessor[domain.Campaign]{
	SearchText: func(c domain.Campaign) []string {
		return []string{c.Name, c.Description, c.Subject}
	},
	Field: func(c domain.Campaign, name string) string {
		switch name {
		case "type":
			return string(c.Type)
		case "status":
			return string(c.Status)
		case "channel":
			return string(c.Channel)
		}
		return ""
	},
}

func syntheticCampaigns(n int) []domain.Campaign {
	out := make([]domain.Campaign, 0, n)
	types := []domain.CampaignType{domain.CampaignPromotion, domain.CampaignWelcome, domain.CampaignNewsletter}
	statuses := []domain.CampaignStatus{domain.CampaignDraft, domain.CampaignSending, domain.CampaignSent}
	for i := 0; i < n; i++ {
		out = append(out, domain.Campaign{
			ID:     fmt.Sprintf("c%d", i),
			Name:   fmt.Sprintf("Campaign %d", i),
			Type:   types[i%len(types)],
			Status: statuses[i%len(statuses)],
		})
	}
	return out
}

func TestApplyNoFiltersReturnsAll(t *testing.T) {
	items := syntheticCampaigns(9)
	got := Apply(items, NewFilters(), campaignAccessor)
	assert.Len(t, got, 9)
}

func TestApplyANDCombination(t *testing.T) {
	items := syntheticCampaigns(30)

	f := NewFilters().
		WithField("type", "PROMOTION").
		WithField("status", "DRAFT")
	got := Apply(items, f, campaignAccessor)

	require.NotEmpty(t, got)
	for _, c := range got {
		assert.Equal(t, domain.CampaignPromotion, c.Type)
		assert.Equal(t, domain.CampaignDraft, c.Status)
	}

	// Every item matching both must be present.
	want := 0
	for _, c := range items {
		if c.Type == domain.CampaignPromotion && c.Status == domain.CampaignDraft {
			want++
		}
	}
	assert.Equal(t, want, len(got))
}

func TestApplyAllValueMeansUnconstrained(t *testing.T) {
	items := syntheticCampaigns(12)

	f := NewFilters().WithField("type", "ALL").WithField("status", "")
	got := Apply(items, f, campaignAccessor)
	assert.Len(t, got, 12)
}

func TestApplySearchSubstringCaseInsensitive(t *testing.T) {
	items := []domain.Campaign{
		{ID: "a", Name: "Spring Mega Sale"},
		{ID: "b", Name: "Winter", Description: "spring preview"},
		{ID: "c", Name: "Autumn"},
	}

	got := Apply(items, NewFilters().WithSearch("SPRING"), campaignAccessor)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestApplyNeverNil(t *testing.T) {
	got := Apply(nil, NewFilters().WithSearch("x"), campaignAccessor)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPageBoundary(t *testing.T) {
	items := syntheticCampaigns(26)

	p1, page, totalPages := Page(items, 1, 25)
	assert.Len(t, p1, 25)
	assert.Equal(t, 1, page)
	assert.Equal(t, 2, totalPages)

	p2, page, _ := Page(items, 2, 25)
	assert.Len(t, p2, 1)
	assert.Equal(t, 2, page)
	assert.Equal(t, "c25", p2[0].ID)
}

func TestPageClamping(t *testing.T) {
	items := syntheticCampaigns(26)

	// Page 0 clamps to 1.
	p, page, _ := Page(items, 0, 25)
	assert.Equal(t, 1, page)
	assert.Len(t, p, 25)

	// Beyond the last page clamps to the last page.
	p, page, _ = Page(items, 99, 25)
	assert.Equal(t, 2, page)
	assert.Len(t, p, 1)
}

func TestPageEmptySet(t *testing.T) {
	p, page, totalPages := Page([]domain.Campaign{}, 3, 25)
	assert.Empty(t, p)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, totalPages)
}

func TestQueryRoundTrip(t *testing.T) {
	f := NewFilters().
		WithSearch("sale").
		WithField("type", "PROMOTION").
		WithField("status", "ALL") // unconstrained, must not appear in URL

	q := f.Query()
	assert.Equal(t, "sale", q.Get("search"))
	assert.Equal(t, "PROMOTION", q.Get("type"))
	assert.Empty(t, q.Get("status"))

	back := ParseQuery(q, "type", "status", "channel")
	assert.Equal(t, "sale", back.Search)
	v, ok := back.Constraint("type")
	require.True(t, ok)
	assert.Equal(t, "PROMOTION", v)
	_, ok = back.Constraint("status")
	assert.False(t, ok)
}

func TestPageParams(t *testing.T) {
	q := url.Values{}
	page, perPage := PageParams(q, 25)
	assert.Equal(t, 1, page)
	assert.Equal(t, 25, perPage)

	q.Set("page", "3")
	q.Set("itemsPerPage", "10")
	page, perPage = PageParams(q, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, perPage)
}
