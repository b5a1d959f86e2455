package domain

import "time"

// CampaignType enumerates the marketing campaign categories.
type CampaignType string

const (
	CampaignPromotion     CampaignType = "PROMOTION"
	CampaignAbandonedCart CampaignType = "ABANDONED_CART"
	CampaignWelcome       CampaignType = "WELCOME"
	CampaignWinback       CampaignType = "WINBACK"
	CampaignProductLaunch CampaignType = "PRODUCT_LAUNCH"
	CampaignNewsletter    CampaignType = "NEWSLETTER"
)

// CampaignChannel enumerates delivery channels.
type CampaignChannel string

const (
	ChannelEmail CampaignChannel = "EMAIL"
	ChannelSMS   CampaignChannel = "SMS"
	ChannelMulti CampaignChannel = "MULTI"
)

// CampaignStatus enumerates the lifecycle states of a campaign.
// Transitions are owned by the orders service; the BFF only mirrors them.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "DRAFT"
	CampaignScheduled CampaignStatus = "SCHEDULED"
	CampaignSending   CampaignStatus = "SENDING"
	CampaignSent      CampaignStatus = "SENT"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignPaused    CampaignStatus = "PAUSED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

// Campaign is a marketing campaign as reported by the orders service.
type Campaign struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenantId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        CampaignType    `json:"type"`
	Channel     CampaignChannel `json:"channel"`
	Status      CampaignStatus  `json:"status"`
	Subject     string          `json:"subject"`
	Content     string          `json:"content"`
	HTMLContent string          `json:"htmlContent"`
	SegmentID   string          `json:"segmentId"`

	// Delivery counters, populated by the backend.
	TotalRecipients int     `json:"totalRecipients"`
	Delivered       int     `json:"delivered"`
	Opened          int     `json:"opened"`
	Clicked         int     `json:"clicked"`
	Converted       int     `json:"converted"`
	Revenue         float64 `json:"revenue"`

	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsTerminal returns true if the campaign is in a final state.
func (c *Campaign) IsTerminal() bool {
	return c.Status == CampaignSent || c.Status == CampaignCompleted || c.Status == CampaignCancelled
}

// CanPause reports whether pause is meaningful from the current state.
// PAUSED is a reversible side-state reachable from SENDING and SCHEDULED.
func (c *Campaign) CanPause() bool {
	return c.Status == CampaignSending || c.Status == CampaignScheduled
}

// CanResume reports whether resume is meaningful from the current state.
func (c *Campaign) CanResume() bool {
	return c.Status == CampaignPaused
}

// CampaignStats is the aggregate counters payload from /campaigns/stats.
type CampaignStats struct {
	TotalCampaigns  int     `json:"totalCampaigns"`
	ActiveCampaigns int     `json:"activeCampaigns"`
	TotalRecipients int     `json:"totalRecipients"`
	TotalDelivered  int     `json:"totalDelivered"`
	TotalOpened     int     `json:"totalOpened"`
	TotalClicked    int     `json:"totalClicked"`
	TotalConverted  int     `json:"totalConverted"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// Segment is a read-only audience selector for campaign targeting.
type Segment struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CustomerCount int    `json:"customerCount"`
	Type          string `json:"type"` // STATIC or DYNAMIC
	IsActive      bool   `json:"isActive"`
}
