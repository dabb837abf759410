package metadomain

// InsightRow é uma linha do endpoint /insights. A API devolve números como string.
type InsightRow struct {
	CampaignID       string `json:"campaign_id,omitempty"`
	CampaignName     string `json:"campaign_name,omitempty"`
	AdSetID          string `json:"adset_id,omitempty"`
	AdSetName        string `json:"adset_name,omitempty"`
	AdID             string `json:"ad_id,omitempty"`
	AdName           string `json:"ad_name,omitempty"`
	Spend            string `json:"spend"`
	InlineLinkClicks string `json:"inline_link_clicks"`
	CTR              string `json:"ctr"`
	DateStart        string `json:"date_start"`
	DateStop         string `json:"date_stop"`
}

// EntityID retorna o campo {level}_id da linha
func (r InsightRow) EntityID(level string) string {
	switch level {
	case "campaign":
		return r.CampaignID
	case "adset":
		return r.AdSetID
	case "ad":
		return r.AdID
	}
	return ""
}

// EntityName retorna o campo {level}_name da linha
func (r InsightRow) EntityName(level string) string {
	switch level {
	case "campaign":
		return r.CampaignName
	case "adset":
		return r.AdSetName
	case "ad":
		return r.AdName
	}
	return ""
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

type InsightsResponse struct {
	Data   []InsightRow `json:"data"`
	Paging Paging       `json:"paging"`
}

// AdCreative é o criativo de um anúncio; só thumbnail_url é solicitado
type AdCreative struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type AdCreativesResponse struct {
	Data []AdCreative `json:"data"`
}
