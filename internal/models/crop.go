// Package models defines the data types shared across the scraper pipeline.
package models

// Crop identifies one tracked commodity across both price sources.
// MSAMBValue is the commodity dropdown value on the MSAMB price page;
// an empty value means MSAMB does not track the crop and CommodityOnline
// is its sole provider.
type Crop struct {
	ID                string `yaml:"id" json:"id"`
	Name              string `yaml:"name" json:"name"`
	Marathi           string `yaml:"marathi" json:"marathi"`
	MSAMBValue        string `yaml:"msamb_val" json:"msambVal"`
	CommodityOnlineID string `yaml:"commodityonline_id" json:"commodityonlineId"`
}

// HasMSAMB reports whether the crop is tracked by MSAMB.
func (c *Crop) HasMSAMB() bool {
	return c.MSAMBValue != ""
}

// ListingID returns the CommodityOnline page identifier, falling back to
// the crop ID when no explicit listing ID is configured.
func (c *Crop) ListingID() string {
	if c.CommodityOnlineID != "" {
		return c.CommodityOnlineID
	}

	return c.ID
}

// RawRow is one table row as delivered by a page source: ordered cell
// texts plus the structural attribute the row classifier needs.
type RawRow struct {
	Cells []string
	// Colspan is true when the row consists of a single cell carrying a
	// colspan attribute (MSAMB renders trade-date markers this way).
	Colspan bool
}
