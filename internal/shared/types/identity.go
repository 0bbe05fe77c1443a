package types

// NetworkIdentity is a synthetic network identity attached to a tab.
//
// Identities are immutable once created: rotation replaces the whole value
// (or reassigns IP wholesale for a lightweight circuit change), it never
// mutates individual fields in place.
type NetworkIdentity struct {
	IP        string `json:"ip"`
	Country   string `json:"country"`
	City      string `json:"city"`
	ISP       string `json:"isp"`
	LatencyMs int    `json:"latency_ms"`
}

// Location returns the human-readable "City, Country" label used for
// advisory requests and bookmark names.
func (n NetworkIdentity) Location() string {
	return n.City + ", " + n.Country
}

// ProxyBookmark is a saved identity preset. Identity is a snapshot taken at
// save time; later rotation of the source tab must not change it.
type ProxyBookmark struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Identity NetworkIdentity `json:"identity"`
}
