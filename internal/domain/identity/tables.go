package identity

// Country pairs a name with the cities an identity can resolve to
type Country struct {
	Name   string
	Code   string
	Cities []string
}

// Countries is the fixed reference table for virtual locations
var Countries = []Country{
	{Name: "United States", Code: "US", Cities: []string{"New York", "Los Angeles", "Chicago"}},
	{Name: "Germany", Code: "DE", Cities: []string{"Berlin", "Frankfurt", "Munich"}},
	{Name: "Japan", Code: "JP", Cities: []string{"Tokyo", "Osaka", "Kyoto"}},
	{Name: "United Kingdom", Code: "GB", Cities: []string{"London", "Manchester", "Birmingham"}},
	{Name: "Singapore", Code: "SG", Cities: []string{"Singapore City"}},
}

// ISPs is the fixed reference table for synthetic providers
var ISPs = []string{
	"CloudNet Pro",
	"GlobalConnect",
	"Titan Backbone",
	"OmniFiber",
	"CyberGuard ISP",
}

// SampleStreams are the quick-launch video sources
var SampleStreams = []string{
	"https://www.w3schools.com/html/mov_bbb.mp4",
	"https://interactive-examples.mdn.mozilla.net/media/cc0-videos/flower.mp4",
	"https://vjs.zencdn.net/v/oceans.mp4",
}

// Latency bounds in milliseconds
const (
	MinLatencyMs = 10
	MaxLatencyMs = 159
)
