package identity

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var dottedQuad = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

func TestGenerateIPShape(t *testing.T) {
	g := NewWithSeed(42)

	for i := 0; i < 200; i++ {
		ip := g.GenerateIP()
		if !dottedQuad.MatchString(ip) {
			t.Fatalf("Expected dotted-quad, got %s", ip)
		}
		for _, part := range strings.Split(ip, ".") {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 || n > 255 {
				t.Fatalf("Octet out of range in %s", ip)
			}
		}
	}
}

func TestGenerateFields(t *testing.T) {
	g := NewWithSeed(7)

	for i := 0; i < 100; i++ {
		ident := g.Generate()

		if ident.LatencyMs < MinLatencyMs || ident.LatencyMs > MaxLatencyMs {
			t.Errorf("Latency %d outside [%d, %d]", ident.LatencyMs, MinLatencyMs, MaxLatencyMs)
		}

		var country *Country
		for j := range Countries {
			if Countries[j].Name == ident.Country {
				country = &Countries[j]
			}
		}
		if country == nil {
			t.Fatalf("Unknown country %q", ident.Country)
		}

		cityKnown := false
		for _, c := range country.Cities {
			if c == ident.City {
				cityKnown = true
			}
		}
		if !cityKnown {
			t.Errorf("City %q not in %s's table", ident.City, country.Name)
		}

		ispKnown := false
		for _, isp := range ISPs {
			if isp == ident.ISP {
				ispKnown = true
			}
		}
		if !ispKnown {
			t.Errorf("Unknown ISP %q", ident.ISP)
		}
	}
}

func TestSeededReproducibility(t *testing.T) {
	a := NewWithSeed(99)
	b := NewWithSeed(99)

	for i := 0; i < 20; i++ {
		if a.Generate() != b.Generate() {
			t.Fatal("Same seed should produce the same identity sequence")
		}
	}
}

func TestSampleStream(t *testing.T) {
	g := NewWithSeed(1)

	url := g.SampleStream()
	found := false
	for _, s := range SampleStreams {
		if s == url {
			found = true
		}
	}
	if !found {
		t.Errorf("SampleStream returned unknown URL %s", url)
	}
}
