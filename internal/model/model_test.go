package model

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"left", CategoryLeft, false},
		{" Center ", CategoryCenter, false},
		{"external", CategoryFactCheck, false},
		{"fact-check", CategoryFactCheck, false},
		{"fringe", CategoryFringe, false},
		{"middle", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryIsSpectrum(t *testing.T) {
	for _, c := range AllCategories {
		want := c != CategoryFactCheck && c != CategoryFringe
		if c.IsSpectrum() != want {
			t.Errorf("%s.IsSpectrum() = %v", c, !want)
		}
	}
}

func TestParseRawVerdict(t *testing.T) {
	tests := []struct {
		in     string
		want   RawVerdict
		wantOK bool
	}{
		{"true", RawTrue, true},
		{"Mostly True", RawMostlyTrue, true},
		{"MOSTLY_FALSE", RawMostlyFalse, true},
		{"satire", RawSatirical, true},
		{"half-true", RawMixed, true},
		{"Not true", RawFalse, true},
		{"untrue", RawFalse, true},
		{"banana", RawUnverified, false},
	}
	for _, tt := range tests {
		got, ok := ParseRawVerdict(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRawVerdict(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNegatedVerdict(t *testing.T) {
	tests := []struct {
		in     string
		want   RawVerdict
		wantOK bool
	}{
		{"not true", RawFalse, true},
		{"untrue", RawFalse, true},
		{"this is not correct", RawFalse, true},
		{"mostly not true", RawMostlyFalse, true},
		{"no evidence", RawUnverified, true},
		{"mostly true", "", false},
		{"true", "", false},
		{"false", "", false},
	}
	for _, tt := range tests {
		got, ok := NegatedVerdict(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NegatedVerdict(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLeaning(t *testing.T) {
	if RawTrue.Leaning() != 1 || RawMostlyTrue.Leaning() != 1 {
		t.Error("true-leaning verdicts should lean +1")
	}
	if RawFalse.Leaning() != -1 || RawMostlyFalse.Leaning() != -1 {
		t.Error("false-leaning verdicts should lean -1")
	}
	if RawMixed.Leaning() != 0 || RawSatirical.Leaning() != 0 {
		t.Error("mixed and satirical should not lean")
	}
}

func TestSourceFavicon(t *testing.T) {
	s := Source{Domain: "npr.org"}
	if got := s.Favicon(); got != "https://www.google.com/s2/favicons?domain=npr.org&sz=32" {
		t.Errorf("Favicon() = %s", got)
	}
	if s.HomeURL() != "https://npr.org" {
		t.Errorf("HomeURL() = %s", s.HomeURL())
	}
}

func TestDefaultConfigRoundTripsYAML(t *testing.T) {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Engine.Deadline != 45*time.Second {
		t.Errorf("deadline = %v", back.Engine.Deadline)
	}
	if back.Verdict.Threshold != 0.4 || back.Scrape.MaxResults != 12 {
		t.Errorf("verdict/scrape defaults lost: %+v %+v", back.Verdict, back.Scrape)
	}
}
