package catalog

import (
	"testing"

	"github.com/ppiankov/crosscheck/internal/model"
)

func TestDefaultCatalogValid(t *testing.T) {
	c := Default()
	if c.Len() != len(defaultSources) {
		t.Fatalf("Len() = %d, want %d", c.Len(), len(defaultSources))
	}
	for _, cat := range model.AllCategories {
		if len(c.ByCategory(cat)) == 0 {
			t.Errorf("category %s has no sources", cat)
		}
	}
}

func TestBalancedSelection(t *testing.T) {
	c := Default()
	got := c.BalancedSelection(3)

	if len(got) != 15 {
		t.Fatalf("expected 15 sources (3 x 5 categories), got %d", len(got))
	}

	// Category order is left, center, right, international, factcheck
	for i, s := range got {
		want := model.BalancedCategories[i/3]
		if s.Category != want {
			t.Errorf("position %d: category %s, want %s", i, s.Category, want)
		}
	}

	// Credibility descending within each category
	for i := 1; i < len(got); i++ {
		if got[i].Category == got[i-1].Category && got[i].CredibilityScore > got[i-1].CredibilityScore {
			t.Errorf("%s (%d) ranked after %s (%d)", got[i].Name, got[i].CredibilityScore,
				got[i-1].Name, got[i-1].CredibilityScore)
		}
	}

	if got[0].Name != "NPR" || got[3].Name != "Reuters" {
		t.Errorf("unexpected leaders: %s, %s", got[0].Name, got[3].Name)
	}

	// Right: WSJ 87, Fox 78, American Conservative 76
	if got[8].Name != "The American Conservative" {
		t.Errorf("third right source = %s, want The American Conservative", got[8].Name)
	}

	for _, s := range got {
		if s.Category == model.CategoryFringe {
			t.Errorf("fringe source %s in balanced selection", s.Name)
		}
	}
}

func TestBalancedSelectionSmallCategory(t *testing.T) {
	c := Default()
	got := c.BalancedSelection(4)
	// International has only 3 sources
	n := 0
	for _, s := range got {
		if s.Category == model.CategoryInternational {
			n++
		}
	}
	if n != 3 {
		t.Errorf("international count = %d, want 3", n)
	}
	if len(c.BalancedSelection(0)) != 0 {
		t.Error("maxPerCategory 0 should select nothing")
	}
}

func TestByDomainAndURL(t *testing.T) {
	c := Default()

	tests := []struct {
		desc string
		in   string
		want string
		url  bool
	}{
		{"exact domain", "reuters.com", "Reuters", false},
		{"www prefix", "www.bbc.com", "BBC News", false},
		{"upper case", "NPR.ORG", "NPR", false},
		{"article url", "https://www.reuters.com/world/some-story-2024", "Reuters", true},
		{"subdomain url", "https://edition.cnn.com/2024/01/01/politics/story", "CNN", true},
		{"unknown url", "https://example.com/news", "", true},
		{"bad url", "::not a url", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			var s model.Source
			var ok bool
			if tt.url {
				s, ok = c.ByURL(tt.in)
			} else {
				s, ok = c.ByDomain(tt.in)
			}
			if tt.want == "" {
				if ok {
					t.Errorf("expected no match, got %s", s.Name)
				}
				return
			}
			if !ok || s.Name != tt.want {
				t.Errorf("got %q (ok=%v), want %q", s.Name, ok, tt.want)
			}
		})
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		desc    string
		sources []model.Source
	}{
		{"missing name", []model.Source{{Domain: "a.com", Category: model.CategoryLeft}}},
		{"missing domain", []model.Source{{Name: "A", Category: model.CategoryLeft}}},
		{"bad credibility", []model.Source{{Name: "A", Domain: "a.com", Category: model.CategoryLeft, CredibilityScore: 101}}},
		{"bad category", []model.Source{{Name: "A", Domain: "a.com", Category: "middle"}}},
		{"duplicate", []model.Source{
			{Name: "A", Domain: "a.com", Category: model.CategoryLeft},
			{Name: "B", Domain: "www.a.com", Category: model.CategoryRight},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if _, err := New(tt.sources); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "mutated"
	if c.All()[0].Name == "mutated" {
		t.Error("All() exposed internal slice")
	}
}

func TestHighCredibility(t *testing.T) {
	for _, s := range Default().HighCredibility(90) {
		if s.CredibilityScore < 90 {
			t.Errorf("%s has %d", s.Name, s.CredibilityScore)
		}
	}
}
