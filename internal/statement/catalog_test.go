package statement

import "testing"

func testCatalog() *Catalog {
	return NewCatalog([]Statement{
		{ID: "a1", Text: "a one", Topic: "alpha"},
		{ID: "a2", Text: "a two", Topic: "alpha"},
		{ID: "b1", Text: "b one", Topic: "beta"},
		{ID: "b2", Text: "b two", Topic: "beta"},
	})
}

func TestGetAndExists(t *testing.T) {
	c := testCatalog()
	s, ok := c.Get("a1")
	if !ok || s.Text != "a one" {
		t.Fatalf("unexpected statement: %+v ok=%v", s, ok)
	}
	if c.Exists("nope") {
		t.Fatal("unknown id should not exist")
	}
}

func TestSampleCount(t *testing.T) {
	c := testCatalog()
	if got := len(c.Sample(nil, 3)); got != 3 {
		t.Fatalf("expected 3 statements, got %d", got)
	}
	// asking for more than available returns everything
	if got := len(c.Sample(nil, 100)); got != 4 {
		t.Fatalf("expected 4 statements, got %d", got)
	}
}

func TestSampleTopicFilter(t *testing.T) {
	c := testCatalog()
	for _, s := range c.Sample([]string{"beta"}, 10) {
		if s.Topic != "beta" {
			t.Fatalf("filter leaked topic %s", s.Topic)
		}
	}
	// no matches means empty, not a fallback to the full catalog
	if got := c.Sample([]string{"gamma"}, 10); len(got) != 0 {
		t.Fatalf("expected empty sample, got %v", got)
	}
}

func TestSampleNonPositiveCount(t *testing.T) {
	c := testCatalog()
	if got := c.Sample(nil, 0); len(got) != 0 {
		t.Fatalf("expected empty sample for count 0, got %v", got)
	}
	if got := c.Sample(nil, -3); len(got) != 0 {
		t.Fatalf("expected empty sample for negative count, got %v", got)
	}
}

func TestDefaultCatalogIsWellFormed(t *testing.T) {
	c := DefaultCatalog()
	if len(c.All()) == 0 {
		t.Fatal("default catalog should not be empty")
	}
	seen := make(map[string]struct{})
	for _, s := range c.All() {
		if s.ID == "" || s.Text == "" || s.Topic == "" {
			t.Fatalf("incomplete statement: %+v", s)
		}
		if _, dup := seen[s.ID]; dup {
			t.Fatalf("duplicate statement id %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	if len(c.Topics()) < 2 {
		t.Fatal("default catalog should span multiple topics")
	}
}
