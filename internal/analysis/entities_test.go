package analysis

import "testing"

func TestEntityExtractor_DictionaryMatches(t *testing.T) {
	t.Parallel()

	ex := NewEntityExtractor(DefaultDictionary())
	b := &Bundle{}
	ex.Extract(Normalize("Users place orders and pay via the payment gateway"), b)

	wantNames := []string{"User", "Order", "Payment"}
	if len(b.Entities) != len(wantNames) {
		t.Fatalf("entities = %v, want names %v", b.Entities, wantNames)
	}
	for i, want := range wantNames {
		if b.Entities[i].Name != want {
			t.Errorf("entity %d = %q, want %q", i, b.Entities[i].Name, want)
		}
		if b.Entities[i].Responsibility == "" {
			t.Errorf("entity %q has empty responsibility", b.Entities[i].Name)
		}
	}
}

func TestEntityExtractor_DictionaryOrderNotTextOrder(t *testing.T) {
	t.Parallel()

	ex := NewEntityExtractor(DefaultDictionary())
	b := &Bundle{}
	// text mentions order before user; dictionary lists user first
	ex.Extract(Normalize("every order belongs to a user"), b)

	if len(b.Entities) != 2 {
		t.Fatalf("entities = %v, want 2", b.Entities)
	}
	if b.Entities[0].Name != "User" || b.Entities[1].Name != "Order" {
		t.Errorf("order = [%s %s], want dictionary order [User Order]", b.Entities[0].Name, b.Entities[1].Name)
	}
}

func TestEntityExtractor_CoOccurrenceIsIndependent(t *testing.T) {
	t.Parallel()

	ex := NewEntityExtractor(DefaultDictionary())
	b := &Bundle{}
	ex.Extract(Normalize("a user submits an order"), b)

	var gotUser, gotOrder bool
	for _, e := range b.Entities {
		switch e.Name {
		case "User":
			gotUser = true
		case "Order":
			gotOrder = true
		}
	}
	if !gotUser || !gotOrder {
		t.Errorf("entities = %v, want both User and Order as separate records", b.Entities)
	}
}

func TestEntityExtractor_DedupCaseInsensitive(t *testing.T) {
	t.Parallel()

	dict := &Dictionary{
		Entities: []EntityPattern{
			{Keyword: "user", Responsibility: "first"},
			{Keyword: "User", Responsibility: "second"},
		},
	}
	ex := NewEntityExtractor(dict)
	b := &Bundle{}
	ex.Extract(Normalize("the user logs in"), b)

	if len(b.Entities) != 1 {
		t.Fatalf("entities = %v, want 1 after dedup", b.Entities)
	}
	if b.Entities[0].Responsibility != "first" {
		t.Errorf("dedup kept %q, want first match", b.Entities[0].Responsibility)
	}
}

func TestEntityExtractor_FallbackSystemEntity(t *testing.T) {
	t.Parallel()

	ex := NewEntityExtractor(DefaultDictionary())
	b := &Bundle{}
	ex.Extract(Normalize("something entirely unrelated to any keyword"), b)

	if len(b.Entities) != 1 || b.Entities[0].Name != "System" {
		t.Errorf("entities = %v, want single fallback System entity", b.Entities)
	}
}

func TestEntityExtractor_EmptyInputNoFallback(t *testing.T) {
	t.Parallel()

	ex := NewEntityExtractor(DefaultDictionary())
	b := &Bundle{}
	ex.Extract(Normalize("   "), b)

	if len(b.Entities) != 0 {
		t.Errorf("entities = %v, want none for empty input", b.Entities)
	}
}
