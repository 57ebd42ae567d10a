package analysis

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/linnemanlabs/go-core/log"
)

func newTestEngine(hooks EngineHooks) *Engine {
	dict := DefaultDictionary()
	registry := NewRegistry()
	registry.Register(NewEntityExtractor(dict))
	registry.Register(NewRiskAnalyzer(dict))
	registry.Register(NewStoryGenerator(dict))
	return NewEngine(registry, log.Nop(), hooks)
}

func TestEngine_Deterministic(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(EngineHooks{})
	ctx := context.Background()

	input := "Users can make a payment for each order. The system should store user data in the database."
	a := engine.Run(ctx, input)
	b := engine.Run(ctx, input)

	if !reflect.DeepEqual(a.Entities, b.Entities) {
		t.Errorf("entities differ across runs:\n%v\n%v", a.Entities, b.Entities)
	}
	if !reflect.DeepEqual(a.Risks, b.Risks) {
		t.Errorf("risks differ across runs:\n%v\n%v", a.Risks, b.Risks)
	}
	if !reflect.DeepEqual(a.Stories, b.Stories) {
		t.Errorf("stories differ across runs:\n%v\n%v", a.Stories, b.Stories)
	}
	if a.ID == b.ID {
		t.Error("bundle IDs should be unique per run")
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(EngineHooks{})
	b := engine.Run(context.Background(), "")

	if len(b.Entities) != 0 {
		t.Errorf("entities = %v, want none", b.Entities)
	}
	if len(b.Stories) != 0 {
		t.Errorf("stories = %v, want none", b.Stories)
	}
	if len(b.Risks) == 0 {
		t.Error("generic risks must be present even for empty input")
	}
	for _, r := range b.Risks {
		if r.Category == "integration" || r.Category == "compliance" {
			t.Errorf("unexpected context-specific risk for empty input: %v", r)
		}
	}
}

func TestEngine_UserAndOrderAreSeparateEntities(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(EngineHooks{})
	b := engine.Run(context.Background(), "a user can cancel an order")

	names := make([]string, 0, len(b.Entities))
	for _, e := range b.Entities {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"User", "Order"}) {
		t.Errorf("entity names = %v, want [User Order]", names)
	}
}

func TestEngine_PaymentTriggersRisk(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(EngineHooks{})
	b := engine.Run(context.Background(), "shoppers complete payment at checkout")

	generics := len(DefaultDictionary().GenericRisks)
	if len(b.Risks) != generics+1 {
		t.Fatalf("risks = %d, want %d generics plus payment risk", len(b.Risks), generics)
	}
	last := b.Risks[len(b.Risks)-1]
	if !strings.Contains(last.Description, "Payment gateway") || last.Impact != ImpactHigh {
		t.Errorf("triggered risk = %v, want payment gateway with High impact", last)
	}
}

func TestEngine_BundleMetadata(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(EngineHooks{})
	b := engine.Run(context.Background(), "users manage tasks")

	if b.ID == "" {
		t.Error("bundle ID is empty")
	}
	if b.Description != "users manage tasks" {
		t.Errorf("description = %q, want original input preserved", b.Description)
	}
	if b.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestEngine_HooksFire(t *testing.T) {
	t.Parallel()

	var extracts []string
	var itemTotal int
	var completed *CompleteEvent

	engine := newTestEngine(EngineHooks{
		OnExtract: func(name string, _ float64, items int) {
			extracts = append(extracts, name)
			itemTotal += items
		},
		OnComplete: func(e *CompleteEvent) { completed = e },
	})

	b := engine.Run(context.Background(), "users pay for orders")

	want := []string{"entities", "risks", "stories"}
	if !reflect.DeepEqual(extracts, want) {
		t.Errorf("OnExtract order = %v, want %v", extracts, want)
	}
	if completed == nil {
		t.Fatal("OnComplete not fired")
	}
	if got := len(b.Entities) + len(b.Risks) + len(b.Stories); itemTotal != got {
		t.Errorf("OnExtract item total = %d, want %d", itemTotal, got)
	}
	if completed.Entities != len(b.Entities) || completed.Risks != len(b.Risks) || completed.Stories != len(b.Stories) {
		t.Errorf("CompleteEvent = %+v, want counts matching bundle", completed)
	}
}

func TestRegistry_OrderAndReplace(t *testing.T) {
	t.Parallel()

	dict := DefaultDictionary()
	r := NewRegistry()
	r.Register(NewRiskAnalyzer(dict))
	r.Register(NewEntityExtractor(dict))
	r.Register(NewRiskAnalyzer(dict)) // replace keeps position

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List = %d extractors, want 2", len(list))
	}
	if list[0].Name() != "risks" || list[1].Name() != "entities" {
		t.Errorf("order = [%s %s], want registration order preserved", list[0].Name(), list[1].Name())
	}

	if _, ok := r.Get("stories"); ok {
		t.Error("Get(stories) = ok, want missing")
	}
	if _, ok := r.Get("risks"); !ok {
		t.Error("Get(risks) = missing, want ok")
	}
}
